package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	errs "book-catalog/pkg/common/errors"
	"book-catalog/pkg/core/book/model"
	"book-catalog/pkg/core/book/repository/dao"
)

type GormBookRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

var _ dao.BookRepository = (*GormBookRepository)(nil)

func NewGormBookRepository(db *gorm.DB, timeout time.Duration) *GormBookRepository {
	return &GormBookRepository{db: db, timeout: timeout}
}

func (r *GormBookRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *GormBookRepository) List(ctx context.Context, filter dao.ListFilter) ([]model.Libro, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&model.Libro{})
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(titulo) LIKE ? OR LOWER(autor) LIKE ?", pattern, pattern)
	}

	libros := make([]model.Libro, 0)
	if err := query.Order("id").Find(&libros).Error; err != nil {
		return nil, fmt.Errorf("%w: book list failed", errs.WrapGormError(err))
	}
	return libros, nil
}

func (r *GormBookRepository) QueryByID(ctx context.Context, id int64) (model.Libro, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var libro model.Libro
	err := r.db.WithContext(ctx).First(&libro, id).Error
	if err != nil {
		return model.Libro{}, lookupError(err, id)
	}
	return libro, nil
}

// Create inserts libro inside a transaction and fills in its ID.
func (r *GormBookRepository) Create(ctx context.Context, libro *model.Libro) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(libro).Error; err != nil {
			return fmt.Errorf("%w: book creation failed", errs.WrapGormError(err))
		}
		return nil
	})
}

// Update overwrites titulo, autor and precio of the row identified by libro.ID.
func (r *GormBookRepository) Update(ctx context.Context, libro *model.Libro) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.Libro
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&current, libro.ID).Error; err != nil {
			return lookupError(err, libro.ID)
		}

		current.Titulo, current.Autor, current.Precio = libro.Titulo, libro.Autor, libro.Precio
		// Select keeps a zero precio in the UPDATE.
		err := tx.Model(&current).
			Select("titulo", "autor", "precio").
			Updates(&current).
			Error
		if err != nil {
			return fmt.Errorf("%w: book update failed", errs.WrapGormError(err))
		}

		*libro = current
		return nil
	})
}

func (r *GormBookRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&model.Libro{}, id)
		if result.Error != nil {
			return fmt.Errorf("%w: book deletion failed", errs.WrapGormError(result.Error))
		}
		if result.RowsAffected == 0 {
			return errs.NewBookNotFound(id)
		}
		return nil
	})
}

func (r *GormBookRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Libro{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("%w: book count failed", errs.WrapGormError(err))
	}
	return count, nil
}

// CreateBatch inserts all libros atomically.
func (r *GormBookRepository) CreateBatch(ctx context.Context, libros []model.Libro) error {
	if len(libros) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&libros).Error; err != nil {
			return fmt.Errorf("%w: book batch insert failed", errs.WrapGormError(err))
		}
		return nil
	})
}

func (r *GormBookRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return errs.WrapGormError(err)
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// lookupError tags a missing row with the id that was asked for.
func lookupError(err error, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewBookNotFound(id)
	}
	return errs.WrapGormError(err)
}
