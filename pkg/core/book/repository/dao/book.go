package dao

import (
	"context"

	"book-catalog/pkg/core/book/model"
)

// ListFilter narrows List. A zero value lists every book.
type ListFilter struct {
	Query string // case-insensitive match on titulo or autor
}

type BookRepository interface {
	List(ctx context.Context, filter ListFilter) ([]model.Libro, error)
	QueryByID(ctx context.Context, id int64) (model.Libro, error)
	Create(ctx context.Context, libro *model.Libro) error
	Update(ctx context.Context, libro *model.Libro) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, libros []model.Libro) error
	Ping(ctx context.Context) error
}
