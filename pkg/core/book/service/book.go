package service

import (
	"context"

	"book-catalog/pkg/core/book/model"
	"book-catalog/pkg/core/book/repository/dao"
)

// Field is one raw request value. Set is false when the key was absent.
type Field struct {
	Value interface{}
	Set   bool
}

// BookInput carries undecoded titulo/autor/precio so type errors surface as validation errors.
type BookInput struct {
	Titulo Field
	Autor  Field
	Precio Field
}

type BookService struct {
	repo dao.BookRepository
}

func NewBookService(repo dao.BookRepository) *BookService {
	return &BookService{repo: repo}
}

func (s *BookService) List(ctx context.Context, query string) ([]model.Libro, error) {
	return s.repo.List(ctx, dao.ListFilter{Query: query})
}

func (s *BookService) Get(ctx context.Context, id int64) (model.Libro, error) {
	return s.repo.QueryByID(ctx, id)
}

// Create validates in and stores a new book. Absent fields count as missing.
func (s *BookService) Create(ctx context.Context, in BookInput) (model.Libro, error) {
	libro, err := model.Validate(in.Titulo.Value, in.Autor.Value, in.Precio.Value)
	if err != nil {
		return model.Libro{}, err
	}
	if err := s.repo.Create(ctx, &libro); err != nil {
		return model.Libro{}, err
	}
	return libro, nil
}

// Update applies a partial change. The book must exist before anything is
// validated; absent fields keep their stored value.
func (s *BookService) Update(ctx context.Context, id int64, in BookInput) (model.Libro, error) {
	current, err := s.repo.QueryByID(ctx, id)
	if err != nil {
		return model.Libro{}, err
	}

	libro, err := model.Validate(
		valueOr(in.Titulo, current.Titulo),
		valueOr(in.Autor, current.Autor),
		valueOr(in.Precio, current.Precio),
	)
	if err != nil {
		return model.Libro{}, err
	}

	libro.ID = id
	if err := s.repo.Update(ctx, &libro); err != nil {
		return model.Libro{}, err
	}
	return libro, nil
}

func (s *BookService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Ping checks that the backing store answers.
func (s *BookService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func valueOr(f Field, fallback interface{}) interface{} {
	if f.Set {
		return f.Value
	}
	return fallback
}
