package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"book-catalog/pkg/core/book/model"
)

var sampleBooks = []model.Libro{
	{Titulo: "Cien años de soledad", Autor: "Gabriel García Márquez", Precio: 25.99},
	{Titulo: "Don Quijote de la Mancha", Autor: "Miguel de Cervantes", Precio: 18.50},
	{Titulo: "El amor en los tiempos", Autor: "Gabriel García Márquez", Precio: 22.75},
	{Titulo: "La casa de los espíritus", Autor: "Isabel Allende", Precio: 19.99},
	{Titulo: "Rayuela", Autor: "Julio Cortázar", Precio: 21.30},
	{Titulo: "Pedro Páramo", Autor: "Juan Rulfo", Precio: 16.80},
}

// Seed fills an empty catalog with sample books and returns how many were inserted.
// A catalog that already has rows is left untouched.
func (s *BookService) Seed(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		hlog.CtxInfof(ctx, "catalog already holds %d books, skipping seed", count)
		return 0, nil
	}

	libros := make([]model.Libro, len(sampleBooks))
	copy(libros, sampleBooks)
	if err := s.repo.CreateBatch(ctx, libros); err != nil {
		return 0, err
	}

	hlog.CtxInfof(ctx, "seeded %d sample books", len(libros))
	return len(libros), nil
}
