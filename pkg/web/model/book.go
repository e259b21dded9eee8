package model

import (
	bookmodel "book-catalog/pkg/core/book/model"
	"book-catalog/pkg/core/book/service"
)

type (
	BookRes struct {
		ID     int64   `json:"id"`
		Titulo string  `json:"titulo"`
		Autor  string  `json:"autor"`
		Precio float64 `json:"precio"`
	}

	MessageRes struct {
		Mensaje string `json:"mensaje"`
		ID      int64  `json:"id,omitempty"`
	}

	ErrorRes struct {
		Error string `json:"error"`
	}
)

func NewBookRes(l bookmodel.Libro) BookRes {
	return BookRes{ID: l.ID, Titulo: l.Titulo, Autor: l.Autor, Precio: l.Precio}
}

func NewBookList(libros []bookmodel.Libro) []BookRes {
	out := make([]BookRes, 0, len(libros))
	for _, l := range libros {
		out = append(out, NewBookRes(l))
	}
	return out
}

// Payload is a decoded JSON object body. Values keep their JSON types so
// validation can tell a missing key from a wrongly typed one.
type Payload map[string]interface{}

func (p Payload) Field(key string) service.Field {
	v, ok := p[key]
	return service.Field{Value: v, Set: ok}
}

func (p Payload) BookInput() service.BookInput {
	return service.BookInput{
		Titulo: p.Field("titulo"),
		Autor:  p.Field("autor"),
		Precio: p.Field("precio"),
	}
}
