package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"book-catalog/pkg/core/book/service"
	"book-catalog/pkg/metrics"
	"book-catalog/pkg/web/model"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// List handles GET /libros/ with an optional ?q= filter.
func (h *BookHandler) List(ctx context.Context, c *app.RequestContext) {
	libros, err := h.svc.List(ctx, c.Query("q"))
	if err != nil {
		observe("list", respondError(ctx, c, err, "Error al obtener los libros"))
		return
	}
	observe("list", "ok")
	c.JSON(http.StatusOK, model.NewBookList(libros))
}

// Get handles GET /libros/:id
func (h *BookHandler) Get(ctx context.Context, c *app.RequestContext) {
	id, ok := parseID(c)
	if !ok {
		observe("get", "not_found")
		return
	}

	libro, err := h.svc.Get(ctx, id)
	if err != nil {
		observe("get", respondError(ctx, c, err, "Error al obtener el libro"))
		return
	}
	observe("get", "ok")
	c.JSON(http.StatusOK, model.NewBookRes(libro))
}

// Create handles POST /libros/nuevo
func (h *BookHandler) Create(ctx context.Context, c *app.RequestContext) {
	payload, err := decodePayload(c)
	if err != nil {
		observe("create", respondError(ctx, c, err, "Error al crear el libro"))
		return
	}

	libro, err := h.svc.Create(ctx, payload.BookInput())
	if err != nil {
		observe("create", respondError(ctx, c, err, "Error al crear el libro"))
		return
	}
	observe("create", "ok")
	c.JSON(http.StatusCreated, model.MessageRes{Mensaje: "Libro añadido", ID: libro.ID})
}

// Update handles PUT /libros/:id. Absent fields keep their stored value.
func (h *BookHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, ok := parseID(c)
	if !ok {
		observe("update", "not_found")
		return
	}
	payload, err := decodePayload(c)
	if err != nil {
		// an unknown id is reported before a bad body
		if _, gerr := h.svc.Get(ctx, id); gerr != nil {
			err = gerr
		}
		observe("update", respondError(ctx, c, err, "Error al actualizar el libro"))
		return
	}

	if _, err := h.svc.Update(ctx, id, payload.BookInput()); err != nil {
		observe("update", respondError(ctx, c, err, "Error al actualizar el libro"))
		return
	}
	observe("update", "ok")
	c.JSON(http.StatusOK, model.MessageRes{Mensaje: "Libro actualizado"})
}

// Delete handles DELETE /libros/eliminar/:id
func (h *BookHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := parseID(c)
	if !ok {
		observe("delete", "not_found")
		return
	}

	if err := h.svc.Delete(ctx, id); err != nil {
		observe("delete", respondError(ctx, c, err, "Error al eliminar el libro"))
		return
	}
	observe("delete", "ok")
	c.JSON(http.StatusOK, model.MessageRes{Mensaje: "Libro eliminado"})
}

func observe(op, result string) {
	metrics.BookOperations.WithLabelValues(op, result).Inc()
}
