package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	errs "book-catalog/pkg/common/errors"
	"book-catalog/pkg/web/model"
)

// respondError writes the error contract shared by every handler:
// validation -> 400, missing book -> 404, anything else -> 500 with internalMsg.
// It returns the metrics result label.
func respondError(ctx context.Context, c *app.RequestContext, err error, internalMsg string) string {
	if verr, ok := errs.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, model.ErrorRes{Error: verr.Message})
		return "invalid"
	}
	if errors.Is(err, errs.ErrBookNotFound) {
		_ = c.Error(err)
		c.JSON(http.StatusNotFound, model.ErrorRes{Error: errs.ErrBookNotFound.Error()})
		return "not_found"
	}

	_ = c.Error(err)
	hlog.CtxErrorf(ctx, "%s: %v", internalMsg, err)
	c.JSON(http.StatusInternalServerError, model.ErrorRes{Error: internalMsg})
	return "error"
}

// decodePayload reads a JSON object body. Anything else is a validation error.
func decodePayload(c *app.RequestContext) (model.Payload, error) {
	var payload model.Payload
	if err := c.BindJSON(&payload); err != nil || payload == nil {
		return nil, errs.NewValidation("body", errs.ErrMalformedBody.Error())
	}
	return payload, nil
}

// parseID reads a non-negative integer :id. Other values are reported as a missing book.
func parseID(c *app.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		c.JSON(http.StatusNotFound, model.ErrorRes{Error: errs.ErrBookNotFound.Error()})
		return 0, false
	}
	return id, true
}
