package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	errs "book-catalog/pkg/common/errors"
)

const (
	MsgTitleRequired  = "El título es obligatorio"
	MsgTitleTooLong   = "El título no puede exceder 30 caracteres"
	MsgAuthorRequired = "El autor es obligatorio"
	MsgAuthorTooLong  = "El autor no puede exceder 30 caracteres"
	MsgPriceInvalid   = "Ingresa un precio válido (debe ser mayor o igual a 0)"
	MsgPriceTooHigh   = "El precio no puede exceder $999,999.99"
)

var (
	validate = validator.New()

	textRule  = fmt.Sprintf("required,max=%d", MaxTextLength)
	priceRule = fmt.Sprintf("gte=0,lte=%.2f", MaxPrice)
)

// Validate checks raw titulo/autor/precio values in that order and returns the
// normalized record. The first violated rule wins.
func Validate(titulo, autor, precio interface{}) (Libro, error) {
	t, err := validateText("titulo", titulo, MsgTitleRequired, MsgTitleTooLong)
	if err != nil {
		return Libro{}, err
	}
	a, err := validateText("autor", autor, MsgAuthorRequired, MsgAuthorTooLong)
	if err != nil {
		return Libro{}, err
	}
	p, err := validatePrice(precio)
	if err != nil {
		return Libro{}, err
	}
	return Libro{Titulo: t, Autor: a, Precio: p}, nil
}

// validateText trims v and enforces non-empty and the length cap (in runes).
func validateText(field string, v interface{}, required, tooLong string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errs.NewValidation(field, required)
	}
	s = strings.TrimSpace(s)

	if err := validate.Var(s, textRule); err != nil {
		if failedTag(err) == "max" {
			return "", errs.NewValidation(field, tooLong)
		}
		return "", errs.NewValidation(field, required)
	}
	return s, nil
}

func validatePrice(v interface{}) (float64, error) {
	p, ok := asNumber(v)
	if !ok {
		return 0, errs.NewValidation("precio", MsgPriceInvalid)
	}

	if err := validate.Var(p, priceRule); err != nil {
		if failedTag(err) == "lte" {
			return 0, errs.NewValidation("precio", MsgPriceTooHigh)
		}
		return 0, errs.NewValidation("precio", MsgPriceInvalid)
	}
	return p, nil
}

// asNumber accepts JSON numbers only; booleans and numeric strings are rejected.
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func failedTag(err error) string {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		return ves[0].Tag()
	}
	return ""
}
