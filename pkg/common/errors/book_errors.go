// pkg/common/errors/book_errors.go

/*
  - Usage
    if errors.Is(err, errs.ErrBookNotFound) {
    // 404
    }

    if verr, ok := errs.AsValidation(err); ok {
    // 400 with verr.Message
    }
*/
package errors

import (
	"errors"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

var (
	rawErrBookNotFound       = errors.New("Libro no encontrado")
	rawErrDatabaseInternal   = errors.New("database internal error")
	rawErrInvalidCredentials = errors.New("Credenciales incorrectas")
	rawErrMalformedBody      = errors.New("Ingresa datos válidos")
)

// Public errors carry a message that is safe to return to clients.
var (
	ErrBookNotFound       = hzte.New(rawErrBookNotFound, hzte.ErrorTypePublic, nil)
	ErrInvalidCredentials = hzte.New(rawErrInvalidCredentials, hzte.ErrorTypePublic, nil)
	ErrMalformedBody      = hzte.New(rawErrMalformedBody, hzte.ErrorTypePublic, nil)
	ErrDatabaseInternal   = hzte.New(rawErrDatabaseInternal, hzte.ErrorTypePrivate, nil)
)

// NewBookNotFound attaches the looked-up id as metadata.
func NewBookNotFound(id int64) *hzte.Error {
	return hzte.New(ErrBookNotFound, hzte.ErrorTypePublic, map[string]interface{}{"id": id})
}

// ValidationError reports the first rule a request field violated.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a *ValidationError if it holds one.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
