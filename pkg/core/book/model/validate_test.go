package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "book-catalog/pkg/common/errors"
)

func TestValidate_Normalizes(t *testing.T) {
	libro, err := Validate("  Rayuela ", "\tJulio Cortázar\n", 21.3)
	require.NoError(t, err)

	assert.Equal(t, "Rayuela", libro.Titulo)
	assert.Equal(t, "Julio Cortázar", libro.Autor)
	assert.Equal(t, 21.3, libro.Precio)
}

func TestValidate_FirstFailureWins(t *testing.T) {
	thirty := strings.Repeat("a", 30)
	thirtyOne := strings.Repeat("a", 31)
	// 30 runes, more than 30 bytes
	accented := strings.Repeat("á", 30)

	testCases := []struct {
		name   string
		titulo interface{}
		autor  interface{}
		precio interface{}
		field  string
		msg    string
	}{
		{"missing title", nil, "Autor", 1.0, "titulo", MsgTitleRequired},
		{"blank title", "   ", "Autor", 1.0, "titulo", MsgTitleRequired},
		{"title not string", 42.0, "Autor", 1.0, "titulo", MsgTitleRequired},
		{"title too long", thirtyOne, "Autor", 1.0, "titulo", MsgTitleTooLong},
		{"title checked before author", "", "", -1.0, "titulo", MsgTitleRequired},
		{"missing author", "Titulo", nil, 1.0, "autor", MsgAuthorRequired},
		{"author too long", "Titulo", thirtyOne, 1.0, "autor", MsgAuthorTooLong},
		{"missing price", "Titulo", "Autor", nil, "precio", MsgPriceInvalid},
		{"price as string", "Titulo", "Autor", "10", "precio", MsgPriceInvalid},
		{"price as bool", "Titulo", "Autor", true, "precio", MsgPriceInvalid},
		{"negative price", "Titulo", "Autor", -0.01, "precio", MsgPriceInvalid},
		{"price too high", "Titulo", "Autor", 1000000.0, "precio", MsgPriceTooHigh},
		{"valid edge", thirty, accented, 999999.99, "", ""},
		{"zero price", "Titulo", "Autor", 0.0, "", ""},
		{"padded title within limit", "  " + thirty + "  ", "Autor", 1.0, "", ""},
		{"json number", "Titulo", "Autor", json.Number("12.5"), "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.titulo, tc.autor, tc.precio)
			if tc.msg == "" {
				assert.NoError(t, err)
				return
			}
			verr, ok := errs.AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.msg, verr.Message)
		})
	}
}
