package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	errs "book-catalog/pkg/common/errors"
	"book-catalog/pkg/core/auth/model"
)

const (
	MsgMissingCredentials = "Ingresa datos válidos"
	MsgUsernameInvalid    = "El usuario debe ser un texto válido"
	MsgUsernameTooShort   = "El usuario debe tener al menos 3 caracteres"
	MsgUsernameTooLong    = "El usuario no puede exceder 20 caracteres"
	MsgPasswordInvalid    = "La contraseña debe ser un texto válido"
	MsgPasswordTooShort   = "La contraseña debe tener al menos 4 caracteres"
)

var validate = validator.New()

// LoginRequest holds the raw login body. Confirmacion is the value being
// verified; when it is absent the password verifies itself.
type LoginRequest struct {
	Username        interface{}
	Password        interface{}
	Rol             interface{}
	Confirmacion    interface{}
	ConfirmacionSet bool
}

type LoginResult struct {
	Token     string
	Role      model.Role
	Username  string
	ExpiresAt time.Time
}

type AuthService struct {
	issuer     *TokenIssuer
	bcryptCost int
}

func NewAuthService(issuer *TokenIssuer, bcryptCost int) *AuthService {
	return &AuthService{issuer: issuer, bcryptCost: bcryptCost}
}

// Login validates the request shape, builds a transient account for the
// requested role and authenticates the verified value against it.
// Shape problems return *errs.ValidationError, a failed check ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	username, password, role, err := validateLogin(req)
	if err != nil {
		return LoginResult{}, err
	}

	account, err := model.NewAccount(username, password, role, s.bcryptCost)
	if err != nil {
		return LoginResult{}, fmt.Errorf("build account: %w", err)
	}

	verified := password
	if req.ConfirmacionSet {
		c, ok := req.Confirmacion.(string)
		if !ok {
			return LoginResult{}, errs.ErrInvalidCredentials
		}
		verified = c
	}

	if !account.Authenticate(verified) {
		return LoginResult{}, errs.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Issue(account.Username, account.Role)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		Token:     token,
		Role:      account.Role,
		Username:  account.Username,
		ExpiresAt: expiresAt,
	}, nil
}

func validateLogin(req LoginRequest) (string, string, model.Role, error) {
	role := model.ParseRole(req.Rol)

	if isFalsy(req.Username) || isFalsy(req.Password) {
		return "", "", role, errs.NewValidation("username", MsgMissingCredentials)
	}

	username, ok := req.Username.(string)
	if !ok || strings.TrimSpace(username) == "" {
		return "", "", role, errs.NewValidation("username", MsgUsernameInvalid)
	}
	username = strings.TrimSpace(username)
	if err := validate.Var(username, "min=3,max=20"); err != nil {
		if failedTag(err) == "max" {
			return "", "", role, errs.NewValidation("username", MsgUsernameTooLong)
		}
		return "", "", role, errs.NewValidation("username", MsgUsernameTooShort)
	}

	password, ok := req.Password.(string)
	if !ok || strings.TrimSpace(password) == "" {
		return "", "", role, errs.NewValidation("password", MsgPasswordInvalid)
	}
	if err := validate.Var(password, "min=4"); err != nil {
		return "", "", role, errs.NewValidation("password", MsgPasswordTooShort)
	}

	if err := role.CheckPassword(password); err != nil {
		return "", "", role, err
	}

	return username, password, role, nil
}

// isFalsy treats absent, null, empty and zero JSON values as missing.
func isFalsy(v interface{}) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case []interface{}:
		return len(x) == 0
	case map[string]interface{}:
		return len(x) == 0
	default:
		return false
	}
}

func failedTag(err error) string {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		return ves[0].Tag()
	}
	return ""
}
