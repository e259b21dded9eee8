package model

import (
	"time"

	authmodel "book-catalog/pkg/core/auth/model"
)

type (
	// LoginRes echoes the rol the caller sent; the token carries the resolved role.
	LoginRes struct {
		Token    string      `json:"token"`
		Rol      interface{} `json:"rol"`
		Username string      `json:"username"`
		Expira   time.Time   `json:"expira"`
	}

	SessionRes struct {
		Username string                `json:"username"`
		Rol      string                `json:"rol"`
		Permisos authmodel.Permissions `json:"permisos"`
	}
)
