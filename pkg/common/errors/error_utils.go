package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// WrapGormError translates driver and GORM errors into the package errors.
//   - gorm.ErrRecordNotFound becomes ErrBookNotFound
//   - a value too long for its column becomes a ValidationError
//   - everything else is wrapped in ErrDatabaseInternal, keeping driver detail for logs
func WrapGormError(rawErr error) error {
	if rawErr == nil {
		return nil
	}

	switch {
	case errors.Is(rawErr, gorm.ErrRecordNotFound):
		return ErrBookNotFound
	case errors.Is(rawErr, context.DeadlineExceeded):
		return fmt.Errorf("%w: query timeout", ErrDatabaseInternal)
	case errors.Is(rawErr, gorm.ErrInvalidDB),
		errors.Is(rawErr, gorm.ErrInvalidTransaction),
		errors.Is(rawErr, gorm.ErrUnsupportedRelation):
		return fmt.Errorf("%w: %v", ErrDatabaseInternal, rawErr)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(rawErr, &mysqlErr) {
		if mysqlErr.Number == 1406 { // data too long for column
			return NewValidation("body", ErrMalformedBody.Error())
		}
		return fmt.Errorf("%w: mysql %d: %s", ErrDatabaseInternal, mysqlErr.Number, mysqlErr.Message)
	}

	var pgErr *pgconn.PgError
	if errors.As(rawErr, &pgErr) {
		if pgErr.Code == "22001" { // string_data_right_truncation
			return NewValidation("body", ErrMalformedBody.Error())
		}
		return fmt.Errorf("%w: %s (SQLSTATE %s)", ErrDatabaseInternal, pgErr.Message, pgErr.Code)
	}

	return fmt.Errorf("%w: %v", ErrDatabaseInternal, rawErr)
}

// IsInternal reports whether err came from the storage layer rather than the caller.
func IsInternal(err error) bool {
	return errors.Is(err, ErrDatabaseInternal)
}
