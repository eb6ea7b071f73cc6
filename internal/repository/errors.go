package repository

import (
	"errors"
	"fmt"
	"strings"

	"selam/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// translateError maps driver errors onto AppErrors. what names the row that
// was being written.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case isUniqueViolation(err):
		return models.NewConflictError(what+" already exists", err)
	case isForeignKeyViolation(err):
		return &models.AppError{
			Code:    models.CodeNotFound,
			Message: "referenced row for " + what + " not found",
			Err:     err,
		}
	case isCheckViolation(err):
		return &models.AppError{
			Code:    models.CodeValidation,
			Message: "invalid " + what,
			Err:     err,
		}
	}
	return fmt.Errorf("%s: %w", what, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.ForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isCheckViolation(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.CheckViolation
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

// validID reports whether id can name a stored row. Ids are UUIDs in every
// backend, so anything else is known to be absent.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func requireTarget(target models.Target) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !validID(target.ID()) {
		return targetNotFound(target)
	}
	return nil
}

func targetNotFound(target models.Target) error {
	if target.Kind() == models.TargetDuaRequest {
		return models.NewNotFoundError("Dua request", target.ID())
	}
	return models.NewNotFoundError("Post", target.ID())
}
