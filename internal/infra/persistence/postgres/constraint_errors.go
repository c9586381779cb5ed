package postgres

import (
	"strings"

	"tastebud/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error checking. gorm.Config.TranslateError
// is enabled, so driver errors arrive as GORM sentinel errors.
func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

func isNotNullConstraintViolation(err error) bool {
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation error code
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}

// userUniqueViolationSentinel narrows a duplicate-key error on the users
// table to the column it hit. PostgreSQL names the violated constraint in
// the error text, and the GORM-generated constraint names carry the column
// name, so a substring check is enough to tell them apart.
func userUniqueViolationSentinel(err error) error {
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "verification_token"):
		return repository.ErrDuplicateVerificationToken
	case strings.Contains(errMsg, "email"):
		return repository.ErrDuplicateEmail
	case strings.Contains(errMsg, "username"):
		return repository.ErrDuplicateUsername
	default:
		// Ambiguous constraint name. Username is the most commonly
		// contended column, so report that one.
		return repository.ErrDuplicateUsername
	}
}
