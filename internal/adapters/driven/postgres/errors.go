package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/custodia-labs/shop-auth/internal/core/domain"
)

// uniqueViolation is SQLSTATE 23505
const uniqueViolation = pq.ErrorCode("23505")

// mapError translates driver errors into domain errors.
// op names the failing operation for the wrapped message.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s: %s", domain.ErrAlreadyExists, op, pqErr.Constraint)
	}

	return fmt.Errorf("%w: %s: %v", domain.ErrStore, op, err)
}
