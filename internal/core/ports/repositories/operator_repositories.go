package repositories

import (
	"context"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// OperatorReader defines read operations for staff identities.
type OperatorReader interface {
	// FindOperatorByID retrieves an operator by id.
	FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error)

	// FindOperatorByEmail retrieves an operator by email.
	FindOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error)

	// FindNewestActiveOperator retrieves the most recently created active
	// operator, optionally restricted to the given roles. Passing no roles
	// means any active operator qualifies.
	FindNewestActiveOperator(ctx context.Context, roles ...domain.OperatorRole) (*domain.Operator, error)
}
