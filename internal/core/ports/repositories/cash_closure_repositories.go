package repositories

import (
	"context"
	"time"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// ListCashClosuresFilter narrows a history query. Date bounds are inclusive.
type ListCashClosuresFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *domain.CashClosureStatus
	Limit     int
	Offset    int
}

// CashClosureReader defines read operations for cash periods.
type CashClosureReader interface {
	// FindOpenCashClosure retrieves the single currently open cash period.
	// Returns apperrors.ErrNotFound when no period is open.
	FindOpenCashClosure(ctx context.Context) (*domain.CashClosure, error)

	// FindCashClosureByID retrieves a specific cash period by id.
	FindCashClosureByID(ctx context.Context, cashClosureID string) (*domain.CashClosure, error)

	// FindLatestCashClosure retrieves the most recently created cash period
	// regardless of status. Used to decide whether today's automatic open
	// already happened.
	FindLatestCashClosure(ctx context.Context) (*domain.CashClosure, error)

	// ListCashClosures retrieves a filtered page of cash periods plus the
	// total row count for the filter.
	ListCashClosures(ctx context.Context, filter ListCashClosuresFilter) ([]domain.CashClosure, int64, error)
}

// CashClosureWriter defines write operations for cash periods.
type CashClosureWriter interface {
	// SaveCashClosure persists a new cash period. A second concurrent open
	// insert surfaces as apperrors.ErrDuplicate via the partial unique index.
	SaveCashClosure(ctx context.Context, closure domain.CashClosure) error

	// UpdateCashClosure updates an existing cash period (sealing on close).
	UpdateCashClosure(ctx context.Context, closure domain.CashClosure) error
}

// CashClosureRepositoryFacade combines all cash-period repository interfaces.
type CashClosureRepositoryFacade interface {
	CashClosureReader
	CashClosureWriter
}
