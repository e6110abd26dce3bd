package services

import (
	"context"

	"github.com/workexpress/wx_backend/internal/dto"
)

// CashClosureSvcFacade owns the lifecycle of cash periods.
type CashClosureSvcFacade interface {
	// GetCurrentCashClosure returns the open cash period with live
	// aggregates, lazily creating one when none is open. Never returns
	// ErrNotFound.
	GetCurrentCashClosure(ctx context.Context) (*dto.CashClosureView, error)

	// CloseCashClosure seals the open cash period, attributing the close to
	// the given operator. Returns apperrors.ErrNoOpenCashClosure when
	// nothing is open.
	CloseCashClosure(ctx context.Context, operatorID string) (*dto.CashClosureView, error)

	// AutomaticCloseCashClosure is the scheduler variant of close: system
	// identity, nil result instead of an error when nothing is open.
	AutomaticCloseCashClosure(ctx context.Context) (*dto.CashClosureView, error)

	// AutomaticOpenCashClosure opens a new cash period unless one is already
	// open; nil result when it had nothing to do.
	AutomaticOpenCashClosure(ctx context.Context) (*dto.CashClosureView, error)

	// CheckAndProcessAutomaticCashClosure inspects the current local time
	// against the configured open/close thresholds and triggers the
	// matching action at most once per window and day. It never returns an
	// error; failures are reported inside the result.
	CheckAndProcessAutomaticCashClosure(ctx context.Context) dto.AutomaticCashClosureResult

	// GetCashClosureHistory lists cash periods matching the filter with
	// per-method breakdowns and paging meta.
	GetCashClosureHistory(ctx context.Context, req dto.CashClosureHistoryRequest) (*dto.CashClosureHistoryResponse, error)

	// GetTransactionsForCashClosure returns the raw transaction rows of one
	// cash period, paginated. Returns ErrNotFound for an unknown id.
	GetTransactionsForCashClosure(ctx context.Context, cashClosureID string, page int, limit int) (*dto.CashClosureTransactionsResponse, error)
}

// ClosureNotifier delivers the summary of an automatically closed cash
// period. Delivery failures are logged by the caller, never propagated.
type ClosureNotifier interface {
	SendClosureSummary(ctx context.Context, view *dto.CashClosureView) error
}
