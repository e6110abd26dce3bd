package repositories

import (
	"context"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// TransactionReader defines read operations for ledger rows. Transactions are
// recorded by the sales flow outside this core; this core only aggregates.
type TransactionReader interface {
	// FindTransactionsByCashClosureID retrieves every transaction tied to a
	// cash period. Aggregation needs the full set.
	FindTransactionsByCashClosureID(ctx context.Context, cashClosureID string) ([]domain.Transaction, error)

	// ListTransactionsByCashClosureID retrieves a page of transactions tied
	// to a cash period plus the total row count.
	ListTransactionsByCashClosureID(ctx context.Context, cashClosureID string, limit int, offset int) ([]domain.Transaction, int64, error)
}

// PaymentMethodReader defines read operations for payment-method reference
// data.
type PaymentMethodReader interface {
	// FindPaymentMethodsByIDs retrieves payment methods keyed by id.
	FindPaymentMethodsByIDs(ctx context.Context, paymentMethodIDs []string) (map[string]domain.PaymentMethod, error)
}
