package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection indicates whether a transaction adds to or takes from
// the register.
type TransactionDirection string

const (
	Credit TransactionDirection = "CREDIT"
	Debit  TransactionDirection = "DEBIT"
)

// Transaction is a single ledger row. Transactions are read-only from this
// core's perspective; they are recorded elsewhere and merely aggregated here.
type Transaction struct {
	TransactionID   string               `json:"transactionID"`
	PaymentMethodID string               `json:"paymentMethodID"`
	Amount          decimal.Decimal      `json:"amount"` // positive value
	Direction       TransactionDirection `json:"direction"`
	CashClosureID   string               `json:"cashClosureID"` // empty when not yet tied to a period
	CreatedAt       time.Time            `json:"createdAt"`
}

// PaymentMethod is reference data used as the grouping key for per-method
// subtotals.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"`
	Name            string `json:"name"`
}
