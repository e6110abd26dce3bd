package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection mirrors domain.TransactionDirection for storage.
type TransactionDirection string

const (
	Credit TransactionDirection = "CREDIT"
	Debit  TransactionDirection = "DEBIT"
)

// Transaction is the relational shape of a ledger row.
type Transaction struct {
	TransactionID   string
	PaymentMethodID string
	Amount          decimal.Decimal
	Direction       TransactionDirection
	CashClosureID   string // empty when the row is not tied to a period yet
	CreatedAt       time.Time
}

// PaymentMethod is the relational shape of a payment method.
type PaymentMethod struct {
	PaymentMethodID string
	Name            string
}
