package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashClosureStatus mirrors domain.CashClosureStatus for storage.
type CashClosureStatus string

const (
	CashClosureOpen   CashClosureStatus = "open"
	CashClosureClosed CashClosureStatus = "closed"
)

// CashClosure is the relational shape of a cash period.
type CashClosure struct {
	CashClosureID string
	Status        CashClosureStatus
	CreatedAt     time.Time
	ClosedAt      *time.Time
	ClosedBy      string
	TotalAmount   decimal.Decimal
	TotalCredit   decimal.Decimal
	TotalDebit    decimal.Decimal
}
