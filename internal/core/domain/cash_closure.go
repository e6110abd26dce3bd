package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashClosureStatus is the lifecycle state of a cash period.
type CashClosureStatus string

const (
	CashClosureOpen   CashClosureStatus = "open"
	CashClosureClosed CashClosureStatus = "closed"
)

// CashClosure represents one bounded cash period of the register.
// At most one closure is open at any time; the partial unique index on
// status='open' is the actual enforcement, the service check is an
// optimization only.
type CashClosure struct {
	CashClosureID string            `json:"cashClosureID"`
	Status        CashClosureStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	ClosedAt      *time.Time        `json:"closedAt"` // nil until closed
	ClosedBy      string            `json:"closedBy"` // OperatorID, empty until closed
	TotalAmount   decimal.Decimal   `json:"totalAmount"`
	TotalCredit   decimal.Decimal   `json:"totalCredit"`
	TotalDebit    decimal.Decimal   `json:"totalDebit"`
}

// PaymentMethodBreakdown is the per-method subtotal of a cash period.
// Total follows the credit-minus-debit convention: refunds and payouts
// (debits) net against the method's credits.
type PaymentMethodBreakdown struct {
	PaymentMethodID string          `json:"paymentMethodID"`
	Name            string          `json:"name"`
	Credit          decimal.Decimal `json:"credit"`
	Debit           decimal.Decimal `json:"debit"`
	Total           decimal.Decimal `json:"total"`
}

// SystemOperatorID attributes scheduler-driven closures when no interactive
// operator is involved.
const SystemOperatorID = "system"
