package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workexpress/wx_backend/internal/core/domain"
)

// PaymentMethodBreakdownResponse is the per-method subtotal of a cash period.
type PaymentMethodBreakdownResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Credit decimal.Decimal `json:"credit"`
	Debit  decimal.Decimal `json:"debit"`
	Total  decimal.Decimal `json:"total"`
}

// CashClosureView is the cash-period shape returned to clients. ClosedAt,
// ClosedBy and Message only appear once the period has been closed.
type CashClosureView struct {
	CashClosureID  string                           `json:"cashClosureID"`
	Status         domain.CashClosureStatus         `json:"status"`
	CreatedAt      time.Time                        `json:"createdAt"`
	ClosedAt       *time.Time                       `json:"closedAt,omitempty"`
	ClosedBy       string                           `json:"closedBy,omitempty"`
	PaymentMethods []PaymentMethodBreakdownResponse `json:"paymentMethods"`
	TotalAmount    decimal.Decimal                  `json:"totalAmount"`
	TotalCredit    decimal.Decimal                  `json:"totalCredit"`
	TotalDebit     decimal.Decimal                  `json:"totalDebit"`
	Message        string                           `json:"message,omitempty"`
}

// CashClosureHistoryRequest filters the closure history listing. Dates are
// inclusive, formatted 2006-01-02. Page is 1-indexed.
type CashClosureHistoryRequest struct {
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Status    string `form:"status" binding:"omitempty,oneof=open closed"`
}

// ListMeta carries paging information for client-side paging UI.
type ListMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// CashClosureHistoryResponse is a page of cash periods plus paging meta.
type CashClosureHistoryResponse struct {
	CashClosures []CashClosureView `json:"cashClosures"`
	Meta         ListMeta          `json:"meta"`
}

// TransactionResponse is one raw ledger row of a cash period drill-down.
type TransactionResponse struct {
	TransactionID   string                      `json:"transactionID"`
	PaymentMethodID string                      `json:"paymentMethodID"`
	Amount          decimal.Decimal             `json:"amount"`
	Direction       domain.TransactionDirection `json:"direction"`
	CreatedAt       time.Time                   `json:"createdAt"`
}

// CashClosureTransactionsResponse is a page of raw transactions plus meta.
type CashClosureTransactionsResponse struct {
	CashClosureID string                `json:"cashClosureID"`
	Transactions  []TransactionResponse `json:"transactions"`
	Meta          ListMeta              `json:"meta"`
}

// AutomaticCashClosureResult reports what the scheduled checker did on one
// tick. Scheduled runs never propagate errors; they report them here so the
// scheduler loop keeps running.
type AutomaticCashClosureResult struct {
	Action string    `json:"action"` // "open", "close" or "none"
	Time   time.Time `json:"time"`
	Error  string    `json:"error,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response shape.
func ToTransactionResponse(txn domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		PaymentMethodID: txn.PaymentMethodID,
		Amount:          txn.Amount,
		Direction:       txn.Direction,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToPaymentMethodBreakdownResponses converts domain breakdowns to their
// response shape.
func ToPaymentMethodBreakdownResponses(breakdowns []domain.PaymentMethodBreakdown) []PaymentMethodBreakdownResponse {
	out := make([]PaymentMethodBreakdownResponse, 0, len(breakdowns))
	for _, b := range breakdowns {
		out = append(out, PaymentMethodBreakdownResponse{
			ID:     b.PaymentMethodID,
			Name:   b.Name,
			Credit: b.Credit,
			Debit:  b.Debit,
			Total:  b.Total,
		})
	}
	return out
}
