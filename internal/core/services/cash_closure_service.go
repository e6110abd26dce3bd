package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/dto"
)

const (
	defaultHistoryLimit      = 10
	defaultTransactionsLimit = 20
	historyDateLayout        = "2006-01-02"
)

// Schedule fixes the automatic open/close thresholds in a local timezone.
type Schedule struct {
	Location    *time.Location
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

// cashClosureService owns the lifecycle of cash periods.
type cashClosureService struct {
	BaseService
	closureRepo portsrepo.CashClosureRepositoryFacade
	txnRepo     portsrepo.TransactionReader
	methodRepo  portsrepo.PaymentMethodReader
	notifier    portssvc.ClosureNotifier
	schedule    Schedule
	now         func() time.Time
}

// CashClosureOption is a functional option for configuring the service.
type CashClosureOption func(*cashClosureService)

// WithClosureNotifier adds a summary notifier for automatic closes.
func WithClosureNotifier(n portssvc.ClosureNotifier) CashClosureOption {
	return func(s *cashClosureService) {
		s.notifier = n
	}
}

// WithSchedule sets the automatic open/close thresholds.
func WithSchedule(sch Schedule) CashClosureOption {
	return func(s *cashClosureService) {
		s.schedule = sch
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) CashClosureOption {
	return func(s *cashClosureService) {
		s.now = now
	}
}

// NewCashClosureService creates the cash-closure service with the provided
// options.
func NewCashClosureService(
	closureRepo portsrepo.CashClosureRepositoryFacade,
	txnRepo portsrepo.TransactionReader,
	methodRepo portsrepo.PaymentMethodReader,
	options ...CashClosureOption,
) portssvc.CashClosureSvcFacade {
	svc := &cashClosureService{
		closureRepo: closureRepo,
		txnRepo:     txnRepo,
		methodRepo:  methodRepo,
		schedule: Schedule{
			Location:  time.UTC,
			OpenHour:  9,
			CloseHour: 18,
		},
		now: time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cashClosureService implements the facade.
var _ portssvc.CashClosureSvcFacade = (*cashClosureService)(nil)

func (s *cashClosureService) GetCurrentCashClosure(ctx context.Context) (*dto.CashClosureView, error) {
	closure, err := s.closureRepo.FindOpenCashClosure(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up open cash closure")
			return nil, err
		}
		return s.openNewCashClosure(ctx)
	}

	return s.buildView(ctx, *closure)
}

// openNewCashClosure lazily creates a cash period. A concurrent create loses
// against the partial unique index and falls back to the winner's record.
func (s *cashClosureService) openNewCashClosure(ctx context.Context) (*dto.CashClosureView, error) {
	closure := domain.CashClosure{
		CashClosureID: uuid.NewString(),
		Status:        domain.CashClosureOpen,
		CreatedAt:     s.now(),
		TotalAmount:   decimal.Zero,
		TotalCredit:   decimal.Zero,
		TotalDebit:    decimal.Zero,
	}

	if err := s.closureRepo.SaveCashClosure(ctx, closure); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Lost the open race, reusing existing open cash closure")
			existing, findErr := s.closureRepo.FindOpenCashClosure(ctx)
			if findErr != nil {
				return nil, findErr
			}
			return s.buildView(ctx, *existing)
		}
		s.LogError(ctx, err, "Failed to create cash closure",
			slog.String("cash_closure_id", closure.CashClosureID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash closure opened",
		slog.String("cash_closure_id", closure.CashClosureID))

	view := s.assembleView(closure, nil)
	return view, nil
}

func (s *cashClosureService) CloseCashClosure(ctx context.Context, operatorID string) (*dto.CashClosureView, error) {
	if operatorID == "" {
		return nil, fmt.Errorf("operator id is required to close a cash closure: %w", apperrors.ErrValidation)
	}

	closure, err := s.closureRepo.FindOpenCashClosure(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNoOpenCashClosure
		}
		s.LogError(ctx, err, "Failed to look up open cash closure for close")
		return nil, err
	}

	breakdowns, totalAmount, totalCredit, totalDebit, err := s.aggregateClosure(ctx, closure.CashClosureID)
	if err != nil {
		return nil, err
	}

	closedAt := s.now()
	closure.Status = domain.CashClosureClosed
	closure.ClosedAt = &closedAt
	closure.ClosedBy = operatorID
	closure.TotalAmount = totalAmount
	closure.TotalCredit = totalCredit
	closure.TotalDebit = totalDebit

	if err := s.closureRepo.UpdateCashClosure(ctx, *closure); err != nil {
		s.LogError(ctx, err, "Failed to close cash closure",
			slog.String("cash_closure_id", closure.CashClosureID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash closure closed",
		slog.String("cash_closure_id", closure.CashClosureID),
		slog.String("closed_by", operatorID),
		slog.String("total_amount", totalAmount.String()))

	return s.assembleView(*closure, breakdowns), nil
}

func (s *cashClosureService) AutomaticCloseCashClosure(ctx context.Context) (*dto.CashClosureView, error) {
	view, err := s.CloseCashClosure(ctx, domain.SystemOperatorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoOpenCashClosure) {
			s.LogInfo(ctx, "Automatic close found no open cash closure, nothing to do")
			return nil, nil
		}
		return nil, err
	}

	if s.notifier != nil {
		if mailErr := s.notifier.SendClosureSummary(ctx, view); mailErr != nil {
			// Delivery failure never undoes or fails the close.
			s.LogError(ctx, mailErr, "Failed to send closure summary",
				slog.String("cash_closure_id", view.CashClosureID))
		}
	}

	return view, nil
}

func (s *cashClosureService) AutomaticOpenCashClosure(ctx context.Context) (*dto.CashClosureView, error) {
	_, err := s.closureRepo.FindOpenCashClosure(ctx)
	if err == nil {
		s.LogInfo(ctx, "Automatic open found a cash closure already open, nothing to do")
		return nil, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up open cash closure for automatic open")
		return nil, err
	}

	view, err := s.openNewCashClosure(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Concurrent open beat us; the invariant still holds.
			return nil, nil
		}
		return nil, err
	}
	return view, nil
}

func (s *cashClosureService) CheckAndProcessAutomaticCashClosure(ctx context.Context) dto.AutomaticCashClosureResult {
	now := s.now().In(s.schedule.Location)
	result := dto.AutomaticCashClosureResult{Action: "none", Time: now}

	minutes := now.Hour()*60 + now.Minute()
	openAt := s.schedule.OpenHour*60 + s.schedule.OpenMinute
	closeAt := s.schedule.CloseHour*60 + s.schedule.CloseMinute

	switch {
	case minutes >= closeAt:
		view, err := s.AutomaticCloseCashClosure(ctx)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		if view != nil {
			result.Action = "close"
		}
	case minutes >= openAt:
		latest, err := s.closureRepo.FindLatestCashClosure(ctx)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			result.Error = err.Error()
			return result
		}
		// A closure created today means this window already fired (or an
		// operator opened manually); a manual close before 18:00 must not
		// trigger a reopen.
		if latest != nil && sameLocalDay(latest.CreatedAt, now, s.schedule.Location) {
			return result
		}
		view, err := s.AutomaticOpenCashClosure(ctx)
		if err != nil {
			result.Error = err.Error()
			return result
		}
		if view != nil {
			result.Action = "open"
		}
	}

	return result
}

func (s *cashClosureService) GetCashClosureHistory(ctx context.Context, req dto.CashClosureHistoryRequest) (*dto.CashClosureHistoryResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultHistoryLimit
	}

	filter := portsrepo.ListCashClosuresFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	if req.StartDate != "" {
		start, err := time.ParseInLocation(historyDateLayout, req.StartDate, s.schedule.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", req.StartDate, apperrors.ErrValidation)
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := time.ParseInLocation(historyDateLayout, req.EndDate, s.schedule.Location)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", req.EndDate, apperrors.ErrValidation)
		}
		// Inclusive end date: cover the whole day.
		end = end.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}
	if req.Status != "" {
		status := domain.CashClosureStatus(req.Status)
		filter.Status = &status
	}

	closures, total, err := s.closureRepo.ListCashClosures(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash closures")
		return nil, err
	}

	views := make([]dto.CashClosureView, 0, len(closures))
	for _, closure := range closures {
		view, err := s.buildView(ctx, closure)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return &dto.CashClosureHistoryResponse{
		CashClosures: views,
		Meta:         dto.ListMeta{Total: total, Page: page, Limit: limit},
	}, nil
}

func (s *cashClosureService) GetTransactionsForCashClosure(ctx context.Context, cashClosureID string, page int, limit int) (*dto.CashClosureTransactionsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultTransactionsLimit
	}

	if _, err := s.closureRepo.FindCashClosureByID(ctx, cashClosureID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up cash closure",
				slog.String("cash_closure_id", cashClosureID))
		}
		return nil, err
	}

	txns, total, err := s.txnRepo.ListTransactionsByCashClosureID(ctx, cashClosureID, limit, (page-1)*limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for cash closure",
			slog.String("cash_closure_id", cashClosureID))
		return nil, err
	}

	responses := make([]dto.TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		responses = append(responses, dto.ToTransactionResponse(txn))
	}

	return &dto.CashClosureTransactionsResponse{
		CashClosureID: cashClosureID,
		Transactions:  responses,
		Meta:          dto.ListMeta{Total: total, Page: page, Limit: limit},
	}, nil
}

// aggregateClosure groups a closure's transactions by payment method and sums
// credits and debits separately. The method total nets debits against
// credits (total = credit - debit); refunds therefore reduce the method's
// contribution, and the grand total is the sum of method totals.
func (s *cashClosureService) aggregateClosure(ctx context.Context, cashClosureID string) ([]domain.PaymentMethodBreakdown, decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	txns, err := s.txnRepo.FindTransactionsByCashClosureID(ctx, cashClosureID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transactions for aggregation",
			slog.String("cash_closure_id", cashClosureID))
		return nil, decimal.Zero, decimal.Zero, decimal.Zero, err
	}

	byMethod := make(map[string]*domain.PaymentMethodBreakdown)
	methodIDs := make([]string, 0)
	for _, txn := range txns {
		b, ok := byMethod[txn.PaymentMethodID]
		if !ok {
			b = &domain.PaymentMethodBreakdown{
				PaymentMethodID: txn.PaymentMethodID,
				Credit:          decimal.Zero,
				Debit:           decimal.Zero,
			}
			byMethod[txn.PaymentMethodID] = b
			methodIDs = append(methodIDs, txn.PaymentMethodID)
		}
		switch txn.Direction {
		case domain.Credit:
			b.Credit = b.Credit.Add(txn.Amount)
		case domain.Debit:
			b.Debit = b.Debit.Add(txn.Amount)
		}
	}

	methods, err := s.methodRepo.FindPaymentMethodsByIDs(ctx, methodIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch payment methods for aggregation")
		return nil, decimal.Zero, decimal.Zero, decimal.Zero, err
	}

	totalCredit := decimal.Zero
	totalDebit := decimal.Zero
	totalAmount := decimal.Zero

	breakdowns := make([]domain.PaymentMethodBreakdown, 0, len(byMethod))
	for _, b := range byMethod {
		if method, ok := methods[b.PaymentMethodID]; ok {
			b.Name = method.Name
		} else {
			// Unknown reference data; keep the row visible under its id.
			b.Name = b.PaymentMethodID
		}
		b.Total = b.Credit.Sub(b.Debit)

		totalCredit = totalCredit.Add(b.Credit)
		totalDebit = totalDebit.Add(b.Debit)
		totalAmount = totalAmount.Add(b.Total)

		breakdowns = append(breakdowns, *b)
	}

	sort.Slice(breakdowns, func(i, j int) bool {
		return breakdowns[i].Name < breakdowns[j].Name
	})

	return breakdowns, totalAmount, totalCredit, totalDebit, nil
}

// buildView computes live aggregates for a closure and assembles its view.
func (s *cashClosureService) buildView(ctx context.Context, closure domain.CashClosure) (*dto.CashClosureView, error) {
	breakdowns, totalAmount, totalCredit, totalDebit, err := s.aggregateClosure(ctx, closure.CashClosureID)
	if err != nil {
		return nil, err
	}
	closure.TotalAmount = totalAmount
	closure.TotalCredit = totalCredit
	closure.TotalDebit = totalDebit
	return s.assembleView(closure, breakdowns), nil
}

func (s *cashClosureService) assembleView(closure domain.CashClosure, breakdowns []domain.PaymentMethodBreakdown) *dto.CashClosureView {
	view := &dto.CashClosureView{
		CashClosureID:  closure.CashClosureID,
		Status:         closure.Status,
		CreatedAt:      closure.CreatedAt,
		PaymentMethods: dto.ToPaymentMethodBreakdownResponses(breakdowns),
		TotalAmount:    closure.TotalAmount,
		TotalCredit:    closure.TotalCredit,
		TotalDebit:     closure.TotalDebit,
	}

	if closure.Status == domain.CashClosureClosed && closure.ClosedAt != nil {
		view.ClosedAt = closure.ClosedAt
		view.ClosedBy = closure.ClosedBy
		view.Message = fmt.Sprintf("Cash closure closed at %s with total %s",
			closure.ClosedAt.Format(time.RFC3339), closure.TotalAmount.String())
	} else {
		view.Message = "Cash closure is still open"
	}

	return view
}

func sameLocalDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}
