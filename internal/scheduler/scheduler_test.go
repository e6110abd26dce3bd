package scheduler_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workexpress/wx_backend/internal/dto"
	"github.com/workexpress/wx_backend/internal/scheduler"
)

// stubClosureService satisfies the facade without any backing store.
type stubClosureService struct {
	checkResult dto.AutomaticCashClosureResult
}

func (s *stubClosureService) GetCurrentCashClosure(context.Context) (*dto.CashClosureView, error) {
	return nil, nil
}
func (s *stubClosureService) CloseCashClosure(context.Context, string) (*dto.CashClosureView, error) {
	return nil, nil
}
func (s *stubClosureService) AutomaticCloseCashClosure(context.Context) (*dto.CashClosureView, error) {
	return nil, nil
}
func (s *stubClosureService) AutomaticOpenCashClosure(context.Context) (*dto.CashClosureView, error) {
	return nil, nil
}
func (s *stubClosureService) CheckAndProcessAutomaticCashClosure(context.Context) dto.AutomaticCashClosureResult {
	return s.checkResult
}
func (s *stubClosureService) GetCashClosureHistory(context.Context, dto.CashClosureHistoryRequest) (*dto.CashClosureHistoryResponse, error) {
	return nil, nil
}
func (s *stubClosureService) GetTransactionsForCashClosure(context.Context, string, int, int) (*dto.CashClosureTransactionsResponse, error) {
	return nil, nil
}

func TestNew_RegistersAllJobs(t *testing.T) {
	location, err := time.LoadLocation("America/Panama")
	require.NoError(t, err)

	s, err := scheduler.New(&stubClosureService{}, location, 9, 0, 18, 0, slog.Default())
	require.NoError(t, err)

	s.StartAsync()
	defer s.Stop()

	runs := s.NextRuns()
	assert.Contains(t, runs, scheduler.TagOpen)
	assert.Contains(t, runs, scheduler.TagClose)
	assert.Contains(t, runs, scheduler.TagChecker)

	// The open job must next fire at 09:00 Panama time.
	nextOpen := runs[scheduler.TagOpen].In(location)
	assert.Equal(t, 9, nextOpen.Hour())
	assert.Equal(t, 0, nextOpen.Minute())

	nextClose := runs[scheduler.TagClose].In(location)
	assert.Equal(t, 18, nextClose.Hour())

	// The checker runs on five-minute boundaries.
	nextCheck := runs[scheduler.TagChecker].In(location)
	assert.Zero(t, nextCheck.Minute()%5)
}
