package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsclients "github.com/workexpress/wx_backend/internal/core/ports/clients"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
)

const (
	listSearchLength   = 500
	listSearchMode     = "all"
	listSearchInterval = "last_5d"
	dayScanDays        = 30
	dayScanDateLayout  = "2006-01-02"
	defaultScanDelay   = time.Second
)

// searchIntervals are tried in order before falling back to the day scan.
var searchIntervals = []string{"last_2d", "last_3d", "last_5d"}

// cargoService proxies the external carrier's search API.
type cargoService struct {
	BaseService
	carrier   portsclients.CarrierClient
	scanDelay time.Duration
	now       func() time.Time
}

// CargoOption is a functional option for configuring the cargo service.
type CargoOption func(*cargoService)

// WithScanDelay overrides the throttle between day-scan attempts.
func WithScanDelay(d time.Duration) CargoOption {
	return func(s *cargoService) {
		s.scanDelay = d
	}
}

// WithCargoClock overrides the time source.
func WithCargoClock(now func() time.Time) CargoOption {
	return func(s *cargoService) {
		s.now = now
	}
}

// NewCargoService creates the cargo service with the provided options.
func NewCargoService(carrier portsclients.CarrierClient, options ...CargoOption) portssvc.CargoSvcFacade {
	svc := &cargoService{
		carrier:   carrier,
		scanDelay: defaultScanDelay,
		now:       time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure cargoService implements the facade.
var _ portssvc.CargoSvcFacade = (*cargoService)(nil)

func (s *cargoService) GetPackages(ctx context.Context) ([]domain.CarrierShipmentRow, error) {
	rows, err := s.carrier.SearchShipments(ctx, portsclients.SearchParams{
		Mode:     listSearchMode,
		Interval: listSearchInterval,
		Length:   listSearchLength,
		Start:    0,
	})
	if err != nil {
		s.LogError(ctx, err, "Carrier list search failed")
		return nil, err
	}
	return rows, nil
}

func (s *cargoService) FindByTracking(ctx context.Context, trackingNumber string) (*domain.CarrierShipmentRow, error) {
	if trackingNumber == "" {
		return nil, fmt.Errorf("tracking number is required: %w", apperrors.ErrValidation)
	}

	// The carrier's search is paged by narrow recency windows; try the
	// cheap windows first and short-circuit on the first exact match.
	for _, interval := range searchIntervals {
		row, err := s.searchWindow(ctx, portsclients.SearchParams{
			Mode:     listSearchMode,
			Interval: interval,
			Length:   listSearchLength,
			Start:    0,
		}, trackingNumber)
		if err != nil {
			// An errored window counts as a miss; keep scanning.
			s.LogWarn(ctx, "Carrier interval search failed, continuing",
				slog.String("interval", interval),
				slog.String("tracking", trackingNumber),
				slog.String("error", err.Error()))
			continue
		}
		if row != nil {
			return row, nil
		}
	}

	// Day-by-day scan of the last 30 calendar days, most recent first,
	// throttled so we do not hammer the carrier.
	day := s.now()
	for i := 0; i < dayScanDays; i++ {
		time.Sleep(s.scanDelay)

		date := day.AddDate(0, 0, -i).Format(dayScanDateLayout)
		row, err := s.searchWindow(ctx, portsclients.SearchParams{
			Mode:   listSearchMode,
			Date:   date,
			Length: listSearchLength,
			Start:  0,
		}, trackingNumber)
		if err != nil {
			s.LogWarn(ctx, "Carrier day search failed, continuing",
				slog.String("date", date),
				slog.String("tracking", trackingNumber),
				slog.String("error", err.Error()))
			continue
		}
		if row != nil {
			return row, nil
		}
	}

	return nil, fmt.Errorf("no shipment found for tracking %s: %w", trackingNumber, apperrors.ErrNotFound)
}

func (s *cargoService) GetShipmentDetails(ctx context.Context, trackingNumber string) (*domain.ExternalShipmentRecord, error) {
	record, err := s.carrier.ShipmentDetails(ctx, trackingNumber)
	if err != nil {
		s.LogError(ctx, err, "Carrier detail search failed",
			slog.String("tracking", trackingNumber))
		return nil, err
	}
	return record, nil
}

// searchWindow runs one carrier search and applies the mandatory exact-match
// rule: the carrier search is fuzzy, so only a row whose tracking field
// equals the requested number counts. A nil row means no match.
func (s *cargoService) searchWindow(ctx context.Context, params portsclients.SearchParams, trackingNumber string) (*domain.CarrierShipmentRow, error) {
	rows, err := s.carrier.SearchShipments(ctx, params)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].Tracking == trackingNumber {
			return &rows[i], nil
		}
	}
	return nil, nil
}
