package services

import (
	"context"

	"github.com/workexpress/wx_backend/internal/core/domain"
	"github.com/workexpress/wx_backend/internal/dto"
)

// CargoSvcFacade proxies the external carrier's search API.
type CargoSvcFacade interface {
	// GetPackages lists the carrier's recent shipments with the fixed
	// paging parameters (length 500, start 0, mode "all", last 5 days).
	GetPackages(ctx context.Context) ([]domain.CarrierShipmentRow, error)

	// FindByTracking searches escalating recency windows (last_2d, last_3d,
	// last_5d), then day by day across the last 30 calendar days, for the
	// row whose tracking field matches exactly. Returns ErrNotFound naming
	// the tracking number once every window is exhausted.
	FindByTracking(ctx context.Context, trackingNumber string) (*domain.CarrierShipmentRow, error)

	// GetShipmentDetails fetches one shipment's full carrier-side record,
	// or nil when the carrier has nothing for the tracking number.
	GetShipmentDetails(ctx context.Context, trackingNumber string) (*domain.ExternalShipmentRecord, error)
}

// TrackingSvcFacade reconciles tracking numbers against local storage and the
// carrier.
type TrackingSvcFacade interface {
	// GetExternalTracking resolves a tracking number local-first, falling
	// back to the carrier and persisting the first external hit attributed
	// to the resolved operator.
	GetExternalTracking(ctx context.Context, trackingNumber string, identity dto.RequestIdentity) (*dto.ExternalTrackingResult, error)
}
