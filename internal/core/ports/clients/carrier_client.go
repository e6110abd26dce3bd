package clients

import (
	"context"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// SearchParams are the query knobs of the carrier's list-search endpoint.
// Either Interval (a carrier recency window like "last_5d") or Date (a single
// calendar day, "2006-01-02") is set; the carrier ignores the empty one.
type SearchParams struct {
	Date     string
	Interval string
	Mode     string
	Length   int
	Start    int
}

// CarrierClient is the outbound port to the external cargo carrier.
type CarrierClient interface {
	// SearchShipments queries the carrier's list endpoint and maps each row
	// into the internal flat shape. A response without a data field yields
	// apperrors.ErrNotFound.
	SearchShipments(ctx context.Context, params SearchParams) ([]domain.CarrierShipmentRow, error)

	// ShipmentDetails queries the carrier's detail-search endpoint for a
	// single tracking number and returns the first row of the result set,
	// or nil when the carrier returned nothing.
	ShipmentDetails(ctx context.Context, trackingNumber string) (*domain.ExternalShipmentRecord, error)
}
