package dto

import (
	"time"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// RequestIdentity is the acting identity extracted from an inbound request.
// Every field may be empty; operator resolution falls back step by step.
// RawToken carries an undecoded bearer/cookie token for the manual decode
// path when the auth middleware did not populate the other fields.
type RequestIdentity struct {
	OperatorID string
	Email      string
	Role       string
	RawToken   string
}

// PackageView is the normalized local view of a shipment.
type PackageView struct {
	TrackingNumber   string                 `json:"tracking"`
	Status           domain.PackageStatus   `json:"status"`
	StatusName       string                 `json:"status_name"`
	Weight           float64                `json:"weight"`
	VolumetricWeight float64                `json:"volumetricWeight"`
	Dimensions       domain.Dimensions      `json:"dimensions"`
	ShippingStages   []domain.ShippingStage `json:"shippingStages"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// Source values of an ExternalTrackingResult.
const (
	TrackingSourceLocal   = "local"
	TrackingSourceCarrier = "carrier"
)

// ExternalTrackingResult is the outcome of a tracking reconciliation: either
// the normalized local record (Package set) or the raw carrier record
// (External set).
type ExternalTrackingResult struct {
	Source   string
	Package  *PackageView
	External *domain.ExternalShipmentRecord
}

// ToPackageView converts a domain.Package to its normalized local view,
// localizing the status name.
func ToPackageView(pkg *domain.Package) *PackageView {
	return &PackageView{
		TrackingNumber:   pkg.TrackingNumber,
		Status:           pkg.Status,
		StatusName:       domain.LocalizedStatusName(pkg.Status),
		Weight:           pkg.Weight,
		VolumetricWeight: pkg.VolumetricWeight,
		Dimensions:       pkg.Dimensions,
		ShippingStages:   pkg.ShippingStages,
		CreatedAt:        pkg.CreatedAt,
	}
}
