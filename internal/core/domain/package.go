package domain

import (
	"strings"
	"time"
)

// PackageStatus is the internal shipment status enum.
type PackageStatus string

const (
	PackagePending   PackageStatus = "pending"
	PackageInTransit PackageStatus = "in_transit"
	PackageDelivered PackageStatus = "delivered"
	PackageReturned  PackageStatus = "returned"
	PackageLost      PackageStatus = "lost"
	PackageCanceled  PackageStatus = "canceled"
)

// ParsePackageStatus maps a carrier status code or phrase onto the internal
// enum. Matching is case-insensitive; anything unrecognized is pending.
func ParsePackageStatus(carrierValue string) PackageStatus {
	switch strings.ToLower(strings.TrimSpace(carrierValue)) {
	case "1", "in transit", "en tránsito":
		return PackageInTransit
	case "2", "delivered", "entregado":
		return PackageDelivered
	case "3", "pending", "pendiente":
		return PackagePending
	case "4", "returned", "devuelto":
		return PackageReturned
	case "5", "lost", "perdido":
		return PackageLost
	case "0", "canceled", "cancelado":
		return PackageCanceled
	default:
		return PackagePending
	}
}

// LocalizedStatusName renders a status for end users. Only in-transit and
// delivered get dedicated labels; everything else shows as pending.
func LocalizedStatusName(status PackageStatus) string {
	switch status {
	case PackageInTransit:
		return "EN TRÁNSITO"
	case PackageDelivered:
		return "ENTREGADO"
	default:
		return "PENDIENTE"
	}
}

// Dimensions are the declared cargo dimensions of a package.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

// ShippingStage is one step of a package's journey.
type ShippingStage struct {
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Photo     string    `json:"photo"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Package is a locally known shipment. TrackingNumber is the natural key,
// assigned by the carrier and unique in local storage.
type Package struct {
	PackageID        string          `json:"packageID"`
	TrackingNumber   string          `json:"trackingNumber"`
	Status           PackageStatus   `json:"packageStatus"`
	Weight           float64         `json:"weight"`
	VolumetricWeight float64         `json:"volumetricWeight"`
	Dimensions       Dimensions      `json:"dimensions"`
	ShippingStages   []ShippingStage `json:"shippingStages"`
	AuditFields
}
