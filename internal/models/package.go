package models

import "time"

// Dimensions is the document shape of declared cargo dimensions.
type Dimensions struct {
	Length float64 `bson:"length"`
	Width  float64 `bson:"width"`
	Height float64 `bson:"height"`
	Unit   string  `bson:"unit"`
}

// ShippingStage is the document shape of one journey step.
type ShippingStage struct {
	Stage     string    `bson:"stage"`
	Status    string    `bson:"status"`
	Location  string    `bson:"location"`
	Photo     string    `bson:"photo"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Package is the document shape of a locally known shipment. Packages live in
// the document store; the tracking_number field carries a unique index.
type Package struct {
	PackageID        string          `bson:"_id"`
	TrackingNumber   string          `bson:"tracking_number"`
	Status           string          `bson:"package_status"`
	Weight           float64         `bson:"weight"`
	VolumetricWeight float64         `bson:"volumetric_weight"`
	Dimensions       Dimensions      `bson:"dimensions"`
	ShippingStages   []ShippingStage `bson:"shipping_stages"`
	CreatedAt        time.Time       `bson:"created_at"`
	CreatedBy        string          `bson:"created_by"`
	LastUpdatedAt    time.Time       `bson:"last_updated_at"`
	LastUpdatedBy    string          `bson:"last_updated_by"`
}
