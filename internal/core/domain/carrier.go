package domain

// CarrierShipmentRow is the internal flat shape of one row of the carrier's
// list-search endpoint.
type CarrierShipmentRow struct {
	Hash        string     `json:"hash"`
	ClientID    string     `json:"clientId"`
	ClientName  string     `json:"clientName"`
	PackageName string     `json:"packageName"`
	Receipt     string     `json:"receipt"`
	Tracking    string     `json:"tracking"`
	Mode        string     `json:"mode"`
	Shipper     string     `json:"shipper"`
	TotalItems  int        `json:"totalItems"`
	TotalWeight float64    `json:"totalWeight"`
	VolWeight   float64    `json:"volWeight"`
	Dimensions  Dimensions `json:"dimensions"`
	Status      string     `json:"status"`
	StatusName  string     `json:"statusName"`
	DateCreated string     `json:"dateCreated"`
	DateUpdated string     `json:"dateUpdated"`
}

// ExternalShipmentRecord is the full carrier-side shape of a single shipment
// as returned by the detail-search endpoint. It is never persisted verbatim;
// its fields are mapped into a Package and the record is discarded.
type ExternalShipmentRecord struct {
	Tracking    string `json:"tracking"`
	Status      string `json:"status"`
	StatusName  string `json:"status_name"`
	TotalWeight string `json:"total_weight"`
	VolWeight   string `json:"vol_weight"`
	CargoLength string `json:"cargo_length"`
	CargoWidth  string `json:"cargo_width"`
	CargoHeight string `json:"cargo_height"`
	Unit        string `json:"unit"`
	Mode        string `json:"mode"`
	Shipper     string `json:"shipper"`
	Receipt     string `json:"receipt"`
	Consignee   string `json:"consignee"`
	ConsigneeID string `json:"consignee_id"`
	DateCreated string `json:"date_created"`
	DateUpdated string `json:"date_updated"`
}
