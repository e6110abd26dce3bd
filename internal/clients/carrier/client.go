package carrier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsclients "github.com/workexpress/wx_backend/internal/core/ports/clients"
	"github.com/workexpress/wx_backend/internal/utils"
)

// The detail-search endpoint only answers requests that look like they come
// from the carrier's own web console.
const (
	detailUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	requestTimeout  = 30 * time.Second
)

// Client talks to the external cargo carrier's search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	detailURL  string
	authToken  string
}

// NewClient creates a carrier client from configuration.
func NewClient(baseURL, detailURL, authToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		detailURL:  detailURL,
		authToken:  authToken,
	}
}

// Ensure Client implements the outbound port.
var _ portsclients.CarrierClient = (*Client)(nil)

// searchRow is the carrier-side row shape of the list endpoint. Numeric
// fields arrive as strings and are parsed leniently.
type searchRow struct {
	Hash        string `json:"hash"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	PackageName string `json:"package_name"`
	Receipt     string `json:"receipt"`
	Tracking    string `json:"tracking"`
	Mode        string `json:"mode"`
	Shipper     string `json:"shipper"`
	TotalItems  string `json:"total_items"`
	TotalWeight string `json:"total_weight"`
	VolWeight   string `json:"vol_weight"`
	CargoLength string `json:"cargo_length"`
	CargoWidth  string `json:"cargo_width"`
	CargoHeight string `json:"cargo_height"`
	Unit        string `json:"unit"`
	Status      string `json:"status"`
	StatusName  string `json:"status_name"`
	DateCreated string `json:"date_created"`
	DateUpdated string `json:"date_updated"`
}

type searchResponse struct {
	Data []searchRow `json:"data"`
}

type detailResponse struct {
	Draw         int                             `json:"draw"`
	RecordsTotal int                             `json:"recordsTotal"`
	Data         []domain.ExternalShipmentRecord `json:"data"`
}

// SearchShipments queries the carrier's list endpoint and maps each row into
// the internal flat shape.
func (c *Client) SearchShipments(ctx context.Context, params portsclients.SearchParams) ([]domain.CarrierShipmentRow, error) {
	q := url.Values{}
	q.Set("mode", params.Mode)
	q.Set("length", strconv.Itoa(params.Length))
	q.Set("start", strconv.Itoa(params.Start))
	if params.Interval != "" {
		q.Set("interval", params.Interval)
	}
	if params.Date != "" {
		q.Set("date", params.Date)
	}

	endpoint := c.baseURL + "/api/shipments/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build carrier search request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier search request failed: %w: %s", apperrors.ErrExternalService, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Carry the carrier's status code so handlers can forward it.
		return nil, fmt.Errorf("carrier search returned status %d: %w", resp.StatusCode, apperrors.ErrExternalService)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode carrier search response: %w: %s", apperrors.ErrExternalService, err.Error())
	}
	if body.Data == nil {
		return nil, fmt.Errorf("carrier search response missing data: %w", apperrors.ErrNotFound)
	}

	rows := make([]domain.CarrierShipmentRow, 0, len(body.Data))
	for _, r := range body.Data {
		rows = append(rows, toShipmentRow(r))
	}
	return rows, nil
}

// ShipmentDetails queries the DataTables-style detail endpoint and returns
// the first row of the result set, or nil when the result set is empty.
func (c *Client) ShipmentDetails(ctx context.Context, trackingNumber string) (*domain.ExternalShipmentRecord, error) {
	q := url.Values{}
	q.Set("draw", "1")
	q.Set("start", "0")
	q.Set("length", "10")
	q.Set("search[value]", trackingNumber)

	endpoint := c.detailURL + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build carrier detail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.authToken)
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("User-Agent", detailUserAgent)
	req.Header.Set("Referer", c.baseURL+"/shipments")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("carrier detail request failed: %w: %s", apperrors.ErrExternalService, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrier detail returned status %d: %w", resp.StatusCode, apperrors.ErrExternalService)
	}

	var body detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode carrier detail response: %w: %s", apperrors.ErrExternalService, err.Error())
	}
	if len(body.Data) == 0 {
		return nil, nil
	}

	// The carrier search is fuzzy; the first row is taken as "the" shipment
	// and the caller applies the exact-match rule.
	record := body.Data[0]
	return &record, nil
}

func toShipmentRow(r searchRow) domain.CarrierShipmentRow {
	return domain.CarrierShipmentRow{
		Hash:        r.Hash,
		ClientID:    r.ClientID,
		ClientName:  r.ClientName,
		PackageName: r.PackageName,
		Receipt:     r.Receipt,
		Tracking:    r.Tracking,
		Mode:        r.Mode,
		Shipper:     r.Shipper,
		TotalItems:  int(utils.ParseFloatOrZero(r.TotalItems)),
		TotalWeight: utils.ParseFloatOrZero(r.TotalWeight),
		VolWeight:   utils.ParseFloatOrZero(r.VolWeight),
		Dimensions: domain.Dimensions{
			Length: utils.ParseFloatOrZero(r.CargoLength),
			Width:  utils.ParseFloatOrZero(r.CargoWidth),
			Height: utils.ParseFloatOrZero(r.CargoHeight),
			Unit:   r.Unit,
		},
		Status:      r.Status,
		StatusName:  r.StatusName,
		DateCreated: r.DateCreated,
		DateUpdated: r.DateUpdated,
	}
}
