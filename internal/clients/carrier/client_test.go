package carrier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/clients/carrier"
	portsclients "github.com/workexpress/wx_backend/internal/core/ports/clients"
)

func TestSearchShipments_MapsRowsAndParams(t *testing.T) {
	var gotQuery string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/shipments/search", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{
					"tracking": "WX123",
					"client_name": "Jane Doe",
					"total_items": "2",
					"total_weight": "12.5",
					"vol_weight": "n/a",
					"cargo_length": "30",
					"cargo_width": "20",
					"cargo_height": "15",
					"unit": "in",
					"status": "1",
					"status_name": "In transit"
				}
			]
		}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, server.URL+"/detail", "tok-123")

	rows, err := client.SearchShipments(context.Background(), portsclients.SearchParams{
		Mode:     "all",
		Interval: "last_5d",
		Length:   500,
		Start:    0,
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "WX123", rows[0].Tracking)
	assert.Equal(t, "Jane Doe", rows[0].ClientName)
	assert.Equal(t, 2, rows[0].TotalItems)
	assert.Equal(t, 12.5, rows[0].TotalWeight)
	// Unparseable numerics degrade to zero instead of failing the row.
	assert.Equal(t, 0.0, rows[0].VolWeight)
	assert.Equal(t, 30.0, rows[0].Dimensions.Length)

	assert.Contains(t, gotQuery, "interval=last_5d")
	assert.Contains(t, gotQuery, "length=500")
	assert.Contains(t, gotQuery, "mode=all")
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestSearchShipments_DateInsteadOfInterval(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-03-08", r.URL.Query().Get("date"))
		assert.Empty(t, r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, server.URL+"/detail", "tok")

	rows, err := client.SearchShipments(context.Background(), portsclients.SearchParams{
		Mode:   "all",
		Date:   "2025-03-08",
		Length: 500,
	})

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchShipments_MissingDataIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message": "no results"}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, server.URL+"/detail", "tok")

	rows, err := client.SearchShipments(context.Background(), portsclients.SearchParams{Mode: "all", Length: 500})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, rows)
}

func TestSearchShipments_Non200CarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, server.URL+"/detail", "tok")

	_, err := client.SearchShipments(context.Background(), portsclients.SearchParams{Mode: "all", Length: 500})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrExternalService)
	assert.Contains(t, err.Error(), "502")
}

func TestShipmentDetails_ReturnsFirstRow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "WX456", r.URL.Query().Get("search[value]"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{
			"draw": 1,
			"recordsTotal": 2,
			"data": [
				{"tracking": "WX456", "status": "2", "status_name": "Delivered", "total_weight": "8.1"},
				{"tracking": "WX456-B", "status": "1"}
			]
		}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, server.URL+"/detail", "tok")

	record, err := client.ShipmentDetails(context.Background(), "WX456")

	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "WX456", record.Tracking)
	assert.Equal(t, "2", record.Status)
	assert.Equal(t, "8.1", record.TotalWeight)
}

func TestShipmentDetails_EmptyResultIsNilNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"draw": 1, "recordsTotal": 0, "data": []}`))
	}))
	defer server.Close()

	client := carrier.NewClient(server.URL, server.URL+"/detail", "tok")

	record, err := client.ShipmentDetails(context.Background(), "MISSING")

	require.NoError(t, err)
	assert.Nil(t, record)
}
