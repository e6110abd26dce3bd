package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/workexpress/wx_backend/internal/core/domain"
)

func TestParsePackageStatus(t *testing.T) {
	cases := []struct {
		carrierValue string
		expected     domain.PackageStatus
	}{
		{"1", domain.PackageInTransit},
		{"in transit", domain.PackageInTransit},
		{"en tránsito", domain.PackageInTransit},
		{"EN TRÁNSITO", domain.PackageInTransit},
		{"2", domain.PackageDelivered},
		{"delivered", domain.PackageDelivered},
		{"Entregado", domain.PackageDelivered},
		{"3", domain.PackagePending},
		{"pending", domain.PackagePending},
		{"pendiente", domain.PackagePending},
		{"4", domain.PackageReturned},
		{"returned", domain.PackageReturned},
		{"devuelto", domain.PackageReturned},
		{"5", domain.PackageLost},
		{"lost", domain.PackageLost},
		{"perdido", domain.PackageLost},
		{"0", domain.PackageCanceled},
		{"canceled", domain.PackageCanceled},
		{"cancelado", domain.PackageCanceled},
		{"something else entirely", domain.PackagePending},
		{"", domain.PackagePending},
		{"  Delivered  ", domain.PackageDelivered},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, domain.ParsePackageStatus(tc.carrierValue), "carrier value %q", tc.carrierValue)
	}
}

func TestLocalizedStatusName(t *testing.T) {
	assert.Equal(t, "EN TRÁNSITO", domain.LocalizedStatusName(domain.PackageInTransit))
	assert.Equal(t, "ENTREGADO", domain.LocalizedStatusName(domain.PackageDelivered))
	assert.Equal(t, "PENDIENTE", domain.LocalizedStatusName(domain.PackagePending))
	assert.Equal(t, "PENDIENTE", domain.LocalizedStatusName(domain.PackageReturned))
	assert.Equal(t, "PENDIENTE", domain.LocalizedStatusName(domain.PackageLost))
	assert.Equal(t, "PENDIENTE", domain.LocalizedStatusName(domain.PackageCanceled))
}
