package repositories

import (
	"context"

	"github.com/workexpress/wx_backend/internal/core/domain"
)

// PackageReader defines read operations for locally known shipments.
type PackageReader interface {
	// FindPackageByTracking retrieves a package by its carrier-assigned
	// tracking number. Returns apperrors.ErrNotFound when unseen locally.
	FindPackageByTracking(ctx context.Context, trackingNumber string) (*domain.Package, error)
}

// PackageWriter defines write operations for locally known shipments.
type PackageWriter interface {
	// SavePackage persists a newly reconciled package. A concurrent insert
	// for the same tracking number surfaces as apperrors.ErrDuplicate via
	// the unique index on tracking_number.
	SavePackage(ctx context.Context, pkg domain.Package) error
}

// PackageRepositoryFacade combines all package repository interfaces.
type PackageRepositoryFacade interface {
	PackageReader
	PackageWriter
}
