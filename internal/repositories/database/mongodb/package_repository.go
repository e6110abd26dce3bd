// Package mongodb holds the document-store repositories. Packages and
// operators live here; cash-period data stays relational.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workexpress/wx_backend/internal/apperrors"
	"github.com/workexpress/wx_backend/internal/core/domain"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	"github.com/workexpress/wx_backend/internal/models"
	"github.com/workexpress/wx_backend/internal/utils/mapping"
)

const packagesCollection = "packages"

type MongoPackageRepository struct {
	collection *mongo.Collection
}

// newMongoPackageRepository creates a new repository for package documents.
func newMongoPackageRepository(db *mongo.Database) portsrepo.PackageRepositoryFacade {
	return &MongoPackageRepository{
		collection: db.Collection(packagesCollection),
	}
}

// Ensure implementation matches interface
var _ portsrepo.PackageRepositoryFacade = (*MongoPackageRepository)(nil)

// EnsurePackageIndexes creates the unique index on tracking_number. The index
// is what makes reconciliation races safe, so startup must not proceed
// without it.
func EnsurePackageIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(packagesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tracking_number", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create tracking_number index: %w", err)
	}
	return nil
}

// FindPackageByTracking retrieves a package by tracking number.
func (r *MongoPackageRepository) FindPackageByTracking(ctx context.Context, trackingNumber string) (*domain.Package, error) {
	var m models.Package
	err := r.collection.FindOne(ctx, bson.M{"tracking_number": trackingNumber}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find package by tracking %s: %w", trackingNumber, err)
	}

	pkg := mapping.ToDomainPackage(m)
	return &pkg, nil
}

// SavePackage inserts a newly reconciled package. The unique index on
// tracking_number turns a concurrent insert into ErrDuplicate.
func (r *MongoPackageRepository) SavePackage(ctx context.Context, pkg domain.Package) error {
	m := mapping.ToModelPackage(pkg)

	_, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("package %s already exists: %w", pkg.TrackingNumber, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save package %s: %w", pkg.TrackingNumber, err)
	}
	return nil
}
