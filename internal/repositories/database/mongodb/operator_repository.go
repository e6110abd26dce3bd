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

const operatorsCollection = "operators"

type MongoOperatorRepository struct {
	collection *mongo.Collection
}

// newMongoOperatorRepository creates a new repository for operator documents.
func newMongoOperatorRepository(db *mongo.Database) portsrepo.OperatorReader {
	return &MongoOperatorRepository{
		collection: db.Collection(operatorsCollection),
	}
}

// Ensure implementation matches interface
var _ portsrepo.OperatorReader = (*MongoOperatorRepository)(nil)

func (r *MongoOperatorRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Operator, error) {
	var m models.Operator
	err := r.collection.FindOne(ctx, filter, opts...).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find operator: %w", err)
	}

	op := mapping.ToDomainOperator(m)
	return &op, nil
}

// FindOperatorByID retrieves an operator by id.
func (r *MongoOperatorRepository) FindOperatorByID(ctx context.Context, operatorID string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"_id": operatorID})
}

// FindOperatorByEmail retrieves an operator by email.
func (r *MongoOperatorRepository) FindOperatorByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindNewestActiveOperator retrieves the most recently created active
// operator, optionally restricted to the given roles.
func (r *MongoOperatorRepository) FindNewestActiveOperator(ctx context.Context, roles ...domain.OperatorRole) (*domain.Operator, error) {
	filter := bson.M{"is_active": true}
	if len(roles) > 0 {
		roleValues := make([]string, 0, len(roles))
		for _, role := range roles {
			roleValues = append(roleValues, string(role))
		}
		filter["role"] = bson.M{"$in": roleValues}
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findOne(ctx, filter, opts)
}
