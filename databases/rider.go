package databases

// go generate: mockery --name RiderDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/rider-docs-api/models"
)

const riderName = "riders"

// RiderDatabase contains the methods to use with the rider database
type RiderDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Rider, error)
}

type riderDatabase struct {
	db DatabaseHelper
}

// NewRiderDatabase initializes a new instance of rider database with the provided db connection
func NewRiderDatabase(db DatabaseHelper) RiderDatabase {
	return &riderDatabase{
		db: db,
	}
}

func (r *riderDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Rider, error) {
	rider := &models.Rider{}
	err := r.db.Collection(riderName).FindOne(ctx, filter, opts...).Decode(&rider)
	if err != nil {
		return nil, err
	}
	return rider, nil
}
