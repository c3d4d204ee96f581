package databases

// go generate: mockery --name VerifierDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/rider-docs-api/models"
)

const verifierName = "verifiers"

// VerifierDatabase contains the methods to use with the verifier database
type VerifierDatabase interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Verifier, error)
}

type verifierDatabase struct {
	db DatabaseHelper
}

// NewVerifierDatabase initializes a new instance of verifier database with the provided db connection
func NewVerifierDatabase(db DatabaseHelper) VerifierDatabase {
	return &verifierDatabase{
		db: db,
	}
}

func (v *verifierDatabase) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) (*models.Verifier, error) {
	verifier := &models.Verifier{}
	err := v.db.Collection(verifierName).FindOne(ctx, filter, opts...).Decode(&verifier)
	if err != nil {
		return nil, err
	}
	return verifier, nil
}
