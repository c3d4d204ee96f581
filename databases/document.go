package databases

// go generate: mockery --name DocumentDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/rider-docs-api/models"
)

const documentName = "documents"

// DocumentDatabase contains the methods to use with the document database
type DocumentDatabase interface {
	FindByOwner(ctx context.Context, ownerID string, limit, page int) ([]models.Document, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, document models.Document, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error)
	EnsureIndexes(ctx context.Context) error
}

type documentDatabase struct {
	db DatabaseHelper
}

// NewDocumentDatabase initializes a new instance of document database with the provided db connection
func NewDocumentDatabase(db DatabaseHelper) DocumentDatabase {
	return &documentDatabase{
		db: db,
	}
}

func (d *documentDatabase) FindByOwner(ctx context.Context, ownerID string, limit, page int) ([]models.Document, error) {
	documents := []models.Document{}
	cur, err := d.db.Collection(documentName).Find(ctx, bson.M{"ownerId": ownerID}, newestFirst(limit, page))
	if err != nil {
		return nil, err
	}
	err = cur.Decode(ctx, &documents)
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (d *documentDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := d.db.Collection(documentName).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (d *documentDatabase) InsertOne(ctx context.Context, document models.Document, opts ...*options.InsertOneOptions) (InsertOneResultHelper, error) {
	return d.db.Collection(documentName).InsertOne(ctx, document, opts...)
}

// EnsureIndexes creates the owner listing index if it is missing
func (d *documentDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := d.db.Collection(documentName).CreateIndex(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	return err
}
