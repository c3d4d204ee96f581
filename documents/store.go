package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/databases"
	"github.com/linesmerrill/rider-docs-api/models"
	"github.com/linesmerrill/rider-docs-api/storage"
)

// DefaultDocumentType is used when an upload does not say what it is
const DefaultDocumentType = "other"

// ErrMissingOwner is returned when a document has nobody to belong to
var ErrMissingOwner = errors.New("owner id is required")

// Upload is one file of an upload request
type Upload struct {
	FileName     string
	DeclaredType string
	Size         int64
	Body         io.Reader
}

// Store writes document blobs and their metadata records. The two writes are
// independent: there is no transaction spanning them.
type Store struct {
	Blobs     storage.BlobStore
	DB        databases.DocumentDatabase
	Validator Validator
	Now       func() time.Time
	NewID     func() string
}

// NewStore wires a store with the real clock and uuid ids
func NewStore(blobs storage.BlobStore, db databases.DocumentDatabase, validator Validator) *Store {
	return &Store{
		Blobs:     blobs,
		DB:        db,
		Validator: validator,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     func() string { return uuid.New().String() },
	}
}

// StorageKey derives the blob key of a document. The document id makes it
// unique even when a rider uploads the same file name twice in a millisecond.
func StorageKey(ownerID, documentType, documentID, fileName string) string {
	return fmt.Sprintf("riders/%s/%s/%s-%s",
		sanitize(ownerID), sanitize(documentType), sanitize(documentID), sanitize(fileName))
}

// WriteBlob is the first step of a save
func (s *Store) WriteBlob(ctx context.Context, key, contentType string, body io.Reader) (storage.Object, error) {
	obj, err := s.Blobs.Put(ctx, key, contentType, body)
	if err != nil {
		return storage.Object{}, &BlobWriteError{Key: key, Err: err}
	}
	return obj, nil
}

// WriteMetadata is the second step of a save
func (s *Store) WriteMetadata(ctx context.Context, doc models.Document) error {
	if _, err := s.DB.InsertOne(ctx, doc); err != nil {
		return &MetadataWriteError{StorageKey: doc.StorageKey, Err: err}
	}
	return nil
}

// Save validates up, writes its blob and then its metadata record. When the
// record fails the blob stays where it is and the returned *MetadataWriteError
// names it; cleaning it up is the caller's decision (see Discard).
func (s *Store) Save(ctx context.Context, ownerID, documentType string, up Upload) (*models.Document, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, ErrMissingOwner
	}
	if strings.TrimSpace(documentType) == "" {
		documentType = DefaultDocumentType
	}

	mimeType, err := s.Validator.Validate(FileInfo{
		DeclaredType: up.DeclaredType,
		FileName:     up.FileName,
		SizeBytes:    up.Size,
	})
	if err != nil {
		return nil, err
	}

	id := s.NewID()
	now := s.Now()
	obj, err := s.WriteBlob(ctx, StorageKey(ownerID, documentType, id, up.FileName), mimeType, up.Body)
	if err != nil {
		return nil, err
	}

	doc := models.Document{
		ID:            id,
		OwnerID:       ownerID,
		DocumentType:  documentType,
		FileName:      up.FileName,
		FileSizeBytes: up.Size,
		MimeType:      mimeType,
		StorageKey:    obj.Key,
		StorageURL:    obj.URL,
		Status:        models.StatusPending,
		CreatedAt:     now,
	}
	if err := s.WriteMetadata(ctx, doc); err != nil {
		return nil, err
	}

	zap.S().Debugw("stored document",
		"id", doc.ID,
		"ownerId", ownerID,
		"documentType", documentType,
		"key", obj.Key)
	return &doc, nil
}

// Discard deletes a blob, typically the one named by a *MetadataWriteError
func (s *Store) Discard(ctx context.Context, key string) error {
	return s.Blobs.Delete(ctx, key)
}

// ListByOwner returns the owner's documents, newest first
func (s *Store) ListByOwner(ctx context.Context, ownerID string, limit, page int) ([]models.Document, error) {
	return s.DB.FindByOwner(ctx, ownerID, limit, page)
}

// CountByStatus counts documents in a lifecycle state across all owners
func (s *Store) CountByStatus(ctx context.Context, status models.DocumentStatus) (int64, error) {
	return s.DB.CountDocuments(ctx, bson.M{"status": status})
}

func sanitize(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "unnamed"
	}
	return out
}
