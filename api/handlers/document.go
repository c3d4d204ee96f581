package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/config"
	"github.com/linesmerrill/rider-docs-api/credential"
	"github.com/linesmerrill/rider-docs-api/databases"
	"github.com/linesmerrill/rider-docs-api/documents"
	"github.com/linesmerrill/rider-docs-api/models"
	"github.com/linesmerrill/rider-docs-api/notify"
)

const (
	// multipart parts beyond this are spooled to temp files
	multipartMemory = 8 << 20
	// MaxFilesPerUpload bounds one batch, and with it the request body
	MaxFilesPerUpload = 10
	// room for form fields and part headers on top of the files themselves
	multipartOverhead = 64 << 10
)

// Document exported for testing purposes
type Document struct {
	Store  *documents.Store
	Riders databases.RiderDatabase
	Issuer credential.Issuer
	Mailer notify.Mailer
}

// UploadHandler stores every file of a multipart upload and returns a fresh
// credential referencing them. Files are handled in order and the first
// failure ends the request; files stored before it stay stored.
func (d Document) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxFilesPerUpload*d.Store.Validator.MaxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.UploadFailures.WithLabelValues("validation").Inc()
			config.ErrorStatus("request body too large", http.StatusBadRequest, w, err)
			return
		}
		config.ErrorStatus("invalid multipart form", http.StatusBadRequest, w, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		config.ErrorStatus("No files provided", http.StatusBadRequest, w, nil)
		return
	}
	if len(files) > MaxFilesPerUpload {
		config.ErrorStatus(fmt.Sprintf("too many files. At most %d files per upload", MaxFilesPerUpload), http.StatusBadRequest, w, nil)
		return
	}

	riderID, email, authenticated := api.RiderFromContext(r.Context())
	ownerID := riderID
	if !authenticated {
		ownerID = r.FormValue("riderId")
		if ownerID == "" {
			ownerID = "anon-" + uuid.New().String()
		}
	}
	documentType := r.FormValue("documentType")

	stored := make([]models.Document, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			config.ErrorStatus("Failed to upload documents", http.StatusInternalServerError, w, err)
			return
		}

		ctx, cancel := api.WithQueryTimeout(r.Context())
		doc, err := d.Store.Save(ctx, ownerID, documentType, documents.Upload{
			FileName:     fh.Filename,
			DeclaredType: fh.Header.Get("Content-Type"),
			Size:         fh.Size,
			Body:         f,
		})
		cancel()
		f.Close()
		if err != nil {
			uploadError(w, err, ownerID, fh.Filename)
			return
		}
		api.DocumentsUploaded.WithLabelValues(doc.MimeType).Inc()
		stored = append(stored, *doc)
	}

	token, qrCode, err := d.Issuer.Issue(ownerID, credential.Refs(stored))
	if err != nil {
		config.ErrorStatus("Failed to generate QR code", http.StatusInternalServerError, w, err)
		return
	}

	if authenticated && email != "" && d.Mailer != nil {
		mailer := d.Mailer
		notify.Background("upload receipt", func() error {
			return notify.UploadReceipt(mailer, email, "", stored)
		})
	}

	zap.S().Infow("documents uploaded", "ownerId", ownerID, "count", len(stored))

	uploaded := make([]models.UploadedFile, 0, len(stored))
	for _, doc := range stored {
		uploaded = append(uploaded, models.UploadedFileFromDocument(doc))
	}
	writeJSON(w, http.StatusOK, models.UploadResponse{
		Success:   true,
		Message:   "Documents uploaded successfully",
		Files:     uploaded,
		QRCode:    qrCode,
		ExpiresAt: token.ExpiresAt,
	})
}

func uploadError(w http.ResponseWriter, err error, ownerID, fileName string) {
	var blobErr *documents.BlobWriteError
	var metaErr *documents.MetadataWriteError
	switch {
	case documents.IsValidation(err), errors.Is(err, documents.ErrMissingOwner):
		api.UploadFailures.WithLabelValues("validation").Inc()
		config.ErrorStatus(err.Error(), http.StatusBadRequest, w, err)
	case errors.As(err, &blobErr):
		api.UploadFailures.WithLabelValues("blob").Inc()
		zap.S().Errorw("blob write failed", "ownerId", ownerID, "file", fileName, "key", blobErr.Key)
		config.ErrorStatus("Failed to upload documents", http.StatusInternalServerError, w, err)
	case errors.As(err, &metaErr):
		api.UploadFailures.WithLabelValues("metadata").Inc()
		zap.S().Errorw("metadata write failed, blob left orphaned",
			"ownerId", ownerID,
			"file", fileName,
			"orphanedKey", metaErr.StorageKey)
		config.ErrorStatus("Failed to upload documents", http.StatusInternalServerError, w, err)
	default:
		api.UploadFailures.WithLabelValues("other").Inc()
		config.ErrorStatus("Failed to upload documents", http.StatusInternalServerError, w, err)
	}
}

// DocumentsHandler lists the authenticated rider's documents, newest first,
// along with their profile
func (d Document) DocumentsHandler(w http.ResponseWriter, r *http.Request) {
	riderID, email, ok := api.RiderFromContext(r.Context())
	if !ok {
		config.ErrorStatus("Unauthorized", http.StatusUnauthorized, w, nil)
		return
	}

	Limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || Limit <= 0 {
		Limit = 10 // Default limit
	}
	Page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || Page < 1 {
		Page = 1 // Default page
	}

	// Use request context with timeout for proper trace tracking and timeout handling
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	docs, err := d.Store.ListByOwner(ctx, riderID, Limit, Page)
	if err != nil {
		config.ErrorStatus("Failed to fetch documents", http.StatusInternalServerError, w, err)
		return
	}

	rider, err := d.Riders.FindOne(ctx, bson.M{"_id": riderID})
	if err != nil {
		zap.S().Warnw("rider profile not found, using token identity", "riderId", riderID, "error", err)
		rider = &models.Rider{ID: riderID, FullName: email}
	}

	writeJSON(w, http.StatusOK, models.DocumentsResponse{
		Success:   true,
		Documents: docs,
		Rider:     rider,
	})
}
