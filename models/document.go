package models

import (
	"strings"
	"time"
)

// DocumentStatus is the lifecycle label of an uploaded document
type DocumentStatus string

// Canonical document statuses. Everything else is mapped onto one of these
// by NormalizeStatus.
const (
	StatusPending  DocumentStatus = "pending"
	StatusVerified DocumentStatus = "verified"
	StatusRejected DocumentStatus = "rejected"
)

// statusAliases maps the labels other call sites have used over time onto the
// canonical set.
var statusAliases = map[string]DocumentStatus{
	"pending":    StatusPending,
	"uploaded":   StatusPending,
	"processed":  StatusPending,
	"processing": StatusPending,
	"completed":  StatusPending,
	"verified":   StatusVerified,
	"approved":   StatusVerified,
	"valid":      StatusVerified,
	"rejected":   StatusRejected,
	"invalid":    StatusRejected,
	"revision":   StatusRejected,
}

// NormalizeStatus maps any known status label onto the canonical set. Unknown
// labels come back as pending with ok set to false.
func NormalizeStatus(label string) (DocumentStatus, bool) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return StatusPending, false
	}
	return s, true
}

// Document holds the structure for the documents collection in mongo
type Document struct {
	ID            string         `json:"id" bson:"_id"`
	OwnerID       string         `json:"ownerId" bson:"ownerId"`
	DocumentType  string         `json:"documentType" bson:"documentType"`
	FileName      string         `json:"fileName" bson:"fileName"`
	FileSizeBytes int64          `json:"fileSizeBytes" bson:"fileSizeBytes"`
	MimeType      string         `json:"mimeType" bson:"mimeType"`
	StorageKey    string         `json:"storageKey" bson:"storageKey"`
	StorageURL    string         `json:"storageUrl" bson:"storageUrl"`
	Status        DocumentStatus `json:"status" bson:"status"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	VerifiedAt    *time.Time     `json:"verifiedAt,omitempty" bson:"verifiedAt,omitempty"`
}

// UploadedFile is the per-file shape returned by the upload endpoint
type UploadedFile struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Size         int64          `json:"size"`
	Type         string         `json:"type"`
	URL          string         `json:"url"`
	UploadedAt   time.Time      `json:"uploadedAt"`
	Status       DocumentStatus `json:"status"`
	DocumentType string         `json:"documentType"`
}

// UploadedFileFromDocument reshapes a stored document for the upload response
func UploadedFileFromDocument(d Document) UploadedFile {
	return UploadedFile{
		ID:           d.ID,
		Name:         d.FileName,
		Size:         d.FileSizeBytes,
		Type:         d.MimeType,
		URL:          d.StorageURL,
		UploadedAt:   d.CreatedAt,
		Status:       d.Status,
		DocumentType: d.DocumentType,
	}
}

// UploadResponse is returned by a successful batch upload
type UploadResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Files     []UploadedFile `json:"files"`
	QRCode    string         `json:"qrCode,omitempty"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
}

// DocumentsResponse is returned by the documents listing
type DocumentsResponse struct {
	Success   bool       `json:"success"`
	Documents []Document `json:"documents"`
	Rider     *Rider     `json:"rider,omitempty"`
}
