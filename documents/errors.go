package documents

import (
	"errors"
	"fmt"
)

// ErrEmptyFile is returned for zero length uploads
var ErrEmptyFile = errors.New("file is empty")

// InvalidTypeError is returned when neither the declared type nor the file
// extension is on the allow-list
type InvalidTypeError struct {
	DetectedType string
}

func (e *InvalidTypeError) Error() string {
	if e.DetectedType == "" {
		return "invalid file type: unknown. Only JPEG, PNG, and PDF files are allowed"
	}
	return fmt.Sprintf("invalid file type: %s. Only JPEG, PNG, and PDF files are allowed", e.DetectedType)
}

// FileTooLargeError is returned when a file exceeds the configured ceiling
type FileTooLargeError struct {
	FileName string
	Limit    int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %s is too large. Maximum size is %s", e.FileName, humanBytes(e.Limit))
}

// BlobWriteError means nothing was persisted for the file
type BlobWriteError struct {
	Key string
	Err error
}

func (e *BlobWriteError) Error() string {
	return fmt.Sprintf("failed to write blob %s: %v", e.Key, e.Err)
}

func (e *BlobWriteError) Unwrap() error { return e.Err }

// MetadataWriteError means the blob was written but its record was not. The
// blob under StorageKey is orphaned until someone calls Store.Discard.
type MetadataWriteError struct {
	StorageKey string
	Err        error
}

func (e *MetadataWriteError) Error() string {
	return fmt.Sprintf("failed to record metadata for blob %s: %v", e.StorageKey, e.Err)
}

func (e *MetadataWriteError) Unwrap() error { return e.Err }

// IsValidation reports whether err should be shown to the caller as a bad request
func IsValidation(err error) bool {
	var typeErr *InvalidTypeError
	var sizeErr *FileTooLargeError
	return errors.As(err, &typeErr) || errors.As(err, &sizeErr) || errors.Is(err, ErrEmptyFile)
}

func humanBytes(n int64) string {
	const unit = 1024
	switch {
	case n >= unit*unit && n%(unit*unit) == 0:
		return fmt.Sprintf("%dMB", n/(unit*unit))
	case n >= unit && n%unit == 0:
		return fmt.Sprintf("%dKB", n/unit)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
