// Package documents validates, stores and lists rider documents.
package documents

import (
	"path/filepath"
	"strings"
)

// Normalized media types
const (
	TypeJPEG = "image/jpeg"
	TypePNG  = "image/png"
	TypePDF  = "application/pdf"
)

var allowedTypes = map[string]string{
	"image/jpeg":      TypeJPEG,
	"image/jpg":       TypeJPEG,
	"image/png":       TypePNG,
	"application/pdf": TypePDF,
}

var allowedExtensions = map[string]string{
	".jpg":  TypeJPEG,
	".jpeg": TypeJPEG,
	".png":  TypePNG,
	".pdf":  TypePDF,
}

// FileInfo is everything the validator looks at
type FileInfo struct {
	DeclaredType string
	FileName     string
	SizeBytes    int64
}

// Validator classifies uploads against the allow-list and the size ceiling
type Validator struct {
	MaxBytes int64
}

// NewValidator returns a validator with the given ceiling
func NewValidator(maxBytes int64) Validator {
	return Validator{MaxBytes: maxBytes}
}

// Validate returns the normalized media type of f or the reason it was rejected.
// The size ceiling applies regardless of type.
func (v Validator) Validate(f FileInfo) (string, error) {
	if f.SizeBytes > v.MaxBytes {
		return "", &FileTooLargeError{FileName: f.FileName, Limit: v.MaxBytes}
	}
	if f.SizeBytes <= 0 {
		return "", ErrEmptyFile
	}

	declared := strings.ToLower(strings.TrimSpace(f.DeclaredType))
	// browsers append parameters now and then
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if t, ok := allowedTypes[declared]; ok {
		return t, nil
	}

	ext := strings.ToLower(filepath.Ext(f.FileName))
	if t, ok := allowedExtensions[ext]; ok {
		return t, nil
	}

	detected := declared
	if detected == "" || detected == "application/octet-stream" {
		detected = strings.TrimPrefix(ext, ".")
	}
	return "", &InvalidTypeError{DetectedType: detected}
}
