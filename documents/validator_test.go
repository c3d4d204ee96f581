package documents_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/rider-docs-api/documents"
)

const fiveMB = 5 << 20

func TestValidator_AcceptsAllowListedTypes(t *testing.T) {
	v := documents.NewValidator(fiveMB)
	tests := []struct {
		declared string
		want     string
	}{
		{"image/jpeg", documents.TypeJPEG},
		{"image/jpg", documents.TypeJPEG},
		{"image/png", documents.TypePNG},
		{"application/pdf", documents.TypePDF},
		{"IMAGE/PNG", documents.TypePNG},
		{"application/pdf; charset=binary", documents.TypePDF},
	}
	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			// the file name must not matter once the declared type is allowed
			got, err := v.Validate(documents.FileInfo{DeclaredType: tt.declared, FileName: "scan.bin", SizeBytes: 1024})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidator_FallsBackToExtension(t *testing.T) {
	v := documents.NewValidator(fiveMB)
	tests := []struct {
		declared string
		name     string
		want     string
	}{
		{"", "licence.JPG", documents.TypeJPEG},
		{"", "licence.jpeg", documents.TypeJPEG},
		{"application/octet-stream", "rc.png", documents.TypePNG},
		{"text/plain", "insurance.pdf", documents.TypePDF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(documents.FileInfo{DeclaredType: tt.declared, FileName: tt.name, SizeBytes: 10})
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidator_RejectsUnknownTypes(t *testing.T) {
	v := documents.NewValidator(fiveMB)
	tests := []struct {
		declared string
		name     string
		detected string
	}{
		{"", "notes.txt", "txt"},
		{"", "archive", ""},
		{"application/octet-stream", "run.exe", "exe"},
		{"image/gif", "cat.gif", "image/gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Validate(documents.FileInfo{DeclaredType: tt.declared, FileName: tt.name, SizeBytes: 10})
			var typeErr *documents.InvalidTypeError
			if assert.True(t, errors.As(err, &typeErr)) {
				assert.Equal(t, tt.detected, typeErr.DetectedType)
			}
			assert.True(t, documents.IsValidation(err))
		})
	}
}

func TestValidator_SizeLimitAppliesRegardlessOfType(t *testing.T) {
	v := documents.NewValidator(fiveMB)
	for _, declared := range []string{"image/jpeg", "application/pdf", "image/gif", ""} {
		_, err := v.Validate(documents.FileInfo{DeclaredType: declared, FileName: "big.pdf", SizeBytes: fiveMB + 1})
		var sizeErr *documents.FileTooLargeError
		if assert.True(t, errors.As(err, &sizeErr), declared) {
			assert.Equal(t, "big.pdf", sizeErr.FileName)
			assert.Equal(t, int64(fiveMB), sizeErr.Limit)
		}
	}
}

func TestValidator_ExactlyAtLimitIsAccepted(t *testing.T) {
	v := documents.NewValidator(fiveMB)
	_, err := v.Validate(documents.FileInfo{DeclaredType: "image/png", FileName: "a.png", SizeBytes: fiveMB})
	assert.NoError(t, err)
}

func TestValidator_RejectsEmptyFiles(t *testing.T) {
	v := documents.NewValidator(fiveMB)
	_, err := v.Validate(documents.FileInfo{DeclaredType: "image/png", FileName: "a.png", SizeBytes: 0})
	assert.ErrorIs(t, err, documents.ErrEmptyFile)
}

func TestFileTooLargeErrorMessage(t *testing.T) {
	err := &documents.FileTooLargeError{FileName: "rc.pdf", Limit: fiveMB}
	assert.Equal(t, "file rc.pdf is too large. Maximum size is 5MB", err.Error())
}
