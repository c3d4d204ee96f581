package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/rider-docs-api/models"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		label string
		want  models.DocumentStatus
		known bool
	}{
		{"pending", models.StatusPending, true},
		{"uploaded", models.StatusPending, true},
		{"processed", models.StatusPending, true},
		{"Completed", models.StatusPending, true},
		{"verified", models.StatusVerified, true},
		{" approved ", models.StatusVerified, true},
		{"rejected", models.StatusRejected, true},
		{"invalid", models.StatusRejected, true},
		{"shredded", models.StatusPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, ok := models.NormalizeStatus(tt.label)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}
