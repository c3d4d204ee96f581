package notify_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/linesmerrill/rider-docs-api/models"
	"github.com/linesmerrill/rider-docs-api/notify"
	"github.com/linesmerrill/rider-docs-api/notify/mocks"
)

func TestNewSendgridWithoutKey(t *testing.T) {
	assert.Nil(t, notify.NewSendgrid("", "no-reply@rider-docs.app"))
	assert.NotNil(t, notify.NewSendgrid("SG.key", "no-reply@rider-docs.app"))
}

func TestUploadReceipt(t *testing.T) {
	m := mocks.NewMailer(t)
	docs := []models.Document{
		{FileName: "license.jpg", DocumentType: "license", Status: models.StatusPending},
		{FileName: "rc.pdf", DocumentType: "registration", Status: models.StatusPending},
	}
	m.On("Send", "asha@example.com", "We received 2 document(s)",
		"Documents received: license.jpg, rc.pdf. They stay pending until they are reviewed.",
		mock.MatchedBy(func(html string) bool {
			return strings.Contains(html, "Hi Asha,") && strings.Contains(html, "rc.pdf")
		})).Return(nil)

	assert.NoError(t, notify.UploadReceipt(m, "asha@example.com", "Asha", docs))
}

func TestUploadReceiptPropagatesError(t *testing.T) {
	m := mocks.NewMailer(t)
	m.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("mocked-error"))

	assert.EqualError(t, notify.UploadReceipt(m, "a@b.c", "", nil), "mocked-error")
}

func TestBackgroundRecoversPanics(t *testing.T) {
	done := make(chan struct{})
	notify.Background("panics", func() error {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background job never ran")
	}
}
