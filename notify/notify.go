// Package notify sends rider emails through sendgrid.
package notify

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/models"
	templates "github.com/linesmerrill/rider-docs-api/templates/html"
)

// go generate: mockery --name Mailer

// Mailer delivers a single email
type Mailer interface {
	Send(to, subject, plainText, htmlContent string) error
}

// Sendgrid delivers mail with the sendgrid v3 API
type Sendgrid struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendgrid returns a sendgrid mailer, or nil when no api key is configured
func NewSendgrid(apiKey, from string) *Sendgrid {
	if apiKey == "" {
		return nil
	}
	return &Sendgrid{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail("Rider Docs", from),
	}
}

// Send implements Mailer
func (s *Sendgrid) Send(to, subject, plainText, htmlContent string) error {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), plainText, htmlContent)
	response, err := s.client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// UploadReceipt tells a rider which documents were just stored
func UploadReceipt(m Mailer, to, riderName string, docs []models.Document) error {
	lines := make([]templates.ReceiptLine, 0, len(docs))
	names := make([]string, 0, len(docs))
	for _, d := range docs {
		lines = append(lines, templates.ReceiptLine{
			FileName:     d.FileName,
			DocumentType: d.DocumentType,
			Status:       string(d.Status),
		})
		names = append(names, d.FileName)
	}
	subject := fmt.Sprintf("We received %d document(s)", len(docs))
	plainText := "Documents received: " + strings.Join(names, ", ") + ". They stay pending until they are reviewed."
	return m.Send(to, subject, plainText, templates.RenderUploadReceipt(riderName, lines))
}

// Background runs fn on its own goroutine, logging its error or panic
func Background(name string, fn func() error) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.S().Errorw("panic in background job", "job", name, "panic", r)
			}
		}()
		if err := fn(); err != nil {
			zap.S().Errorw("background job failed", "job", name, "error", err)
			return
		}
		zap.S().Infow("background job finished", "job", name)
	}()
}
