package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/linesmerrill/rider-docs-api/config"
	"github.com/linesmerrill/rider-docs-api/credential"
	"github.com/linesmerrill/rider-docs-api/models"
)

var validate = validator.New()

// Credential exported for testing purposes
type Credential struct {
	Issuer credential.Issuer
}

type qrGenerateRequest struct {
	RiderID   string                   `json:"riderId" validate:"required"`
	Documents []credential.DocumentRef `json:"documents" validate:"required"`
}

// QRGenerateHandler issues a credential for whatever rider and documents the
// caller names. Nothing is looked up.
func (c Credential) QRGenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req qrGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("invalid request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("Rider ID and documents are required", http.StatusBadRequest, w, err)
		return
	}

	// callers still send legacy labels such as "processed" or "approved"
	for i, doc := range req.Documents {
		status, _ := models.NormalizeStatus(doc.Status)
		req.Documents[i].Status = string(status)
	}

	token, qrCode, err := c.Issuer.Issue(req.RiderID, req.Documents)
	if err != nil {
		config.ErrorStatus("Failed to generate QR code", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.QRCodeResponse{
		Success:   true,
		QRCode:    qrCode,
		ExpiresAt: token.ExpiresAt,
	})
}
