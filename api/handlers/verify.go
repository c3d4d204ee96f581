package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/rider-docs-api/api"
	"github.com/linesmerrill/rider-docs-api/api/events"
	"github.com/linesmerrill/rider-docs-api/config"
	"github.com/linesmerrill/rider-docs-api/credential"
	"github.com/linesmerrill/rider-docs-api/models"
	"github.com/linesmerrill/rider-docs-api/verification"
)

// Verify exported for testing purposes
type Verify struct {
	Issuer credential.Issuer
	Hub    *events.Hub
	Now    func() time.Time
}

type verifyRequest struct {
	QRCode       string `json:"qrCode" validate:"required"`
	VerifierType string `json:"verifierType"`
}

// VerifyHandler decodes a scanned credential and answers for the verifier's role
func (v Verify) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("invalid request body", http.StatusBadRequest, w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		config.ErrorStatus("QR code data is required", http.StatusBadRequest, w, err)
		return
	}

	token, err := credential.Decode(req.QRCode)
	if err != nil {
		config.ErrorStatus("Invalid QR code format", http.StatusBadRequest, w, err)
		return
	}
	if err := v.Issuer.Check(token); err != nil {
		config.ErrorStatus(err.Error(), http.StatusBadRequest, w, err)
		return
	}

	// an authenticated verifier scans as their own role
	user, ok := api.UserFromContext(r.Context())
	isVerifier := ok && api.InGroup(user, api.VerifierGroup)
	if isVerifier && req.VerifierType == "" {
		for _, g := range user.Groups() {
			if g != api.VerifierGroup {
				req.VerifierType = g
			}
		}
	}

	role, err := verification.ParseRole(req.VerifierType)
	if err != nil {
		config.ErrorStatus("Invalid verifier type", http.StatusBadRequest, w, err)
		return
	}
	if isVerifier && !api.InGroup(user, string(role)) {
		config.ErrorStatus("verifier type does not match account", http.StatusForbidden, w, nil)
		return
	}

	now := time.Now
	if v.Now != nil {
		now = v.Now
	}
	result, err := verification.Verify(token, role, now())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, verification.ErrUnknownRole) {
			status = http.StatusBadRequest
		}
		config.ErrorStatus("Failed to verify documents", status, w, err)
		return
	}
	api.Verifications.WithLabelValues(string(role), string(result.RiskLevel)).Inc()

	if v.Hub != nil && token.RiderID != "" {
		sent := v.Hub.Publish(models.ScanEvent{
			Type:         events.ScannedType,
			RiderID:      token.RiderID,
			VerifierType: string(role),
			RiskLevel:    string(result.RiskLevel),
			ScannedAt:    result.LastVerifiedAt,
		})
		zap.S().Debugw("scan event published", "riderId", token.RiderID, "streams", sent)
	}

	writeJSON(w, http.StatusOK, result)
}
