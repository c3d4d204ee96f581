package models

import "time"

// TokenResponse is returned when a verifier exchanges basic credentials for a bearer token
type TokenResponse struct {
	Token string `json:"token"`
	ID    string `json:"_id"`
	Role  string `json:"role"`
}

// QRCodeResponse is returned when a credential is generated
type QRCodeResponse struct {
	Success   bool       `json:"success"`
	QRCode    string     `json:"qrCode"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
