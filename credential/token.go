// Package credential packs a rider and their document references into the
// string carried by the rider's QR code.
//
// The string is base64 of JSON and nothing more. Unless a Signer is configured
// anybody can mint or edit one, and Decode accepts whatever parses.
package credential

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linesmerrill/rider-docs-api/models"
)

var (
	// ErrMalformedToken is returned when a token is not base64 encoded JSON
	ErrMalformedToken = errors.New("invalid QR code format")
	// ErrMissingRider is returned when asked to encode a token for nobody
	ErrMissingRider = errors.New("rider id is required")
)

// DocumentRef points at one stored document
type DocumentRef struct {
	DocumentID   string `json:"documentId"`
	DocumentType string `json:"documentType"`
	Status       string `json:"status"`
}

// Token is the decoded form of a credential
type Token struct {
	RiderID   string        `json:"riderId"`
	Documents []DocumentRef `json:"documents"`
	IssuedAt  time.Time     `json:"issuedAt"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
	Signature string        `json:"signature,omitempty"`
}

// UnmarshalJSON also understands generatedAt, the name older QR codes used for issuedAt
func (t *Token) UnmarshalJSON(b []byte) error {
	type plain Token
	aux := struct {
		*plain
		GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if t.IssuedAt.IsZero() && aux.GeneratedAt != nil {
		t.IssuedAt = *aux.GeneratedAt
	}
	return nil
}

// Expired reports whether the token is past its expiry. Tokens without one never expire.
// Nothing in Decode calls this; enforcing expiry is up to the caller.
func (t Token) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}

// Refs builds document references from stored documents
func Refs(docs []models.Document) []DocumentRef {
	refs := make([]DocumentRef, 0, len(docs))
	for _, d := range docs {
		refs = append(refs, DocumentRef{
			DocumentID:   d.ID,
			DocumentType: d.DocumentType,
			Status:       string(d.Status),
		})
	}
	return refs
}

// Encode builds a token issued at now. A ttl of zero leaves expiresAt unset.
func Encode(riderID string, docs []DocumentRef, ttl time.Duration, now time.Time) (Token, string, error) {
	if strings.TrimSpace(riderID) == "" {
		return Token{}, "", ErrMissingRider
	}
	if docs == nil {
		docs = []DocumentRef{}
	}
	t := Token{
		RiderID:   riderID,
		Documents: docs,
		IssuedAt:  now.UTC(),
	}
	if ttl > 0 {
		exp := t.IssuedAt.Add(ttl)
		t.ExpiresAt = &exp
	}
	s, err := Marshal(t)
	if err != nil {
		return Token{}, "", err
	}
	return t, s, nil
}

// Marshal returns the shareable string for t
func Marshal(t Token) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// Decode parses a token string. QR scanners sometimes hand back the url-safe
// or unpadded alphabet, so all four base64 variants are tried.
func Decode(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Token{}, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	var raw []byte
	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		raw, err = enc.DecodeString(s)
		if err == nil {
			break
		}
	}
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Token{}, fmt.Errorf("%w: payload is not a JSON object", ErrMalformedToken)
	}
	var t Token
	if err := json.Unmarshal(raw, &t); err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return t, nil
}
