package credential

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBadSignature is returned by Issuer.Check for tokens the signer did not produce
var ErrBadSignature = errors.New("QR code signature is invalid")

// Signer computes an HMAC-SHA256 over a token's payload. Signing is opt-in:
// without a key, tokens carry a random placeholder signature that nobody checks.
type Signer struct {
	key []byte
}

// NewSigner returns nil for an empty key, which disables signing
func NewSigner(key string) *Signer {
	if key == "" {
		return nil
	}
	return &Signer{key: []byte(key)}
}

// Sign returns the hex MAC of t with its signature field cleared
func (s *Signer) Sign(t Token) (string, error) {
	t.Signature = ""
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	mac := hmac.New(sha256.New, s.key)
	mac.Write(b)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Valid reports whether t carries the signature Sign would produce
func (s *Signer) Valid(t Token) bool {
	want, err := s.Sign(t)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(want), []byte(t.Signature))
}

// Issuer stamps tokens with the configured lifetime and signature policy
type Issuer struct {
	TTL    time.Duration
	Signer *Signer
	Now    func() time.Time
}

// NewIssuer returns an issuer on the wall clock
func NewIssuer(ttl time.Duration, signer *Signer) Issuer {
	return Issuer{TTL: ttl, Signer: signer, Now: time.Now}
}

// Issue encodes a token for riderID
func (i Issuer) Issue(riderID string, docs []DocumentRef) (Token, string, error) {
	t, _, err := Encode(riderID, docs, i.TTL, i.Now())
	if err != nil {
		return Token{}, "", err
	}
	if i.Signer == nil {
		t.Signature = "unsigned_" + uuid.New().String()
	} else {
		t.Signature, err = i.Signer.Sign(t)
		if err != nil {
			return Token{}, "", err
		}
	}
	s, err := Marshal(t)
	if err != nil {
		return Token{}, "", err
	}
	return t, s, nil
}

// Check enforces the signature when signing is enabled and is a no-op otherwise
func (i Issuer) Check(t Token) error {
	if i.Signer == nil {
		return nil
	}
	if !i.Signer.Valid(t) {
		return ErrBadSignature
	}
	return nil
}
