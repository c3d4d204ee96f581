// Package verification answers a verifier's scan of a rider credential.
package verification

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linesmerrill/rider-docs-api/credential"
)

// ErrUnknownRole is returned for verifier types other than fuel stations and police
var ErrUnknownRole = errors.New("invalid verifier type")

// Role is the kind of verifier scanning a credential
type Role string

const (
	// FuelStation only checks what is needed to sell fuel
	FuelStation Role = "fuel-station"
	// Police get the full picture
	Police Role = "police"
)

// ParseRole maps a verifierType label onto a Role
func ParseRole(s string) (Role, error) {
	switch strings.TrimSpace(s) {
	case "fuel-station", "fuelStation":
		return FuelStation, nil
	case "police":
		return Police, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// DocumentState is the verdict on a single document
type DocumentState string

// Document verdicts
const (
	Valid   DocumentState = "valid"
	Expired DocumentState = "expired"
	Invalid DocumentState = "invalid"
)

// RiskLevel summarizes a result
type RiskLevel string

// Risk levels. High is part of the vocabulary but nothing produces it yet.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// DocumentVerification is one line of a verification result
type DocumentVerification struct {
	Type       string        `json:"type"`
	Status     DocumentState `json:"status"`
	IssueDate  string        `json:"issueDate,omitempty"`
	ExpiryDate string        `json:"expiryDate,omitempty"`
	Details    string        `json:"details,omitempty"`
}

// Result is what a verifier sees after a scan
type Result struct {
	Success        bool                   `json:"success"`
	RiderName      string                 `json:"riderName"`
	NumberPlate    string                 `json:"numberPlate"`
	VehicleType    string                 `json:"vehicleType,omitempty"`
	Documents      []DocumentVerification `json:"documents"`
	Violations     []string               `json:"violations"`
	LastVerifiedAt time.Time              `json:"lastVerifiedAt"`
	RiskLevel      RiskLevel              `json:"riskLevel"`
}

// Verify builds the result for a decoded token. The token is accepted as is;
// its contents do not influence the answer yet.
func Verify(_ credential.Token, role Role, now time.Time) (Result, error) {
	docs, err := sampleDocuments(role)
	if err != nil {
		return Result{}, err
	}

	violations := []string{}
	for _, d := range docs {
		if d.Status == Expired {
			violations = append(violations, d.Type+" Expired")
		}
	}
	risk := RiskLow
	if len(violations) > 0 {
		risk = RiskMedium
	}

	return Result{
		Success:        true,
		RiderName:      "John Doe",
		NumberPlate:    "MH12AB1234",
		VehicleType:    "Motorcycle",
		Documents:      docs,
		Violations:     violations,
		LastVerifiedAt: now.UTC(),
		RiskLevel:      risk,
	}, nil
}

// NOT YET WIRED TO TOKEN CONTENTS
// sampleDocuments returns fixed per-role data instead of looking up the
// documents the token references.
func sampleDocuments(role Role) ([]DocumentVerification, error) {
	switch role {
	case FuelStation:
		return []DocumentVerification{
			{Type: "Registration Certificate", Status: Valid, ExpiryDate: "2025-08-20", Details: "Valid RC"},
			{Type: "Driving License", Status: Valid, ExpiryDate: "2026-12-15", Details: "Valid DL"},
		}, nil
	case Police:
		return []DocumentVerification{
			{Type: "Driving License", Status: Valid, IssueDate: "2016-12-15", ExpiryDate: "2026-12-15", Details: "Class: MCWG"},
			{Type: "Registration Certificate", Status: Valid, IssueDate: "2020-08-20", ExpiryDate: "2025-08-20", Details: "Engine: 150cc"},
			{Type: "Insurance", Status: Expired, IssueDate: "2023-03-10", ExpiryDate: "2024-03-10", Details: "Policy: Third Party"},
			{Type: "Pollution Certificate", Status: Valid, IssueDate: "2024-06-30", ExpiryDate: "2024-12-30", Details: "Valid PUC"},
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRole, string(role))
}
