package models

import "time"

// ScanEvent is pushed to a rider's open event streams whenever one of their
// credentials is verified
type ScanEvent struct {
	Type         string    `json:"type"`
	RiderID      string    `json:"riderId"`
	VerifierType string    `json:"verifierType"`
	RiskLevel    string    `json:"riskLevel"`
	ScannedAt    time.Time `json:"scannedAt"`
}
