package models

import "time"

// Verifier holds the structure for the verifiers collection in mongo. A verifier
// is a fuel station or police account allowed to scan rider credentials.
type Verifier struct {
	ID        string    `json:"id" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"-" bson:"password"`
	Role      string    `json:"role" bson:"role"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
