package models

// Rider holds the structure for the riders collection in mongo
type Rider struct {
	ID          string `json:"id" bson:"_id"`
	FullName    string `json:"fullName" bson:"fullName"`
	PhoneNumber string `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	NumberPlate string `json:"numberPlate,omitempty" bson:"numberPlate,omitempty"`
	VehicleType string `json:"vehicleType,omitempty" bson:"vehicleType,omitempty"`
}
