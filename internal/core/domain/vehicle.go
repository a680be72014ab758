package domain

import "errors"

// VehicleStatus tracks whether a vehicle can be offered for assignment.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleAssigned    VehicleStatus = "assigned"
	VehicleMaintenance VehicleStatus = "maintenance"
)

var ErrVehicleNotFound = errors.New("vehicle not found")
var ErrVehicleExists = errors.New("vehicle already exists")
var ErrVehicleUnavailable = errors.New("vehicle is not available")

// Vehicle is referenced, never owned, by trips and by a driver's assignment list.
type Vehicle struct {
	ID                 int64         `json:"id" bson:"_id"`
	RegistrationNumber string        `json:"registration_number" bson:"registration_number"`
	Model              string        `json:"model" bson:"model"`
	CapacityType       string        `json:"capacity_type" bson:"capacity_type"`
	Capacity           int           `json:"capacity" bson:"capacity"`
	Status             VehicleStatus `json:"status" bson:"status"`
}
