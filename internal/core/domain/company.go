package domain

import (
	"errors"
	"time"
)

var ErrCompanyNotFound = errors.New("company not found")
var ErrCompanyExists = errors.New("company already exists")

// Company is a registered corporate customer. Trips are always booked on
// behalf of a company.
type Company struct {
	ID               int64     `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Address          string    `json:"address" bson:"address"`
	ContactEmail     string    `json:"contact_email" bson:"contact_email"`
	ContactPhone     string    `json:"contact_phone" bson:"contact_phone"`
	RegistrationDate time.Time `json:"registration_date" bson:"registration_date"`
}
