package domain

import (
	"errors"
	"strings"
	"time"
)

// Role is the closed set of actor roles. Role-conditional behavior must
// switch exhaustively over these values.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("username or email already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrNotADriver = errors.New("user is not a driver")
var ErrPasswordTooShort = errors.New("password must be at least 8 characters")
var ErrInvalidRole = errors.New("invalid role")

// User models an authenticated actor: employee (passenger), driver, or admin.
type User struct {
	ID           int64        `json:"id" bson:"_id"`
	Username     string       `json:"username" bson:"username"`
	Email        string       `json:"email" bson:"email"`
	PasswordHash string       `json:"-" bson:"password_hash"`
	FirstName    string       `json:"first_name" bson:"first_name"`
	LastName     string       `json:"last_name" bson:"last_name"`
	Role         Role         `json:"role" bson:"role"`
	Phone        string       `json:"phone,omitempty" bson:"phone,omitempty"`
	Companies    []CompanyRef `json:"companies" bson:"companies"`
	Vehicles     []Vehicle    `json:"vehicles,omitempty" bson:"vehicles,omitempty"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
}

// FullName returns "first last", the display form used in passenger search.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// EmailDomain returns the part of the email after '@', lowercased.
func (u *User) EmailDomain() string {
	at := strings.LastIndex(u.Email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(u.Email[at+1:])
}

// CompanyRef is the lightweight company reference carried on a user.
type CompanyRef struct {
	ID   int64  `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}
