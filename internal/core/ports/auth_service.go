package ports

import (
	"context"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// AuthService implements login and server-side session management.
type AuthService interface {
	// Login verifies credentials and returns a signed bearer token plus the
	// authenticated identity.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Logout revokes the given bearer token server-side.
	Logout(ctx context.Context, token string) error
}

// SessionStore is the server-side registry of live bearer credentials.
// A token that validates cryptographically but is absent from the store is
// treated as logged out.
type SessionStore interface {
	Put(ctx context.Context, token string, userID int64) error
	Exists(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// RegisterCompanyInput carries the single-request company + admin registration.
type RegisterCompanyInput struct {
	Name         string
	Address      string
	ContactEmail string
	ContactPhone string

	AdminUsername  string
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string
	AdminPhone     string
}

// CompanyService implements company registration and lookups.
type CompanyService interface {
	Register(ctx context.Context, input RegisterCompanyInput) (*domain.Company, error)
	Get(ctx context.Context, id int64) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
}

// CreateUserInput carries admin-initiated user creation within a company.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.Role
	Phone     string
	CompanyID int64
}

// UserService implements user management.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// VehicleUpdate carries optional vehicle field updates; nil means unchanged.
type VehicleUpdate struct {
	Model        *string
	CapacityType *string
	Capacity     *int
	Status       *domain.VehicleStatus
}

// VehicleService implements vehicle management.
type VehicleService interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, id int64, update VehicleUpdate) (*domain.Vehicle, error)
}
