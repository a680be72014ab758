package ports

import (
	"context"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// UserRepository defines persistence for users, including the driver list
// used by the admin assignment form.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail backs the duplicate check on registration.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// AttachVehicle appends a vehicle to a driver's assignment list.
	AttachVehicle(ctx context.Context, driverID int64, vehicle domain.Vehicle) error
}
