package ports

import (
	"context"

	"github.com/cabrix/dispatch-api/internal/core/domain"
)

// VehicleRepository defines persistence operations for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	FindByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error)
	List(ctx context.Context) ([]*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
}

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	Create(ctx context.Context, c *domain.Company) (*domain.Company, error)
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	FindByName(ctx context.Context, name string) (*domain.Company, error)
	List(ctx context.Context) ([]*domain.Company, error)
}
