package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// VehicleService implements admin-side vehicle management.
type VehicleService struct {
	vehicles ports.VehicleRepository
	logger   zerolog.Logger
}

func NewVehicleService(vehicles ports.VehicleRepository, logger zerolog.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, logger: logger}
}

func (s *VehicleService) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if existing, err := s.vehicles.FindByRegistration(ctx, v.RegistrationNumber); err == nil && existing != nil {
		return nil, domain.ErrVehicleExists
	}
	if v.Status == "" {
		v.Status = domain.VehicleAvailable
	}

	created, err := s.vehicles.Create(ctx, v)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("vehicle_id", created.ID).Str("registration", created.RegistrationNumber).Msg("vehicle created")
	return created, nil
}

func (s *VehicleService) List(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *VehicleService) Update(ctx context.Context, id int64, update ports.VehicleUpdate) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Model != nil {
		vehicle.Model = *update.Model
	}
	if update.CapacityType != nil {
		vehicle.CapacityType = *update.CapacityType
	}
	if update.Capacity != nil {
		vehicle.Capacity = *update.Capacity
	}
	if update.Status != nil {
		vehicle.Status = *update.Status
	}

	return s.vehicles.Update(ctx, vehicle)
}
