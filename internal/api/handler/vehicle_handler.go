package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

type createVehicleRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Model              string `json:"model" validate:"required"`
	CapacityType       string `json:"capacity_type"`
	Capacity           int    `json:"capacity" validate:"gt=0"`
}

type updateVehicleRequest struct {
	Model        *string `json:"model"`
	CapacityType *string `json:"capacity_type"`
	Capacity     *int    `json:"capacity"`
	Status       *string `json:"status" validate:"omitempty,oneof=available assigned maintenance"`
}

// List returns the vehicle fleet.
//
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Vehicle
// @Failure      401  {object}  map[string]string
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vehicles)
}

// Create registers a vehicle in the fleet. Admin only.
//
// @Summary      Create a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVehicleRequest  true  "Vehicle details"
// @Success      201   {object}  domain.Vehicle
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	vehicle, err := h.service.Create(c.Request().Context(), &domain.Vehicle{
		RegistrationNumber: req.RegistrationNumber,
		Model:              req.Model,
		CapacityType:       req.CapacityType,
		Capacity:           req.Capacity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, vehicle)
}

// Update alters a vehicle's details or availability. Admin only.
//
// @Summary      Update a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Vehicle id"
// @Param        body  body      updateVehicleRequest  true  "Fields to change"
// @Success      200   {object}  domain.Vehicle
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/vehicles/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vehicle id")
	}

	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	update := ports.VehicleUpdate{
		Model:        req.Model,
		CapacityType: req.CapacityType,
		Capacity:     req.Capacity,
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		update.Status = &status
	}

	vehicle, err := h.service.Update(c.Request().Context(), id, update)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, vehicle)
}
