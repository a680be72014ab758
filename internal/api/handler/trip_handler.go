package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/api/metrics"
	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// TripHandler handles HTTP requests for trip operations.
type TripHandler struct {
	service ports.TripService
}

func NewTripHandler(service ports.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// tripResponse is the single-trip envelope clients replace their local
// entry from after a create or update.
type tripResponse struct {
	Trip *domain.Trip `json:"trip"`
}

// List returns the trips the caller may see, ordered and filtered.
//
// @Summary      List trips
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "Status filter (pending, in_progress, completed, cancelled, all)"
// @Param        search     query     string  false  "Search over trip id, passenger name, and locations"
// @Param        date_from  query     string  false  "Inclusive lower bound on creation date (YYYY-MM-DD)"
// @Param        date_to    query     string  false  "Inclusive upper bound on creation date (YYYY-MM-DD)"
// @Success      200        {array}   domain.Trip
// @Failure      401        {object}  map[string]string
// @Router       /api/trips [get]
func (h *TripHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	spec, err := filterFromQuery(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date filter")
	}

	trips, err := h.service.List(c.Request().Context(), actor, spec)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trips)
}

// Get returns a single trip.
//
// @Summary      Get a trip
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Trip id"
// @Success      200  {object}  tripResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/trips/{id} [get]
func (h *TripHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := tripID(c)
	if err != nil {
		return err
	}

	trip, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tripResponse{Trip: trip})
}

// Create records a new pending trip for the caller.
//
// @Summary      Request a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTripRequest  true  "Trip details"
// @Success      201   {object}  tripResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/trips [post]
func (h *TripHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	trip, err := h.service.Create(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tripResponse{Trip: trip})
}

// Update applies a transition, an assignment, or field edits, and returns
// the full updated trip so the client can replace its local entry by id.
//
// @Summary      Update a trip
// @Tags         trips
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Trip id"
// @Param        body  body      updateTripRequest  true  "Fields to change"
// @Success      200   {object}  tripResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/trips/{id} [put]
func (h *TripHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := tripID(c)
	if err != nil {
		return err
	}

	var req updateTripRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return err
	}

	trip, err := h.service.Update(c.Request().Context(), actor, id, input)
	if err != nil {
		if req.Status != nil {
			metrics.TripTransitionErrorsTotal.WithLabelValues(transitionErrorReason(err)).Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, tripResponse{Trip: trip})
}

// Delete removes a trip. Admin only.
//
// @Summary      Delete a trip
// @Tags         trips
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Trip id"
// @Success      204  "trip deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/trips/{id} [delete]
func (h *TripHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := tripID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func tripID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid trip id")
	}
	return id, nil
}

func transitionErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrTripNotFound):
		return "trip_not_found"
	default:
		return "internal"
	}
}
