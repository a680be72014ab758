package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type registerCompanyRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`

	AdminUsername  string `json:"admin_username" validate:"required"`
	AdminEmail     string `json:"admin_email" validate:"required,email"`
	AdminPassword  string `json:"admin_password" validate:"required,min=8"`
	AdminFirstName string `json:"admin_first_name" validate:"required"`
	AdminLastName  string `json:"admin_last_name" validate:"required"`
	AdminPhone     string `json:"admin_phone"`
}

type registerCompanyResponse struct {
	Company *domain.Company `json:"company"`
}

// Register creates a company together with its first admin account.
//
// @Summary      Register a company
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      registerCompanyRequest  true  "Company and admin details"
// @Success      201   {object}  registerCompanyResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/companies [post]
func (h *CompanyHandler) Register(c echo.Context) error {
	var req registerCompanyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	company, err := h.service.Register(c.Request().Context(), ports.RegisterCompanyInput{
		Name:           req.Name,
		Address:        req.Address,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		AdminUsername:  req.AdminUsername,
		AdminEmail:     req.AdminEmail,
		AdminPassword:  req.AdminPassword,
		AdminFirstName: req.AdminFirstName,
		AdminLastName:  req.AdminLastName,
		AdminPhone:     req.AdminPhone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerCompanyResponse{Company: company})
}

// List returns every registered company.
//
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Company
// @Failure      401  {object}  map[string]string
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, companies)
}

// Get returns a single company by id.
//
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Company id"
// @Success      200  {object}  domain.Company
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
	}
	company, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}
