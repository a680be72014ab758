package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

const minPasswordLength = 8

// CompanyService registers companies together with their first admin user in
// a single request.
type CompanyService struct {
	companies ports.CompanyRepository
	users     ports.UserRepository
	logger    zerolog.Logger
}

func NewCompanyService(companies ports.CompanyRepository, users ports.UserRepository, logger zerolog.Logger) *CompanyService {
	return &CompanyService{companies: companies, users: users, logger: logger}
}

// Register creates the company and its admin account. Duplicate company
// names and duplicate admin username/email are rejected before anything is
// written.
func (s *CompanyService) Register(ctx context.Context, input ports.RegisterCompanyInput) (*domain.Company, error) {
	if len(input.AdminPassword) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if existing, err := s.companies.FindByName(ctx, input.Name); err == nil && existing != nil {
		return nil, domain.ErrCompanyExists
	}
	if existing, err := s.users.FindByUsernameOrEmail(ctx, input.AdminUsername, input.AdminEmail); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	}

	company, err := s.companies.Create(ctx, &domain.Company{
		Name:             input.Name,
		Address:          input.Address,
		ContactEmail:     input.ContactEmail,
		ContactPhone:     input.ContactPhone,
		RegistrationDate: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.User{
		Username:     input.AdminUsername,
		Email:        input.AdminEmail,
		PasswordHash: string(hash),
		FirstName:    input.AdminFirstName,
		LastName:     input.AdminLastName,
		Role:         domain.RoleAdmin,
		Phone:        input.AdminPhone,
		Companies:    []domain.CompanyRef{{ID: company.ID, Name: company.Name}},
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.users.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("company_id", company.ID).Str("name", company.Name).Msg("company registered")
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *CompanyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.companies.List(ctx)
}
