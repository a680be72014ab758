package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cabrix/dispatch-api/internal/core/domain"
	"github.com/cabrix/dispatch-api/internal/core/ports"
)

// UserService implements admin-side user management.
type UserService struct {
	users     ports.UserRepository
	companies ports.CompanyRepository
	logger    zerolog.Logger
}

func NewUserService(users ports.UserRepository, companies ports.CompanyRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, companies: companies, logger: logger}
}

// Create adds a user to an existing company.
func (s *UserService) Create(ctx context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	if existing, err := s.users.FindByUsernameOrEmail(ctx, input.Username, input.Email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	}

	company, err := s.companies.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
		Phone:        input.Phone,
		Companies:    []domain.CompanyRef{{ID: company.ID, Name: company.Name}},
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}
