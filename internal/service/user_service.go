// Package service implements the application's business logic over the
// repository layer.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles registration, credential checks and user listing.
type UserService struct {
	userRepo repository.UserRepository
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email    string
	Password string
	Role     models.Role
}

// NewUserService returns a UserService using the given repository.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new account. Role defaults to USER unless explicitly
// requested. Duplicate emails yield a Conflict error and persist nothing.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return nil, models.NewValidationError("Invalid role")
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    in.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	// The unique index still backstops the pre-check above under concurrent
	// registrations; Create maps that violation to Conflict as well.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	observability.Registrations.WithLabelValues(string(user.Role)).Inc()
	return user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password return
// the same InvalidCredentials error so callers cannot tell them apart.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		observability.AuthAttempts.WithLabelValues("error").Inc()
		return nil, err
	}
	if user == nil {
		observability.AuthAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		observability.AuthAttempts.WithLabelValues("invalid_credentials").Inc()
		return nil, models.NewInvalidCredentialsError()
	}

	observability.AuthAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// ListUsers returns the safe projection of every registered user.
func (s *UserService) ListUsers(ctx context.Context) ([]models.PublicUser, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	public := make([]models.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	return public, nil
}
