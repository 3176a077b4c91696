package services

import (
	"context"

	"event-handlers-api/internal/models"
	"event-handlers-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// userService implements the UserService interface
type userService struct {
	repo repositories.RecordRepository
	deps *Dependencies
}

// NewUserService creates a new user service instance
func NewUserService(repo repositories.RecordRepository, deps *Dependencies) UserService {
	return &userService{repo: repo, deps: deps.withDefaults()}
}

// CreateUser validates the request and inserts an active user record
func (s *userService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (models.Record, error) {
	if req == nil {
		return nil, models.NewValidationError(models.InvalidBody, "", "Request body is required")
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user := req.ToRecord(s.deps.NewID(), s.deps.Now())
	if err := s.repo.Put(ctx, user); err != nil {
		return nil, models.NewDependencyError("put user", err)
	}

	s.deps.Logger.WithFields(logrus.Fields{
		"user_id":  user.ID(),
		"username": req.Username,
	}).Info("User created")

	return user, nil
}

// GetUser retrieves a user by ID
func (s *userService) GetUser(ctx context.Context, id string) (models.Record, error) {
	if err := models.ValidateRequired(id, "user ID"); err != nil {
		return nil, err
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, &models.NotFoundError{Resource: "User", ID: id}
		}
		return nil, models.NewDependencyError("get user", err)
	}
	return user, nil
}

// ListUsers returns up to limit users; limit <= 0 returns all
func (s *userService) ListUsers(ctx context.Context, limit int) ([]models.Record, error) {
	users, err := s.repo.Scan(ctx, limit)
	if err != nil {
		return nil, models.NewDependencyError("scan users", err)
	}
	if users == nil {
		users = []models.Record{}
	}
	return users, nil
}
