package service

import (
	"context"
	"errors"
	"fmt"

	"docstore/internal/model"
	"docstore/internal/repository"
	"docstore/internal/schema"
	"golang.org/x/crypto/bcrypt"
)

// UserService defines the use cases for user accounts.
type UserService interface {
	// Create validates {username, password}, hashes the password and stores the user.
	// It returns *schema.ValidationError for bad input and *repository.ConstraintError
	// when the username is taken.
	Create(ctx context.Context, input map[string]any) (*model.User, error)

	Get(ctx context.Context, id int64) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
	cost int
	now  Clock
}

// NewUserService constructs a UserService hashing with the given bcrypt cost.
// Costs below bcrypt.MinCost fall back to bcrypt.DefaultCost.
func NewUserService(repo repository.UserRepository, cost int) UserService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &userService{repo: repo, cost: cost, now: utcNow}
}

func (s *userService) Create(ctx context.Context, input map[string]any) (*model.User, error) {
	values, err := model.InsertUserSchema.Validate(input)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(values.String("password")), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, &schema.ValidationError{Table: model.Users.Name(), Issues: []schema.FieldIssue{
				{Field: "password", Code: schema.CodeInvalidValue, Message: "must not exceed 72 bytes"},
			}}
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}
	values["password"] = string(hash)

	var u model.User
	if err := schema.Decode(model.Users, model.Users.ResolveDefaults(values, s.now()), &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}

	stored, err := s.repo.Create(ctx, &u)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return stored, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}
