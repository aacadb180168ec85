package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"docstore/internal/model"
	"docstore/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts the user and returns the stored row. A taken username yields a
// *repository.ConstraintError.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	var out model.User
	if err := insertRow(ctx, r.db, model.Users, u, &out); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &out, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	if err := findByID(ctx, r.db, model.Users, id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
