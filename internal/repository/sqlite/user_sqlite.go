package sqlite

import (
	"context"
	"fmt"

	"docstore/internal/model"
	"docstore/internal/repository"
	"gorm.io/gorm"
)

type UserSQLite struct {
	db *gorm.DB
}

func NewUserSQLite(db *gorm.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

var _ repository.UserRepository = (*UserSQLite)(nil)

func (r *UserSQLite) Create(ctx context.Context, u *model.User) (*model.User, error) {
	out := *u
	out.ID = 0
	if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
		return nil, fmt.Errorf("insert user: %w", translate(model.Users, err))
	}
	return &out, nil
}

func (r *UserSQLite) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var out model.User
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, translate(model.Users, err)
	}
	return &out, nil
}
