// Package repository defines the storage-engine contract for the registered tables.
// Implementations live in subpackages (postgres, sqlite).
package repository

import (
	"context"
	"errors"
	"fmt"

	"docstore/internal/model"
)

var (
	// ErrNotFound is returned when no row matches the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConstraint matches every *ConstraintError.
	ErrConstraint = errors.New("constraint violation")
)

// ConstraintKind names the violated storage constraint.
type ConstraintKind string

const (
	Unique  ConstraintKind = "unique"
	NotNull ConstraintKind = "not_null"
)

// ConstraintError reports an insert rejected by a storage constraint.
type ConstraintError struct {
	Table  string
	Column string
	Kind   ConstraintKind
	Err    error
}

func (e *ConstraintError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s: %s constraint violated", e.Table, e.Kind)
	}
	return fmt.Sprintf("%s.%s: %s constraint violated", e.Table, e.Column, e.Kind)
}

func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

func (e *ConstraintError) Unwrap() error { return e.Err }

// UserRepository persists users rows. No business logic here.
type UserRepository interface {
	// Create inserts the row and returns it as stored, with id assigned.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns ErrNotFound when the id does not exist.
	FindByID(ctx context.Context, id int64) (*model.User, error)
}

// DocumentRepository persists documents rows.
type DocumentRepository interface {
	// Create inserts the row and returns it as stored, with id assigned.
	// Defaults must already be resolved by the caller.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns a page ordered newest first and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
