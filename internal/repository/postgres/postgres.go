// Package postgres implements the repository contract on PostgreSQL through database/sql.
// Statements are rendered from the table descriptors, so column lists never drift.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"docstore/internal/repository"
	"docstore/internal/schema"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes mapped to repository.ConstraintError.
const (
	codeNotNullViolation = "23502"
	codeUniqueViolation  = "23505"
)

func insertRow(ctx context.Context, db *sql.DB, t *schema.Table, src, dst any) error {
	values, err := schema.ValuesOf(t, src)
	if err != nil {
		return err
	}
	dest, err := schema.Pointers(t, dst)
	if err != nil {
		return err
	}
	q, args := t.InsertSQL(schema.Postgres, values)
	if err := db.QueryRowContext(ctx, q, args...).Scan(dest...); err != nil {
		return constraintError(t, err)
	}
	return nil
}

func findByID(ctx context.Context, db *sql.DB, t *schema.Table, id int64, dst any) error {
	dest, err := schema.Pointers(t, dst)
	if err != nil {
		return err
	}
	q := t.SelectSQL("WHERE id = " + schema.Postgres.Placeholder(1))
	if err := db.QueryRowContext(ctx, q, id).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

// constraintError converts unique and not-null violations into *repository.ConstraintError.
// Other errors are returned unchanged.
func constraintError(t *schema.Table, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var kind repository.ConstraintKind
	switch pgErr.Code {
	case codeUniqueViolation:
		kind = repository.Unique
	case codeNotNullViolation:
		kind = repository.NotNull
	default:
		return err
	}

	column := pgErr.ColumnName
	if column == "" {
		column = constraintColumn(t, pgErr.ConstraintName)
	}
	return &repository.ConstraintError{Table: t.Name(), Column: column, Kind: kind, Err: err}
}

// constraintColumn recovers the column from PostgreSQL's default constraint
// naming, <table>_<column>_key.
func constraintColumn(t *schema.Table, constraint string) string {
	name, ok := strings.CutPrefix(constraint, t.Name()+"_")
	if !ok {
		return ""
	}
	name = strings.TrimSuffix(name, "_key")
	for _, c := range t.Columns() {
		if c.Name == name {
			return name
		}
	}
	return ""
}
