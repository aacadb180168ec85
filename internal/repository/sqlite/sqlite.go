// Package sqlite implements the repository contract on an embedded SQLite database through GORM.
package sqlite

import (
	"errors"
	"regexp"

	"docstore/internal/repository"
	"docstore/internal/schema"
	"gorm.io/gorm"
)

var constraintRe = regexp.MustCompile(`(UNIQUE|NOT NULL) constraint failed: (\w+)\.(\w+)`)

// translate maps driver errors onto the repository sentinels.
func translate(t *schema.Table, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	m := constraintRe.FindStringSubmatch(err.Error())
	if m == nil || m[2] != t.Name() {
		return err
	}
	kind := repository.Unique
	if m[1] == "NOT NULL" {
		kind = repository.NotNull
	}
	return &repository.ConstraintError{Table: t.Name(), Column: m[3], Kind: kind, Err: err}
}
