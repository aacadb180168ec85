// Package service holds the use cases that accept external input. Every create runs the
// table's insert validator and the default-resolution step before storage is reached.
package service

import (
	"errors"
	"time"

	"docstore/internal/repository"
)

var (
	ErrInvalidID = errors.New("id must be a positive integer")
	ErrNotFound  = repository.ErrNotFound
)

// Clock supplies the creation time used for timestamp defaults.
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }
