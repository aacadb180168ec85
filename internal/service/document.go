package service

import (
	"context"
	"fmt"

	"docstore/internal/model"
	"docstore/internal/repository"
	"docstore/internal/schema"
)

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Create validates {filename, data, size, mimeType?}, resolves mimeType, createdAt and
	// updatedAt defaults, and stores the document.
	Create(ctx context.Context, input map[string]any) (*model.Document, error)

	// List returns documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo repository.DocumentRepository
	now  Clock
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository) DocumentService {
	return &documentService{repo: repo, now: utcNow}
}

func (s *documentService) Create(ctx context.Context, input map[string]any) (*model.Document, error) {
	values, err := model.InsertDocumentSchema.Validate(input)
	if err != nil {
		return nil, err
	}

	var doc model.Document
	if err := schema.Decode(model.Documents, model.Documents.ResolveDefaults(values, s.now()), &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	stored, err := s.repo.Create(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return stored, nil
}

// Page size bounds for List.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

// List returns paginated documents without exposing repository types.
// Limits above MaxListLimit are clamped.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}
