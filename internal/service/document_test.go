package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"docstore/internal/model"
	"docstore/internal/repository"
	repoMocks "docstore/internal/repository/mocks"
	"docstore/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) Clock { return func() time.Time { return t } }

func TestDocumentService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		input      map[string]any
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
		wantMime   string
	}{
		{
			name:  "mime type defaults",
			input: map[string]any{"filename": "a.pdf", "data": "JVBERi0=", "size": float64(5)},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Create", ctx, &model.Document{
					Filename:  "a.pdf",
					Data:      "JVBERi0=",
					Size:      5,
					MimeType:  model.DefaultMimeType,
					CreatedAt: now,
					UpdatedAt: now,
				}).Return(&model.Document{ID: 1, Filename: "a.pdf", MimeType: model.DefaultMimeType}, nil)
			},
			wantMime: model.DefaultMimeType,
		},
		{
			name:  "explicit mime type",
			input: map[string]any{"filename": "a.png", "data": "iVBO", "size": 3, "mimeType": "image/png"},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Create", ctx, mock.MatchedBy(func(d *model.Document) bool {
					return d.MimeType == "image/png" && d.CreatedAt.Equal(now) && d.UpdatedAt.Equal(now)
				})).Return(&model.Document{ID: 2, MimeType: "image/png"}, nil)
			},
			wantMime: "image/png",
		},
		{
			name:       "validation error never reaches storage",
			input:      map[string]any{"filename": "a.pdf", "size": 1, "id": 4},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {},
			wantErr:    schema.ErrValidation,
		},
		{
			name:  "repository error is wrapped",
			input: map[string]any{"filename": "a.pdf", "data": "x", "size": 1},
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("Create", ctx, mock.Anything).
					Return(nil, &repository.ConstraintError{Table: "documents", Column: "filename", Kind: repository.NotNull})
			},
			wantErr: repository.ErrConstraint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			tt.setupMocks(mRepo)

			svc := &documentService{repo: mRepo, now: fixedClock(now)}
			doc, err := svc.Create(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, doc.ID)
				assert.Equal(t, tt.wantMime, doc.MimeType)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults limit and clamps offset", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.Document]{Items: []model.Document{{ID: 1}}, Total: 1}, nil)

		res, err := NewDocumentService(mRepo).List(ctx, 0, -5)

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		mRepo.AssertExpectations(t)
	})

	t.Run("clamps oversized limit", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: MaxListLimit, Offset: 0}).
			Return(&repository.PageResult[model.Document]{Items: []model.Document{}, Total: 0}, nil)

		_, err := NewDocumentService(mRepo).List(ctx, 100000000, 0)

		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		mRepo.On("List", ctx, repository.PageQuery{Limit: 5, Offset: 10}).Return(nil, errors.New("db down"))

		res, err := NewDocumentService(mRepo).List(ctx, 5, 10)

		assert.EqualError(t, err, "db down")
		assert.Nil(t, res)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := NewDocumentService(mRepo)

	_, err := svc.Get(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidID)

	mRepo.On("FindByID", ctx, int64(3)).Return(&model.Document{ID: 3}, nil)
	mRepo.On("FindByID", ctx, int64(4)).Return(nil, repository.ErrNotFound)

	doc, err := svc.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), doc.ID)

	_, err = svc.Get(ctx, 4)
	assert.ErrorIs(t, err, ErrNotFound)
	mRepo.AssertExpectations(t)
}
