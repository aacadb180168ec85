package sqlite

import (
	"context"
	"fmt"

	"docstore/internal/model"
	"docstore/internal/repository"
	"gorm.io/gorm"
)

// DocumentSQLite stores documents in the embedded database. Timestamps are stored in UTC;
// the driver cannot scan back the text form of other zones.
type DocumentSQLite struct {
	db *gorm.DB
}

func NewDocumentSQLite(db *gorm.DB) *DocumentSQLite {
	return &DocumentSQLite{db: db}
}

var _ repository.DocumentRepository = (*DocumentSQLite)(nil)

func (r *DocumentSQLite) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	out := *doc
	out.ID = 0
	out.CreatedAt = out.CreatedAt.UTC()
	out.UpdatedAt = out.UpdatedAt.UTC()
	if err := r.db.WithContext(ctx).Create(&out).Error; err != nil {
		return nil, fmt.Errorf("insert document: %w", translate(model.Documents, err))
	}
	return &out, nil
}

func (r *DocumentSQLite) FindByID(ctx context.Context, id int64) (*model.Document, error) {
	var out model.Document
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, translate(model.Documents, err)
	}
	return &out, nil
}

func (r *DocumentSQLite) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&model.Document{}).Count(&total).Error; err != nil {
		return nil, err
	}

	items := make([]model.Document, 0)
	err := db.Order("created_at DESC, id DESC").
		Limit(pq.Limit).
		Offset(pq.Offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: int(total)}, nil
}
