package model

import (
	"time"

	"docstore/internal/schema"
)

// DefaultMimeType is stored when a document is inserted without a mime type.
const DefaultMimeType = "application/pdf"

// Documents is the document-storage table. Content is kept as text in data.
var Documents = schema.MustDefine("documents",
	schema.Serial("id", schema.PrimaryKey()),
	schema.Col("filename", schema.Text, schema.NotNull()),
	schema.Col("data", schema.Text, schema.NotNull()),
	schema.Col("size", schema.Integer, schema.NotNull()),
	schema.Col("mime_type", schema.Text, schema.Field("mimeType"), schema.NotNull(),
		schema.Default(DefaultMimeType)),
	schema.Col("created_at", schema.Timestamp, schema.Field("createdAt"), schema.NotNull(),
		schema.DefaultNow(), schema.Indexed()),
	// Not refreshed on its own; no update path exists.
	schema.Col("updated_at", schema.Timestamp, schema.Field("updatedAt"), schema.NotNull(),
		schema.DefaultNow()),
)

// InsertDocumentSchema accepts {filename, data, size, mimeType?}.
var InsertDocumentSchema = Documents.MustInsertSchema(schema.Omit("id", "createdAt", "updatedAt"))

// Document is a full documents row.
type Document struct {
	ID        int64     `db:"id" json:"id"`
	Filename  string    `db:"filename" json:"filename"`
	Data      string    `db:"data" json:"data"`
	Size      int64     `db:"size" json:"size"`
	MimeType  string    `db:"mime_type" json:"mimeType"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

func (Document) TableName() string { return Documents.Name() }
