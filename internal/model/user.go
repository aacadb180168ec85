package model

import "docstore/internal/schema"

// Users is the user-account table.
var Users = schema.MustDefine("users",
	schema.Serial("id", schema.PrimaryKey()),
	schema.Col("username", schema.Text, schema.NotNull(), schema.Unique(), schema.Rules("min=1")),
	// Any text is accepted here; the hashing step enforces bcrypt's 72-byte limit.
	schema.Col("password", schema.Text, schema.NotNull()),
)

// InsertUserSchema accepts exactly {username, password}.
var InsertUserSchema = Users.MustInsertSchema(schema.Pick("username", "password"))

// User is a full users row. Password holds the stored (hashed) representation.
type User struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	Password string `db:"password" json:"-"`
}

func (User) TableName() string { return Users.Name() }
