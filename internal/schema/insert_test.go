package schema

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertSchema_Projection(t *testing.T) {
	tbl := notesTable(t)

	omit, err := tbl.InsertSchema(Omit("id", "createdAt"))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "body", "wordCount", "lang"}, omit.Fields())
	assert.Equal(t, []string{"title", "wordCount"}, omit.Required())
	assert.Same(t, tbl, omit.Table())

	pick, err := tbl.InsertSchema(Pick("wordCount", "title"))
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "wordCount"}, pick.Fields(), "declaration order wins over pick order")

	all, err := tbl.InsertSchema(Omit())
	require.NoError(t, err)
	assert.Len(t, all.Fields(), 6)

	_, err = tbl.InsertSchema(Omit("nope"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)
	_, err = tbl.InsertSchema(Pick("nope"))
	assert.ErrorIs(t, err, ErrInvalidDefinition)

	assert.Panics(t, func() { tbl.MustInsertSchema(Pick("nope")) })
}

func TestInsertSchema_Validate(t *testing.T) {
	tbl := notesTable(t)
	s := tbl.MustInsertSchema(Omit("id", "createdAt"))

	tests := []struct {
		name       string
		input      map[string]any
		want       Values
		wantIssues []FieldIssue
	}{
		{
			name:  "minimal valid input",
			input: map[string]any{"title": "a", "wordCount": 3},
			want:  Values{"title": "a", "wordCount": int64(3)},
		},
		{
			name:  "json number and explicit null on nullable column",
			input: map[string]any{"title": "a", "wordCount": json.Number("12"), "body": nil, "lang": "fr"},
			want:  Values{"title": "a", "wordCount": int64(12), "body": nil, "lang": "fr"},
		},
		{
			name:  "integral float64 from plain json decoding",
			input: map[string]any{"title": "a", "wordCount": float64(7)},
			want:  Values{"title": "a", "wordCount": int64(7)},
		},
		{
			name:  "missing required fields",
			input: map[string]any{},
			wantIssues: []FieldIssue{
				{Field: "title", Code: CodeRequired, Message: "field is required"},
				{Field: "wordCount", Code: CodeRequired, Message: "field is required"},
			},
		},
		{
			name:  "nil input",
			input: nil,
			wantIssues: []FieldIssue{
				{Field: "title", Code: CodeRequired, Message: "field is required"},
				{Field: "wordCount", Code: CodeRequired, Message: "field is required"},
			},
		},
		{
			name:  "null on not-null column is missing",
			input: map[string]any{"title": nil, "wordCount": 1},
			wantIssues: []FieldIssue{
				{Field: "title", Code: CodeRequired, Message: "field is required"},
			},
		},
		{
			name:  "omitted field is unknown",
			input: map[string]any{"title": "a", "wordCount": 1, "id": 9, "createdAt": "2024-01-01T00:00:00Z"},
			wantIssues: []FieldIssue{
				{Field: "createdAt", Code: CodeUnknownField, Message: "field is not accepted on insert"},
				{Field: "id", Code: CodeUnknownField, Message: "field is not accepted on insert"},
			},
		},
		{
			name:  "wrong types",
			input: map[string]any{"title": 5, "wordCount": "5"},
			wantIssues: []FieldIssue{
				{Field: "title", Code: CodeInvalidType, Message: "expected text, got int"},
				{Field: "wordCount", Code: CodeInvalidType, Message: "expected integer, got string"},
			},
		},
		{
			name:  "fractional number",
			input: map[string]any{"title": "a", "wordCount": 1.5},
			wantIssues: []FieldIssue{
				{Field: "wordCount", Code: CodeInvalidType, Message: "expected integer, got 1.5"},
			},
		},
		{
			name:  "rules",
			input: map[string]any{"title": "", "wordCount": -1},
			wantIssues: []FieldIssue{
				{Field: "title", Code: CodeInvalidValue, Message: "must satisfy min=1"},
				{Field: "wordCount", Code: CodeInvalidValue, Message: "must satisfy gte=0"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Validate(tt.input)
			if tt.wantIssues == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, "notes", ve.Table)
			assert.Equal(t, tt.wantIssues, ve.Issues)
		})
	}
}

func TestInsertSchema_ValidateTimestamp(t *testing.T) {
	tbl := MustDefine("events", Col("at", Timestamp, NotNull()))
	s := tbl.MustInsertSchema(Omit())

	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	got, err := s.Validate(map[string]any{"at": "2024-02-03T04:05:06Z"})
	require.NoError(t, err)
	assert.True(t, ts.Equal(got.Time("at")))

	got, err = s.Validate(map[string]any{"at": ts})
	require.NoError(t, err)
	assert.Equal(t, ts, got.Time("at"))

	_, err = s.Validate(map[string]any{"at": "yesterday"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestToInt64_Range(t *testing.T) {
	_, err := toInt64(uint64(1 << 63))
	assert.Error(t, err)

	_, err = toInt64(float64(1 << 63))
	assert.Error(t, err)

	_, err = toInt64(true)
	assert.Error(t, err)

	v, err := toInt64(int32(-4))
	assert.NoError(t, err)
	assert.Equal(t, int64(-4), v)
}

func TestToInt64_JSONNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: "5.0", want: 5},
		{in: "1e3", want: 1000},
		{in: "-2.50e1", want: -25},
		{in: "12000e-3", want: 12},
		{in: "9223372036854775807", want: 9223372036854775807},
		{in: "1.5", wantErr: true},
		{in: "9223372036854775808", wantErr: true},
		{in: "9.3e18", wantErr: true},
		{in: "1e-400000000", wantErr: true},
		{in: "1e400000000", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := toInt64(json.Number(tt.in))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInsertSchema_ValidateIntegralJSONNumber(t *testing.T) {
	s := notesTable(t).MustInsertSchema(Omit("id", "createdAt"))

	got, err := s.Validate(map[string]any{"title": "a", "wordCount": json.Number("1e3")})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Int64("wordCount"))
}

func TestValidationError_Message(t *testing.T) {
	err := newValidationError("users", []FieldIssue{
		{Field: "username", Code: CodeRequired, Message: "field is required"},
		{Field: "id", Code: CodeUnknownField, Message: "field is not accepted on insert"},
	})

	assert.Equal(t, "invalid users input: id: field is not accepted on insert; username: field is required", err.Error())

	is, ok := err.Issue("username")
	assert.True(t, ok)
	assert.Equal(t, CodeRequired, is.Code)

	_, ok = err.Issue("password")
	assert.False(t, ok)
}

func TestValues_Accessors(t *testing.T) {
	now := time.Now()
	v := Values{"s": "x", "i": int64(4), "t": now}

	assert.Equal(t, "x", v.String("s"))
	assert.Equal(t, int64(4), v.Int64("i"))
	assert.Equal(t, now, v.Time("t"))
	assert.Equal(t, "", v.String("i"))
	assert.False(t, v.Has("missing"))
}
