// Package core implements the CSV reconciliation engine: table resolution,
// column mapping, row validation/casting, and the new/changed/identical diff
// against persisted rows. It has no UI dependencies and can be driven by any
// frontend.
package core

import (
	"context"
	"strconv"
	"time"
)

// SemanticType is the declared type of a schema column. It drives both the
// cast applied to raw CSV cells and the equality rule used during
// reconciliation.
type SemanticType int

const (
	TypeString SemanticType = iota
	TypeInteger
	TypeFloat
	TypeBoolean
	TypeDate
	TypeDateTime
)

// String returns a human-readable name for the semantic type.
func (t SemanticType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeBoolean:
		return "boolean"
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Column is a single schema column: its canonical name and semantic type.
type Column struct {
	Name string
	Type SemanticType
}

// TableSchema describes one target table. Instances are immutable after
// registry construction.
type TableSchema struct {
	// Key is the registry identifier, e.g. "guest_log".
	Key string
	// QualifiedName is the database/schema/table triple, dot-separated.
	QualifiedName string
	// Columns is the ordered column set. Order is preserved everywhere rows
	// are rendered or written.
	Columns []Column
	// PrimaryKeys names the columns forming the primary key. Every name must
	// appear in Columns.
	PrimaryKeys []string
	// Aliases are normalized substrings matched against uploaded file names
	// during table resolution.
	Aliases []string
}

// Column returns the column with the given name.
func (s TableSchema) Column(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns the column names in declared order.
func (s TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// IsPrimaryKey reports whether name is part of the primary key.
func (s TableSchema) IsPrimaryKey(name string) bool {
	for _, pk := range s.PrimaryKeys {
		if pk == name {
			return true
		}
	}
	return false
}

// Value is a typed cell value. Valid=false represents null/missing. Exactly
// one payload field is meaningful, selected by Type.
type Value struct {
	Type  SemanticType
	Valid bool
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
}

// Null returns an invalid (null) value of the given type.
func Null(t SemanticType) Value {
	return Value{Type: t}
}

// Canonical returns the canonical string form of the value, used for
// change detection and presentation. Null values render as the empty string.
func (v Value) Canonical() string {
	if !v.Valid {
		return ""
	}
	switch v.Type {
	case TypeString:
		return v.Str
	case TypeInteger:
		return strconv.FormatInt(v.Int, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(v.Bool)
	case TypeDate:
		return v.Time.UTC().Format("2006-01-02")
	case TypeDateTime:
		return v.Time.UTC().Format(time.RFC3339)
	default:
		return v.Str
	}
}

// FloatTolerance is the absolute tolerance under which two float column
// values compare as equal during reconciliation.
const FloatTolerance = 1e-9

// Equal reports whether two values are the same for reconciliation purposes:
// both null, within FloatTolerance for float columns, the same instant for
// date and datetime columns regardless of zone, or identical in canonical
// string form otherwise.
func (v Value) Equal(o Value) bool {
	if !v.Valid && !o.Valid {
		return true
	}
	if v.Valid != o.Valid {
		return false
	}
	if v.Type == TypeFloat && o.Type == TypeFloat {
		d := v.Float - o.Float
		if d < 0 {
			d = -d
		}
		return d <= FloatTolerance
	}
	if (v.Type == TypeDate || v.Type == TypeDateTime) && v.Type == o.Type {
		return v.Time.Equal(o.Time)
	}
	return v.Canonical() == o.Canonical()
}

// Row is a validated row keyed by schema column name.
type Row map[string]Value

// Cells returns the row's canonical values in schema column order.
func (r Row) Cells(schema TableSchema) []string {
	cells := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		cells[i] = r[c.Name].Canonical()
	}
	return cells
}

// RejectedRow is a raw row that failed validation, with the first offending
// column and fault kind in Reason.
type RejectedRow struct {
	Line   int      `json:"line"`
	Data   []string `json:"data"`
	Reason string   `json:"reason"`
}

// ReconciliationResult summarizes one reconciliation pass. Row sets carry
// canonical cell values restricted to the schema's columns in declared order.
type ReconciliationResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`

	Columns     []string   `json:"columns"`
	NewRows     [][]string `json:"newRows"`
	UpdatedRows [][]string `json:"updatedRows"`
	SkippedRows [][]string `json:"skippedRows"`
}

// UploadReport is the presentation contract produced for one upload.
type UploadReport struct {
	UploadID  string        `json:"uploadId"`
	FileName  string        `json:"fileName"`
	TableKey  string        `json:"tableKey"`
	Table     string        `json:"table"`
	TotalRows int           `json:"totalRows"`
	Rejected  []RejectedRow `json:"rejected,omitempty"`

	Result   ReconciliationResult `json:"result"`
	Duration time.Duration        `json:"-"`
}

// Store is the persisted-store capability the reconciler requires from its
// collaborator. Implementations must never interpolate values into query
// text; all values travel as statement parameters.
type Store interface {
	// FetchRows returns existing rows whose primary-key tuple matches any of
	// keys. Each key holds the primary-key values in schema.PrimaryKeys order.
	FetchRows(ctx context.Context, schema TableSchema, keys [][]Value) ([]Row, error)

	// InsertRow inserts a single row.
	InsertRow(ctx context.Context, schema TableSchema, row Row) error

	// UpdateRow rewrites all non-key columns of the row identified by key.
	UpdateRow(ctx context.Context, schema TableSchema, key []Value, row Row) error
}
