package core

import (
	"fmt"
	"strings"
)

// ColumnMapping aligns uploaded CSV headers with a schema's columns. It is
// built once per upload and is only produced when the headers form a
// bijection onto the schema's column set: no required column missing, no
// uploaded header left unmapped.
type ColumnMapping struct {
	schema TableSchema
	// pos maps schema column name to its index in the CSV row.
	pos map[string]int
	// orig maps schema column name to the header as it appeared in the file,
	// for error messages that should echo the user's spelling.
	orig map[string]string
}

// BuildMapping matches uploaded headers to schema columns via normalized
// names. Both the missing-column and extra-column lists are collected before
// failing, so one SchemaMismatchError reports everything wrong with the
// header row.
func BuildMapping(headers []string, schema TableSchema) (*ColumnMapping, error) {
	required := make(map[string]string, len(schema.Columns)) // normalized -> column name
	for _, c := range schema.Columns {
		required[NormalizeName(c.Name)] = c.Name
	}

	m := &ColumnMapping{
		schema: schema,
		pos:    make(map[string]int, len(schema.Columns)),
		orig:   make(map[string]string, len(schema.Columns)),
	}

	var extra []string
	for i, h := range headers {
		col, ok := required[NormalizeName(h)]
		if !ok {
			extra = append(extra, h)
			continue
		}
		if _, dup := m.pos[col]; dup {
			// A second header normalizing to the same column is unmappable.
			extra = append(extra, h)
			continue
		}
		m.pos[col] = i
		m.orig[col] = h
	}

	var missing []string
	for _, c := range schema.Columns {
		if _, ok := m.pos[c.Name]; !ok {
			missing = append(missing, c.Name)
		}
	}

	if len(missing) > 0 || len(extra) > 0 {
		return nil, &SchemaMismatchError{
			TableKey: schema.Key,
			Missing:  missing,
			Extra:    extra,
		}
	}
	return m, nil
}

// Header returns the original uploaded header mapped to a schema column.
func (m *ColumnMapping) Header(column string) string {
	return m.orig[column]
}

// cell returns the raw cell for a schema column, cleaned, with ok=false when
// the row is too short to contain it.
func (m *ColumnMapping) cell(row []string, column string) (string, bool) {
	i, ok := m.pos[column]
	if !ok || i >= len(row) {
		return "", false
	}
	return CleanCell(row[i]), true
}

// SchemaMismatchError reports headers that could not be reconciled with the
// target schema. Fatal for the upload: no rows are processed.
type SchemaMismatchError struct {
	TableKey string
	Missing  []string
	Extra    []string
}

func (e *SchemaMismatchError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unrecognized columns: %s", strings.Join(e.Extra, ", ")))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("schema mismatch for table %s", e.TableKey)
	}
	return fmt.Sprintf("schema mismatch for table %s: %s", e.TableKey, strings.Join(parts, "; "))
}
