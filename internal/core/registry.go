package core

import (
	"fmt"
	"strings"
)

// Registry is the immutable catalog of target tables. It is constructed once
// at process start and passed explicitly to the components that need it;
// there is no ambient global.
type Registry struct {
	tables map[string]TableSchema
	// order preserves registration order, which doubles as the alias
	// resolution priority.
	order []string
}

// NewRegistry builds a registry from the given schemas. Registration order
// fixes the table resolution priority. It returns an error if a key is
// duplicated, a primary key references an unknown column, or a schema has no
// columns or no primary key.
func NewRegistry(schemas ...TableSchema) (*Registry, error) {
	r := &Registry{tables: make(map[string]TableSchema, len(schemas))}

	for _, s := range schemas {
		if s.Key == "" {
			return nil, fmt.Errorf("schema %q: empty table key", s.QualifiedName)
		}
		if _, exists := r.tables[s.Key]; exists {
			return nil, fmt.Errorf("table already registered: %s", s.Key)
		}
		if len(s.Columns) == 0 {
			return nil, fmt.Errorf("table %s: no columns", s.Key)
		}
		if len(s.PrimaryKeys) == 0 {
			return nil, fmt.Errorf("table %s: no primary key", s.Key)
		}
		for _, pk := range s.PrimaryKeys {
			if _, ok := s.Column(pk); !ok {
				return nil, fmt.Errorf("table %s: primary key %q is not a column", s.Key, pk)
			}
		}
		seen := make(map[string]bool, len(s.Columns))
		for _, c := range s.Columns {
			if seen[c.Name] {
				return nil, fmt.Errorf("table %s: duplicate column %q", s.Key, c.Name)
			}
			seen[c.Name] = true
		}
		r.tables[s.Key] = s
		r.order = append(r.order, s.Key)
	}

	return r, nil
}

// MustNewRegistry is NewRegistry that panics on error. Use only for static
// built-in catalogs where a failure is a programmer error.
func MustNewRegistry(schemas ...TableSchema) *Registry {
	r, err := NewRegistry(schemas...)
	if err != nil {
		panic(fmt.Sprintf("build schema registry: %v", err))
	}
	return r
}

// Get returns the schema registered under key.
func (r *Registry) Get(key string) (TableSchema, bool) {
	s, ok := r.tables[key]
	return s, ok
}

// All returns all schemas in registration order.
func (r *Registry) All() []TableSchema {
	result := make([]TableSchema, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.tables[key])
	}
	return result
}

// Count returns the number of registered tables.
func (r *Registry) Count() int {
	return len(r.tables)
}

// Resolve infers the target table from an uploaded file's name. The filename
// is normalized and each table's aliases are tested as substrings, in
// registration order; the first match wins. ok is false if no alias matches.
func (r *Registry) Resolve(filename string) (TableSchema, bool) {
	normalized := NormalizeName(filename)

	for _, key := range r.order {
		s := r.tables[key]
		for _, alias := range s.Aliases {
			if alias == "" {
				continue
			}
			if strings.Contains(normalized, NormalizeName(alias)) {
				return s, true
			}
		}
	}
	return TableSchema{}, false
}
