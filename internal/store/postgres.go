// Package store implements the persisted-store capability over PostgreSQL
// using pgx. All values travel as statement parameters; no value is ever
// formatted into query text.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/CurtisDeCastro/csv-upsert/internal/core"
)

// DBTX is the database handle the store needs. Satisfied by both
// *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Postgres is a core.Store backed by a PostgreSQL database.
type Postgres struct {
	db DBTX
}

// New creates a Postgres store over the given handle.
func New(db DBTX) *Postgres {
	return &Postgres{db: db}
}

var _ core.Store = (*Postgres)(nil)

// FetchRows looks up existing rows by primary-key tuple: one OR-of-ANDs
// filter covering every key in the batch, fully parameterized.
func (p *Postgres) FetchRows(ctx context.Context, schema core.TableSchema, keys [][]core.Value) ([]core.Row, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	query, args := buildFetchQuery(schema, keys)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", schema.Key, err)
	}
	defer rows.Close()

	var result []core.Row
	for rows.Next() {
		row, err := scanRow(rows, schema)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.Key, err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", schema.Key, err)
	}
	return result, nil
}

// InsertRow inserts one row with all schema columns.
func (p *Postgres) InsertRow(ctx context.Context, schema core.TableSchema, row core.Row) error {
	query := buildInsertQuery(schema)

	args := make([]any, len(schema.Columns))
	for i, c := range schema.Columns {
		args[i] = toParam(row[c.Name])
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", schema.Key, err)
	}
	return nil
}

// UpdateRow rewrites every non-key column of the row identified by key.
func (p *Postgres) UpdateRow(ctx context.Context, schema core.TableSchema, key []core.Value, row core.Row) error {
	query, ok := buildUpdateQuery(schema)
	if !ok {
		// Every column is part of the key; nothing to rewrite.
		return nil
	}

	var args []any
	for _, c := range schema.Columns {
		if schema.IsPrimaryKey(c.Name) {
			continue
		}
		args = append(args, toParam(row[c.Name]))
	}
	for _, v := range key {
		args = append(args, toParam(v))
	}

	if _, err := p.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("update %s: %w", schema.Key, err)
	}
	return nil
}

// buildFetchQuery renders the multi-key SELECT and its parameter list.
func buildFetchQuery(schema core.TableSchema, keys [][]core.Value) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	for i, c := range schema.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ident(c.Name))
	}
	b.WriteString(" FROM ")
	b.WriteString(tableName(schema))
	b.WriteString(" WHERE ")

	var args []any
	n := 1
	for i, key := range keys {
		if i > 0 {
			b.WriteString(" OR ")
		}
		b.WriteString("(")
		for j, pk := range schema.PrimaryKeys {
			if j > 0 {
				b.WriteString(" AND ")
			}
			fmt.Fprintf(&b, "%s = $%d", ident(pk), n)
			args = append(args, toParam(key[j]))
			n++
		}
		b.WriteString(")")
	}

	return b.String(), args
}

func buildInsertQuery(schema core.TableSchema) string {
	var cols, params []string
	for i, c := range schema.Columns {
		cols = append(cols, ident(c.Name))
		params = append(params, fmt.Sprintf("$%d", i+1))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		tableName(schema), strings.Join(cols, ", "), strings.Join(params, ", "))
}

// buildUpdateQuery renders the by-key UPDATE. ok is false when the schema has
// no non-key columns.
func buildUpdateQuery(schema core.TableSchema) (string, bool) {
	var sets []string
	n := 1
	for _, c := range schema.Columns {
		if schema.IsPrimaryKey(c.Name) {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = $%d", ident(c.Name), n))
		n++
	}
	if len(sets) == 0 {
		return "", false
	}

	var where []string
	for _, pk := range schema.PrimaryKeys {
		where = append(where, fmt.Sprintf("%s = $%d", ident(pk), n))
		n++
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		tableName(schema), strings.Join(sets, ", "), strings.Join(where, " AND ")), true
}

// tableName renders the schema-qualified table identifier. Qualified names
// are database.schema.table triples; PostgreSQL addresses the last two parts.
func tableName(schema core.TableSchema) string {
	parts := strings.Split(schema.QualifiedName, ".")
	if len(parts) > 2 {
		parts = parts[len(parts)-2:]
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = ident(p)
	}
	return strings.Join(quoted, ".")
}

// ident quotes an identifier, lowercased to match unquoted DDL.
func ident(name string) string {
	return `"` + strings.ReplaceAll(strings.ToLower(name), `"`, `""`) + `"`
}

// toParam converts a core.Value into a pgtype parameter. Null values map to
// invalid pgtype values, which pgx sends as SQL NULL.
func toParam(v core.Value) any {
	switch v.Type {
	case core.TypeString:
		return pgtype.Text{String: v.Str, Valid: v.Valid}
	case core.TypeInteger:
		return pgtype.Int8{Int64: v.Int, Valid: v.Valid}
	case core.TypeFloat:
		return pgtype.Float8{Float64: v.Float, Valid: v.Valid}
	case core.TypeBoolean:
		return pgtype.Bool{Bool: v.Bool, Valid: v.Valid}
	case core.TypeDate:
		return pgtype.Date{Time: v.Time, Valid: v.Valid}
	case core.TypeDateTime:
		return pgtype.Timestamptz{Time: v.Time, Valid: v.Valid}
	default:
		return pgtype.Text{String: v.Str, Valid: v.Valid}
	}
}

// scanRow scans one result row into typed core values, per-column by
// semantic type.
func scanRow(rows pgx.Rows, schema core.TableSchema) (core.Row, error) {
	targets := make([]any, len(schema.Columns))
	texts := make([]pgtype.Text, len(schema.Columns))
	ints := make([]pgtype.Int8, len(schema.Columns))
	floats := make([]pgtype.Float8, len(schema.Columns))
	bools := make([]pgtype.Bool, len(schema.Columns))
	dates := make([]pgtype.Date, len(schema.Columns))
	stamps := make([]pgtype.Timestamptz, len(schema.Columns))

	for i, c := range schema.Columns {
		switch c.Type {
		case core.TypeInteger:
			targets[i] = &ints[i]
		case core.TypeFloat:
			targets[i] = &floats[i]
		case core.TypeBoolean:
			targets[i] = &bools[i]
		case core.TypeDate:
			targets[i] = &dates[i]
		case core.TypeDateTime:
			targets[i] = &stamps[i]
		default:
			targets[i] = &texts[i]
		}
	}

	if err := rows.Scan(targets...); err != nil {
		return nil, err
	}

	row := make(core.Row, len(schema.Columns))
	for i, c := range schema.Columns {
		switch c.Type {
		case core.TypeInteger:
			row[c.Name] = core.Value{Type: core.TypeInteger, Valid: ints[i].Valid, Int: ints[i].Int64}
		case core.TypeFloat:
			row[c.Name] = core.Value{Type: core.TypeFloat, Valid: floats[i].Valid, Float: floats[i].Float64}
		case core.TypeBoolean:
			row[c.Name] = core.Value{Type: core.TypeBoolean, Valid: bools[i].Valid, Bool: bools[i].Bool}
		case core.TypeDate:
			row[c.Name] = core.Value{Type: core.TypeDate, Valid: dates[i].Valid, Time: dates[i].Time}
		case core.TypeDateTime:
			row[c.Name] = core.Value{Type: core.TypeDateTime, Valid: stamps[i].Valid, Time: stamps[i].Time}
		default:
			row[c.Name] = core.Value{Type: core.TypeString, Valid: texts[i].Valid, Str: texts[i].String}
		}
	}
	return row, nil
}
