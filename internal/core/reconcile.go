package core

// reconcile.go classifies validated rows against rows already persisted under
// the same primary key and issues the resulting writes.
//
// Classification:
//   - no existing row for the key  -> new (insert)
//   - key matches, every non-key column equal -> identical (skip)
//   - key matches, any column differs -> changed (update, all columns rewritten)
//
// Writes are sequential and independent; a store failure aborts the rest of
// the batch and surfaces as-is. There is no compensating rollback.

import (
	"context"
	"fmt"
	"strings"
)

// keySeparator joins canonical primary-key values into a batch-local lookup
// key. Unit separator keeps composite keys unambiguous.
const keySeparator = "\x1f"

// primaryKey returns the row's primary-key values in schema key order.
func primaryKey(schema TableSchema, row Row) []Value {
	key := make([]Value, len(schema.PrimaryKeys))
	for i, pk := range schema.PrimaryKeys {
		key[i] = row[pk]
	}
	return key
}

func keyString(key []Value) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = v.Canonical()
	}
	return strings.Join(parts, keySeparator)
}

// Reconcile deduplicates rows on primary key (first occurrence wins), fetches
// the existing rows sharing those keys, classifies each incoming row, and
// performs the inserts and updates. If the store holds nothing under any
// batch key the diff is skipped and the whole batch is inserted as new.
func Reconcile(ctx context.Context, store Store, schema TableSchema, rows []Row) (ReconciliationResult, error) {
	result := ReconciliationResult{Columns: schema.ColumnNames()}

	// Dedupe on the primary-key tuple. Later in-batch duplicates are dropped
	// silently before the store is consulted.
	var (
		batch []Row
		keys  [][]Value
		seen  = make(map[string]bool, len(rows))
	)
	for _, row := range rows {
		key := primaryKey(schema, row)
		ks := keyString(key)
		if seen[ks] {
			continue
		}
		seen[ks] = true
		batch = append(batch, row)
		keys = append(keys, key)
	}

	if len(batch) == 0 {
		return result, nil
	}

	existing, err := store.FetchRows(ctx, schema, keys)
	if err != nil {
		return result, fmt.Errorf("fetch existing rows: %w", err)
	}

	byKey := make(map[string]Row, len(existing))
	for _, row := range existing {
		byKey[keyString(primaryKey(schema, row))] = row
	}

	for _, row := range batch {
		key := primaryKey(schema, row)

		current, found := byKey[keyString(key)]
		if !found {
			if err := store.InsertRow(ctx, schema, row); err != nil {
				return result, fmt.Errorf("insert row (%s): %w", keyString(key), err)
			}
			result.Inserted++
			result.NewRows = append(result.NewRows, row.Cells(schema))
			continue
		}

		if rowsIdentical(schema, row, current) {
			result.Skipped++
			result.SkippedRows = append(result.SkippedRows, row.Cells(schema))
			continue
		}

		if err := store.UpdateRow(ctx, schema, key, row); err != nil {
			return result, fmt.Errorf("update row (%s): %w", keyString(key), err)
		}
		result.Updated++
		result.UpdatedRows = append(result.UpdatedRows, row.Cells(schema))
	}

	return result, nil
}

// rowsIdentical compares every non-key column, stopping at the first
// mismatch.
func rowsIdentical(schema TableSchema, incoming, current Row) bool {
	for _, col := range schema.Columns {
		if schema.IsPrimaryKey(col.Name) {
			continue
		}
		if !incoming[col.Name].Equal(current[col.Name]) {
			return false
		}
	}
	return true
}
