package store

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/CurtisDeCastro/csv-upsert/internal/core"
)

func guestLogSchema() core.TableSchema {
	return core.TableSchema{
		Key:           "guest_log",
		QualifiedName: "ANALYTICS.PUBLIC.GUEST_LOG",
		Columns: []core.Column{
			{Name: "NAME", Type: core.TypeString},
			{Name: "LOG_DATE", Type: core.TypeDate},
		},
		PrimaryKeys: []string{"NAME", "LOG_DATE"},
	}
}

func orgSchema() core.TableSchema {
	return core.TableSchema{
		Key:           "org_entities",
		QualifiedName: "ANALYTICS.PUBLIC.ORG_ENTITIES",
		Columns: []core.Column{
			{Name: "ID", Type: core.TypeString},
			{Name: "NAME", Type: core.TypeString},
			{Name: "ANNUAL_REVENUE", Type: core.TypeFloat},
		},
		PrimaryKeys: []string{"ID"},
	}
}

func strVal(s string) core.Value {
	return core.Value{Type: core.TypeString, Valid: true, Str: s}
}

func TestBuildFetchQuery(t *testing.T) {
	schema := guestLogSchema()
	keys := [][]core.Value{
		{strVal("A"), strVal("2024-01-01")},
		{strVal("B"), strVal("2024-01-02")},
	}

	query, args := buildFetchQuery(schema, keys)

	want := `SELECT "name", "log_date" FROM "public"."guest_log" WHERE ` +
		`("name" = $1 AND "log_date" = $2) OR ("name" = $3 AND "log_date" = $4)`
	if query != want {
		t.Errorf("query = %s\nwant    %s", query, want)
	}
	if len(args) != 4 {
		t.Errorf("args = %d, want 4", len(args))
	}
}

func TestBuildInsertQuery(t *testing.T) {
	query := buildInsertQuery(orgSchema())

	want := `INSERT INTO "public"."org_entities" ("id", "name", "annual_revenue") VALUES ($1, $2, $3)`
	if query != want {
		t.Errorf("query = %s\nwant    %s", query, want)
	}
}

func TestBuildUpdateQuery(t *testing.T) {
	query, ok := buildUpdateQuery(orgSchema())
	if !ok {
		t.Fatal("buildUpdateQuery found no non-key columns")
	}

	want := `UPDATE "public"."org_entities" SET "name" = $1, "annual_revenue" = $2 WHERE "id" = $3`
	if query != want {
		t.Errorf("query = %s\nwant    %s", query, want)
	}
}

func TestBuildUpdateQueryAllKeyColumns(t *testing.T) {
	// guest_log's columns are all part of the primary key, so there is
	// nothing to rewrite.
	if _, ok := buildUpdateQuery(guestLogSchema()); ok {
		t.Error("buildUpdateQuery ok = true for an all-key schema")
	}
}

func TestQueriesNeverEmbedValues(t *testing.T) {
	schema := orgSchema()
	hostile := strVal(`x'); DROP TABLE students;--`)

	query, _ := buildFetchQuery(schema, [][]core.Value{{hostile}})
	if strings.Contains(query, "DROP TABLE") {
		t.Errorf("value leaked into query text: %s", query)
	}
}

func TestToParam(t *testing.T) {
	tests := []struct {
		name string
		v    core.Value
		want any
	}{
		{"string", strVal("x"), pgtype.Text{String: "x", Valid: true}},
		{"null string", core.Null(core.TypeString), pgtype.Text{}},
		{"integer", core.Value{Type: core.TypeInteger, Valid: true, Int: 7}, pgtype.Int8{Int64: 7, Valid: true}},
		{"float", core.Value{Type: core.TypeFloat, Valid: true, Float: 1.5}, pgtype.Float8{Float64: 1.5, Valid: true}},
		{"bool", core.Value{Type: core.TypeBoolean, Valid: true, Bool: true}, pgtype.Bool{Bool: true, Valid: true}},
		{"null float", core.Null(core.TypeFloat), pgtype.Float8{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := toParam(tt.v); got != tt.want {
				t.Errorf("toParam = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTableName(t *testing.T) {
	tests := []struct {
		qualified string
		want      string
	}{
		{"ANALYTICS.PUBLIC.GUEST_LOG", `"public"."guest_log"`},
		{"public.guest_log", `"public"."guest_log"`},
		{"guest_log", `"guest_log"`},
	}

	for _, tt := range tests {
		schema := core.TableSchema{QualifiedName: tt.qualified}
		if got := tableName(schema); got != tt.want {
			t.Errorf("tableName(%q) = %s, want %s", tt.qualified, got, tt.want)
		}
	}
}
