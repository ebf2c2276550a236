package tables

import (
	"testing"

	"github.com/CurtisDeCastro/csv-upsert/internal/core"
)

func TestRegistryBuilds(t *testing.T) {
	r := Registry()
	if r.Count() != 3 {
		t.Fatalf("Count = %d, want 3", r.Count())
	}

	for _, key := range []string{"guest_log", "org_entities", "policy_risk"} {
		if _, ok := r.Get(key); !ok {
			t.Errorf("table %s not registered", key)
		}
	}
}

func TestResolutionPriority(t *testing.T) {
	r := Registry()

	tests := []struct {
		filename string
		wantKey  string
		wantOK   bool
	}{
		{"2024_GuestLog_Export.csv", "guest_log", true},
		{"org entities 2024.csv", "org_entities", true},
		{"PolicyRisk_Q3.csv", "policy_risk", true},
		{"policy-extract.csv", "policy_risk", true},
		{"random.csv", "", false},
	}

	for _, tt := range tests {
		schema, ok := r.Resolve(tt.filename)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.filename, ok, tt.wantOK)
			continue
		}
		if ok && schema.Key != tt.wantKey {
			t.Errorf("Resolve(%q) = %q, want %q", tt.filename, schema.Key, tt.wantKey)
		}
	}
}

func TestPolicyRiskSpansAllTypes(t *testing.T) {
	schema := PolicyRisk()
	if len(schema.Columns) != 24 {
		t.Errorf("PolicyRisk has %d columns, want 24", len(schema.Columns))
	}

	seen := make(map[core.SemanticType]bool)
	for _, c := range schema.Columns {
		seen[c.Type] = true
	}
	for _, typ := range []core.SemanticType{
		core.TypeString, core.TypeInteger, core.TypeFloat,
		core.TypeBoolean, core.TypeDate, core.TypeDateTime,
	} {
		if !seen[typ] {
			t.Errorf("PolicyRisk missing a %s column", typ)
		}
	}
}

func TestOrgEntitiesShape(t *testing.T) {
	schema := OrgEntities()
	if len(schema.Columns) != 14 {
		t.Errorf("OrgEntities has %d columns, want 14", len(schema.Columns))
	}
	if len(schema.PrimaryKeys) != 1 || schema.PrimaryKeys[0] != "ID" {
		t.Errorf("OrgEntities PK = %v, want [ID]", schema.PrimaryKeys)
	}
	for _, c := range schema.Columns {
		if c.Type != core.TypeString && c.Type != core.TypeFloat {
			t.Errorf("OrgEntities column %s has type %s, want string or float", c.Name, c.Type)
		}
	}
}
