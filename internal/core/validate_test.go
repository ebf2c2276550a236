package core

import (
	"strings"
	"testing"
)

func riskSchema() TableSchema {
	return TableSchema{
		Key:           "policy_risk",
		QualifiedName: "ANALYTICS.PUBLIC.POLICY_RISK_DATA",
		Columns: []Column{
			{Name: "POLICY_ID", Type: TypeString},
			{Name: "PREMIUM", Type: TypeFloat},
			{Name: "CLAIM_COUNT", Type: TypeInteger},
			{Name: "IS_ACTIVE", Type: TypeBoolean},
			{Name: "EFFECTIVE_DATE", Type: TypeDate},
			{Name: "UPDATED_AT", Type: TypeDateTime},
		},
		PrimaryKeys: []string{"POLICY_ID"},
	}
}

func riskMapping(t *testing.T) *ColumnMapping {
	t.Helper()
	m, err := BuildMapping(
		[]string{"Policy ID", "Premium", "Claim Count", "Is Active", "Effective Date", "Updated At"},
		riskSchema(),
	)
	if err != nil {
		t.Fatalf("BuildMapping: %v", err)
	}
	return m
}

func TestValidateRowValid(t *testing.T) {
	m := riskMapping(t)

	row, reject := ValidateRow(2,
		[]string{"P-100", "$1,250.00", "3.0", "yes", "2024-01-01", "2024-01-01 12:00:00"}, m)
	if reject != nil {
		t.Fatalf("rejected: %s", reject.Reason)
	}

	if got := row["POLICY_ID"].Str; got != "P-100" {
		t.Errorf("POLICY_ID = %q, want P-100", got)
	}
	if got := row["PREMIUM"].Float; got != 1250 {
		t.Errorf("PREMIUM = %v, want 1250", got)
	}
	if got := row["CLAIM_COUNT"].Int; got != 3 {
		t.Errorf("CLAIM_COUNT = %d, want 3", got)
	}
	if !row["IS_ACTIVE"].Bool {
		t.Error("IS_ACTIVE = false, want true")
	}
	if got := row["EFFECTIVE_DATE"].Canonical(); got != "2024-01-01" {
		t.Errorf("EFFECTIVE_DATE = %q, want 2024-01-01", got)
	}
	if got := row["UPDATED_AT"].Canonical(); got != "2024-01-01T12:00:00Z" {
		t.Errorf("UPDATED_AT = %q, want 2024-01-01T12:00:00Z", got)
	}
}

func TestValidateRowRejections(t *testing.T) {
	m := riskMapping(t)
	good := []string{"P-1", "100", "0", "no", "2024-01-01", "2024-01-01T00:00:00Z"}

	tests := []struct {
		name       string
		column     int
		value      string
		wantReason string
	}{
		{"missing value", 0, "", "Missing value in column 'Policy ID'"},
		{"whitespace is missing", 1, "   ", "Missing value in column 'Premium'"},
		{"invalid number", 1, "lots", "Invalid number in column 'Premium'"},
		{"non-integer", 2, "2.5", "Non-integer value in column 'Claim Count'"},
		{"invalid integer", 2, "many", "Invalid integer in column 'Claim Count'"},
		{"invalid boolean", 3, "maybe", "Invalid boolean in column 'Is Active'"},
		{"invalid date", 4, "13/45/2024", "Invalid date in column 'Effective Date'"},
		{"invalid datetime", 5, "sometime", "Invalid datetime in column 'Updated At'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := append([]string(nil), good...)
			raw[tt.column] = tt.value

			row, reject := ValidateRow(5, raw, m)
			if reject == nil {
				t.Fatalf("row validated, want rejection %q", tt.wantReason)
			}
			if row != nil {
				t.Error("got both a row and a rejection")
			}
			if reject.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reject.Reason, tt.wantReason)
			}
			if reject.Line != 5 {
				t.Errorf("line = %d, want 5", reject.Line)
			}
		})
	}
}

func TestValidateRowShortCircuits(t *testing.T) {
	m := riskMapping(t)

	// Two faults: the reason must name only the first column in schema order.
	_, reject := ValidateRow(2,
		[]string{"", "bad", "bad", "bad", "bad", "bad"}, m)
	if reject == nil {
		t.Fatal("row validated, want rejection")
	}
	if !strings.Contains(reject.Reason, "Policy ID") {
		t.Errorf("reason %q does not name the first failing column", reject.Reason)
	}
}

func TestValidateRowShortRow(t *testing.T) {
	m := riskMapping(t)

	// A truncated row is missing its trailing columns.
	_, reject := ValidateRow(2, []string{"P-1", "100"}, m)
	if reject == nil {
		t.Fatal("row validated, want rejection")
	}
	if !strings.HasPrefix(reject.Reason, "Missing value in column") {
		t.Errorf("reason = %q, want missing-value fault", reject.Reason)
	}
}
