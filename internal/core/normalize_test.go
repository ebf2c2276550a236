package core

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase passthrough", "name", "name"},
		{"uppercase", "NAME", "name"},
		{"spaces stripped", "Log Date", "logdate"},
		{"underscores stripped", "log_date", "logdate"},
		{"hyphens stripped", "LOG-DATE", "logdate"},
		{"mixed separators", "Log_Date-Export ", "logdateexport"},
		{"tabs and newlines", "log\tdate\n", "logdate"},
		{"empty", "", ""},
		{"separators only", " _- ", ""},
		{"digits kept", "Policy ID 2", "policyid2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeNameEquivalence(t *testing.T) {
	// All spellings of the same column must collapse to one form.
	variants := []string{"Log Date", "log_date", "LOG-DATE", "logdate", "LogDate"}
	want := NormalizeName(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeName(v); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", v, got, want)
		}
	}
}
