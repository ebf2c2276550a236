package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"unrecognized file", &UnrecognizedFileError{FileName: "random.csv"}, "TBL001"},
		{"schema mismatch", &SchemaMismatchError{TableKey: "guest_log", Missing: []string{"NAME"}}, "VAL010"},
		{"all rows invalid", &AllRowsInvalidError{TableKey: "guest_log"}, "VAL011"},
		{"empty file", ErrEmptyFile, "FILE005"},
		{"no data rows", ErrNoDataRows, "FILE005"},
		{"wrapped empty file", fmt.Errorf("upload: %w", ErrEmptyFile), "FILE005"},
		{"file too large", errors.New("file too large: 200 bytes (limit 10)"), "FILE001"},
		{"csv parse", errors.New("parse CSV: record on line 2"), "FILE002"},
		{"connection refused", errors.New("dial tcp: connection refused"), "DB004"},
		{"timeout", errors.New("context deadline exceeded"), "DB006"},
		{"unknown", errors.New("boom"), "GEN001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %s, want %s", tt.err, msg.Code, tt.wantCode)
			}
			if msg.Message == "" {
				t.Error("empty user message")
			}
		})
	}
}

func TestSchemaMismatchErrorMessage(t *testing.T) {
	err := &SchemaMismatchError{
		TableKey: "guest_log",
		Missing:  []string{"LOG_DATE"},
		Extra:    []string{"badge", "floor"},
	}

	msg := err.Error()
	for _, want := range []string{"guest_log", "LOG_DATE", "badge", "floor"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
}
