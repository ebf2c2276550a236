package core

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// DefaultMaxFileSize caps uploads at 100MB unless configured otherwise.
const DefaultMaxFileSize int64 = 100 * 1024 * 1024

// Service wires the registry and store into the upload pipeline. It holds no
// mutable state beyond the read-only registry; every upload's working data is
// local to one ProcessUpload call.
type Service struct {
	registry    *Registry
	store       Store
	maxFileSize int64
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithMaxFileSize overrides the upload size limit.
func WithMaxFileSize(n int64) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// NewService creates a Service over the given registry and store.
func NewService(registry *Registry, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		registry:    registry,
		store:       store,
		maxFileSize: DefaultMaxFileSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tables returns the registered schemas for listing surfaces.
func (s *Service) Tables() []TableSchema {
	return s.registry.All()
}

// ProcessUpload runs the full pipeline for one uploaded CSV: table
// resolution, column mapping, row validation, and reconciliation against the
// store. Fatal conditions (unrecognized file, schema mismatch, all rows
// invalid, store write failure) return an error and issue no further writes;
// per-row rejections are aggregated into the report and processing continues.
func (s *Service) ProcessUpload(ctx context.Context, fileName string, data []byte) (*UploadReport, error) {
	start := time.Now()

	if int64(len(data)) > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (limit %d)", len(data), s.maxFileSize)
	}

	schema, ok := s.registry.Resolve(fileName)
	if !ok {
		return nil, &UnrecognizedFileError{FileName: fileName}
	}

	records, err := parseCSV(sanitizeUTF8(data))
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := records[0]
	dataRows := records[1:]

	mapping, err := BuildMapping(headers, schema)
	if err != nil {
		return nil, err
	}

	var (
		valid    []Row
		rejected []RejectedRow
		total    int
	)
	for i, raw := range dataRows {
		if isEmptyRow(raw) {
			continue
		}
		total++
		line := i + 2 // 1-indexed, after header

		row, reject := ValidateRow(line, raw, mapping)
		if reject != nil {
			rejected = append(rejected, *reject)
			continue
		}
		valid = append(valid, row)
	}

	if total == 0 {
		return nil, ErrNoDataRows
	}
	if len(valid) == 0 {
		return nil, &AllRowsInvalidError{TableKey: schema.Key, Rejected: rejected}
	}

	result, err := Reconcile(ctx, s.store, schema, valid)
	if err != nil {
		return nil, err
	}

	return &UploadReport{
		UploadID:  uuid.NewString(),
		FileName:  fileName,
		TableKey:  schema.Key,
		Table:     schema.QualifiedName,
		TotalRows: total,
		Rejected:  rejected,
		Result:    result,
		Duration:  time.Since(start),
	}, nil
}

// sanitizeUTF8 replaces invalid byte sequences with the Unicode replacement
// character so the CSV reader never chokes on encoding junk.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}

// utf8BOM is the byte-order mark Excel prepends to UTF-8 exports. It is valid
// UTF-8, so it must be stripped explicitly or it corrupts the first header.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
