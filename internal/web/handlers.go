package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/CurtisDeCastro/csv-upsert/internal/core"
	"github.com/CurtisDeCastro/csv-upsert/internal/logging"
)

// tableInfo is the JSON shape for table listings.
type tableInfo struct {
	Key         string   `json:"key"`
	Table       string   `json:"table"`
	Columns     []string `json:"columns"`
	PrimaryKeys []string `json:"primaryKeys"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	schemas := s.service.Tables()
	infos := make([]tableInfo, len(schemas))
	for i, sc := range schemas {
		infos[i] = tableInfo{
			Key:         sc.Key,
			Table:       sc.QualifiedName,
			Columns:     sc.ColumnNames(),
			PrimaryKeys: sc.PrimaryKeys,
		}
	}
	respondJSON(w, http.StatusOK, infos)
}

// handleUpload accepts a multipart CSV upload, runs the pipeline, and
// returns the upload report. The target table is inferred from the uploaded
// file's name.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.Upload.MaxFileSize+1))
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Upload.Timeout)
	defer cancel()

	report, err := s.service.ProcessUpload(ctx, header.Filename, data)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logger.Info("upload processed",
		"upload_id", report.UploadID,
		"file", report.FileName,
		"table", report.TableKey,
		"inserted", report.Result.Inserted,
		"updated", report.Result.Updated,
		"skipped", report.Result.Skipped,
		"rejected", len(report.Rejected),
		"duration", report.Duration,
	)

	respondJSON(w, http.StatusOK, report)
}

// statusFor maps pipeline errors to HTTP status codes: client-fixable
// conditions are 4xx, everything else 500.
func statusFor(err error) int {
	var (
		unrecognized *core.UnrecognizedFileError
		mismatch     *core.SchemaMismatchError
		allInvalid   *core.AllRowsInvalidError
	)
	switch {
	case errors.As(err, &unrecognized), errors.As(err, &mismatch), errors.As(err, &allInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrEmptyFile), errors.Is(err, core.ErrNoDataRows):
		return http.StatusBadRequest
	case strings.Contains(err.Error(), "file too large"):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
