package core

// errors.go defines the fatal upload error taxonomy and maps internal errors
// to user-facing messages with support codes.
//
// Fatal conditions stop the upload before any write:
//
//	TBL001 - UnrecognizedFile: no table could be inferred from the file name
//	VAL010 - SchemaMismatch: missing and/or extra columns in the header row
//	VAL011 - AllRowsInvalid: every data row was rejected
//	FILE001 - file exceeds the configured size limit
//	FILE002 - file is not parseable CSV
//	FILE005 - file has no data rows
//
// Per-row rejections are not errors; they ride along in the UploadReport.

import (
	"errors"
	"fmt"
	"strings"
)

// UnrecognizedFileError means table resolution found no alias in the file
// name. Fatal for the upload, no rows processed.
type UnrecognizedFileError struct {
	FileName string
}

func (e *UnrecognizedFileError) Error() string {
	return fmt.Sprintf("unrecognized file %q: no known table alias in name", e.FileName)
}

// AllRowsInvalidError means validation rejected every data row; zero writes
// were issued.
type AllRowsInvalidError struct {
	TableKey string
	Rejected []RejectedRow
}

func (e *AllRowsInvalidError) Error() string {
	return fmt.Sprintf("all %d rows invalid for table %s", len(e.Rejected), e.TableKey)
}

// ErrEmptyFile is returned when the upload contains no rows at all.
var ErrEmptyFile = errors.New("empty file")

// ErrNoDataRows is returned when the upload has a header but nothing under it.
var ErrNoDataRows = errors.New("no data rows after header")

// UserMessage is a user-facing rendering of an error: message, suggested
// action, and a code the user can quote to support.
type UserMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
}

// MapError converts an internal error into a UserMessage. Unknown errors get
// a generic message; the technical detail stays in the server logs.
func MapError(err error) UserMessage {
	var unrecognized *UnrecognizedFileError
	if errors.As(err, &unrecognized) {
		return UserMessage{
			Code:    "TBL001",
			Message: fmt.Sprintf("Could not determine a target table from %q.", unrecognized.FileName),
			Action:  "Include the table name in the file name, e.g. GuestLog_2024.csv.",
		}
	}

	var mismatch *SchemaMismatchError
	if errors.As(err, &mismatch) {
		return UserMessage{
			Code:    "VAL010",
			Message: mismatch.Error(),
			Action:  "Fix the header row so it carries exactly the table's columns.",
		}
	}

	var allInvalid *AllRowsInvalidError
	if errors.As(err, &allInvalid) {
		return UserMessage{
			Code:    "VAL011",
			Message: fmt.Sprintf("Every row failed validation (%d rows).", len(allInvalid.Rejected)),
			Action:  "Review the rejected-row reasons and correct the data.",
		}
	}

	switch {
	case errors.Is(err, ErrEmptyFile):
		return UserMessage{
			Code:    "FILE005",
			Message: "The uploaded file is empty.",
			Action:  "Upload a CSV with a header row and at least one data row.",
		}
	case errors.Is(err, ErrNoDataRows):
		return UserMessage{
			Code:    "FILE005",
			Message: "The uploaded file has no data rows.",
			Action:  "Upload a CSV with at least one row under the header.",
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "file too large"):
		return UserMessage{
			Code:    "FILE001",
			Message: "The file exceeds the maximum upload size.",
			Action:  "Split the file into smaller chunks.",
		}
	case strings.Contains(msg, "parse CSV"):
		return UserMessage{
			Code:    "FILE002",
			Message: "The file could not be parsed as CSV.",
			Action:  "Ensure the file is comma-separated UTF-8 text.",
		}
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "connection reset"):
		return UserMessage{
			Code:    "DB004",
			Message: "The database is unreachable.",
			Action:  "Try again in a few moments.",
		}
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "timeout"):
		return UserMessage{
			Code:    "DB006",
			Message: "The operation timed out.",
			Action:  "Try a smaller file or try again later.",
		}
	}

	return UserMessage{
		Code:    "GEN001",
		Message: "Something went wrong processing the upload.",
		Action:  "Try again; quote this code to support if it persists.",
	}
}
