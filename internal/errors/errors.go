package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ManifestLoadFailed indicates package.json could not be read or parsed.
	// Never fatal: the run continues with an empty dependency set.
	ManifestLoadFailed ErrorCode = "MANIFEST_LOAD_FAILED"
	// ParseFailed indicates a source file has syntax errors
	ParseFailed ErrorCode = "PARSE_FAILED"
	// FileIOFailed indicates a read, write or rename failure
	FileIOFailed ErrorCode = "FILE_IO_FAILED"
	// UnsupportedLanguage indicates a file extension with no grammar
	UnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	// ConfigInvalid indicates invalid configuration
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// InternalError indicates unexpected error
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixActionType represents the type of fix action
type FixActionType string

const (
	// RunCommand suggests running a command
	RunCommand FixActionType = "run-command"
	// EditFile suggests editing a file by hand
	EditFile FixActionType = "edit-file"
)

// FixAction represents a suggested fix for an error
type FixAction struct {
	Type        FixActionType `json:"type" yaml:"type" toml:"type"`
	Command     string        `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Safe        bool          `json:"safe,omitempty" yaml:"safe,omitempty" toml:"safe,omitempty"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// ImportfixError represents an error with code, message, and suggestions
type ImportfixError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	Path           string      `json:"path,omitempty"`
	Details        interface{} `json:"details,omitempty"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error       // Underlying error (not exported to JSON)
}

// New creates a new ImportfixError with the default suggested fixes for its code.
func New(code ErrorCode, message string, cause error) *ImportfixError {
	return &ImportfixError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: GetSuggestedFixes(code),
	}
}

// ForFile creates a file-scoped error.
func ForFile(code ErrorCode, path string, cause error) *ImportfixError {
	err := New(code, messageFor(code), cause)
	err.Path = path
	return err
}

// Error implements the error interface
func (e *ImportfixError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ImportfixError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *ImportfixError) WithDetails(details interface{}) *ImportfixError {
	e.Details = details
	return e
}

// CodeOf returns the code of the first ImportfixError in err's chain,
// or InternalError when there is none.
func CodeOf(err error) ErrorCode {
	var ie *ImportfixError
	if stderrors.As(err, &ie) {
		return ie.Code
	}
	return InternalError
}

// HasCode reports whether err's chain carries an ImportfixError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var ie *ImportfixError
	return stderrors.As(err, &ie) && ie.Code == code
}

func messageFor(code ErrorCode) string {
	switch code {
	case ManifestLoadFailed:
		return "could not load package manifest"
	case ParseFailed:
		return "source file has syntax errors"
	case FileIOFailed:
		return "file I/O failed"
	case UnsupportedLanguage:
		return "unsupported file type"
	case ConfigInvalid:
		return "invalid configuration"
	default:
		return "internal error"
	}
}

// ErrorActions maps error codes to suggested fix actions
var ErrorActions = map[ErrorCode][]FixAction{
	ManifestLoadFailed: {
		{
			Type:        RunCommand,
			Command:     "importfix convert --manifest <path/to/package.json>",
			Safe:        true,
			Description: "Point importfix at the project's package.json",
		},
	},
	ParseFailed: {
		{
			Type:        EditFile,
			Description: "Fix the syntax errors; the file was left unchanged",
		},
	},
	ConfigInvalid: {
		{
			Type:        RunCommand,
			Command:     "importfix init --force",
			Safe:        false,
			Description: "Regenerate .importfix.toml with defaults",
		},
	},
}

// GetSuggestedFixes returns suggested fixes for an error code
func GetSuggestedFixes(code ErrorCode) []FixAction {
	if fixes, ok := ErrorActions[code]; ok {
		return fixes
	}
	return nil
}
