// Package errors provides the standardized error type reported to the operator.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeTransport            ErrorCode = "TRANSPORT_ERROR"
	ErrCodeThemeNotFound        ErrorCode = "THEME_NOT_FOUND"
	ErrCodeInvalidThemeDocument ErrorCode = "INVALID_THEME_DOCUMENT"
	ErrCodeUnresolvedReference  ErrorCode = "UNRESOLVED_REFERENCE"
	ErrCodeWrite                ErrorCode = "WRITE_ERROR"
	ErrCodePromptFailed         ErrorCode = "PROMPT_FAILED"
	ErrCodeInvalidConfiguration ErrorCode = "INVALID_CONFIGURATION"
	ErrCodeInternal             ErrorCode = "INTERNAL_ERROR"
)

// Remediation hints shown to the operator.
const (
	HintCheckTenant = "please check your tenant domain and try again"
	HintCheckAPIKey = "please check your API Key and try again"
	HintCheckTheme  = "please check the theme name and try again"
	HintCheckOutput = "please check the output path and try again"
	HintCheckData   = "please check the theme variables and try again"
	HintCheckConfig = "please check your configuration and try again"
	HintTryAgain    = "please try again"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code        ErrorCode              `json:"code"`
	Message     string                 `json:"message"`
	Details     string                 `json:"details,omitempty"`
	Stage       string                 `json:"stage,omitempty"`
	Remediation string                 `json:"remediation,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
	cause       error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("StandardError[%s]: %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another StandardError by code, so errors.Is(err, &StandardError{Code: ...}) works.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithStage returns a copy of e tagged with the pipeline stage.
func (e *StandardError) WithStage(stage string) *StandardError {
	out := *e
	out.Stage = stage
	return &out
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message, details, remediation string, cause error) *StandardError {
	return &StandardError{
		Code:        code,
		Message:     message,
		Details:     details,
		Remediation: remediation,
		Timestamp:   time.Now().UTC(),
		cause:       cause,
	}
}

// NewTransportError wraps a network, auth or decoding failure on a theme API call.
func NewTransportError(operation string, err error, remediation string) *StandardError {
	return newError(
		ErrCodeTransport,
		fmt.Sprintf("Theme API request '%s' failed", operation),
		err.Error(),
		remediation,
		err,
	)
}

// NewThemeNotFoundError is returned when no listed theme matches the requested name.
func NewThemeNotFoundError(name string) *StandardError {
	return newError(
		ErrCodeThemeNotFound,
		"Theme not found on tenant",
		fmt.Sprintf("name: %s", name),
		HintCheckTheme,
		nil,
	)
}

// NewInvalidThemeDocumentError reports a document that cannot be processed at all.
func NewInvalidThemeDocumentError(details string) *StandardError {
	return newError(ErrCodeInvalidThemeDocument, "Theme document is not usable", details, HintCheckAPIKey, nil)
}

// NewUnresolvedReferenceError lists every reference key missing from the variable table.
func NewUnresolvedReferenceError(keys []string) *StandardError {
	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	e := newError(
		ErrCodeUnresolvedReference,
		"Theme references variables that are not defined",
		fmt.Sprintf("keys: %s", strings.Join(sorted, ", ")),
		HintCheckData,
		nil,
	)
	e.Metadata = map[string]interface{}{"unresolvedKeys": sorted}
	return e
}

// NewWriteError wraps a failure to persist the mapped theme.
func NewWriteError(path string, err error) *StandardError {
	e := newError(ErrCodeWrite, "Error saving your file", err.Error(), HintCheckOutput, err)
	e.Metadata = map[string]interface{}{"path": path}
	return e
}

// NewPromptFailedError wraps a failure to read operator input.
func NewPromptFailedError(prompt string, err error) *StandardError {
	return newError(
		ErrCodePromptFailed,
		fmt.Sprintf("Could not read %s", prompt),
		err.Error(),
		HintTryAgain,
		err,
	)
}

// NewInvalidConfigurationError wraps a configuration load or validation failure.
func NewInvalidConfigurationError(err error) *StandardError {
	return newError(ErrCodeInvalidConfiguration, "Invalid configuration", err.Error(), HintCheckConfig, err)
}

// ==========================
// 3. Helpers
// ==========================

// Normalize ensures we always have a StandardError tagged with stage.
func Normalize(err error, stage string) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		if stdErr.Stage == "" {
			return stdErr.WithStage(stage)
		}
		return stdErr
	}
	e := newError(ErrCodeInternal, "Unexpected error", err.Error(), HintTryAgain, err)
	e.Stage = stage
	return e
}

// CodeOf returns the code of err, or ErrCodeInternal for foreign errors.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ErrCodeInternal
}

func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeTransport, ErrCodeThemeNotFound:
		return "REMOTE"
	case ErrCodeInvalidThemeDocument, ErrCodeUnresolvedReference:
		return "DATA"
	case ErrCodeWrite:
		return "OUTPUT"
	case ErrCodePromptFailed, ErrCodeInvalidConfiguration:
		return "INPUT"
	default:
		return "OTHER"
	}
}
