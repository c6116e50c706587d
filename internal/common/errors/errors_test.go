package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (l *recordingLogger) Error(msg string, fields map[string]interface{}) {
	l.messages = append(l.messages, msg)
	l.fields = append(l.fields, fields)
}

func TestNewUnresolvedReferenceError_SortsKeys(t *testing.T) {
	err := NewUnresolvedReferenceError([]string{"@z", "@a"})

	assert.Equal(t, ErrCodeUnresolvedReference, err.Code)
	assert.Equal(t, "keys: @a, @z", err.Details)
	assert.Equal(t, []string{"@a", "@z"}, err.Metadata["unresolvedKeys"])
}

func TestStandardError_IsAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := fmt.Errorf("fetch: %w", NewTransportError("list themes", cause, HintCheckTenant))

	assert.True(t, stderrors.Is(err, &StandardError{Code: ErrCodeTransport}))
	assert.False(t, stderrors.Is(err, &StandardError{Code: ErrCodeWrite}))
	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, ErrCodeTransport, CodeOf(err))
	assert.Equal(t, ErrCodeInternal, CodeOf(fmt.Errorf("plain")))
}

func TestNormalize(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, Normalize(nil, "fetch-theme"))
	})

	t.Run("foreign error becomes internal", func(t *testing.T) {
		stdErr := Normalize(fmt.Errorf("boom"), "map-theme")
		require.NotNil(t, stdErr)
		assert.Equal(t, ErrCodeInternal, stdErr.Code)
		assert.Equal(t, "map-theme", stdErr.Stage)
		assert.Equal(t, "boom", stdErr.Details)
	})

	t.Run("existing stage is kept", func(t *testing.T) {
		original := NewWriteError("theme.json", fmt.Errorf("disk full")).WithStage("write-theme")
		stdErr := Normalize(original, "runner")
		assert.Equal(t, "write-theme", stdErr.Stage)
	})
}

func TestGetErrorCategory(t *testing.T) {
	tests := map[ErrorCode]string{
		ErrCodeTransport:            "REMOTE",
		ErrCodeThemeNotFound:        "REMOTE",
		ErrCodeUnresolvedReference:  "DATA",
		ErrCodeWrite:                "OUTPUT",
		ErrCodeInvalidConfiguration: "INPUT",
		ErrCodeInternal:             "OTHER",
	}
	for code, category := range tests {
		assert.Equal(t, category, GetErrorCategory(code), string(code))
	}
}

func TestReporter_Report(t *testing.T) {
	var out bytes.Buffer
	log := &recordingLogger{}
	reporter := NewReporter(log, &out)

	stdErr := reporter.Report(NewTransportError("list themes", fmt.Errorf("401 unauthorized"), HintCheckTenant), "fetch-theme")

	require.NotNil(t, stdErr)
	assert.Equal(t, "fetch-theme", stdErr.Stage)
	assert.Contains(t, out.String(), "please check your tenant domain and try again")
	assert.NotContains(t, out.String(), "goroutine")

	require.Len(t, log.fields, 1)
	assert.Equal(t, "TRANSPORT_ERROR", log.fields[0]["errorCode"])
	assert.Equal(t, "REMOTE", log.fields[0]["errorCategory"])
	assert.Equal(t, "fetch-theme", log.fields[0]["stage"])
}

func TestReporter_SuccessAndWarn(t *testing.T) {
	var out bytes.Buffer
	reporter := NewReporter(&recordingLogger{}, &out)

	reporter.Success("The theme file has been successfully saved!")
	reporter.Warn("2 references could not be resolved")

	assert.Contains(t, out.String(), "The theme file has been successfully saved!")
	assert.Contains(t, out.String(), "2 references could not be resolved")
}
