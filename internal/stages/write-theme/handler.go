// internal/stages/write-theme/handler.go
package writetheme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	apperrors "theme-mapper/internal/common/errors"
	"theme-mapper/internal/common/logger"
	"theme-mapper/internal/models"

	"github.com/natefinch/atomic"
)

const StageName = "write-theme"

type Handler struct {
	config *Config
	stdout io.Writer
	logger logger.Logger
}

// NewHandler creates the write stage. stdout receives the theme when the
// configured path is StdoutPath.
func NewHandler(config *Config, stdout io.Writer, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	return &Handler{
		config: config,
		stdout: stdout,
		logger: log.WithFields(map[string]interface{}{"stage": StageName}),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.config.Validate(); err != nil {
		return nil, apperrors.NewInvalidConfigurationError(err)
	}
	if input.Theme == nil {
		return nil, apperrors.NewWriteError(h.config.Path, fmt.Errorf("no theme to write"))
	}

	data, err := Encode(input.Theme, h.config.Indent)
	if err != nil {
		return nil, apperrors.NewWriteError(h.config.Path, err)
	}

	if h.config.Path == StdoutPath {
		if _, err := h.stdout.Write(append(data, '\n')); err != nil {
			return nil, apperrors.NewWriteError(h.config.Path, err)
		}
		return &Output{Path: StdoutPath, Bytes: len(data)}, nil
	}

	if err := h.writeFile(data); err != nil {
		return nil, apperrors.NewWriteError(h.config.Path, err)
	}

	h.logger.Info("theme written", map[string]interface{}{
		"path":  h.config.Path,
		"bytes": len(data),
	})

	return &Output{Path: h.config.Path, Bytes: len(data)}, nil
}

// writeFile replaces the output atomically so readers never see a partial theme.
func (h *Handler) writeFile(data []byte) error {
	_, statErr := os.Stat(h.config.Path)
	created := os.IsNotExist(statErr)

	if err := atomic.WriteFile(h.config.Path, bytes.NewReader(data)); err != nil {
		return err
	}

	if created && h.config.FileMode != 0 {
		if err := os.Chmod(h.config.Path, h.config.FileMode); err != nil {
			h.logger.Warn("could not set file mode", map[string]interface{}{
				"path":  h.config.Path,
				"error": err.Error(),
			})
		}
	}
	return nil
}

// Encode serializes the theme, compact unless indent is set. HTML
// characters are written as is.
func Encode(theme *models.MappedTheme, indent bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(theme); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
