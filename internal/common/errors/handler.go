// internal/common/errors/handler.go
package errors

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// Reporter turns stage failures into one operator-facing line plus a
// structured log entry. Stack traces never reach the operator.
type Reporter struct {
	logger Logger
	out    io.Writer
	red    func(a ...interface{}) string
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
}

func NewReporter(logger Logger, out io.Writer) *Reporter {
	return &Reporter{
		logger: logger,
		out:    out,
		red:    color.New(color.FgRed).SprintFunc(),
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
	}
}

// Report prints the remediation message for err and logs its details.
// It returns the normalized error so callers can propagate it.
func (r *Reporter) Report(err error, stage string) *StandardError {
	stdErr := Normalize(err, stage)
	if stdErr == nil {
		return nil
	}

	r.logError(stdErr)

	hint := stdErr.Remediation
	if hint == "" {
		hint = HintTryAgain
	}
	fmt.Fprintln(r.out, r.red(fmt.Sprintf("%s, %s", stdErr.Message, hint)))
	return stdErr
}

// Warn prints a non-fatal notice.
func (r *Reporter) Warn(msg string) {
	fmt.Fprintln(r.out, r.yellow(msg))
}

// Success prints a completion notice.
func (r *Reporter) Success(msg string) {
	fmt.Fprintln(r.out, r.green(msg))
}

func (r *Reporter) logError(stdErr *StandardError) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"stage":         stdErr.Stage,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}
	r.logger.Error("Stage failed", fields)
}
