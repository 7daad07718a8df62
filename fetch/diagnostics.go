package fetch

import (
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/kbukum/fetchkit/hook"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/schema"
)

// Diagnostics receives schema mismatches before the call fails with them.
type Diagnostics = hook.Diagnostics

// NopDiagnostics discards every report. Non-verbose clients use it.
type NopDiagnostics = hook.NopDiagnostics

func mismatchTitle(kind hook.Kind) string {
	if kind == hook.KindErrorSchema {
		return "[api error] type error"
	}
	return "[api response] type error"
}

// ConsoleDiagnostics prints a yellow group header followed by one indented
// line per issue.
type ConsoleDiagnostics struct {
	mu     sync.Mutex
	w      io.Writer
	header *color.Color
}

// NewConsoleDiagnostics writes reports to w.
func NewConsoleDiagnostics(w io.Writer) *ConsoleDiagnostics {
	return &ConsoleDiagnostics{w: w, header: color.New(color.FgYellow, color.Bold)}
}

// SchemaMismatch implements Diagnostics.
func (d *ConsoleDiagnostics) SchemaMismatch(kind hook.Kind, resp *hook.Response, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, _ = d.header.Fprintf(d.w, "%s (HTTP %d)\n", mismatchTitle(kind), resp.StatusCode)
	var se *schema.Error
	if stderrors.As(err, &se) {
		for _, is := range se.Issues {
			_, _ = fmt.Fprintf(d.w, "    %s: %s\n", is.Path, is.Message)
		}
		return
	}
	_, _ = fmt.Fprintf(d.w, "    %v\n", err)
}

// LogDiagnostics reports mismatches as structured warnings.
type LogDiagnostics struct {
	log *logger.Logger
}

// NewLogDiagnostics reports through l.
func NewLogDiagnostics(l *logger.Logger) *LogDiagnostics {
	return &LogDiagnostics{log: l}
}

// SchemaMismatch implements Diagnostics.
func (d *LogDiagnostics) SchemaMismatch(kind hook.Kind, resp *hook.Response, err error) {
	fields := logger.Fields(
		"stage", kind.String(),
		"status", resp.StatusCode,
	)
	var se *schema.Error
	if stderrors.As(err, &se) {
		fields["issues"] = se.Issues
	} else {
		fields[logger.FieldError] = err.Error()
	}
	d.log.Warn(mismatchTitle(kind), fields)
}
