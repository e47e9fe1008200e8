// Package log provides structured logging for the assembler and its
// command-line tools.
package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Type aliases so callers depend on this package rather than on log/slog
// directly, letting the handler implementation change without touching call
// sites.
type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
	Value  = slog.Value
)

// Constructors re-exported from slog for convenience.
var (
	String      = slog.String
	StringValue = slog.StringValue
	Group       = slog.Group
	GroupValue  = slog.GroupValue
	Any         = slog.Any
	AnyValue    = slog.AnyValue
)

// Logging levels, in increasing severity.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)

var (
	// DefaultLogger builds the process-wide logger. Components that run before
	// a Commander is wired up (see internal/cli) call this and cache the
	// result; the default does not change at runtime.
	DefaultLogger = func() *Logger { return NewFormattedLogger(os.Stderr) }

	// SetDefault overrides the default logger returned by slog.Default.
	SetDefault = slog.SetDefault

	// LogLevel is the runtime-adjustable level shared by every handler built
	// with NewFormattedLogger. The "-debug" assembler flag flips it.
	LogLevel = &slog.LevelVar{}
)

// NewFormattedLogger returns a logger that writes human-readable, aligned
// key/value records to out.
func NewFormattedLogger(out io.Writer) *Logger {
	return slog.New(NewHandler(out))
}

// Options configures every Handler built by NewHandler.
var Options = &slog.HandlerOptions{
	AddSource:   true,
	Level:       LogLevel,
	ReplaceAttr: func(_ []string, attr Attr) Attr { return attr },
}

// Handler implements slog.Handler with a terse, column-aligned text format
// meant for a terminal rather than for a log aggregator.
type Handler struct {
	mut *sync.Mutex // Serializes writes to out.
	out io.Writer

	opts  *slog.HandlerOptions
	group string
	attrs []Attr
}

// NewHandler creates a Handler that writes to out.
func NewHandler(out io.Writer) *Handler {
	return &Handler{
		out:  out,
		mut:  new(sync.Mutex),
		opts: Options,
	}
}

// Enabled reports whether level is at or above the handler's configured level.
func (h *Handler) Enabled(_ context.Context, level Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle formats and writes a single log record. See the slog handler-writer
// guide for the subtleties this implementation has to respect around
// resolving attribute values exactly once.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	buf := make([]byte, 0, 4096)
	out := bytes.NewBuffer(buf)

	if !rec.Time.IsZero() {
		fmt.Fprintf(out, "%10s : %s\n", "TIMESTAMP", rec.Time.Format(time.RFC3339Nano))
	}

	fmt.Fprintf(out, "%10s : %s\n", "LEVEL", rec.Level.String())

	if h.opts.AddSource && rec.PC != 0 {
		frames := runtime.CallersFrames([]uintptr{rec.PC})
		f, _ := frames.Next()
		_, file := path.Split(f.File)
		fmt.Fprintf(out, "%10s : %s:%d\n", "SOURCE", file, f.Line)

		if f.Func != nil {
			splits := strings.Split(f.Function, "/")
			fmt.Fprintf(out, "%10s : %s\n", "FUNCTION", splits[len(splits)-1])
		}
	}

	fmt.Fprintf(out, "%10s : %s\n", "MESSAGE", rec.Message)

	for _, a := range h.attrs {
		if err := h.appendAttr(out, a, false); err != nil {
			return err
		}
	}

	var attrErr error
	rec.Attrs(func(attr Attr) bool {
		attrErr = h.appendAttr(out, attr, false)
		return attrErr == nil
	})

	if attrErr != nil {
		return attrErr
	}

	fmt.Fprintln(out)

	h.mut.Lock()
	defer h.mut.Unlock()

	_, err := h.out.Write(out.Bytes())

	return err
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	attrs := make([]Attr, len(h.attrs))
	copy(attrs, h.attrs)

	return &Handler{
		mut:   h.mut,
		out:   h.out,
		opts:  h.opts,
		attrs: attrs,
		group: name,
	}
}

// WithAttrs returns a handler that always includes attrs in addition to its
// own.
func (h *Handler) WithAttrs(attrs []Attr) slog.Handler {
	as := make([]Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(as, h.attrs)
	as = append(as, attrs...)

	return &Handler{
		out:   h.out,
		mut:   h.mut,
		opts:  h.opts,
		attrs: as,
	}
}

func (h *Handler) appendAttr(out io.Writer, attr slog.Attr, grouped bool) error {
	attr.Value = attr.Value.Resolve()
	attr = h.opts.ReplaceAttr([]string{h.group}, attr)

	key, value := strings.ToUpper(attr.Key), attr.Value

	switch {
	case attr.Equal(Attr{}):
		return nil
	case value.Kind() != slog.KindGroup:
		if grouped {
			fmt.Fprint(out, "  ")
		}

		_, err := fmt.Fprintf(out, "%10s : %v\n", key, value.Any())

		return err
	case key != "":
		if _, err := fmt.Fprintf(out, "%10s :\n", key); err != nil {
			return err
		}

		for _, a := range value.Group() {
			if err := h.appendAttr(out, a, true); err != nil {
				return err
			}
		}
	default:
		for _, a := range value.Group() {
			if err := h.appendAttr(out, a, grouped); err != nil {
				return err
			}
		}
	}

	return nil
}
