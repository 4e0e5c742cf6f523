package log

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
)

// HandlerFunc builds the slog.Handler the logger writes through.
type HandlerFunc func(w io.Writer, opts *slog.HandlerOptions) slog.Handler

type params struct {
	verbose bool
	attrs   []slog.Attr
	writer  io.Writer
	handler HandlerFunc
}

type Option func(params *params)

// WithVerbose enables verbose logging (sets log level to Debug).
func WithVerbose(verbose bool) Option {
	return func(params *params) {
		params.verbose = verbose
	}
}

// WithAttrs adds custom attributes to all log entries.
// Attributes are key-value pairs that provide additional context.
func WithAttrs(attrs ...slog.Attr) Option {
	return func(params *params) {
		params.attrs = append(params.attrs, attrs...)
	}
}

// WithWriter sets the output writer for logs.
// If w is nil, io.Discard is used
func WithWriter(w io.Writer) Option {
	return func(params *params) {
		params.writer = w
	}
}

func WithHandler(handler HandlerFunc) Option {
	return func(params *params) {
		params.handler = handler
	}
}

func WithJSONHandler() Option {
	return WithHandler(func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewJSONHandler(w, opts)
	})
}

func WithTextHandler() Option {
	return WithHandler(func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return slog.NewTextHandler(w, opts)
	})
}

// WithColourTextHandler writes compact, coloured text meant for a terminal.
func WithColourTextHandler() Option {
	return WithHandler(func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
		return tint.NewHandler(w, &tint.Options{
			AddSource:   opts.AddSource,
			Level:       opts.Level,
			ReplaceAttr: opts.ReplaceAttr,
			TimeFormat:  time.Kitchen,
		})
	})
}

// New creates a new slog.Logger.
// By default, logs are formatted as text, written to io.Discard, and use Info level.
//
// Example:
//
//	logger := log.New(
//	    log.WithWriter(os.Stderr),
//	    log.WithJSONHandler(),
//	    log.WithVerbose(true),
//	    log.WithAttrs(slog.String("service", "rentbook")),
//	)
func New(opts ...Option) *slog.Logger {
	var params params
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(&params)
	}

	if params.writer == nil {
		return slog.New(slog.DiscardHandler)
	}

	level := slog.LevelInfo
	if params.verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level:       level,
		AddSource:   true,
		ReplaceAttr: ReplaceSourceAttr,
	}

	newHandler := params.handler
	if newHandler == nil {
		newHandler = func(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
			return slog.NewTextHandler(w, opts)
		}
	}

	handler := newHandler(params.writer, handlerOpts)

	attrs := []slog.Attr{}
	attrs = append(attrs, params.attrs...)
	if len(attrs) == 0 {
		return slog.New(handler)
	}

	return slog.New(handler.WithAttrs(attrs))
}

// ReplaceSourceAttr shortens the source attribute to file:line.
func ReplaceSourceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.SourceKey {
		return a
	}

	source, ok := a.Value.Any().(*slog.Source)
	if !ok {
		return a
	}

	fileAndLine := fmt.Sprintf("%s:%d", filepath.Base(source.File), source.Line)
	return slog.Attr{
		Key:   slog.SourceKey,
		Value: slog.StringValue(fileAndLine),
	}
}
