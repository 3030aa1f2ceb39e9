// Package logging configures slog for keyview and lets contexts carry log
// attributes such as the emitting package.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"gitlab.com/greyxor/slogor"
)

type ctxKey string

const (
	slogFields  ctxKey = "slog_fields"
	PackageName string = "package"
)

// ContextHandler adds the attributes stored with AppendCtx to every record.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	err := h.Handler.Handle(ctx, r)
	if err != nil {
		return fmt.Errorf("error handling record for a log: %+v: %w", r, err)
	}

	return nil
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{h.Handler.WithGroup(name)}
}

// AppendCtx returns a context whose records also carry attr.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)

		return context.WithValue(parent, slogFields, append(attrs, attr))
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// PackageCtx is a background context tagging records with a package name.
func PackageCtx(packageName string) context.Context {
	return AppendCtx(context.Background(), slog.String(PackageName, packageName))
}

// ParseLevel accepts debug, info, warn/warning and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewHandler is the colored console handler used by the CLI.
func NewHandler(w io.Writer, level slog.Level) slog.Handler {
	return ContextHandler{slogor.NewHandler(w,
		slogor.SetLevel(level),
		slogor.SetTimeFormat(time.DateTime),
		slogor.ShowSource())}
}

// Setup installs NewHandler as the default logger.
func Setup(w io.Writer, level string) error {
	lvl, err := ParseLevel(level)

	slog.SetDefault(slog.New(NewHandler(w, lvl)))

	return err
}
