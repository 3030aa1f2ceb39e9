// Package keylog feeds live events from keyboards into the viewer.
package keylog

import (
	"context"
	"log/slog"

	"github.com/dasdy/keyview/keylog/parser"
	"github.com/dasdy/keyview/logging"
	"github.com/dasdy/keyview/model"
)

// Applier receives raw events. viewer.State implements it.
type Applier interface {
	Apply(ev model.RawEvent) bool
}

var logCtx = logging.PackageCtx("keylog")

// KeyLogLoop parses ZMK log lines and applies their key events as position events
// until lines is closed or ctx is cancelled.
func KeyLogLoop(ctx context.Context, lines <-chan string, target Applier) {
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				slog.InfoContext(logCtx, "Log readers finished")

				return
			}

			parsed, err := parser.ParseLine(line)
			if err != nil {
				slog.WarnContext(logCtx, "Could not parse line", "error", err, "line", line)

				continue
			}

			if parsed == nil {
				continue
			}

			slog.DebugContext(logCtx, "Key event", "event", *parsed)
			target.Apply(parsed.ToRaw())
		case <-ctx.Done():
			slog.InfoContext(logCtx, "Key log stopped")

			return
		}
	}
}

// EventLoop applies raw events until events is closed or ctx is cancelled.
func EventLoop(ctx context.Context, events <-chan model.RawEvent, target Applier) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}

			target.Apply(ev)
		case <-ctx.Done():
			return
		}
	}
}
