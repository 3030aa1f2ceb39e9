package keylog

import (
	"log/slog"
	"time"

	"github.com/dasdy/keyview/db"
	"github.com/dasdy/keyview/model"
)

// Recorder returns a change listener that logs every applied transition to
// storage and feeds the chord tracker. Either may be nil. now defaults to
// time.Now.
func Recorder(storage db.Storage, tracker db.Tracker, now func() time.Time) func(model.Transition) {
	if now == nil {
		now = time.Now
	}

	return func(tr model.Transition) {
		if storage != nil {
			if err := storage.Store(tr); err != nil {
				slog.ErrorContext(logCtx, "Could not log transition", "label", tr.Label, "error", err)
			}
		}

		if tracker != nil {
			tracker.HandleTransition(tr, now())
		}
	}
}
