package cloudsync

import (
	"context"
	"log/slog"

	"github.com/ci-research/learninghub-service/internal/events"
)

// Runner turns snapshot-changed events into pushes. Each event carries its
// own payload copy, so a burst of mutations becomes a burst of independent
// pushes with no ordering guarantee on arrival; the remote ends up with
// whichever response lands last.
type Runner struct {
	bus    *events.Bus
	syncer *Syncer
	logger *slog.Logger
}

func NewRunner(bus *events.Bus, syncer *Syncer, logger *slog.Logger) *Runner {
	return &Runner{bus: bus, syncer: syncer, logger: logger}
}

// Start consumes change events until ctx is cancelled. It returns once the
// subscription is established.
func (r *Runner) Start(ctx context.Context) error {
	messages, err := r.bus.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			event, err := events.UnmarshalSnapshotChanged(msg)
			if err != nil {
				r.logger.Error("dropping malformed snapshot event", "error", err)
				msg.Ack()
				continue
			}

			// Push never blocks a mutation: it happens here, after the
			// mutation already committed and acked its caller.
			go r.syncer.Push(ctx, event.Payload)
			msg.Ack()
		}
	}()

	return nil
}
