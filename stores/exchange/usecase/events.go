package usecase

import (
	"time"

	"github.com/google/uuid"

	bCtx "github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/exchange"
)

var (
	// eventPublishTimeout bounds one event's write to the repo and every sink
	eventPublishTimeout = 5 * time.Second
	// eventScheduleTimeout is how long a commit may wait for room in a full event queue
	eventScheduleTimeout = time.Second
)

// emit queues event until the outermost call commits, a reverted call emits nothing
func (im *impl) emit(ctx bCtx.Ctx, meta domain.CallMeta, event *exchange.Event) {
	event.Id = uuid.NewString()
	event.Caller = meta.Caller
	event.Timestamp = meta.Time.UTC()

	im.journal.OnCommit(func() {
		im.enqueue(ctx, event)
	})
}

// enqueue hands a committed event to the publisher worker. Events are published one at a
// time in commit order, off the sequencer.
func (im *impl) enqueue(ctx bCtx.Ctx, event *exchange.Event) {
	err := im.publisher.ScheduleWithTimeout(eventScheduleTimeout, func() {
		c, cancel := bCtx.WithTimeout(bCtx.Detach(ctx), eventPublishTimeout)
		defer cancel()
		im.publish(c, event)
	})
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"event": event.Id,
			"type":  event.Type,
		}).Error("publisher.ScheduleWithTimeout failed")
		im.metrics.BumpSum("event.dropped", 1, "type", string(event.Type))
	}
}

func (im *impl) publish(ctx bCtx.Ctx, event *exchange.Event) {
	if im.eventRepo != nil {
		if err := im.eventRepo.Insert(ctx, event); err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"event": event.Id,
				"type":  event.Type,
			}).Error("eventRepo.Insert failed")
			im.metrics.BumpSum("event.err", 1, "sink", "repo")
		}
	}
	for _, sink := range im.eventSinks {
		if err := sink.Publish(ctx, event); err != nil {
			ctx.WithFields(log.Fields{
				"err":   err,
				"event": event.Id,
				"type":  event.Type,
			}).Error("sink.Publish failed")
			im.metrics.BumpSum("event.err", 1, "sink", "publisher")
		}
	}
	im.metrics.BumpSum("event.count", 1, "type", string(event.Type))
}

// Flush waits until every event committed before the call has been published
func (im *impl) Flush(ctx bCtx.Ctx) error {
	done := make(chan struct{})
	if err := im.publisher.ScheduleWithContext(ctx, func() { close(done) }); err != nil {
		if cErr := ctx.Err(); cErr != nil {
			return cErr
		}
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
