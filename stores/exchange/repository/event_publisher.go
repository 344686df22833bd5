package repository

import (
	"encoding/json"

	"github.com/gomodule/redigo/redis"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain/exchange"
)

// DefaultEventChannel is where every event is published, events also go to <channel>:<type>
const DefaultEventChannel = "exchange:events"

type eventPublisher struct {
	pool    *redis.Pool
	channel string
}

// NewEventPublisher publishes committed events with redis PUBLISH
func NewEventPublisher(pool *redis.Pool, channel string) exchange.EventSink {
	if channel == "" {
		channel = DefaultEventChannel
	}
	return &eventPublisher{pool: pool, channel: channel}
}

func (p *eventPublisher) Publish(c ctx.Ctx, event *exchange.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return xerrors.Errorf("marshal event %s: %w", event.Id, err)
	}

	conn, err := p.pool.GetContext(c)
	if err != nil {
		c.WithFields(log.Fields{
			"err": err,
		}).Error("pool.GetContext failed")
		return err
	}
	defer conn.Close()

	for _, ch := range []string{p.channel, p.channel + ":" + string(event.Type)} {
		if err := conn.Send("PUBLISH", ch, payload); err != nil {
			return xerrors.Errorf("send publish %s: %w", ch, err)
		}
	}
	if err := conn.Flush(); err != nil {
		return xerrors.Errorf("flush: %w", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := redis.Int(conn.Receive()); err != nil {
			c.WithFields(log.Fields{
				"err":     err,
				"channel": p.channel,
			}).Error("conn.Receive failed")
			return err
		}
	}
	return nil
}
