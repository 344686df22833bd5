package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/xerrors"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/exchange"
	"github.com/x-xyz/goexchange/service/query"
)

type eventMongoRepo struct {
	q query.Mongo
}

func NewEventMongoRepo(q query.Mongo) exchange.EventRepo {
	return &eventMongoRepo{q: q}
}

// EnsureEventIndexes creates the indexes FindAll relies on
func EnsureEventIndexes(c ctx.Ctx, q query.Mongo) error {
	for _, idx := range [][]string{
		{"id"},
		{"type", "-timestamp"},
		{"collection", "-timestamp"},
		{"orderHash"},
		{"seller", "-timestamp"},
		{"buyer", "-timestamp"},
		{"user", "-timestamp"},
		{"caller", "-timestamp"},
	} {
		if err := q.EnsureIndex(c, domain.TableExchangeEvents, idx...); err != nil {
			return xerrors.Errorf("ensure index %v: %w", idx, err)
		}
	}
	return nil
}

func (r *eventMongoRepo) Insert(c ctx.Ctx, event *exchange.Event) error {
	if err := r.q.Insert(c, domain.TableExchangeEvents, event); err != nil {
		c.WithFields(log.Fields{
			"err":   err,
			"event": event.Id,
		}).Error("q.Insert failed")
		return xerrors.Errorf("insert event %s: %w", event.Id, err)
	}
	return nil
}

func (r *eventMongoRepo) FindAll(c ctx.Ctx, opts ...exchange.FindAllOptionsFunc) ([]*exchange.Event, error) {
	opt, err := exchange.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset, limit := opt.Page()

	res := []*exchange.Event{}
	if err := r.q.Search(c, domain.TableExchangeEvents, offset, limit, "-timestamp", toSelector(opt), &res); err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"opts": opt,
		}).Error("q.Search failed")
		return nil, xerrors.Errorf("search events: %w", err)
	}
	return res, nil
}

func toSelector(opt exchange.FindAllOptions) bson.M {
	res := bson.M{}
	if opt.Type != nil {
		res["type"] = *opt.Type
	}
	if opt.Collection != nil {
		res["collection"] = *opt.Collection
	}
	if opt.OrderHash != nil {
		res["orderHash"] = *opt.OrderHash
	}
	if opt.User != nil {
		u := *opt.User
		res["$or"] = bson.A{
			bson.M{"seller": u},
			bson.M{"buyer": u},
			bson.M{"caller": u},
			bson.M{"user": u},
		}
	}
	return res
}
