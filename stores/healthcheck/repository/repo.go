package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/database/mongoclient"
	hcdomain "github.com/x-xyz/goexchange/domain/healthcheck"
	"github.com/x-xyz/goexchange/domain/keys"
)

type impl struct {
	mgoClient *mongoclient.Client
	redisPool *redis.Pool
}

// New creates a HealthCheckRepo, a nil client or pool skips that check
func New(
	mgoClient *mongoclient.Client,
	redisPool *redis.Pool,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient: mgoClient,
		redisPool: redisPool,
	}
}

func (im *impl) PingDB(context ctx.Ctx) error {
	if im.mgoClient == nil {
		return hcdomain.ErrDisabled
	}
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	if err := im.mgoClient.Ping(ctx, readpref.Primary()); err != nil {
		context.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func (im *impl) PingCache(context ctx.Ctx) error {
	if im.redisPool == nil {
		return hcdomain.ErrDisabled
	}
	ctx, cancel := ctx.WithTimeout(context, 2*time.Second)
	defer cancel()
	conn, err := im.redisPool.GetContext(ctx)
	if err != nil {
		context.WithField("err", err).Error("get redis conn failed")
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("SET", keys.RedisKey(keys.PfxHealthCheck, "testset"), "1", "EX", 30); err != nil {
		context.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
