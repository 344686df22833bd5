package redisclient

import (
	"context"
	"math/rand"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/goexchange/base/log"
)

const (
	dialTimeout  = 2 * time.Second
	readTimeout  = 1500 * time.Millisecond
	writeTimeout = 1500 * time.Millisecond
	idleTimeout  = 240 * time.Second
)

// Config is read from the redis section of the config file
type Config struct {
	URI      string `mapstructure:"uri"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// PoolMultiplier times the cpu count is the max number of connections, 0 keeps the defaults
	PoolMultiplier float64 `mapstructure:"poolMultiplier"`
	// Retries is how many more times the first connection is attempted
	Retries int `mapstructure:"retries"`
}

// MustConnectRedis returns a checked pool or panics
func MustConnectRedis(cfg Config) *redis.Pool {
	p, err := ConnectRedis(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": cfg.URI, "err": err}).Panic("fail to dial Redis")
	}
	return p
}

// NewPool builds a pool without dialing
func NewPool(cfg Config) *redis.Pool {
	maxIdle, maxActive := 200, 1024
	if cfg.PoolMultiplier > 0 {
		cpu := float64(runtime.NumCPU())
		maxIdle = int(cpu * cfg.PoolMultiplier / 4)
		maxActive = int(cpu * cfg.PoolMultiplier)
	}

	opts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(readTimeout),
		redis.DialWriteTimeout(writeTimeout),
		redis.DialDatabase(cfg.DB),
	}
	if cfg.Password != "" {
		opts = append(opts, redis.DialPassword(cfg.Password))
	}
	return &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		DialContext: func(ctx context.Context) (redis.Conn, error) {
			return redis.DialContext(ctx, "tcp", cfg.URI, opts...)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Second {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

// ConnectRedis builds a pool and makes sure one connection answers PING,
// retrying with a jittered delay of one to two seconds
func ConnectRedis(cfg Config) (*redis.Pool, error) {
	p := NewPool(cfg)
	logger := log.Log().WithField("redisURI", cfg.URI)

	var err error
	for attempt := 0; attempt <= cfg.Retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Second + time.Duration(rand.Int63n(int64(time.Second))))
		}
		if err = ping(p); err == nil {
			logger.Info("redis connected")
			return p, nil
		}
		logger.WithFields(log.Fields{"err": err, "attempt": attempt}).Warn("redis ping failed")
	}
	logger.WithField("err", err).Error("fail to dial Redis")
	_ = p.Close()
	return nil, err
}

func ping(p *redis.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := p.GetContext(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	_, err = conn.Do("PING")
	return err
}
