package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
}

// NewPrimitive returns an in-process cache holding at most sizeMB megabytes
func NewPrimitive(name string, sizeMB int) provider.Provider {
	return &impl{name, freecache.NewCache(sizeMB * 1024 * 1024)}
}

func (im *impl) Get(c ctx.Ctx, key []byte) ([]byte, error) {
	val, err := im.cache.Get(key)
	if err == freecache.ErrNotFound {
		return nil, provider.ErrNotFound
	} else if err != nil {
		c.WithFields(log.Fields{"err": err, "cache": im.name}).Error("cache.Get failed")
		return nil, err
	}
	return val, nil
}

// Set with ttl 0 keeps the entry until it is evicted
func (im *impl) Set(c ctx.Ctx, key, value []byte, ttl time.Duration) error {
	if err := im.cache.Set(key, value, int(ttl.Seconds())); err != nil {
		c.WithFields(log.Fields{"err": err, "cache": im.name}).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key []byte) error {
	im.cache.Del(key)
	return nil
}

func (im *impl) Stats() provider.Stats {
	return provider.Stats{
		Entries: im.cache.EntryCount(),
		Hits:    im.cache.HitCount(),
		Misses:  im.cache.MissCount(),
	}
}
