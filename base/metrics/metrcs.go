/*
Package metrics wraps datadog-go to faciliate metric recording
Following are naming convention of metric:
- Internal process time: *.time
- External latency: *.latency
- Error: *.err
- Warning: *.warn
*/
package metrics

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/x-xyz/goexchange/base/log"
)

const (
	// TagValueNA is used for tags whose values are not available.
	TagValueNA = "n/a"
)

// Ender provides interface for BumpTime
type Ender interface {
	End()
}

// Service provides interface for metrics
type Service interface {
	BumpAvg(key string, val float64, tags ...string)
	BumpSum(key string, val float64, tags ...string)
	BumpHistogram(key string, val float64, tags ...string)

	BumpTime(key string, tags ...string) Ender
}

// StatsClient is the subset of the statsd client the service pushes to
type StatsClient interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// Option is functional parameter for metrics option
type Option func(*opt)

type opt struct {
	withPodName bool
	client      StatsClient
}

// WithoutPodName drops the pod tag, pod names produce a lot of custom metrics
func WithoutPodName() Option {
	return func(o *opt) {
		o.withPodName = false
	}
}

// WithClient sends metrics to c instead of the process wide client
func WithClient(c StatsClient) Option {
	return func(o *opt) {
		o.client = c
	}
}

// New creates a metric client with package name as prefix
func New(pkgName string, options ...Option) Service {
	o := opt{
		withPodName: true,
	}
	for _, option := range options {
		option(&o)
	}
	if o.client == nil {
		o.client = defaultClient()
	}

	tags := []string{
		// using host removes all tags associated with host
		// ref: https://docs.datadoghq.com/developers/dogstatsd/data_types/#host-tag-key
		"host:",
		"env:" + viper.GetString("env_name"),
		"app:" + viper.GetString("app_name"),
	}
	if o.withPodName {
		tags = append(tags, "pod:"+os.Getenv("PODNAME"))
	}

	return &Metrics{
		pkgName: pkgName,
		tags:    tags,
		client:  o.client,
	}
}

// Metrics prefixes every key with the package name and appends the common tags
type Metrics struct {
	pkgName string
	tags    []string
	client  StatsClient
}

func (mt *Metrics) key(key string) string {
	return mt.pkgName + "." + key
}

func (mt *Metrics) allTags(tags []string) []string {
	res := make([]string, 0, len(mt.tags)+len(tags)/2)
	res = append(res, mt.tags...)
	return append(res, parseTag(tags)...)
}

func (mt *Metrics) logFail(err error, fn, key string, val interface{}) {
	log.Log().WithFields(log.Fields{"err": err, "key": key, "val": val, "func": fn}).Error("Bump fail")
}

// BumpAvg bumps the average for the given key.
// datadog doesn't have a function to compute average only, a gauge is sent instead.
func (mt *Metrics) BumpAvg(key string, val float64, tags ...string) {
	if err := mt.client.Gauge(mt.key(key), val, mt.allTags(tags), ddRate); err != nil {
		mt.logFail(err, "BumpAvg", key, val)
	}
}

// BumpSum bumps the sum for the given key.
func (mt *Metrics) BumpSum(key string, val float64, tags ...string) {
	if err := mt.client.Count(mt.key(key), int64(val), mt.allTags(tags), ddRate); err != nil {
		mt.logFail(err, "BumpSum", key, val)
	}
}

// BumpHistogram bumps the histogram for the given key.
func (mt *Metrics) BumpHistogram(key string, val float64, tags ...string) {
	if err := mt.client.Histogram(mt.key(key), val, mt.allTags(tags), ddRate); err != nil {
		mt.logFail(err, "BumpHistogram", key, val)
	}
}

// BumpTime starts a timer, End() records it. A convenient way of recording the duration of
// a function:
//
//	defer s.BumpTime("my.function").End()
func (mt *Metrics) BumpTime(key string, tags ...string) Ender {
	return &timeTracker{
		mt:    mt,
		start: time.Now(),
		key:   key,
		tags:  mt.allTags(tags),
	}
}

type timeTracker struct {
	mt    *Metrics
	start time.Time
	key   string
	tags  []string
}

func (tt *timeTracker) End() {
	d := time.Since(tt.start)
	dur := float64(d) / float64(time.Millisecond)
	if err := tt.mt.client.TimeInMilliseconds(tt.mt.key(tt.key), dur, tt.tags, ddRate); err != nil {
		tt.mt.logFail(err, "BumpTime", tt.key, dur)
	}
}

func parseTag(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags)%2 != 0 {
		log.Log().WithField("tags", tags).Panic("tag length needs to be multiple of 2")
	}
	arr := make([]string, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		arr[i/2] = tags[i] + ":" + tags[i+1]
	}
	return arr
}
