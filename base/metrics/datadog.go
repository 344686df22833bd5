package metrics

import (
	"fmt"
	"sync"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/x-xyz/goexchange/base/log"
)

const (
	// ddRate is the rate to pass metrics to datadog agent. 1 means always
	ddRate = 1
	// DdPort is the dogstatsd port
	DdPort = 8125
)

var (
	initOnce = sync.Once{}
	ddClient StatsClient
)

// defaultClient talks to the agent at datadog_host, or logs metrics when no host is configured
func defaultClient() StatsClient {
	initOnce.Do(func() {
		host := viper.GetString("datadog_host")
		if host == "" {
			log.Log().Info("datadog_host not set, metrics go to log")
			ddClient = &LogClient{}
			return
		}
		addr := fmt.Sprintf("%s:%d", host, DdPort)
		log.Log().WithFields(log.Fields{"addr": addr}).Info("connecting to datadog agent")
		cli, err := statsd.New(addr)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic(
				"can't talk to datadog agent")
		}
		ddClient = cli
	})
	return ddClient
}
