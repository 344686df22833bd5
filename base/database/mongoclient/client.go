package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/goexchange/base/log"
)

const (
	defaultSocketTimeout  = 60 * time.Second
	defaultConnectTimeout = 10 * time.Second
)

// Config is read from the mongo section of the config file
type Config struct {
	URI        string `mapstructure:"uri"`
	AuthDBName string `mapstructure:"authDBName"`
	DBName     string `mapstructure:"dbName"`
	EnableSSL  bool   `mapstructure:"enableSSL"`
	// Majority makes writes wait for a majority of the replica set
	Majority bool `mapstructure:"majority"`
	// PoolSizeMultiplier times the cpu count is the pool size across all hosts
	PoolSizeMultiplier float64       `mapstructure:"poolSizeMultiplier"`
	ConnectTimeout     time.Duration `mapstructure:"connectTimeout"`
}

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnect returns a connected client or panics
func MustConnect(cfg Config) *Client {
	cli, err := Connect(cfg)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": cfg.DBName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// Connect dials the deployment and pings its primary
func Connect(cfg Config) (*Client, error) {
	logger := log.Log().WithField("dbName", cfg.DBName)

	connSetting, err := connstring.Parse(cfg.URI)
	if err != nil {
		logger.WithField("err", err).Error("connstring.Parse failed")
		return nil, err
	}
	logger = logger.WithField("mongoHosts", connSetting.Hosts)

	clientOpts := options.Client().
		ApplyURI(cfg.URI).
		SetSocketTimeout(defaultSocketTimeout).
		SetRetryWrites(true)

	// fall back to authDBName when the uri names no auth source
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              cfg.AuthDBName,
		})
	}

	if cfg.PoolSizeMultiplier > 0 && len(connSetting.Hosts) > 0 {
		// every host gets its own pool
		total := int(float64(runtime.NumCPU()) * cfg.PoolSizeMultiplier)
		perHost := (total + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
		clientOpts.SetMinPoolSize(uint64(perHost / 4))
		clientOpts.SetMaxPoolSize(uint64(perHost))
		logger.WithField("poolSize", perHost).Info("mongo driver pool size")
	}

	if cfg.EnableSSL {
		clientOpts.SetTLSConfig(&tls.Config{})
	}
	if cfg.Majority {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.WithField("err", err).Error("mongo.Connect failed")
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.WithField("err", err).Error("client.Ping failed")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo connected")
	return &Client{
		Client: client,
		DbName: cfg.DBName,
	}, nil
}
