package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/x-xyz/goexchange/base/ctx"
	"github.com/x-xyz/goexchange/base/database/mongoclient"
	"github.com/x-xyz/goexchange/base/database/redisclient"
	"github.com/x-xyz/goexchange/base/journal"
	"github.com/x-xyz/goexchange/base/log"
	"github.com/x-xyz/goexchange/base/metrics"
	pricefomatter "github.com/x-xyz/goexchange/base/price_fomatter"
	"github.com/x-xyz/goexchange/base/sequencer"
	bValidator "github.com/x-xyz/goexchange/base/validator"
	"github.com/x-xyz/goexchange/domain"
	"github.com/x-xyz/goexchange/domain/exchange"
	"github.com/x-xyz/goexchange/domain/order"
	mmiddleware "github.com/x-xyz/goexchange/middleware"
	"github.com/x-xyz/goexchange/service/cache/provider/primitive"
	"github.com/x-xyz/goexchange/service/query"
	account_repository "github.com/x-xyz/goexchange/stores/account/repository"
	account_usecase "github.com/x-xyz/goexchange/stores/account/usecase"
	allowlist_usecase "github.com/x-xyz/goexchange/stores/allowlist/usecase"
	auth_delivery "github.com/x-xyz/goexchange/stores/auth/delivery/http"
	auth_middleware "github.com/x-xyz/goexchange/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/x-xyz/goexchange/stores/auth/usecase"
	exchange_delivery "github.com/x-xyz/goexchange/stores/exchange/delivery/http"
	exchange_repository "github.com/x-xyz/goexchange/stores/exchange/repository"
	exchange_usecase "github.com/x-xyz/goexchange/stores/exchange/usecase"
	fee_usecase "github.com/x-xyz/goexchange/stores/fee/usecase"
	hc_delivery "github.com/x-xyz/goexchange/stores/healthcheck/delivery/http"
	hc_repo "github.com/x-xyz/goexchange/stores/healthcheck/repository"
	hc_usecase "github.com/x-xyz/goexchange/stores/healthcheck/usecase"
	ledger_repository "github.com/x-xyz/goexchange/stores/ledger/repository"
	order_usecase "github.com/x-xyz/goexchange/stores/order/usecase"
	paytoken_repository "github.com/x-xyz/goexchange/stores/paytoken/repository"

	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/x-xyz/goexchange/app/exchanged/docs"
)

var configFile = pflag.String("config", "infra/configs/config.yaml", "path of the yaml config")

func init() {
	pflag.Parse()

	viper.SetConfigType("yaml")
	viper.SetConfigFile(*configFile)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	viper.SetDefault("http.port", ":8080")
	viper.SetDefault("http.eventsCacheTtl", 2*time.Second)
	viper.SetDefault("sequencer.queueLength", 1024)
	viper.SetDefault("events.queueLength", 1024)
	viper.SetDefault("cache.sizeMB", 64)
	viper.SetDefault("redis.channel", exchange_repository.DefaultEventChannel)

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

//	@title			X Exchange API
//	@version		1.0
//	@description	Settlement engine for signed NFT listings and offers.

// main
//
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description				retrieve a token from POST /auth/token and send it as `Bearer {token}`
func main() {
	defer log.Sync()

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	context := ctx.Background()

	// exchange domain
	var exchangeDomain order.Domain
	if err := viper.UnmarshalKey("exchange", &exchangeDomain); err != nil {
		context.WithField("err", err).Panic("viper.UnmarshalKey failed")
	}
	exchangeDomain.VerifyingContract = exchangeDomain.VerifyingContract.ToLower()
	owner := domain.Address(viper.GetString("exchange.owner")).ToLower()
	if exchangeDomain.VerifyingContract.IsEmpty() || owner.IsEmpty() {
		context.Panic("exchange.address and exchange.owner are required")
	}

	wrappedNative := domain.Address(viper.GetString("exchange.wrappedNative")).ToLower()
	if wrappedNative.IsEmpty() {
		wrappedNative = domain.ChainIdWrappedNativeMap[exchangeDomain.ChainId]
	}

	// in-process cache, used by the authenticator, login replay protection and http reads
	cache := primitive.NewPrimitive("exchange", viper.GetInt("cache.sizeMB"))

	var paytokens []domain.PayToken
	if err := viper.UnmarshalKey("paytokens", &paytokens); err != nil {
		context.WithField("err", err).Panic("viper.UnmarshalKey failed")
	}
	priceFormatter := pricefomatter.NewPriceFormatter(&pricefomatter.PriceFormatterCfg{
		Paytoken: paytoken_repository.NewPayTokenRepo(paytokens),
	})

	// state machine
	j := journal.New()
	seq := sequencer.New(viper.GetInt("sequencer.queueLength"))
	defer seq.Release()

	erc20 := ledger_repository.NewErc20Ledger(j)
	erc721 := ledger_repository.NewErc721Ledger(j)
	native := ledger_repository.NewNativeLedger(j)

	orderNonceRepo := account_repository.NewOrderNonceRepo(j)
	orderNonce := account_usecase.NewOrderNonceUseCase(orderNonceRepo)

	allowlist, err := allowlist_usecase.New(&allowlist_usecase.AllowlistUseCaseCfg{
		Journal:     j,
		Currencies:  toAddresses(viper.GetStringSlice("exchange.currencies")),
		Collections: toAddresses(viper.GetStringSlice("exchange.collections")),
	})
	if err != nil {
		context.WithField("err", err).Panic("allowlist_usecase.New failed")
	}

	fee, err := fee_usecase.New(&fee_usecase.FeeUseCaseCfg{
		Journal:   j,
		Rate:      viper.GetInt64("exchange.feeRate"),
		Recipient: domain.Address(viper.GetString("exchange.feeRecipient")),
	})
	if err != nil {
		context.WithField("err", err).Panic("fee_usecase.New failed")
	}

	authenticator, err := order_usecase.NewAuthenticator(&order_usecase.AuthenticatorCfg{
		Domain: exchangeDomain,
		Cache:  cache,
	})
	if err != nil {
		context.WithField("err", err).Panic("order_usecase.NewAuthenticator failed")
	}

	// event log
	var (
		eventRepo   exchange.EventRepo
		eventSinks  []exchange.EventSink
		mongoClient *mongoclient.Client
		redisPool   *redis.Pool
	)
	var mongoCfg mongoclient.Config
	if err := viper.UnmarshalKey("mongo", &mongoCfg); err != nil {
		context.WithField("err", err).Panic("viper.UnmarshalKey failed")
	}
	if mongoCfg.URI != "" {
		context.Info("init mongo")
		mongoClient = mongoclient.MustConnect(mongoCfg)
		defer mongoClient.Disconnect(context)
		q := query.New(mongoClient, viper.GetBool("mongo.checkIndex"))
		if err := exchange_repository.EnsureEventIndexes(context, q); err != nil {
			context.WithField("err", err).Panic("EnsureEventIndexes failed")
		}
		eventRepo = exchange_repository.NewEventMongoRepo(q)
	} else {
		context.Info("mongo.uri not set, events are kept in memory")
		eventRepo = exchange_repository.NewEventMemoryRepo()
	}
	var redisCfg redisclient.Config
	if err := viper.UnmarshalKey("redis", &redisCfg); err != nil {
		context.WithField("err", err).Panic("viper.UnmarshalKey failed")
	}
	if redisCfg.URI != "" {
		context.Info("init redis")
		redisPool = redisclient.MustConnectRedis(redisCfg)
		defer redisPool.Close()
		eventSinks = append(eventSinks, exchange_repository.NewEventPublisher(redisPool, viper.GetString("redis.channel")))
	}

	exchangeUC := exchange_usecase.NewExchangeUseCase(&exchange_usecase.ExchangeUseCaseCfg{
		Address:               exchangeDomain.VerifyingContract,
		Owner:                 owner,
		WrappedNative:         wrappedNative,
		AllowZeroAmountOrders: viper.GetBool("exchange.allowZeroAmountOrders"),
		Journal:               j,
		Sequencer:             seq,
		Authenticator:         authenticator,
		OrderNonceUseCase:     orderNonce,
		AllowlistUseCase:      allowlist,
		FeeUseCase:            fee,
		Erc20:                 erc20,
		Erc721:                erc721,
		Native:                native,
		EventRepo:             eventRepo,
		EventSinks:            eventSinks,
		EventQueueLength:      viper.GetInt("events.queueLength"),
		PriceFormatter:        priceFormatter,
		Metrics:               metrics.New("exchange"),
	})

	if viper.IsSet("ledger") {
		var seed ledgerSeed
		if err := viper.UnmarshalKey("ledger", &seed); err != nil {
			context.WithField("err", err).Panic("viper.UnmarshalKey failed")
		}
		if err := seed.apply(context, seq, j, exchangeDomain.VerifyingContract, erc20, erc721, native); err != nil {
			context.WithField("err", err).Panic("ledger seeding failed")
		}
	}

	auth := auth_usecase.New(&auth_usecase.AuthUseCaseCfg{
		JwtSecret:   viper.GetString("jwt.secret"),
		Template:    viper.GetString("jwt.signingMsg"),
		TokenTtl:    viper.GetDuration("jwt.ttl"),
		ProofWindow: viper.GetDuration("jwt.proofWindow"),
		UsedProofs:  cache,
	})
	authMiddleware := auth_middleware.New(auth, owner)

	hc := hc_usecase.New(hc_repo.New(mongoClient, redisPool), exchangeUC)

	hc_delivery.New(e, hc)
	auth_delivery.New(e, auth)
	exchange_delivery.New(e, exchangeUC, authMiddleware, cache, viper.GetDuration("http.eventsCacheTtl"))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	go func() {
		if err := e.Start(viper.GetString("http.port")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
	if err := exchangeUC.Flush(ctx); err != nil {
		log.Log().WithField("err", err).Error("exchangeUC.Flush failed")
	}
}

func toAddresses(ss []string) []domain.Address {
	res := make([]domain.Address, 0, len(ss))
	for _, s := range ss {
		res = append(res, domain.Address(s).ToLower())
	}
	return res
}
