package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cekresi/satwa/config"
	satwaapi "github.com/cekresi/satwa/internal/api/satwa_api"
	"github.com/cekresi/satwa/internal/auth"
	"github.com/cekresi/satwa/internal/broker/kafka"
	"github.com/cekresi/satwa/internal/broker/rabbitmq"
	"github.com/cekresi/satwa/internal/objectstore/miniostore"
	"github.com/cekresi/satwa/internal/ratelimit/redislimit"
	"github.com/cekresi/satwa/internal/services/satwa"
	"github.com/cekresi/satwa/internal/services/users"
	"github.com/cekresi/satwa/internal/storage/pgsatwa"
)

type satwaAPIApp struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   satwaAPIOpts
	api    *satwaapi.SatwaAPI
	db     *pgsatwa.Storage

	closers []func()
}

func mustBootstrapSatwaAPI() *satwaAPIApp {
	if err := config.LoadDotEnv(); err != nil {
		panic(err)
	}

	cfgPath := os.Getenv("configPath")
	if cfgPath == "" {
		panic("configPath env var is required")
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("ошибка парсинга конфига, %v", err))
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		panic(fmt.Sprintf("ошибка переменных окружения, %v", err))
	}

	app := &satwaAPIApp{}

	logger, closeLog := newLogger(cfg.Satwa.LogFile, cfg.Satwa.LogLevel)
	slog.SetDefault(logger)
	app.closers = append(app.closers, closeLog)

	httpAddr := cfg.Satwa.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}
	swaggerPath := os.Getenv("swaggerPath")
	if swaggerPath == "" {
		swaggerPath = cfg.Satwa.SwaggerPath
	}
	if swaggerPath == "" {
		panic("swaggerPath env var is required")
	}
	topic := cfg.Kafka.SatwaEventTopicName
	if topic == "" {
		topic = "satwa.event"
	}
	tokenTTL := time.Duration(cfg.Satwa.TokenTTLSeconds) * time.Second
	loginLimit := users.LoginLimit{
		Attempts: int64(cfg.Satwa.LoginRateLimit),
		Window:   time.Duration(cfg.Satwa.LoginRateWindowSeconds) * time.Second,
	}
	if loginLimit.Attempts <= 0 {
		loginLimit.Attempts = 10
	}
	if loginLimit.Window <= 0 {
		loginLimit.Window = time.Minute
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "cekresi-files"
	}

	st := mustOpenPostgresWithRetry(cfg.Database.ConnString(), 60*time.Second)
	app.db = st
	app.closers = append(app.closers, st.Close)

	objects := mustOpenObjectStore(cfg.Storage)

	tokens, err := auth.NewTokens(cfg.Satwa.JWTSecret, tokenTTL)
	if err != nil {
		panic(err)
	}

	var limiter users.Limiter
	if addr := cfg.Redis.Addr(); addr != "" {
		rl := redislimit.NewRateLimiter(addr)
		limiter = rl
		app.closers = append(app.closers, func() { _ = rl.Close() })
	} else {
		slog.Warn("redis is not configured, login rate limiting disabled")
	}

	pub, closePub := mustOpenPublisher(cfg)
	app.closers = append(app.closers, closePub)

	shipments := satwa.New(st, objects, pub, topic)
	accounts := users.New(st, tokens, limiter, loginLimit)
	app.api = satwaapi.New(shipments, accounts, tokens).TrustProxyHeaders(cfg.Satwa.TrustProxyHeaders)

	app.ctx, app.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	app.opts = satwaAPIOpts{
		httpAddr:    httpAddr,
		swaggerPath: swaggerPath,
	}
	return app
}

func mustOpenPostgresWithRetry(connString string, wait time.Duration) *pgsatwa.Storage {
	deadline := time.Now().Add(wait)
	var lastErr error
	for time.Now().Before(deadline) {
		st, err := pgsatwa.New(connString)
		if err == nil {
			return st
		}
		lastErr = err
		time.Sleep(1 * time.Second)
	}
	panic(fmt.Sprintf("postgres is not ready after %s: %v", wait, lastErr))
}

func mustOpenObjectStore(cfg config.StorageConfig) *miniostore.Store {
	store, err := miniostore.New(miniostore.Options{
		Endpoint:      cfg.Addr(),
		AccessKey:     cfg.AccessKey,
		SecretKey:     cfg.SecretKey,
		UseSSL:        cfg.UseSSL,
		Region:        cfg.Region,
		Bucket:        cfg.Bucket,
		PublicBaseURL: cfg.PublicBaseURL,
	})
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := store.EnsureBucket(ctx); err != nil {
		panic(fmt.Sprintf("object store is not ready: %v", err))
	}
	return store
}

// mustOpenPublisher возвращает nil-интерфейс, если события выключены.
func mustOpenPublisher(cfg *config.Config) (satwa.Publisher, func()) {
	switch cfg.Satwa.EventsDriver {
	case "kafka":
		brokers := []string{fmt.Sprintf("%s:%d", cfg.Kafka.Host, cfg.Kafka.Port)}
		p := kafka.NewProducer(brokers)
		slog.Info("events: kafka producer", "brokers", brokers)
		return p, func() { _ = p.Close() }
	case "rabbitmq":
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			panic(err)
		}
		slog.Info("events: rabbitmq publisher")
		return p, func() { _ = p.Close() }
	case "", "none":
		slog.Info("events disabled")
		return nil, func() {}
	default:
		panic(fmt.Sprintf("unknown events driver %q", cfg.Satwa.EventsDriver))
	}
}

func (a *satwaAPIApp) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *satwaAPIApp) Run() error {
	return runSatwaAPI(a.ctx, a.opts, a.api, a.db)
}
