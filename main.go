package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/christmas3d/shop-api/handlers"
	"github.com/christmas3d/shop-api/internal/cache"
	"github.com/christmas3d/shop-api/internal/config"
	"github.com/christmas3d/shop-api/internal/database"
	"github.com/christmas3d/shop-api/internal/shop/handler"
	"github.com/christmas3d/shop-api/internal/shop/service"
	"github.com/christmas3d/shop-api/internal/store"
	"github.com/christmas3d/shop-api/pkg/logger"
	"github.com/christmas3d/shop-api/pkg/metrics"
	"github.com/christmas3d/shop-api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal, LOG_FORMAT: text|json
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Infof("config loaded: backend=%s mongo=%v redis=%v", cfg.Database.Backend, cfg.Database.Configured(), cfg.Redis.Addr() != "")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := gin.New()
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(gin.Logger(), gin.Recovery())

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
			_ = rdb.Close()
			rdb = nil
		} else {
			logger.Infof("connected to Redis: %s", addr)
			defer func() { _ = rdb.Close() }()
		}
	}

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			r.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.Window))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// The handle starts empty; requests see an unavailable store until a
	// gateway is attached.
	h := store.NewHandle(nil)
	switch {
	case cfg.Database.Backend == config.BackendMemory:
		logger.Warnf("STORE_BACKEND=memory: data is kept in process memory only")
		h.Set(store.Instrument(store.NewMemoryGateway(cfg.Database.Name)))
	case cfg.Database.Configured():
		go attachMongo(ctx, cfg.Database, h)
	default:
		logger.Warnf("DATABASE_URL not set; store endpoints will report the database as unavailable")
	}

	var opts []service.Option
	if rdb != nil && cfg.Cache.ProductListTTL > 0 {
		opts = append(opts, service.WithCache(cache.NewRedisListCache(rdb, "", cfg.Cache.ProductListTTL)))
	}
	svc := service.New(h, opts...)

	handlers.RegisterSystemRoutes(r, handlers.System{Store: h, Redis: rdb, Started: startTime})
	handler.RegisterShopRoutes(r, svc)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("starting %s %s on %s", handlers.AppTitle, handlers.AppVersion, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
}

// attachMongo connects with retry/backoff and attaches the gateway on success.
// The client is disconnected when ctx ends.
func attachMongo(ctx context.Context, db config.DatabaseConfig, h *store.Handle) {
	client, err := database.ConnectWithRetry(ctx, db.URL, database.RetryPolicy{
		Attempts: db.ConnectAttempts,
		Backoff:  time.Second,
		Timeout:  db.Timeout,
	})
	if err != nil {
		logger.Errorw("MongoDB unavailable", "error", err)
		return
	}
	h.Set(store.Instrument(store.NewMongoGateway(client.Database(db.Name))))
	logger.Infow("MongoDB connected", "database", db.Name)

	<-ctx.Done()
	h.Set(nil)
	dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = client.Disconnect(dctx)
}
