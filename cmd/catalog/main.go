package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/christmas3d/shop-api/internal/config"
	"github.com/christmas3d/shop-api/internal/database"
	"github.com/christmas3d/shop-api/internal/shop/handler"
	"github.com/christmas3d/shop-api/internal/shop/service"
	"github.com/christmas3d/shop-api/internal/store"
	"github.com/christmas3d/shop-api/pkg/logger"
	"github.com/christmas3d/shop-api/pkg/middleware"
)

// catalog serves the product endpoints alone. It prefers MongoDB when
// DATABASE_URL is set and reachable and falls back to process memory.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	port := os.Getenv("CATALOG_PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	r := gin.New()
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	r.Use(middleware.RequestIDMiddleware(), gin.Recovery())

	var gw store.Gateway
	if cfg.Database.Configured() && cfg.Database.Backend == config.BackendMongo {
		client, err := database.ConnectMongo(context.Background(), cfg.Database.URL, cfg.Database.Timeout)
		if err != nil {
			logger.Warnf("cannot connect to MongoDB (%v); using memory-backed store", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = client.Disconnect(ctx)
			}()
			gw = store.NewMongoGateway(client.Database(cfg.Database.Name))
		}
	}
	if gw == nil {
		gw = store.NewMemoryGateway(cfg.Database.Name)
	}

	handler.RegisterProductRoutes(r, service.New(store.NewHandle(store.Instrument(gw))))

	addr := cfg.Server.Host + ":" + port
	logger.Infof("catalog service listening on %s (store=%s)", addr, gw.Name())
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
