package handlers

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/christmas3d/shop-api/internal/store"
)

const (
	AppTitle   = "Christmas 3D Shop API"
	AppVersion = "1.1.0"

	maxListedCollections = 10
	maxErrorChars        = 50
)

// System carries what the diagnostic and probe endpoints inspect.
type System struct {
	Store   *store.Handle
	Redis   *redis.Client
	Started time.Time
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// RegisterSystemRoutes registers /, /api/hello, /test, /health and /ready.
func RegisterSystemRoutes(r gin.IRouter, sys System) {
	if sys.Getenv == nil {
		sys.Getenv = os.Getenv
	}
	if sys.Started.IsZero() {
		sys.Started = time.Now()
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Christmas 3D Shop Backend is running"})
	})
	r.GET("/api/hello", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello from the backend API!"})
	})
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, sys.diagnose(c.Request.Context()))
	})

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// 200 only when the store is attached; redis is reported but optional
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{"store": sys.Store.Available()}
		ready := deps["store"]
		if sys.Redis != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			deps["redis"] = sys.Redis.Ping(ctx).Err() == nil
			cancel()
		}
		uptime := time.Since(sys.Started).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": uptime})
	})
}

// diagnose never fails; problems end up in the "database" field.
func (sys System) diagnose(ctx context.Context) gin.H {
	resp := gin.H{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      nil,
		"database_name":     nil,
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	gw, err := sys.Store.Gateway()
	if err != nil {
		resp["database"] = "⚠️  Available but not initialized"
	} else {
		resp["database"] = "✅ Available"
		resp["connection_status"] = "Connected"
		names, err := safeCollections(ctx, gw)
		if err != nil {
			resp["database"] = "⚠️  Connected but Error: " + truncate(err.Error(), maxErrorChars)
		} else {
			if len(names) > maxListedCollections {
				names = names[:maxListedCollections]
			}
			if names == nil {
				names = []string{}
			}
			resp["collections"] = names
			resp["database"] = "✅ Connected & Working"
		}
	}

	resp["database_url"] = setOrNot(sys.Getenv("DATABASE_URL"))
	resp["database_name"] = setOrNot(sys.Getenv("DATABASE_NAME"))
	return resp
}

func safeCollections(ctx context.Context, gw store.Gateway) (names []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return gw.Collections(ctx)
}

func setOrNot(v string) string {
	if v != "" {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
