package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/christmas3d/shop-api/internal/models"
	"github.com/christmas3d/shop-api/internal/shop/service"
	"github.com/christmas3d/shop-api/pkg/logger"
	"github.com/christmas3d/shop-api/pkg/metrics"
	"github.com/christmas3d/shop-api/pkg/middleware"
)

// RegisterShopRoutes registers the lead and product endpoints under /api.
func RegisterShopRoutes(r gin.IRouter, svc *service.Service) {
	api := r.Group("/api")
	registerLeadRoutes(api, svc)
	registerProductRoutes(api, svc)
}

// RegisterProductRoutes registers only the product endpoints under /api.
func RegisterProductRoutes(r gin.IRouter, svc *service.Service) {
	registerProductRoutes(r.Group("/api"), svc)
}

func registerLeadRoutes(api gin.IRouter, svc *service.Service) {
	api.POST("/leads", func(c *gin.Context) {
		var in models.LeadInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, service.ValidationError(err))
			return
		}
		id, err := svc.CreateLead(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id})
	})
}

func registerProductRoutes(api gin.IRouter, svc *service.Service) {
	api.GET("/products", func(c *gin.Context) {
		list, err := svc.ListProducts(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	api.POST("/products", func(c *gin.Context) {
		var in models.ProductInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, service.ValidationError(err))
			return
		}
		id, err := svc.CreateProduct(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "id": id})
	})

	api.PUT("/products/:id", func(c *gin.Context) {
		var in models.ProductUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, service.ValidationError(err))
			return
		}
		p, err := svc.UpdateProduct(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	api.DELETE("/products/:id", func(c *gin.Context) {
		if err := svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// respondError writes {"error": <class>, "detail": <cause>} with the
// status of the failure class. Unclassified errors are server faults.
func respondError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = &service.Error{Kind: service.ErrStoreFailure, Class: service.ClassServerError, Detail: err.Error(), Err: err}
	}
	metrics.RequestFailures.WithLabelValues(se.KindName(), se.Class.String()).Inc()
	if se.Class == service.ClassServerError {
		logger.Errorw("request failed", "method", c.Request.Method, "path", c.FullPath(), "kind", se.KindName(), "request_id", middleware.RequestID(c), "error", err)
	} else {
		logger.Debugw("request rejected", "method", c.Request.Method, "path", c.FullPath(), "kind", se.KindName(), "request_id", middleware.RequestID(c), "detail", se.Detail)
	}
	c.JSON(se.Class.HTTPStatus(), gin.H{"error": se.Class.String(), "detail": se.Detail})
}
