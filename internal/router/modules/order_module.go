package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-ddd/internal/container"
	handlers "github.com/danuartha/go-commerce-ddd/internal/interface/http"
	"github.com/danuartha/go-commerce-ddd/internal/interface/middleware"
)

// OrderModule wires order HTTP handlers into routes under /api/orders.
type OrderModule struct {
	Handler *handlers.OrderHandler
}

func NewOrderModule(h *handlers.OrderHandler) *OrderModule {
	return &OrderModule{Handler: h}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	var limiters []gin.HandlerFunc
	if container.GetConfig().RateLimitEnabled {
		limiters = append(limiters,
			middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		)
	}

	orders := rg.Group("/orders")
	orders.Use(limiters...)
	{
		orders.POST("", m.Handler.Create)
		orders.GET("", m.Handler.ListByStatus)
		orders.GET("/:id", m.Handler.Get)
		orders.PATCH("/:id/status", m.Handler.UpdateStatus)
	}
}
