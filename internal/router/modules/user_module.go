package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/go-commerce-ddd/internal/container"
	handlers "github.com/danuartha/go-commerce-ddd/internal/interface/http"
	"github.com/danuartha/go-commerce-ddd/internal/interface/middleware"
)

// UserModule wires user HTTP handlers into routes under /api/users.
type UserModule struct {
	Handler      *handlers.UserHandler
	OrderHandler *handlers.OrderHandler
}

func NewUserModule(h *handlers.UserHandler, oh *handlers.OrderHandler) *UserModule {
	return &UserModule{Handler: h, OrderHandler: oh}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	var limiters []gin.HandlerFunc
	if container.GetConfig().RateLimitEnabled {
		limiters = append(limiters,
			middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		)
	}

	users := rg.Group("/users")
	users.Use(limiters...)
	{
		users.POST("", m.Handler.Create)
		users.GET("", m.Handler.List)
		users.GET("/search", m.Handler.Search)
		users.GET("/:id", m.Handler.Get)
		users.PUT("/:id", m.Handler.Update)
		users.DELETE("/:id", m.Handler.Delete)
		users.GET("/:id/orders", m.OrderHandler.ListByUser)
	}
}
