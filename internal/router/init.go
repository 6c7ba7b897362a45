package router

import (
	"github.com/danuartha/go-commerce-ddd/internal/application"
	"github.com/danuartha/go-commerce-ddd/internal/container"
	"github.com/danuartha/go-commerce-ddd/internal/infrastructure/messaging"
	pginfra "github.com/danuartha/go-commerce-ddd/internal/infrastructure/postgres"
	handlers "github.com/danuartha/go-commerce-ddd/internal/interface/http"
	"github.com/danuartha/go-commerce-ddd/internal/router/modules"
)

type Deps struct {
	UserService  *application.UserService
	OrderService *application.OrderService
	UserHandler  *handlers.UserHandler
	OrderHandler *handlers.OrderHandler
}

func buildDeps() Deps {
	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	orderRepo := pginfra.NewOrderRepository(container.GetPGPool())

	publisher := messaging.NewRabbitEventPublisher(container.GetRabbitPub(), container.GetLogger())

	userSvc := application.NewUserService(
		userRepo,
		publisher,
		container.GetRedis(),
		container.GetLogger(),
		container.GetES(),
		container.GetConfig().ESUsersIndex,
	)
	orderSvc := application.NewOrderService(
		orderRepo,
		userRepo,
		publisher,
		container.GetLogger(),
	)

	return Deps{
		UserService:  userSvc,
		OrderService: orderSvc,
		UserHandler:  handlers.NewUserHandler(userSvc, container.GetLogger()),
		OrderHandler: handlers.NewOrderHandler(orderSvc, container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup.
func InitModules(r *Registry) {
	deps := buildDeps()
	r.Add(modules.NewUserModule(deps.UserHandler, deps.OrderHandler))
	r.Add(modules.NewOrderModule(deps.OrderHandler))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
