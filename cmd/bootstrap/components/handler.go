package components

import (
	"boxbook/internal/handler"
	"boxbook/internal/handler/api"
	"boxbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewVenueHandler,
		api.NewBookingHandler,
		api.NewOwnerHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
