// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"zenpay/internal/config"
	"zenpay/internal/gateway"
	"zenpay/internal/handler"
	"zenpay/internal/handler/api"
	"zenpay/internal/metrics"
	"zenpay/internal/middleware"
	"zenpay/internal/ratelimit"
	"zenpay/internal/repository"
)

// Setup configures all routes for the Echo server.
func Setup(
	e *echo.Echo,
	db *gorm.DB,
	cfg *config.Config,
	gateways *gateway.Registry,
	limiter ratelimit.Limiter,
	notifier handler.Notifier,
	rec metrics.Recorder,
	logger *zap.Logger,
) {
	e.Use(echomw.Recover())
	e.Use(middleware.CORS())

	methods := repository.NewMethodRepository(db)
	intents := repository.NewIntentRepository(db)

	paymentHandler := api.NewPaymentHandler(
		methods, intents, gateways,
		cfg.Payment.CallbackBaseURL,
		logger,
	)
	callbackHandler := handler.NewPaymentCallbackHandler(intents, notifier, rec, logger)

	// Mini-app API, authenticated by Telegram init data.
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.InitDataAuth(cfg.Bot.Token, cfg.Payment.InitDataMaxAge))
	apiGroup.Use(middleware.RateLimit(limiter, cfg.Payment.RateLimitMax, cfg.Payment.RateLimitWindow))

	apiGroup.GET("/payment/methods", paymentHandler.Methods)
	apiGroup.POST("/payment/topup", paymentHandler.CreateTopUp)
	apiGroup.POST("/payment/stars-invoice", paymentHandler.StarsInvoice)

	// Provider callbacks, unauthenticated.
	paymentGroup := e.Group("/payment/callback")
	paymentGroup.POST("/cryptobot", callbackHandler.CryptoBotCallback)
	paymentGroup.POST("/yookassa", callbackHandler.YooKassaCallback)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}
