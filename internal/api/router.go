package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/shopgrid/commerce-api/internal/api/handler"
	"github.com/shopgrid/commerce-api/internal/api/middleware"
	"github.com/shopgrid/commerce-api/internal/core/ports"
	"github.com/shopgrid/commerce-api/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs to serve requests.
type Dependencies struct {
	Logger       zerolog.Logger
	Codec        ports.TokenCodec
	Operators    ports.OperatorService
	Shops        ports.ShopService
	Items        ports.ItemService
	Invoices     ports.InvoiceService
	HealthChecks map[string]handlers.Check
	CORSOrigins  []string
	ExposeErrors bool
	// Registry receives the HTTP request metrics and backs /metrics.
	// Nil means the prometheus default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.ExposeErrors)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLog(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{AllowOrigins: deps.CORSOrigins}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsConfig(deps.Registry)))

	operatorHandler := handler.NewOperatorHandler(deps.Operators)
	shopHandler := handler.NewShopHandler(deps.Shops)
	itemHandler := handler.NewItemHandler(deps.Items)
	invoiceHandler := handler.NewInvoiceHandler(deps.Invoices)
	authn := middleware.Authenticate(deps.Codec)

	api := e.Group("/api")

	// --- Operator routes ---
	api.POST("/operator/signup", operatorHandler.Signup)
	api.POST("/operator/login", operatorHandler.Login)
	api.GET("/operator/profile", operatorHandler.Profile, authn)
	api.POST("/operator/accounts", operatorHandler.Provision, authn)

	// --- Commerce routes ---
	// Role checks happen inside each handler.
	api.POST("/shops", shopHandler.Create, authn)
	api.GET("/shops", shopHandler.List, authn)
	api.POST("/items", itemHandler.Create, authn)
	api.GET("/items/shop/:shopId", itemHandler.ListByShop, authn)
	api.POST("/invoices", invoiceHandler.Create, authn)
	api.GET("/invoices", invoiceHandler.List, authn)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", metricsHandler(deps.Registry))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func metricsConfig(reg *prometheus.Registry) echoprometheus.MiddlewareConfig {
	cfg := echoprometheus.MiddlewareConfig{Subsystem: "commerce"}
	if reg != nil {
		cfg.Registerer = reg
	}
	return cfg
}

func metricsHandler(reg *prometheus.Registry) echo.HandlerFunc {
	if reg == nil {
		return echoprometheus.NewHandler()
	}
	return echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: reg})
}
