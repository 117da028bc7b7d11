package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/rentdesk/property-system/docs"
	"github.com/rentdesk/property-system/internal/api/handler"
	"github.com/rentdesk/property-system/internal/api/middleware"
	"github.com/rentdesk/property-system/internal/core/access"
	"github.com/rentdesk/property-system/internal/core/ports"
	"github.com/rentdesk/property-system/internal/core/service"
	mongorepo "github.com/rentdesk/property-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/rentdesk/property-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The event sink is constructed by the caller so its worker lifecycle stays
// outside the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, sink ports.EventSink, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	roleRepo := mongorepo.NewRoleRepository(db)
	apartmentRepo := mongorepo.NewApartmentRepository(db)
	tenantRepo := mongorepo.NewTenantRepository(db)
	rentalRepo := mongorepo.NewRentalRepository(db)
	paymentRepo := mongorepo.NewPaymentRepository(db)
	maintenanceRepo := mongorepo.NewMaintenanceRepository(db)

	// --- Services ---
	limiter := redisinfra.NewLoginLimiter(rdb)
	authService := service.NewAuthService(userRepo, roleRepo, limiter, jwtSecret, tokenTTL, log)
	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo, userRepo)
	apartmentService := service.NewApartmentService(apartmentRepo, userRepo, log)
	tenantService := service.NewTenantService(tenantRepo, userRepo)
	rentalService := service.NewRentalService(rentalRepo, apartmentRepo, tenantRepo)
	paymentService := service.NewPaymentService(paymentRepo, rentalRepo)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, apartmentRepo, tenantRepo, sink, log)

	// --- Handlers and routes ---
	registerRoutes(e, routeHandlers{
		auth:        handler.NewAuthHandler(authService),
		user:        handler.NewUserHandler(userService),
		role:        handler.NewRoleHandler(roleService),
		apartment:   handler.NewApartmentHandler(apartmentService),
		tenant:      handler.NewTenantHandler(tenantService),
		rental:      handler.NewRentalHandler(rentalService),
		payment:     handler.NewPaymentHandler(paymentService),
		maintenance: handler.NewMaintenanceHandler(maintenanceService),
	}, jwtSecret)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// routeHandlers groups the HTTP handlers the route table mounts.
type routeHandlers struct {
	auth        *handler.AuthHandler
	user        *handler.UserHandler
	role        *handler.RoleHandler
	apartment   *handler.ApartmentHandler
	tenant      *handler.TenantHandler
	rental      *handler.RentalHandler
	payment     *handler.PaymentHandler
	maintenance *handler.MaintenanceHandler
}

// registerRoutes mounts the auth and resource routes. Allow-lists come from
// the screen access policy so route-level RBAC and the console menu cannot
// disagree.
func registerRoutes(e *echo.Echo, h routeHandlers, jwtSecret string) {
	// Auth routes (public).
	e.POST("/auth/login", h.auth.Login)
	e.POST("/auth/signup", h.auth.Signup)

	auth := middleware.Auth(jwtSecret)

	users := e.Group("/users", auth, middleware.RBACFor(access.ScreenUsers))
	users.GET("", h.user.List)
	users.POST("", h.user.Create)
	users.PUT("/:id", h.user.Update)
	users.DELETE("/:id", h.user.Delete)

	// Reading a single user record needs authentication only: every signed-in
	// role fetches its own identity here right after login or restore.
	e.GET("/users/:id", h.user.Get, auth)

	roles := e.Group("/users/roles", auth, middleware.RBACFor(access.ScreenRoles))
	roles.GET("", h.role.List)
	roles.POST("", h.role.Create)
	roles.PUT("/:id", h.role.Update)
	roles.DELETE("/:id", h.role.Delete)

	apartments := e.Group("/apartments", auth, middleware.RBACFor(access.ScreenApartments))
	apartments.GET("", h.apartment.List)
	apartments.POST("", h.apartment.Create)
	apartments.GET("/:id", h.apartment.Get)
	apartments.PUT("/:id", h.apartment.Update)
	apartments.DELETE("/:id", h.apartment.Delete)

	tenants := e.Group("/tenants", auth, middleware.RBACFor(access.ScreenTenants))
	tenants.GET("", h.tenant.List)
	tenants.POST("", h.tenant.Create)
	tenants.GET("/:id", h.tenant.Get)
	tenants.PUT("/:id", h.tenant.Update)
	tenants.DELETE("/:id", h.tenant.Delete)

	rentals := e.Group("/rentals", auth, middleware.RBACFor(access.ScreenRentals))
	rentals.GET("", h.rental.List)
	rentals.POST("", h.rental.Create)
	rentals.GET("/:id", h.rental.Get)
	rentals.PUT("/:id", h.rental.Update)
	rentals.DELETE("/:id", h.rental.Delete)

	payments := e.Group("/payments", auth, middleware.RBACFor(access.ScreenPayments))
	payments.GET("", h.payment.List)
	payments.POST("", h.payment.Create)
	payments.GET("/:id", h.payment.Get)
	payments.PUT("/:id", h.payment.Update)
	payments.DELETE("/:id", h.payment.Delete)

	maintenance := e.Group("/maintenance", auth, middleware.RBACFor(access.ScreenMaintenance))
	maintenance.GET("", h.maintenance.List)
	maintenance.POST("", h.maintenance.Create)
	maintenance.GET("/:id", h.maintenance.Get)
	maintenance.PUT("/:id", h.maintenance.Update)
	maintenance.DELETE("/:id", h.maintenance.Delete)
}
