package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/learnly/course-platform/docs"
	"github.com/learnly/course-platform/internal/api/handler"
	"github.com/learnly/course-platform/internal/api/middleware"
	"github.com/learnly/course-platform/internal/core/domain"
	"github.com/learnly/course-platform/internal/core/ports"
	"github.com/learnly/course-platform/internal/core/service"
	"github.com/learnly/course-platform/internal/core/token"
	"github.com/learnly/course-platform/internal/infrastructure/config"
	mongodb "github.com/learnly/course-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/learnly/course-platform/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; revocation is then disabled and logout is advisory only.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("learnly"))

	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Dependencies ---
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)

	var revoker ports.TokenRevoker
	if rdb != nil {
		revoker = redisdb.NewDenylist(rdb)
	}

	userRepo := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, codec, revoker)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService, codec.TTL(), cfg.SecureCookies())
	userHandler := handler.NewUserHandler(userService)
	authGate := middleware.Auth(codec, revoker, log)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)
	e.GET("/api/auth/me", authHandler.Me, authGate)

	// --- Admin routes (full gate: authenticate, then authorize) ---
	users := e.Group("/api/users", authGate, middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List)
	users.PATCH("/:id/role", userHandler.ChangeRole)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
