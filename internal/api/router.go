package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookbuddy/library-api/internal/api/handler"
	"github.com/bookbuddy/library-api/internal/api/middleware"
	"github.com/bookbuddy/library-api/internal/core/domain"
	"github.com/bookbuddy/library-api/internal/core/service"
	"github.com/bookbuddy/library-api/internal/infrastructure/config"
	mongodb "github.com/bookbuddy/library-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookbuddy/library-api/internal/infrastructure/db/redis"
	"github.com/bookbuddy/library-api/internal/infrastructure/openlibrary"
	"github.com/bookbuddy/library-api/internal/pkg/password"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Request pipeline: sanitizer → (rate limit) → bind+validate → (auth) →
// (role gate) → handler.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.BodyLimit("10M"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.PATCH, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.Sanitize())
	e.Use(echoprometheus.NewMiddleware("bookbuddy"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	postRepo := mongodb.NewPostRepository(db)
	hasher := password.NewBcrypt()

	tokens := service.TokenConfig{
		AccessSecret:  cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.Expire,
		RefreshTTL:    cfg.JWT.RefreshExpire,
	}
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	userService := service.NewUserService(userRepo, hasher, log)
	bookService := service.NewBookService(bookRepo, log)
	postService := service.NewPostService(postRepo, log)
	statsService := service.NewStatsService(bookRepo, postRepo, userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	bookHandler := handler.NewBookHandler(bookService, openlibrary.NewClient())
	postHandler := handler.NewPostHandler(postService)
	statsHandler := handler.NewStatsHandler(statsService)

	counter := redisdb.NewWindowCounter(rdb)
	apiLimiter := middleware.RateLimit(counter, middleware.APILimit, log)
	authLimiter := middleware.RateLimit(counter, middleware.AuthLimit, log)
	likeLimiter := middleware.RateLimit(counter, middleware.LikeLimit, log)

	requireAuth := middleware.RequireAuth(authService)
	superAdminOnly := middleware.RequireRole(domain.RoleSuperAdmin)

	// --- API routes ---
	apiGroup := e.Group("/api", apiLimiter)

	auth := apiGroup.Group("/auth")
	auth.POST("/login", authHandler.Login, authLimiter)
	auth.POST("/refresh", authHandler.Refresh, authLimiter)
	auth.POST("/register", authHandler.Register, requireAuth, superAdminOnly)
	auth.GET("/me", authHandler.Me, requireAuth)

	users := apiGroup.Group("/users", requireAuth, superAdminOnly)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)
	users.PUT("/:id/password", userHandler.ResetPassword)

	books := apiGroup.Group("/books")
	books.GET("", bookHandler.List)
	books.GET("/api/search", bookHandler.CatalogSearch, requireAuth)
	books.GET("/:id", bookHandler.Get)
	books.POST("", bookHandler.Create, requireAuth)
	books.PUT("/:id", bookHandler.Update, requireAuth)
	books.DELETE("/:id", bookHandler.Delete, requireAuth)

	posts := apiGroup.Group("/posts")
	posts.GET("", postHandler.ListPublished)
	posts.GET("/admin/all", postHandler.ListAll, requireAuth)
	posts.GET("/admin/:id", postHandler.GetByID, requireAuth)
	posts.POST("", postHandler.Create, requireAuth)
	posts.PUT("/:id", postHandler.Update, requireAuth)
	posts.DELETE("/:id", postHandler.Delete, requireAuth)
	posts.POST("/:id/like", postHandler.Like, likeLimiter)
	posts.GET("/:slug", postHandler.GetBySlug)

	apiGroup.GET("/stats", statsHandler.Dashboard, requireAuth)

	// --- Probes and metrics (no auth, no rate limit) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
