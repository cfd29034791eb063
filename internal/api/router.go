package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/One-Orco/quickrent-backend/docs"
	"github.com/One-Orco/quickrent-backend/internal/api/handler"
	"github.com/One-Orco/quickrent-backend/internal/api/middleware"
	"github.com/One-Orco/quickrent-backend/internal/core/domain"
	"github.com/One-Orco/quickrent-backend/internal/core/service"
	"github.com/One-Orco/quickrent-backend/internal/infrastructure/config"
	mongodb "github.com/One-Orco/quickrent-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/One-Orco/quickrent-backend/internal/infrastructure/db/redis"
	"github.com/One-Orco/quickrent-backend/internal/infrastructure/storage"
	"github.com/One-Orco/quickrent-backend/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("quickrent"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	dealRepo := mongodb.NewDealRepository(db)
	docRepo := mongodb.NewDocumentRepository(db)
	reportRepo := mongodb.NewReportRepository(db)

	fileStore, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	throttle := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	authService := service.NewAuthService(userRepo, issuer, throttle, log)
	dealService := service.NewDealService(dealRepo, domain.WorkflowVariant(cfg.DealWorkflow), log)
	docService := service.NewDocumentService(dealRepo, docRepo, fileStore, log)
	reportService := service.NewReportService(reportRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	dealHandler := handler.NewDealHandler(dealService)
	docHandler := handler.NewDocumentHandler(docService)
	reportHandler := handler.NewReportHandler(reportService)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated API ---
	v1 := e.Group("/v1", middleware.Auth(authService))

	deals := v1.Group("/deals")
	deals.POST("", dealHandler.Create, middleware.RequireAction(domain.ActionCreateDeal))
	deals.GET("", dealHandler.List)
	deals.GET("/:reference", dealHandler.Get)
	deals.POST("/:reference/approve", dealHandler.Approve, middleware.RequireAction(domain.ActionApproveDeal))
	deals.POST("/:reference/decline", dealHandler.Decline, middleware.RequireAction(domain.ActionDeclineDeal))
	deals.POST("/:reference/forward", dealHandler.Forward, middleware.RequireAction(domain.ActionForwardDeal))
	deals.POST("/:reference/documents", docHandler.Upload, middleware.RequireAction(domain.ActionUploadDocument))
	deals.GET("/:reference/documents", docHandler.List)

	v1.GET("/realtor/deals", dealHandler.RealtorQueue, middleware.RequireAction(domain.ActionViewRealtorQueue))
	v1.GET("/reports/summary", reportHandler.Summary, middleware.RequireAction(domain.ActionViewReports))

	// --- Observability & docs (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e, nil
}
