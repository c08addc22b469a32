package router

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GabrielHenriqueHE/sinapse/internal/config"
	"github.com/GabrielHenriqueHE/sinapse/internal/database"
	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/dto"
	"github.com/GabrielHenriqueHE/sinapse/internal/handler"
	"github.com/GabrielHenriqueHE/sinapse/internal/metrics"
	"github.com/GabrielHenriqueHE/sinapse/internal/middleware"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/service"
)

// Config holds router configuration
type Config struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	App     *config.Config
}

// Services groups the service layer built during router setup, so the
// caller can hand pieces of it to the background jobs
type Services struct {
	Auth        service.AuthService
	Event       service.EventService
	Enrollment  service.EnrollmentService
	Certificate service.CertificateService
	Template    service.TemplateService
}

// Setup sets up the router with all routes
func Setup(cfg Config) (*gin.Engine, *Services) {
	r := gin.New()

	// Middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.App.Server.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	// Custom binding validations
	dto.RegisterValidations()

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "sinapse"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if !database.IsConnected(cfg.DB) {
			c.JSON(503, gin.H{"status": "not ready", "service": "sinapse"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "sinapse"})
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	categoryRepo := repository.NewCategoryRepository(cfg.DB)
	eventRepo := repository.NewEventRepository(cfg.DB)
	participationRepo := repository.NewParticipationRepository(cfg.DB)
	templateRepo := repository.NewCertificateTemplateRepository(cfg.DB)

	// Initialize services
	blacklist := database.NewTokenBlacklist(cfg.Redis)
	authService := service.NewAuthService(userRepo, blacklist, cfg.App.JWT.Secret, cfg.App.JWT.TTL, cfg.Logger)
	eventService := service.NewEventService(eventRepo, categoryRepo, participationRepo, cfg.Redis, cfg.Metrics, cfg.Logger)
	enrollmentService := service.NewEnrollmentService(eventRepo, participationRepo, eventService, cfg.Metrics, cfg.Logger)
	certificateService := service.NewCertificateService(userRepo, eventRepo, participationRepo, eventService, cfg.Metrics, cfg.Logger)
	templateService := service.NewTemplateService(templateRepo, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	eventHandler := handler.NewEventHandler(eventService)
	participationHandler := handler.NewParticipationHandler(enrollmentService)
	certificateHandler := handler.NewCertificateHandler(certificateService)
	templateHandler := handler.NewTemplateHandler(templateService)

	// API routes group
	api := r.Group(cfg.App.Server.BasePath)

	authRequired := middleware.Auth(cfg.App.JWT.Secret, blacklist)
	authOptional := middleware.OptionalAuth(cfg.App.JWT.Secret, blacklist)
	teacherOnly := middleware.RequireRole(domain.RoleTeacher)
	studentOnly := middleware.RequireRole(domain.RoleStudent)

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authRequired, authHandler.Logout)
		auth.GET("/me", authRequired, authHandler.Me)
	}

	// Event routes
	events := api.Group("/events")
	{
		events.GET("", authOptional, eventHandler.Dashboard)
		events.POST("", authRequired, teacherOnly, eventHandler.Create)
		events.GET("/:id", authOptional, eventHandler.Get)
		events.PUT("/:id", authRequired, teacherOnly, eventHandler.Update)
		events.DELETE("/:id", authRequired, teacherOnly, eventHandler.Delete)

		events.POST("/:id/close", authRequired, teacherOnly, eventHandler.Close)
		events.POST("/:id/cancel", authRequired, teacherOnly, eventHandler.Cancel)
		events.POST("/:id/finish", authRequired, teacherOnly, eventHandler.Finish)

		events.POST("/:id/enroll", authRequired, studentOnly, participationHandler.Enroll)
		events.DELETE("/:id/enroll", authRequired, studentOnly, participationHandler.CancelEnrollment)
		events.GET("/:id/attendance", authRequired, teacherOnly, participationHandler.GetAttendance)
		events.PATCH("/:id/attendance", authRequired, teacherOnly, participationHandler.UpdateAttendance)

		events.GET("/:id/certificate", authRequired, studentOnly, certificateHandler.Download)
	}

	// Category routes
	api.GET("/categories", eventHandler.ListCategories)

	// Certificate routes
	certificates := api.Group("/certificates")
	{
		certificates.GET("", authRequired, studentOnly, certificateHandler.List)

		templates := certificates.Group("/templates", authRequired, teacherOnly)
		{
			templates.POST("", templateHandler.Create)
			templates.GET("", templateHandler.List)
			templates.POST("/preview", templateHandler.QuickPreview)
			templates.GET("/:id", templateHandler.Get)
			templates.PUT("/:id", templateHandler.Update)
			templates.DELETE("/:id", templateHandler.Delete)
			templates.POST("/:id/duplicate", templateHandler.Duplicate)
		}
	}

	services := &Services{
		Auth:        authService,
		Event:       eventService,
		Enrollment:  enrollmentService,
		Certificate: certificateService,
		Template:    templateService,
	}
	return r, services
}
