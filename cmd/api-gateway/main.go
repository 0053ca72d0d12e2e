package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/eduintel/eli-api/api/swagger"
	"github.com/eduintel/eli-api/internal/agent"
	"github.com/eduintel/eli-api/internal/handler"
	"github.com/eduintel/eli-api/internal/middleware"
	"github.com/eduintel/eli-api/internal/models"
	"github.com/eduintel/eli-api/internal/repository"
	"github.com/eduintel/eli-api/internal/service"
	"github.com/eduintel/eli-api/pkg/cache"
	"github.com/eduintel/eli-api/pkg/config"
	"github.com/eduintel/eli-api/pkg/database"
	"github.com/eduintel/eli-api/pkg/logger"
	corsmiddleware "github.com/eduintel/eli-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eduintel/eli-api/pkg/middleware/requestid"
)

// @title EduIntel API
// @version 1.0.0
// @description AI education gateway: analysis agents behind a human approval workflow
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, rating cache disabled", "error", err)
		redisClient = nil
	}

	approvalRepo := repository.NewApprovalRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	reviewerRepo := repository.NewReviewerRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	approvalSvc := service.NewApprovalService(approvalRepo, auditRepo, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, cacheRepo, auditRepo, cfg.Feedback.RatingCacheTTL, logr)
	authSvc := service.NewAuthService(reviewerRepo, auditRepo, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     "eli-api",
	})

	gemini := agent.NewGeminiClient(cfg.Gemini, logr)
	orchestratorSvc := service.NewOrchestratorService([]agent.Analyzer{
		agent.NewAssessmentAgent(gemini, logr),
		agent.NewLearningPathAgent(gemini, logr),
		agent.NewProgressAgent(gemini, logr),
		agent.NewRecommendationAgent(gemini, logr),
	}, approvalSvc, cfg.Approval.RequireReview, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	analysisHandler := handler.NewAnalysisHandler(orchestratorSvc, metricsSvc)
	feedbackHandler := handler.NewFeedbackHandler(feedbackSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	var approvalHandler *handler.ApprovalHandler
	if cfg.Exports.Enabled {
		approvalHandler = handler.NewApprovalHandler(approvalSvc, service.NewExportService(approvalRepo, logr), metricsSvc)
	} else {
		approvalHandler = handler.NewApprovalHandler(approvalSvc, nil, metricsSvc)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/auth/login", authHandler.Login)

		analysis := api.Group("/analysis")
		{
			analysis.POST("/assessment", analysisHandler.Assess)
			analysis.POST("/learning-path", analysisHandler.LearningPath)
			analysis.POST("/progress", analysisHandler.Progress)
			analysis.POST("/recommendations", analysisHandler.Recommendations)
		}

		approvals := api.Group("/approvals")
		{
			approvals.POST("", approvalHandler.Create)
			approvals.GET("/pending", approvalHandler.ListPending)
			approvals.GET("/export", middleware.JWT(authSvc), middleware.RequireRoles(models.RoleAdmin), approvalHandler.Export)
			approvals.GET("/student/:studentId", approvalHandler.ListByStudent)
			approvals.GET("/:id", approvalHandler.Get)

			reviews := approvals.Group("", middleware.JWT(authSvc))
			{
				reviews.POST("/:id/approve", approvalHandler.Approve)
				reviews.POST("/:id/reject", approvalHandler.Reject)
				reviews.POST("/:id/revision", approvalHandler.RequestRevision)
			}
		}

		feedback := api.Group("/feedback")
		{
			feedback.POST("", feedbackHandler.Submit)
			feedback.GET("/history/:studentId", feedbackHandler.History)
			feedback.GET("/rating/:recommendationId", feedbackHandler.AverageRating)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
