package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"civicwatch/config"
	"civicwatch/internal/handler"
	"civicwatch/internal/middleware"
	"civicwatch/internal/redis"
	"civicwatch/internal/transport/httpdto"
	"civicwatch/pkg/database"
	"civicwatch/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Payment   *handler.PaymentHandler
	Complaint *handler.ComplaintHandler
	RTI       *handler.RTIHandler
	Developer *handler.DeveloperHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	auth := middleware.AuthMiddleware(s.config.JWTSecret)

	payments := s.engine.Group("/v1/payments")
	{
		payments.POST("/verify", middleware.VerifyRateLimitMiddleware(limiter), auth, handlers.Payment.Verify)
		// Webhook auth is the signature over the raw body; no bearer
		// token and no rate limit, the gateway controls delivery.
		payments.POST("/webhook", handlers.Payment.Webhook)
	}

	complaints := s.engine.Group("/v1/complaints", auth)
	{
		complaints.POST("", middleware.CheckoutRateLimitMiddleware(limiter), handlers.Complaint.Create)
		complaints.GET("", handlers.Complaint.List)
		complaints.GET("/:id", handlers.Complaint.Get)
	}

	rti := s.engine.Group("/v1/rti", auth)
	{
		rti.POST("", middleware.CheckoutRateLimitMiddleware(limiter), handlers.RTI.Create)
		rti.GET("/:id", handlers.RTI.Get)
		rti.GET("/:id/document", handlers.RTI.Document)
	}

	developer := s.engine.Group("/v1/developer", auth)
	{
		developer.POST("/upgrade", middleware.CheckoutRateLimitMiddleware(limiter), handlers.Developer.Upgrade)
		developer.GET("/key", handlers.Developer.Key)
	}
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
