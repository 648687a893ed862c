package main

import (
	"context"
	"log"

	"civicwatch/config"
	"civicwatch/internal/domain"
	"civicwatch/internal/gateway"
	"civicwatch/internal/handler"
	"civicwatch/internal/notify"
	"civicwatch/internal/redis"
	"civicwatch/internal/repository"
	"civicwatch/internal/server"
	"civicwatch/internal/services"
	"civicwatch/internal/storage"
	"civicwatch/pkg/database"
	"civicwatch/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	logger.SetGlobalLogger(l)

	// Connect to Database
	database.Connect(cfg)

	// Run Raw Migrations (Extensions)
	if err := database.ApplyRawMigrations("migrations"); err != nil {
		log.Fatalf("Failed to apply raw migrations: %v", err)
	}

	if err := database.DB.AutoMigrate(
		&domain.User{},
		&domain.PaymentIntent{},
		&domain.Complaint{},
		&domain.RTIRequest{},
		&domain.APIKey{},
	); err != nil {
		log.Fatalf("Failed to apply GORM migrations: %v", err)
	}

	redis.Initialize(redis.Config{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
	})
	limiter := redis.NewRateLimiter(redis.GetClient(), redis.DefaultRateLimitConfig())

	// Repositories
	intents := repository.NewPaymentIntentRepository(database.DB)
	complaints := repository.NewComplaintRepository(database.DB)
	rtis := repository.NewRTIRepository(database.DB)
	keys := repository.NewAPIKeyRepository(database.DB)
	users := repository.NewUserRepository(database.DB)

	// Collaborators
	orders := gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, l)
	verifier := gateway.NewVerifier(cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)
	sender := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	// Document archive is optional; the service runs without S3.
	var archive services.DocumentArchive
	if cfg.S3Bucket != "" {
		s3Client, err := storage.NewClient(context.Background(), storage.S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
		})
		if err != nil {
			log.Fatalf("Failed to initialize S3 client: %v", err)
		}
		archive = s3Client
	}

	// Services
	fulfillment := services.NewFulfillmentService(complaints, rtis, users, keys, sender, archive, services.FulfillmentConfig{
		FallbackDeptEmail: cfg.FallbackDeptEmail,
		BaseURL:           cfg.AppBaseURL,
	}, l)
	payments := services.NewPaymentService(intents, orders, verifier, fulfillment, l)
	complaintService := services.NewComplaintService(complaints, payments)
	rtiService := services.NewRTIService(rtis, payments)
	apiKeyService := services.NewAPIKeyService(keys, payments)

	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Payment:   handler.NewPaymentHandler(payments),
		Complaint: handler.NewComplaintHandler(complaintService),
		RTI:       handler.NewRTIHandler(rtiService),
		Developer: handler.NewDeveloperHandler(apiKeyService),
	}, limiter)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server exited with error: %v", err)
	}
}
