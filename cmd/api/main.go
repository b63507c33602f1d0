package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"atelierapi/controllers"
	"atelierapi/services"
	"atelierapi/telegram"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	err := sentry.Init(sentry.ClientOptions{
		// Either set your DSN here or set the SENTRY_DSN environment variable.
		Dsn: os.Getenv("SENTRY_DSN"),
		// Either set environment and release here or set the SENTRY_ENVIRONMENT
		// and SENTRY_RELEASE environment variables.
		Environment: services.GetEnv("ENV", "local"),
		Release:     "atelieraigo@1.0.0",
		Debug:       false,
		// Set TracesSampleRate to 1.0 to capture 100%
		// of transactions for performance monitoring.
		// We recommend adjusting this value in production,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Recover()
	defer sentry.Flush(2 * time.Second)

	hfClient := services.NewHuggingFaceClient(services.HuggingFaceConfig{
		Token: os.Getenv("HF_API_TOKEN"),
		Model: services.GetEnv("HF_MODEL", "stabilityai/stable-diffusion-xl-base-1.0"),
	})
	replicateClient := services.NewReplicateClient(services.ReplicateConfig{
		Token:   os.Getenv("REPLICATE_API_TOKEN"),
		Version: os.Getenv("REPLICATE_MODEL_VERSION"),
	})

	notifier := telegram.NewNotifier()
	orchestrator := services.NewFallbackOrchestrator(hfClient, replicateClient, services.NewPlaceholderService())
	orchestrator.Notifier = notifier
	orchestrator.ForceDemoMode = services.GetEnv("FORCE_DEMO_MODE", "false") == "true"
	if budget, err := strconv.Atoi(services.GetEnv("GENERATION_RETRY_BUDGET", "3")); err == nil && budget > 0 {
		orchestrator.RetryBudget = budget
	}

	designCache, err := services.NewDesignCacheService(0)
	if err != nil {
		log.Fatal("Failed to initialize design cache service")
	}

	generationService := &services.GenerationService{
		Orchestrator: orchestrator,
		Cache:        designCache,
	}

	// Design archive is optional, the results stay pure data URLs without it.
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")
	if bucketName != "" {
		awsService := &services.AWSService{}
		if err := awsService.InitPresignClient(context.Background()); err != nil {
			log.Fatal("Failed to initialize AWS provider: S3")
		}
		urlCache, err := services.NewURLCacheService(awsService, bucketName)
		if err != nil {
			log.Fatal("Failed to initialize URL cache service")
		}
		generationService.AWSService = awsService
		generationService.URLCache = urlCache
		generationService.BucketName = bucketName
	}

	e := controllers.SetupServer(generationService, notifier)
	e.Debug = true
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(3)))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Once it's done, you can attach the handler as one of your middleware
	e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	e.Logger.Fatal(e.Start(":" + services.GetEnv("PORT", "8083")))
}
