package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sphere-core/internal/adapter/api"
	"sphere-core/internal/adapter/client"
	"sphere-core/internal/adapter/store"
	"sphere-core/internal/config"
	"sphere-core/internal/domain/repository"
	"sphere-core/internal/logger"
	"sphere-core/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	cfg, err := config.Load(env, *configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger.Init(zl)

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Relational store for usage logs and subscriptions
	db, err := store.OpenDatabase(cfg.Database.Driver, cfg.Database.DSN, zl)
	if err != nil {
		return err
	}
	sqlStore := store.NewSQLStore(db)
	defer func() { _ = sqlStore.Close() }()
	if cfg.Database.AutoMigrate {
		if err := sqlStore.Migrate(ctx); err != nil {
			return err
		}
	}

	recorders := []repository.UsageRecorder{sqlStore}
	paymentDeps := usecase.PaymentDeps{Subscriptions: sqlStore}

	// Redis for usage counters and webhook de-duplication
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = rdb.Close() }()

		redisStore := store.NewRedisStore(rdb)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := redisStore.Ping(pingCtx)
		cancel()
		if err != nil {
			zl.Warn("redis unreachable, counters and webhook dedupe disabled", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		} else {
			recorders = append(recorders, redisStore)
			paymentDeps.Deduper = redisStore
		}
	}

	primary, err := client.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)
	if err != nil {
		return fmt.Errorf("init openai client: %w", err)
	}

	var fallback repository.AIProvider
	if cfg.Gemini.Enabled() {
		gemini, err := client.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Project, cfg.Gemini.Location, cfg.Gemini.Model)
		if err != nil {
			zl.Warn("gemini fallback disabled", zap.Error(err))
		} else {
			fallback = gemini
		}
	}

	policy := usecase.RetryPolicy{
		MaxRetries: cfg.Completion.MaxRetries,
		BaseDelay:  cfg.Completion.BaseDelay,
		Timeout:    cfg.Completion.Timeout,
	}
	resilientProvider := usecase.NewResilientProvider(primary, fallback, policy, zl)

	// Inject the adapters into the Orchestration Layer
	orchestrator := usecase.NewOrchestrator(resilientProvider, usecase.Models{
		Standard: cfg.OpenAI.StandardModel,
		Fast:     cfg.OpenAI.FastModel,
	}, zl, recorders...)
	toolkit := usecase.NewToolkit(orchestrator, usecase.WithSampleConcurrency(cfg.Completion.SampleConcurrency))

	if cfg.Razorpay.Enabled() {
		rp, err := client.NewRazorpayClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
		if err != nil {
			return fmt.Errorf("init razorpay client: %w", err)
		}
		paymentDeps.Razorpay = rp
	} else {
		zl.Warn("razorpay credentials missing, razorpay routes disabled")
	}
	if cfg.Stripe.Enabled() {
		sc, err := client.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.PublishableKey, cfg.Stripe.WebhookSecret)
		if err != nil {
			return fmt.Errorf("init stripe client: %w", err)
		}
		paymentDeps.Stripe = sc
	} else {
		zl.Warn("stripe credentials missing, stripe routes disabled")
	}
	payments := usecase.NewPaymentService(paymentDeps, zl)

	// Initialize API Layer (Delivery Layer)
	opts := api.Options{
		Version:        cfg.Server.Version,
		Env:            cfg.Server.Env,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		Log:            zl,
	}
	app := api.NewApp(opts)
	api.SetupRouter(app, opts, api.NewToolHandler(toolkit), api.NewPaymentHandler(payments))

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		zl.Info("Sphere.AI gateway running", zap.String("addr", addr), zap.String("env", cfg.Server.Env))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
		zl.Info("shutting down")
	}

	if err := app.ShutdownWithTimeout(cfg.Completion.Timeout + 5*time.Second); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}
	orchestrator.Wait()
	return nil
}
