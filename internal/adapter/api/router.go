package api

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	serviceName    = "Sphere.AI Backend"
	toolsAvailable = 9
)

type Options struct {
	Version        string
	Env            string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Log            *zap.Logger
}

// NewApp builds the fiber app with the shared error handler installed.
func NewApp(opts Options) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "Sphere.AI Gateway",
		ErrorHandler:          ErrorHandler,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		DisableStartupMessage: true,
	})
}

func SetupRouter(app *fiber.App, opts Options, tools *ToolHandler, payments *PaymentHandler) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestContext())
	app.Use(accessLog(log))
	if len(opts.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(opts.AllowedOrigins, ","),
			AllowCredentials: true,
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":         "Sphere.AI API - AI Tools for Founders",
			"version":         opts.Version,
			"status":          "active",
			"tools_available": toolsAvailable,
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": serviceName,
			"env":     opts.Env,
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	tg := app.Group("/api/tools")
	tg.Post("/generate-business-plan", tools.GenerateBusinessPlan)
	tg.Post("/market-research", tools.MarketResearch)
	tg.Post("/financial-forecast", tools.FinancialForecast)
	tg.Post("/generate-pitch-deck", tools.GeneratePitchDeck)
	tg.Post("/generate-content", tools.GenerateContent)
	tg.Post("/create-chatbot-config", tools.CreateChatbotConfig)
	tg.Post("/chatbot-respond", tools.ChatbotRespond)
	tg.Post("/analyze-support-ticket", tools.AnalyzeSupportTicket)
	tg.Post("/generate-support-response", tools.GenerateSupportResponse)
	tg.Post("/prioritize-tasks", tools.PrioritizeTasks)
	tg.Post("/generate-schedule", tools.GenerateSchedule)
	tg.Post("/analyze-time-usage", tools.AnalyzeTimeUsage)
	tg.Post("/calendar-optimization", tools.CalendarOptimization)

	pg := app.Group("/api/payment")
	pg.Post("/create-order-razorpay", payments.CreateRazorpayOrder)
	pg.Post("/verify-payment-razorpay", payments.VerifyRazorpayPayment)
	pg.Post("/create-payment-intent-stripe", payments.CreateStripeIntent)
	pg.Post("/webhook/stripe", payments.StripeWebhook)
}
