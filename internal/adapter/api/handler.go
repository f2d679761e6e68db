package api

import (
	"sphere-core/internal/domain/entity"
	"sphere-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// ToolHandler serves the /api/tools routes. Each handler binds its request,
// runs one toolkit operation and shapes the envelope.
type ToolHandler struct {
	toolkit *usecase.Toolkit
}

func NewToolHandler(toolkit *usecase.Toolkit) *ToolHandler {
	return &ToolHandler{toolkit: toolkit}
}

func (h *ToolHandler) GenerateBusinessPlan(c *fiber.Ctx) error {
	var req entity.BusinessPlanRequest
	if err := bind(c, "generate_business_plan", &req); err != nil {
		return err
	}
	plan, err := h.toolkit.GenerateBusinessPlan(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"business_plan": plan.Text,
		"word_count":    plan.WordCount,
		"tool":          usecase.ToolBusinessPlan,
	})
}

func (h *ToolHandler) MarketResearch(c *fiber.Ctx) error {
	var req entity.MarketResearchRequest
	if err := bind(c, "market_research", &req); err != nil {
		return err
	}
	report, err := h.toolkit.ConductMarketResearch(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":         true,
		"research_report": report,
		"tool":            usecase.ToolMarketResearch,
	})
}

func (h *ToolHandler) FinancialForecast(c *fiber.Ctx) error {
	var req entity.FinancialForecastRequest
	if err := bind(c, "financial_forecast", &req); err != nil {
		return err
	}
	forecast, err := h.toolkit.GenerateFinancialForecast(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"projections": forecast.Projections,
		"analysis":    forecast.Analysis,
		"summary":     forecast.Summary,
		"tool":        usecase.ToolFinancial,
	})
}

func (h *ToolHandler) GeneratePitchDeck(c *fiber.Ctx) error {
	var req entity.PitchDeckRequest
	if err := bind(c, "generate_pitch_deck", &req); err != nil {
		return err
	}
	deck, err := h.toolkit.GeneratePitchDeck(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"pitch_deck":  deck,
		"slide_count": usecase.PitchDeckSlides,
		"tool":        usecase.ToolPitchDeck,
	})
}

func (h *ToolHandler) GenerateContent(c *fiber.Ctx) error {
	var req entity.ContentRequest
	if err := bind(c, "generate_content", &req); err != nil {
		return err
	}
	content, err := h.toolkit.GenerateContent(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"content":      content.Text,
		"word_count":   content.WordCount,
		"content_type": content.ContentType,
		"tool":         usecase.ToolContent,
	})
}

func (h *ToolHandler) CreateChatbotConfig(c *fiber.Ctx) error {
	var req entity.ChatbotConfigRequest
	if err := bind(c, "create_chatbot_config", &req); err != nil {
		return err
	}
	cfg, err := h.toolkit.CreateChatbotConfig(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"bot_config":     cfg,
		"embedding_code": cfg.EmbeddingCode,
		"tool":           usecase.ToolChatbot,
	})
}

func (h *ToolHandler) ChatbotRespond(c *fiber.Ctx) error {
	var req entity.ChatMessageRequest
	if err := bind(c, "chatbot_respond", &req); err != nil {
		return err
	}
	reply, err := h.toolkit.ChatbotRespond(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"response":  reply.Text,
		"timestamp": reply.Timestamp,
		"tool":      usecase.ToolChatbot,
	})
}

func (h *ToolHandler) AnalyzeSupportTicket(c *fiber.Ctx) error {
	var req entity.SupportTicketRequest
	if err := bind(c, "analyze_support_ticket", &req); err != nil {
		return err
	}
	res, err := h.toolkit.AnalyzeSupportTicket(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"analysis":  res.Analysis,
		"sentiment": res.Sentiment,
		"tool":      usecase.ToolCustomerSupport,
	})
}

func (h *ToolHandler) GenerateSupportResponse(c *fiber.Ctx) error {
	var req entity.SupportResponseRequest
	if err := bind(c, "generate_support_response", &req); err != nil {
		return err
	}
	text, err := h.toolkit.GenerateSupportResponse(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"response": text,
		"tool":     usecase.ToolCustomerSupport,
	})
}

func (h *ToolHandler) PrioritizeTasks(c *fiber.Ctx) error {
	var req entity.TaskListRequest
	if err := bind(c, "prioritize_tasks", &req); err != nil {
		return err
	}
	res, err := h.toolkit.PrioritizeTasks(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":        true,
		"prioritization": res.Text,
		"task_count":     res.TaskCount,
		"tool":           usecase.ToolTaskManager,
	})
}

func (h *ToolHandler) GenerateSchedule(c *fiber.Ctx) error {
	var req entity.TaskListRequest
	if err := bind(c, "generate_schedule", &req); err != nil {
		return err
	}
	schedule, err := h.toolkit.GenerateSchedule(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"schedule": schedule,
		"tool":     usecase.ToolTaskManager,
	})
}

func (h *ToolHandler) AnalyzeTimeUsage(c *fiber.Ctx) error {
	var req entity.WorkPatternRequest
	if err := bind(c, "analyze_time_usage", &req); err != nil {
		return err
	}
	analysis, err := h.toolkit.AnalyzeTimeUsage(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"analysis": analysis,
		"tool":     usecase.ToolTimeManagement,
	})
}

func (h *ToolHandler) CalendarOptimization(c *fiber.Ctx) error {
	var req entity.CalendarRequest
	if err := bind(c, "calendar_optimization", &req); err != nil {
		return err
	}
	optimization, err := h.toolkit.OptimizeCalendar(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"optimization": optimization,
		"tool":         usecase.ToolTimeManagement,
	})
}
