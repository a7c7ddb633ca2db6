package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/services"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/utils"
	"github.com/gofiber/fiber/v2"
)

const maxQuestionLength = 500

type ChatbotHandler struct {
	chatbotService *services.ChatbotService
}

func NewChatbotHandler(chatbotService *services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{chatbotService: chatbotService}
}

// QueryRequest is the body of POST /api/chatbot/query
type QueryRequest struct {
	Question  string                 `json:"question"`
	SessionID string                 `json:"sessionId"`
	Context   *models.SessionContext `json:"context"`
}

// HandleQuery answers a free-text question, creating or continuing a session.
func (h *ChatbotHandler) HandleQuery(c *fiber.Ctx) error {
	var req QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if req.Question == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "question is required",
		})
	}
	if len(req.Question) > maxQuestionLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   fmt.Sprintf("question must be at most %d characters", maxQuestionLength),
		})
	}

	response, err := h.chatbotService.HandleQuery(req.Question, req.SessionID, req.Context)
	if err != nil {
		utils.LogError("chatbot query failed", err, map[string]interface{}{
			"session_id": req.SessionID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"data":      response,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetConversation returns the full history of one session.
func (h *ChatbotHandler) GetConversation(c *fiber.Ctx) error {
	sessionID := c.Params("sessionId")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "session ID is required",
		})
	}

	conversation, err := h.chatbotService.GetConversationHistory(sessionID)
	if errors.Is(err, services.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Conversation not found",
		})
	}
	if err != nil {
		utils.LogError("fetching conversation failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    conversation,
	})
}

// EscalateRequest is the body of POST /api/chatbot/escalate
type EscalateRequest struct {
	SessionID  string `json:"sessionId"`
	Department string `json:"department"`
}

// Escalate hands a conversation over to a human department.
func (h *ChatbotHandler) Escalate(c *fiber.Ctx) error {
	var req EscalateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	if req.SessionID == "" || req.Department == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Session ID and department are required",
		})
	}

	err := h.chatbotService.Escalate(req.SessionID, req.Department)
	if errors.Is(err, services.ErrConversationNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Conversation not found",
		})
	}
	if err != nil {
		utils.LogError("escalation failed", err, map[string]interface{}{
			"session_id": req.SessionID,
		})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Conversation escalated to %s department", req.Department),
	})
}
