package handlers

import (
	"errors"
	"fmt"
	"slices"

	"github.com/enquirobot/enquiry-chatbot-be/internal/core/nlp"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/repositories"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
)

type EnquiryHandler struct {
	enquiryRepo repositories.EnquiryRepo
}

func NewEnquiryHandler(enquiryRepo repositories.EnquiryRepo) *EnquiryHandler {
	return &EnquiryHandler{enquiryRepo: enquiryRepo}
}

// EnquiryRequest is the body for creating or updating an enquiry.
type EnquiryRequest struct {
	Category        string   `json:"category"`
	Subcategory     string   `json:"subcategory"`
	Question        string   `json:"question"`
	Answer          string   `json:"answer"`
	Tags            []string `json:"tags"`
	Department      string   `json:"department"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Priority        string   `json:"priority"`
	Source          string   `json:"source"`
}

func (req *EnquiryRequest) validate() error {
	if !slices.Contains(models.ValidCategories, req.Category) {
		return fmt.Errorf("category must be one of %v", models.ValidCategories)
	}
	if !slices.Contains(models.ValidDepartments, req.Department) {
		return fmt.Errorf("department must be one of %v", models.ValidDepartments)
	}
	if len(req.Question) < 5 || len(req.Question) > maxQuestionLength {
		return fmt.Errorf("question must be between 5 and %d characters", maxQuestionLength)
	}
	if len(req.Answer) < 10 {
		return errors.New("answer must be at least 10 characters")
	}
	if req.ConfidenceScore != nil && (*req.ConfidenceScore < 0 || *req.ConfidenceScore > 1) {
		return errors.New("confidence_score must be between 0 and 1")
	}
	return nil
}

// Create adds a new enquiry to the knowledge base.
func (h *EnquiryHandler) Create(c *fiber.Ctx) error {
	var req EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	tags := req.Tags
	if len(tags) == 0 {
		// Seed searchable tags from the question itself.
		tags = nlp.ExtractKeywords(req.Question, 5)
	}

	enquiry := &models.Enquiry{
		Category:        req.Category,
		Subcategory:     req.Subcategory,
		Question:        req.Question,
		Answer:          req.Answer,
		Tags:            pq.StringArray(tags),
		Department:      req.Department,
		ConfidenceScore: 1.0,
		IsActive:        true,
		Metadata: models.EnquiryMetadata{
			Source:   req.Source,
			Priority: req.Priority,
		},
	}
	if req.ConfidenceScore != nil {
		enquiry.ConfidenceScore = *req.ConfidenceScore
	}

	if err := h.enquiryRepo.Create(enquiry); err != nil {
		utils.LogError("create enquiry failed", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    enquiry,
	})
}

// Search lists active enquiries filtered by free text, category and
// department, newest first, paginated.
func (h *EnquiryHandler) Search(c *fiber.Ctx) error {
	filter := models.EnquiryFilter{
		Query:      c.Query("query"),
		Category:   c.Query("category"),
		Department: c.Query("department"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", 10),
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	enquiries, total, err := h.enquiryRepo.List(filter)
	if err != nil {
		utils.LogError("search enquiries failed", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enquiries,
		"pagination": fiber.Map{
			"total": total,
			"page":  filter.Page,
			"limit": filter.Limit,
			"pages": pages,
		},
	})
}

// Update modifies an existing enquiry in place.
func (h *EnquiryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req EnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}
	if err := req.validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	enquiry, err := h.enquiryRepo.FindByID(id)
	if errors.Is(err, repositories.ErrEnquiryNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Enquiry not found",
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	enquiry.Category = req.Category
	enquiry.Subcategory = req.Subcategory
	enquiry.Question = req.Question
	enquiry.Answer = req.Answer
	enquiry.Tags = pq.StringArray(req.Tags)
	enquiry.Department = req.Department
	if req.ConfidenceScore != nil {
		enquiry.ConfidenceScore = *req.ConfidenceScore
	}
	if req.Priority != "" {
		enquiry.Metadata.Priority = req.Priority
	}

	if err := h.enquiryRepo.Update(enquiry); err != nil {
		utils.LogError("update enquiry failed", err, map[string]interface{}{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enquiry,
	})
}

// Delete deactivates an enquiry. Nothing is ever removed physically.
func (h *EnquiryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	err := h.enquiryRepo.SoftDelete(id)
	if errors.Is(err, repositories.ErrEnquiryNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Enquiry not found",
		})
	}
	if err != nil {
		utils.LogError("delete enquiry failed", err, map[string]interface{}{"id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Internal server error",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Enquiry deactivated successfully",
	})
}
