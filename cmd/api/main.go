package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/enquirobot/enquiry-chatbot-be/internal/core/auth"
	"github.com/enquirobot/enquiry-chatbot-be/internal/core/jobs"
	"github.com/enquirobot/enquiry-chatbot-be/internal/core/matcher"
	"github.com/enquirobot/enquiry-chatbot-be/internal/core/nlp"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/handlers"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/repositories"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/services"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/config"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/database"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/utils"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting enquiry-chatbot-be on port %s", cfg.Port)

	// Init database
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	// Init repositories (use GORM instance)
	enquiryRepo := repositories.NewEnquiryRepo(db.GORM)
	companyDataRepo := repositories.NewCompanyDataRepo(db.GORM)
	conversationRepo := repositories.NewConversationRepo(db.GORM)

	// Init matching pipeline
	scorer := nlp.NewScorer(nlp.NewTTLCache(time.Duration(cfg.SimilarityCacheTTL) * time.Second))
	resolver := matcher.NewResolver(enquiryRepo, companyDataRepo, scorer, cfg.ExactMatchThreshold)

	// Init services
	chatbotService := services.NewChatbotService(resolver, conversationRepo, enquiryRepo)

	// Init handlers
	chatbotHandler := handlers.NewChatbotHandler(chatbotService)
	enquiryHandler := handlers.NewEnquiryHandler(enquiryRepo)
	healthHandler := handlers.NewHealthHandler()

	// Start document expiry sweeper
	sweeper := jobs.NewExpirySweeper(companyDataRepo)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("❌ Failed to start expiry sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Company Enquiry Chatbot API",
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
	}))

	// Health check
	app.Get("/api/health", healthHandler.GetHealth)

	// Chatbot routes
	app.Post("/api/chatbot/query", chatbotHandler.HandleQuery)
	app.Get("/api/chatbot/conversation/:sessionId", chatbotHandler.GetConversation)
	app.Post("/api/chatbot/escalate", chatbotHandler.Escalate)

	// Enquiry admin routes
	admin := app.Group("/api/enquiries", auth.OptionalAuth(cfg.JWTSecret))
	admin.Post("/", enquiryHandler.Create)
	admin.Get("/search", enquiryHandler.Search)
	admin.Put("/:id", enquiryHandler.Update)
	admin.Delete("/:id", enquiryHandler.Delete)

	log.Printf("✅ enquiry-chatbot-be running at :%s", cfg.Port)
	log.Printf("🤖 Chatbot API: POST http://localhost:%s/api/chatbot/query", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
