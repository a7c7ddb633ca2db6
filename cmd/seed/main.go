package main

import (
	"log"
	"time"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/repositories"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/config"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/database"
)

func sampleEnquiries() []models.Enquiry {
	return []models.Enquiry{
		{
			Category:        "products",
			Question:        "What are the specifications of your flagship product?",
			Answer:          "Our flagship product features include: 1) High-performance processor, 2) 8GB RAM, 3) 256GB SSD storage, 4) 15.6\" display, 5) 8-hour battery life, and 6) Comprehensive warranty.",
			Tags:            []string{"specifications", "features", "product details"},
			Department:      "sales",
			ConfidenceScore: 0.95,
			IsActive:        true,
			Metadata:        models.EnquiryMetadata{Source: "manual", Priority: "high"},
		},
		{
			Category:        "support",
			Question:        "How do I reset my account password?",
			Answer:          "To reset your password: 1) Go to login page, 2) Click \"Forgot Password\", 3) Enter your email, 4) Check email for reset link, 5) Create new password.",
			Tags:            []string{"password", "account", "login"},
			Department:      "technical",
			ConfidenceScore: 0.98,
			IsActive:        true,
			Metadata:        models.EnquiryMetadata{Source: "manual", Priority: "medium"},
		},
		{
			Category:        "billing",
			Question:        "What payment methods do you accept?",
			Answer:          "We accept: Credit cards (Visa, MasterCard, American Express), PayPal, Bank transfers, and Purchase orders for enterprise customers.",
			Tags:            []string{"payment", "billing", "credit card"},
			Department:      "finance",
			ConfidenceScore: 0.99,
			IsActive:        true,
			Metadata:        models.EnquiryMetadata{Source: "manual", Priority: "medium"},
		},
	}
}

func sampleCompanyData() []models.CompanyData {
	now := time.Now()
	return []models.CompanyData{
		{
			DataType:      "policy",
			Title:         "Refund Policy",
			Content:       "Full refund within 30 days of purchase if product is unopened. Partial refund after 30 days subject to 15% restocking fee.",
			Keywords:      []string{"refund", "return", "money back", "policy", "30 days"},
			Departments:   []string{"finance", "sales"},
			AccessLevel:   models.AccessPublic,
			EffectiveDate: now,
			Version:       1,
			IsActive:      true,
		},
		{
			DataType:      "faq",
			Title:         "Shipping Information",
			Content:       "Standard shipping: 3-5 business days. Express shipping: 1-2 business days. International shipping: 7-14 business days depending on destination.",
			Keywords:      []string{"shipping", "delivery", "express", "international"},
			Departments:   []string{"sales", "support"},
			AccessLevel:   models.AccessPublic,
			EffectiveDate: now,
			Version:       1,
			IsActive:      true,
		},
	}
}

func main() {
	cfg := config.LoadConfig()
	db := database.NewDB(cfg.DatabaseURL)
	defer db.Close()

	log.Println("🧹 Clearing existing data...")
	if err := db.GORM.Exec("TRUNCATE enquiries, company_data").Error; err != nil {
		log.Fatalf("❌ Failed to clear tables: %v", err)
	}

	enquiryRepo := repositories.NewEnquiryRepo(db.GORM)
	companyDataRepo := repositories.NewCompanyDataRepo(db.GORM)

	log.Println("🌱 Seeding enquiry data...")
	enquiries := sampleEnquiries()
	for i := range enquiries {
		if err := enquiryRepo.Create(&enquiries[i]); err != nil {
			log.Fatalf("❌ Failed to seed enquiry %q: %v", enquiries[i].Question, err)
		}
	}
	log.Printf("✅ Created %d enquiries", len(enquiries))

	log.Println("🌱 Seeding company data...")
	documents := sampleCompanyData()
	for i := range documents {
		if err := companyDataRepo.Create(&documents[i]); err != nil {
			log.Fatalf("❌ Failed to seed document %q: %v", documents[i].Title, err)
		}
	}
	log.Printf("✅ Created %d company documents", len(documents))

	log.Println("🎉 Seeding completed!")
}
