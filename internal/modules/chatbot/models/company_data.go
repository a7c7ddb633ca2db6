package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Access levels for company documents. Only public documents are ever
// surfaced through the chatbot.
const (
	AccessPublic     = "public"
	AccessInternal   = "internal"
	AccessRestricted = "restricted"
)

// Document types
var ValidDataTypes = []string{"faq", "product", "service", "policy", "procedure", "contact"}

// CompanyData is a longer-form company document (policy, FAQ, procedure...).
// Created and versioned by ingestion; the query pipeline only reads it.
type CompanyData struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DataType         string         `gorm:"type:text;not null" json:"data_type"`
	Title            string         `gorm:"type:text;not null" json:"title"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	Keywords         pq.StringArray `gorm:"type:text[]" json:"keywords"`
	Departments      pq.StringArray `gorm:"type:text[];not null" json:"departments"`
	AccessLevel      string         `gorm:"type:text;default:'public'" json:"access_level"`
	RelatedDocuments pq.StringArray `gorm:"type:text[]" json:"related_documents,omitempty"`
	EffectiveDate    time.Time      `gorm:"autoCreateTime" json:"effective_date"`
	ExpiryDate       *time.Time     `json:"expiry_date,omitempty"`
	Version          int            `gorm:"default:1" json:"version"`
	IsActive         bool           `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (CompanyData) TableName() string {
	return "company_data"
}

// BeforeCreate sets UUID before creating
func (d *CompanyData) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// CompanyDataHit is a document returned from full-text search together with
// the store's native relevance score.
type CompanyDataHit struct {
	CompanyData `gorm:"embedded"`
	Relevance   float64 `json:"relevance"`
}
