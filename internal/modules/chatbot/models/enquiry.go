package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Enquiry categories
var ValidCategories = []string{"products", "services", "support", "billing", "hr", "technical", "general"}

// Owning departments
var ValidDepartments = []string{"sales", "support", "technical", "hr", "finance", "marketing"}

// EnquiryMetadata tracks provenance of an enquiry. LastUpdated is bumped by
// the repository on every mutation.
type EnquiryMetadata struct {
	LastUpdated time.Time `json:"last_updated"`
	UpdatedBy   string    `json:"updated_by"`
	Source      string    `json:"source"`   // manual, import, api
	Priority    string    `json:"priority"` // low, medium, high
}

func (m EnquiryMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *EnquiryMetadata) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	case nil:
		*m = EnquiryMetadata{}
		return nil
	}
	return errors.New("enquiry metadata: unsupported scan source")
}

// Enquiry is a canonical Q&A fact in the knowledge base. The question
// uniquely identifies an entry while it is active; rows are never removed,
// only deactivated.
type Enquiry struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Category        string          `gorm:"type:text;not null;index:idx_enquiries_cat_dept" json:"category"`
	Subcategory     string          `gorm:"type:text" json:"subcategory,omitempty"`
	Question        string          `gorm:"type:text;not null;uniqueIndex" json:"question"`
	Answer          string          `gorm:"type:text;not null" json:"answer"`
	Tags            pq.StringArray  `gorm:"type:text[]" json:"tags"`
	Department      string          `gorm:"type:text;not null;index:idx_enquiries_cat_dept" json:"department"`
	ConfidenceScore float64         `gorm:"default:1.0" json:"confidence_score"`
	Metadata        EnquiryMetadata `gorm:"type:jsonb" json:"metadata"`
	IsActive        bool            `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Enquiry) TableName() string {
	return "enquiries"
}

// BeforeCreate sets UUID before creating
func (e *Enquiry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// EnquiryHit is an enquiry returned from full-text search together with the
// store's native relevance score.
type EnquiryHit struct {
	Enquiry   `gorm:"embedded"`
	Relevance float64 `json:"relevance"`
}

// EnquiryFilter narrows admin search listings.
type EnquiryFilter struct {
	Query      string
	Category   string
	Department string
	Page       int
	Limit      int
}
