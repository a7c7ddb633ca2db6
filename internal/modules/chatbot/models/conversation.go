package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Conversation statuses. The chatbot core only ever moves active sessions
// to escalated; completed is set by external tooling.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusEscalated = "escalated"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// MessageMetadata is advisory data attached to a single turn.
type MessageMetadata struct {
	Intent           string   `json:"intent,omitempty"`
	Confidence       float64  `json:"confidence"`
	SuggestedActions []string `json:"suggested_actions,omitempty"`
}

// Message is one turn within a conversation.
type Message struct {
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// SessionContext accumulates the most recent category/department seen by a
// session. Stored as a single JSONB value.
type SessionContext struct {
	Department      string                 `json:"department,omitempty"`
	Category        string                 `json:"category,omitempty"`
	LastQuestion    string                 `json:"last_question,omitempty"`
	UserPreferences map[string]interface{} `json:"user_preferences,omitempty"`
}

func (c SessionContext) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *SessionContext) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = SessionContext{}
		return nil
	}
	return errors.New("session context: unsupported scan source")
}

// Conversation is one chat session. Messages are append-only; the whole row
// is overwritten on save.
type Conversation struct {
	ID          uuid.UUID                    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID   string                       `gorm:"type:text;not null;uniqueIndex" json:"session_id"`
	UserID      string                       `gorm:"type:text" json:"user_id,omitempty"`
	Messages    datatypes.JSONSlice[Message] `gorm:"type:jsonb" json:"messages"`
	Context     SessionContext               `gorm:"type:jsonb" json:"context"`
	Status      string                       `gorm:"type:text;default:'active'" json:"status"`
	EscalatedTo string                       `gorm:"type:text" json:"escalated_to,omitempty"`
	CreatedAt   time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (Conversation) TableName() string {
	return "conversations"
}

// BeforeCreate sets UUID before creating
func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// AppendMessage adds a turn to the conversation with the current timestamp.
func (c *Conversation) AppendMessage(role, content string, metadata *MessageMetadata) {
	c.Messages = append(c.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
		Metadata:  metadata,
	})
}
