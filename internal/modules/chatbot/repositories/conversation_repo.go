package repositories

import (
	"errors"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"gorm.io/gorm"
)

type ConversationRepo interface {
	// FindBySessionID returns (nil, nil) when no session exists.
	FindBySessionID(sessionID string) (*models.Conversation, error)
	Create(conversation *models.Conversation) error
	// Save overwrites the whole conversation row.
	Save(conversation *models.Conversation) error
}

type conversationRepo struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepo{db: db}
}

func (r *conversationRepo) FindBySessionID(sessionID string) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.db.First(&conversation, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepo) Create(conversation *models.Conversation) error {
	return r.db.Create(conversation).Error
}

func (r *conversationRepo) Save(conversation *models.Conversation) error {
	return r.db.Save(conversation).Error
}
