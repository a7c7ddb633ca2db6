package services

import (
	"fmt"

	"github.com/enquirobot/enquiry-chatbot-be/internal/core/matcher"
	"github.com/enquirobot/enquiry-chatbot-be/internal/core/nlp"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/repositories"
	"github.com/enquirobot/enquiry-chatbot-be/internal/shared/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const fallbackAnswer = "I'm sorry, I don't have enough information to answer that question specifically. " +
	"Could you please contact our support team for further assistance?"

const generalSuggestionCount = 5

// ChatbotService drives the conversation state machine: it loads or creates
// a session, records turns, delegates matching to the resolver and handles
// escalation when no answer is found.
type ChatbotService struct {
	resolver    *matcher.Resolver
	convRepo    repositories.ConversationRepo
	enquiryRepo repositories.EnquiryRepo
}

func NewChatbotService(
	resolver *matcher.Resolver,
	convRepo repositories.ConversationRepo,
	enquiryRepo repositories.EnquiryRepo,
) *ChatbotService {
	return &ChatbotService{
		resolver:    resolver,
		convRepo:    convRepo,
		enquiryRepo: enquiryRepo,
	}
}

// HandleQuery answers a single question within a session. A blank sessionID
// (or an unknown one) starts a fresh session. Any store failure aborts the
// call; the turns appended in memory for this query are then discarded.
func (s *ChatbotService) HandleQuery(question, sessionID string, context *models.SessionContext) (*matcher.Response, error) {
	conversation, err := s.loadOrCreateConversation(sessionID, context)
	if err != nil {
		return nil, err
	}

	conversation.AppendMessage(models.RoleUser, question, &models.MessageMetadata{
		Intent:     nlp.DetectIntent(question),
		Confidence: 1,
	})

	response, err := s.resolver.Resolve(question)
	if err != nil {
		return nil, err
	}

	if response != nil {
		conversation.AppendMessage(models.RoleAssistant, response.Answer, &models.MessageMetadata{
			Confidence:       response.Confidence,
			SuggestedActions: response.SuggestedQuestions,
		})

		// Last write wins on the derived context.
		if category, ok := response.Metadata["category"].(string); ok && category != "" {
			conversation.Context.Category = category
		}
		if department, ok := response.Metadata["department"].(string); ok && department != "" {
			conversation.Context.Department = department
		}

		if err := s.convRepo.Save(conversation); err != nil {
			return nil, fmt.Errorf("save conversation: %w", err)
		}

		return withSessionID(response, conversation.SessionID), nil
	}

	// Nothing matched: record the fallback turn and escalate to support.
	suggestions, err := s.generalQuestions()
	if err != nil {
		return nil, err
	}

	conversation.AppendMessage(models.RoleAssistant, fallbackAnswer, &models.MessageMetadata{
		Confidence:       0,
		SuggestedActions: []string{"Contact Support", "Browse FAQ"},
	})
	conversation.Status = models.StatusEscalated
	conversation.EscalatedTo = "support"

	if err := s.convRepo.Save(conversation); err != nil {
		return nil, fmt.Errorf("save conversation: %w", err)
	}

	utils.LogInfo("conversation escalated", map[string]interface{}{
		"session_id": conversation.SessionID,
		"reason":     "no_match",
	})

	fallback := &matcher.Response{
		Answer:             fallbackAnswer,
		Confidence:         0,
		Source:             matcher.SourceFallback,
		SuggestedQuestions: suggestions,
	}
	return withSessionID(fallback, conversation.SessionID), nil
}

// GetConversationHistory returns the full session for a session id.
func (s *ChatbotService) GetConversationHistory(sessionID string) (*models.Conversation, error) {
	conversation, err := s.convRepo.FindBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, ErrConversationNotFound
	}
	return conversation, nil
}

// Escalate hands the session to a human department, regardless of its
// current status. Each call appends a new system turn.
func (s *ChatbotService) Escalate(sessionID, department string) error {
	conversation, err := s.convRepo.FindBySessionID(sessionID)
	if err != nil {
		return err
	}
	if conversation == nil {
		return ErrConversationNotFound
	}

	conversation.Status = models.StatusEscalated
	conversation.EscalatedTo = department
	conversation.AppendMessage(models.RoleSystem,
		fmt.Sprintf("Conversation escalated to %s department", department), nil)

	if err := s.convRepo.Save(conversation); err != nil {
		return fmt.Errorf("save conversation: %w", err)
	}

	utils.LogInfo("conversation escalated", map[string]interface{}{
		"session_id": sessionID,
		"department": department,
	})
	return nil
}

func (s *ChatbotService) loadOrCreateConversation(sessionID string, context *models.SessionContext) (*models.Conversation, error) {
	if sessionID != "" {
		conversation, err := s.convRepo.FindBySessionID(sessionID)
		if err != nil {
			return nil, fmt.Errorf("load conversation: %w", err)
		}
		if conversation != nil {
			return conversation, nil
		}
	}

	conversation := &models.Conversation{
		SessionID: uuid.NewString(),
		Messages:  datatypes.JSONSlice[models.Message]{},
		Status:    models.StatusActive,
	}
	if context != nil {
		conversation.Context = *context
	}

	if err := s.convRepo.Create(conversation); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	return conversation, nil
}

func (s *ChatbotService) generalQuestions() ([]string, error) {
	entries, err := s.enquiryRepo.SampleActive(generalSuggestionCount)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}

	questions := make([]string, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, entry.Question)
	}
	return questions, nil
}

// withSessionID copies the response and records the session id in its
// metadata, keeping the resolver's result untouched.
func withSessionID(response *matcher.Response, sessionID string) *matcher.Response {
	enriched := *response
	enriched.Metadata = make(map[string]interface{}, len(response.Metadata)+1)
	for k, v := range response.Metadata {
		enriched.Metadata[k] = v
	}
	enriched.Metadata["session_id"] = sessionID
	return &enriched
}
