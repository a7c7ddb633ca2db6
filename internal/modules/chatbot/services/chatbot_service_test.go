package services

import (
	"errors"
	"slices"
	"testing"

	"github.com/enquirobot/enquiry-chatbot-be/internal/core/matcher"
	"github.com/enquirobot/enquiry-chatbot-be/internal/core/nlp"
	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConversationRepo keeps value copies, so in-memory mutations are only
// visible after an explicit Save, like a real store.
type fakeConversationRepo struct {
	sessions map[string]models.Conversation
	saveErr  error
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{sessions: make(map[string]models.Conversation)}
}

func (f *fakeConversationRepo) FindBySessionID(sessionID string) (*models.Conversation, error) {
	stored, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	copied := stored
	copied.Messages = slices.Clone(stored.Messages)
	return &copied, nil
}

func (f *fakeConversationRepo) Create(conversation *models.Conversation) error {
	f.sessions[conversation.SessionID] = *conversation
	return nil
}

func (f *fakeConversationRepo) Save(conversation *models.Conversation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions[conversation.SessionID] = *conversation
	return nil
}

type fakeEnquiryRepo struct {
	hits   []models.EnquiryHit
	active []models.Enquiry
}

func (f *fakeEnquiryRepo) Search(query string, limit int) ([]models.EnquiryHit, error) {
	return f.hits, nil
}

func (f *fakeEnquiryRepo) FindByCategory(category string, limit int) ([]models.Enquiry, error) {
	var out []models.Enquiry
	for _, e := range f.active {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnquiryRepo) ListActive(limit int) ([]models.Enquiry, error) { return f.active, nil }

func (f *fakeEnquiryRepo) SampleActive(n int) ([]models.Enquiry, error) {
	if len(f.active) > n {
		return f.active[:n], nil
	}
	return f.active, nil
}

func (f *fakeEnquiryRepo) FindByID(id string) (*models.Enquiry, error) { return nil, nil }

func (f *fakeEnquiryRepo) List(filter models.EnquiryFilter) ([]models.Enquiry, int64, error) {
	return f.active, int64(len(f.active)), nil
}

func (f *fakeEnquiryRepo) Create(enquiry *models.Enquiry) error { return nil }
func (f *fakeEnquiryRepo) Update(enquiry *models.Enquiry) error { return nil }
func (f *fakeEnquiryRepo) SoftDelete(id string) error           { return nil }

type fakeCompanyDataRepo struct {
	hits []models.CompanyDataHit
}

func (f *fakeCompanyDataRepo) Search(query string, limit int) ([]models.CompanyDataHit, error) {
	return f.hits, nil
}

func newService(enquiries *fakeEnquiryRepo, docs *fakeCompanyDataRepo, conv *fakeConversationRepo) *ChatbotService {
	scorer := nlp.NewScorer(nlp.NopCache{})
	resolver := matcher.NewResolver(enquiries, docs, scorer, 2.0)
	return NewChatbotService(resolver, conv, enquiries)
}

func refundEnquiry() models.Enquiry {
	return models.Enquiry{
		Category:        "billing",
		Question:        "What is your refund policy?",
		Answer:          "Full refund within 30 days of purchase.",
		Department:      "finance",
		ConfidenceScore: 0.95,
		IsActive:        true,
	}
}

func TestHandleQueryCreatesSessionOnMatch(t *testing.T) {
	entry := refundEnquiry()
	enquiries := &fakeEnquiryRepo{
		hits:   []models.EnquiryHit{{Enquiry: entry, Relevance: 3.1}},
		active: []models.Enquiry{entry},
	}
	convRepo := newFakeConversationRepo()
	svc := newService(enquiries, &fakeCompanyDataRepo{}, convRepo)

	resp, err := svc.HandleQuery("What is your refund policy?", "", nil)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, matcher.SourceEnquiryDatabase, resp.Source)
	assert.Equal(t, 0.95, resp.Confidence)

	sessionID, ok := resp.Metadata["session_id"].(string)
	require.True(t, ok)
	require.NotEmpty(t, sessionID)

	stored := convRepo.sessions[sessionID]
	assert.Equal(t, models.StatusActive, stored.Status)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, models.RoleUser, stored.Messages[0].Role)
	assert.Equal(t, models.RoleAssistant, stored.Messages[1].Role)
	assert.Equal(t, "billing", stored.Context.Category)
	assert.Equal(t, "finance", stored.Context.Department)
}

func TestHandleQueryRecordsIntentOnUserTurn(t *testing.T) {
	entry := refundEnquiry()
	enquiries := &fakeEnquiryRepo{
		hits:   []models.EnquiryHit{{Enquiry: entry, Relevance: 3.1}},
		active: []models.Enquiry{entry},
	}
	convRepo := newFakeConversationRepo()
	svc := newService(enquiries, &fakeCompanyDataRepo{}, convRepo)

	resp, err := svc.HandleQuery("How much does the refund cost?", "", nil)
	require.NoError(t, err)

	stored := convRepo.sessions[resp.Metadata["session_id"].(string)]
	require.NotNil(t, stored.Messages[0].Metadata)
	assert.Equal(t, "pricing", stored.Messages[0].Metadata.Intent)
	assert.Equal(t, 1.0, stored.Messages[0].Metadata.Confidence)
}

func TestHandleQueryAppendsToExistingSession(t *testing.T) {
	entry := refundEnquiry()
	enquiries := &fakeEnquiryRepo{
		hits:   []models.EnquiryHit{{Enquiry: entry, Relevance: 3.1}},
		active: []models.Enquiry{entry},
	}
	convRepo := newFakeConversationRepo()
	svc := newService(enquiries, &fakeCompanyDataRepo{}, convRepo)

	first, err := svc.HandleQuery("What is your refund policy?", "", nil)
	require.NoError(t, err)
	sessionID := first.Metadata["session_id"].(string)

	before := append([]models.Message(nil), convRepo.sessions[sessionID].Messages...)

	second, err := svc.HandleQuery("What is your refund policy?", sessionID, nil)
	require.NoError(t, err)
	assert.Equal(t, sessionID, second.Metadata["session_id"])

	stored := convRepo.sessions[sessionID]
	require.Len(t, stored.Messages, len(before)+2)
	for i, msg := range before {
		assert.Equal(t, msg.Role, stored.Messages[i].Role)
		assert.Equal(t, msg.Content, stored.Messages[i].Content)
	}
}

func TestHandleQueryFallbackEscalates(t *testing.T) {
	samples := []models.Enquiry{
		refundEnquiry(),
		{Category: "support", Question: "How do I reset my password?", IsActive: true},
	}
	// Nothing is searchable and nothing is lexically close, so all three
	// stages miss.
	convRepo := newFakeConversationRepo()
	svc := newService(&fakeEnquiryRepo{active: samples}, &fakeCompanyDataRepo{}, convRepo)

	resp, err := svc.HandleQuery("zxcv asdf qwerty", "", nil)
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, matcher.SourceFallback, resp.Source)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.LessOrEqual(t, len(resp.SuggestedQuestions), 5)
	for _, q := range resp.SuggestedQuestions {
		found := false
		for _, e := range samples {
			if e.Question == q {
				found = true
			}
		}
		assert.True(t, found, "suggested question %q not drawn from active entries", q)
	}

	stored := convRepo.sessions[resp.Metadata["session_id"].(string)]
	assert.Equal(t, models.StatusEscalated, stored.Status)
	assert.Equal(t, "support", stored.EscalatedTo)
	require.Len(t, stored.Messages, 2)
	assert.Equal(t, models.RoleAssistant, stored.Messages[1].Role)
	require.NotNil(t, stored.Messages[1].Metadata)
	assert.Equal(t, []string{"Contact Support", "Browse FAQ"}, stored.Messages[1].Metadata.SuggestedActions)
}

func TestHandleQuerySaveFailureDiscardsTurn(t *testing.T) {
	entry := refundEnquiry()
	enquiries := &fakeEnquiryRepo{
		hits:   []models.EnquiryHit{{Enquiry: entry, Relevance: 3.1}},
		active: []models.Enquiry{entry},
	}
	convRepo := newFakeConversationRepo()
	svc := newService(enquiries, &fakeCompanyDataRepo{}, convRepo)

	first, err := svc.HandleQuery("What is your refund policy?", "", nil)
	require.NoError(t, err)
	sessionID := first.Metadata["session_id"].(string)

	convRepo.saveErr = errors.New("disk full")
	_, err = svc.HandleQuery("What is your refund policy?", sessionID, nil)
	require.Error(t, err)

	// The failed turn must not be visible in the store.
	assert.Len(t, convRepo.sessions[sessionID].Messages, 2)
}

func TestGetConversationHistory(t *testing.T) {
	convRepo := newFakeConversationRepo()
	svc := newService(&fakeEnquiryRepo{}, &fakeCompanyDataRepo{}, convRepo)

	t.Run("unknown session", func(t *testing.T) {
		_, err := svc.GetConversationHistory("nope")
		assert.ErrorIs(t, err, ErrConversationNotFound)
	})

	t.Run("existing session", func(t *testing.T) {
		convRepo.sessions["abc"] = models.Conversation{SessionID: "abc", Status: models.StatusActive}
		conversation, err := svc.GetConversationHistory("abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", conversation.SessionID)
	})
}

func TestEscalate(t *testing.T) {
	convRepo := newFakeConversationRepo()
	svc := newService(&fakeEnquiryRepo{}, &fakeCompanyDataRepo{}, convRepo)

	t.Run("unknown session", func(t *testing.T) {
		assert.ErrorIs(t, svc.Escalate("nope", "finance"), ErrConversationNotFound)
	})

	convRepo.sessions["abc"] = models.Conversation{SessionID: "abc", Status: models.StatusActive}

	t.Run("escalates and appends one system turn", func(t *testing.T) {
		require.NoError(t, svc.Escalate("abc", "finance"))

		stored := convRepo.sessions["abc"]
		assert.Equal(t, models.StatusEscalated, stored.Status)
		assert.Equal(t, "finance", stored.EscalatedTo)
		require.Len(t, stored.Messages, 1)
		assert.Equal(t, models.RoleSystem, stored.Messages[0].Role)
		assert.Contains(t, stored.Messages[0].Content, "finance")
	})

	t.Run("repeat escalation still appends", func(t *testing.T) {
		require.NoError(t, svc.Escalate("abc", "hr"))

		stored := convRepo.sessions["abc"]
		assert.Equal(t, models.StatusEscalated, stored.Status)
		assert.Equal(t, "hr", stored.EscalatedTo)
		assert.Len(t, stored.Messages, 2)
	})
}
