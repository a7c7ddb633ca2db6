// Package matcher implements the three-stage answer cascade: full-text
// search over enquiries, lexical similarity fallback, then company document
// search. It only reads from the stores; session bookkeeping lives in the
// chatbot service.
package matcher

import (
	"fmt"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
)

// Answer sources
const (
	SourceEnquiryDatabase = "enquiry_database"
	SourceSemanticMatch   = "semantic_match"
	SourceCompanyData     = "company_data"
	SourceFallback        = "fallback"
)

const (
	exactCandidateLimit      = 5
	similarityCandidateLimit = 100
	similarityThreshold      = 0.5
	documentCandidateLimit   = 3
	documentConfidence       = 0.7
	fallbackEntryConfidence  = 0.9
	suggestionLimit          = 5

	documentAnswerPrefix = "Based on our company information: "
)

// Response is a resolved answer, ready to be enriched with session data by
// the caller.
type Response struct {
	Answer             string                 `json:"answer"`
	Confidence         float64                `json:"confidence"`
	Source             string                 `json:"source"`
	SuggestedQuestions []string               `json:"suggested_questions,omitempty"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
}

// EnquiryStore is the knowledge-entry store contract the resolver needs.
// Implementations must return search hits ranked by their native relevance
// score and restricted to active entries.
type EnquiryStore interface {
	Search(query string, limit int) ([]models.EnquiryHit, error)
	FindByCategory(category string, limit int) ([]models.Enquiry, error)
	ListActive(limit int) ([]models.Enquiry, error)
}

// CompanyDataStore searches company documents. Implementations must restrict
// results to active, public documents.
type CompanyDataStore interface {
	Search(query string, limit int) ([]models.CompanyDataHit, error)
}

// SimilarityScorer computes a lexical similarity score in [0,1].
type SimilarityScorer interface {
	Similarity(a, b string) float64
}

// Resolver runs the cascade. The exact-match threshold is expressed in the
// enquiry store's native relevance units and must be recalibrated if the
// underlying search engine changes.
type Resolver struct {
	enquiries      EnquiryStore
	documents      CompanyDataStore
	scorer         SimilarityScorer
	exactThreshold float64
}

func NewResolver(enquiries EnquiryStore, documents CompanyDataStore, scorer SimilarityScorer, exactThreshold float64) *Resolver {
	return &Resolver{
		enquiries:      enquiries,
		documents:      documents,
		scorer:         scorer,
		exactThreshold: exactThreshold,
	}
}

// Resolve runs the three stages in order, short-circuiting on the first
// acceptable answer. A (nil, nil) return means no stage produced one; the
// caller owns the fallback policy.
func (r *Resolver) Resolve(question string) (*Response, error) {
	// Stage 1: full-text search over the enquiry store
	hits, err := r.enquiries.Search(question, exactCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("enquiry search: %w", err)
	}

	if len(hits) > 0 && hits[0].Relevance > r.exactThreshold {
		best := hits[0]
		confidence := best.ConfidenceScore
		if confidence <= 0 {
			confidence = fallbackEntryConfidence
		}

		suggestions, err := r.suggestedQuestions(best.Category)
		if err != nil {
			return nil, err
		}

		return &Response{
			Answer:             best.Answer,
			Confidence:         confidence,
			Source:             SourceEnquiryDatabase,
			SuggestedQuestions: suggestions,
			Metadata: map[string]interface{}{
				"category":   best.Category,
				"department": best.Department,
				"tags":       []string(best.Tags),
			},
		}, nil
	}

	// Stage 2: lexical similarity over active enquiries
	entries, err := r.enquiries.ListActive(similarityCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("enquiry listing: %w", err)
	}

	var bestEntry *models.Enquiry
	bestScore := 0.0
	for i := range entries {
		score := r.scorer.Similarity(question, entries[i].Question)
		// Strictly-greater comparison keeps the first-seen entry on ties.
		if score > bestScore && score > similarityThreshold {
			bestScore = score
			bestEntry = &entries[i]
		}
	}

	if bestEntry != nil {
		suggestions, err := r.suggestedQuestions(bestEntry.Category)
		if err != nil {
			return nil, err
		}

		return &Response{
			Answer:             bestEntry.Answer,
			Confidence:         bestScore,
			Source:             SourceSemanticMatch,
			SuggestedQuestions: suggestions,
			Metadata: map[string]interface{}{
				"category":   bestEntry.Category,
				"department": bestEntry.Department,
				"tags":       []string(bestEntry.Tags),
			},
		}, nil
	}

	// Stage 3: full-text search over public company documents
	docs, err := r.documents.Search(question, documentCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("company data search: %w", err)
	}

	if len(docs) > 0 {
		top := docs[0]
		return &Response{
			Answer:     documentAnswerPrefix + top.Content,
			Confidence: documentConfidence,
			Source:     SourceCompanyData,
			Metadata: map[string]interface{}{
				"data_type": top.DataType,
				"title":     top.Title,
				"keywords":  []string(top.Keywords),
			},
		}, nil
	}

	return nil, nil
}

func (r *Resolver) suggestedQuestions(category string) ([]string, error) {
	entries, err := r.enquiries.FindByCategory(category, suggestionLimit)
	if err != nil {
		return nil, fmt.Errorf("suggested questions: %w", err)
	}

	questions := make([]string, 0, len(entries))
	for _, entry := range entries {
		questions = append(questions, entry.Question)
	}
	return questions, nil
}
