package repositories

import (
	"fmt"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"gorm.io/gorm"
)

type CompanyDataRepo interface {
	Search(query string, limit int) ([]models.CompanyDataHit, error)
	Create(doc *models.CompanyData) error
	DeactivateExpired() (int64, error)
}

type companyDataRepo struct {
	db *gorm.DB
}

func NewCompanyDataRepo(db *gorm.DB) CompanyDataRepo {
	return &companyDataRepo{db: db}
}

// Search runs a full-text query over title, content and keywords. Only
// active, public documents are eligible for chatbot answers.
func (r *companyDataRepo) Search(query string, limit int) ([]models.CompanyDataHit, error) {
	var hits []models.CompanyDataHit
	err := r.db.Raw(`
		SELECT d.*, ts_rank(d.search_vector, plainto_tsquery('english', ?)) AS relevance
		FROM company_data d
		WHERE d.is_active = TRUE
		  AND d.access_level = ?
		  AND d.search_vector @@ plainto_tsquery('english', ?)
		ORDER BY relevance DESC
		LIMIT ?`, query, models.AccessPublic, query, limit).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	return hits, nil
}

func (r *companyDataRepo) Create(doc *models.CompanyData) error {
	return r.db.Create(doc).Error
}

// DeactivateExpired soft-deletes documents whose expiry date has passed.
// Returns the number of rows touched.
func (r *companyDataRepo) DeactivateExpired() (int64, error) {
	result := r.db.Model(&models.CompanyData{}).
		Where("is_active = ? AND expiry_date IS NOT NULL AND expiry_date < NOW()", true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
