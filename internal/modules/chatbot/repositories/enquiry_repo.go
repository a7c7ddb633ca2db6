package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/enquirobot/enquiry-chatbot-be/internal/modules/chatbot/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEnquiryNotFound = errors.New("enquiry not found")

type EnquiryRepo interface {
	Search(query string, limit int) ([]models.EnquiryHit, error)
	FindByCategory(category string, limit int) ([]models.Enquiry, error)
	ListActive(limit int) ([]models.Enquiry, error)
	SampleActive(n int) ([]models.Enquiry, error)
	FindByID(id string) (*models.Enquiry, error)
	List(filter models.EnquiryFilter) ([]models.Enquiry, int64, error)
	Create(enquiry *models.Enquiry) error
	Update(enquiry *models.Enquiry) error
	SoftDelete(id string) error
}

type enquiryRepo struct {
	db *gorm.DB
}

func NewEnquiryRepo(db *gorm.DB) EnquiryRepo {
	return &enquiryRepo{db: db}
}

// Search runs a full-text query over question, answer and tags of active
// enquiries, ranked by ts_rank. The relevance score is in postgres-native
// units; thresholds on it are not portable across search engines.
func (r *enquiryRepo) Search(query string, limit int) ([]models.EnquiryHit, error) {
	var hits []models.EnquiryHit
	err := r.db.Raw(`
		SELECT e.*, ts_rank(e.search_vector, plainto_tsquery('english', ?)) AS relevance
		FROM enquiries e
		WHERE e.is_active = TRUE
		  AND e.search_vector @@ plainto_tsquery('english', ?)
		ORDER BY relevance DESC
		LIMIT ?`, query, query, limit).Scan(&hits).Error
	if err != nil {
		return nil, fmt.Errorf("full-text search: %w", err)
	}
	return hits, nil
}

func (r *enquiryRepo) FindByCategory(category string, limit int) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	err := r.db.Where("category = ? AND is_active = ?", category, true).
		Limit(limit).
		Find(&enquiries).Error
	return enquiries, err
}

func (r *enquiryRepo) ListActive(limit int) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	err := r.db.Where("is_active = ?", true).
		Limit(limit).
		Find(&enquiries).Error
	return enquiries, err
}

// SampleActive returns n active enquiries in random order.
func (r *enquiryRepo) SampleActive(n int) ([]models.Enquiry, error) {
	var enquiries []models.Enquiry
	err := r.db.Where("is_active = ?", true).
		Order("RANDOM()").
		Limit(n).
		Find(&enquiries).Error
	return enquiries, err
}

func (r *enquiryRepo) FindByID(id string) (*models.Enquiry, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid enquiry ID: %w", err)
	}

	var enquiry models.Enquiry
	err = r.db.First(&enquiry, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEnquiryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *enquiryRepo) List(filter models.EnquiryFilter) ([]models.Enquiry, int64, error) {
	var enquiries []models.Enquiry
	var total int64

	query := r.db.Model(&models.Enquiry{}).Where("is_active = ?", true)

	if filter.Query != "" {
		query = query.Where("search_vector @@ plainto_tsquery('english', ?)", filter.Query)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Department != "" {
		query = query.Where("department = ?", filter.Department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&enquiries).Error

	return enquiries, total, err
}

func (r *enquiryRepo) Create(enquiry *models.Enquiry) error {
	stampMetadata(enquiry)
	if enquiry.Metadata.Source == "" {
		enquiry.Metadata.Source = "manual"
	}
	if enquiry.Metadata.Priority == "" {
		enquiry.Metadata.Priority = "medium"
	}
	return r.db.Create(enquiry).Error
}

func (r *enquiryRepo) Update(enquiry *models.Enquiry) error {
	stampMetadata(enquiry)
	return r.db.Save(enquiry).Error
}

// SoftDelete deactivates an enquiry. Rows are never physically removed.
func (r *enquiryRepo) SoftDelete(id string) error {
	enquiry, err := r.FindByID(id)
	if err != nil {
		return err
	}

	enquiry.IsActive = false
	stampMetadata(enquiry)
	return r.db.Save(enquiry).Error
}

func stampMetadata(enquiry *models.Enquiry) {
	enquiry.Metadata.LastUpdated = time.Now()
	enquiry.Metadata.UpdatedBy = "system"
}
