package services

import (
	"context"
	"fmt"
	"strings"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const experiencePrefix = "experience"

// ExperienceInput is the payload for creating a work history entry.
type ExperienceInput struct {
	Company     string `json:"company" binding:"required"`
	Role        string `json:"role" binding:"required"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
	SortOrder   int    `json:"sortOrder"`
}

// ExperienceService reads work history through the static cache.
type ExperienceService struct {
	db     *gorm.DB
	caches *cache.Registry
}

func NewExperienceService(db *gorm.DB, caches *cache.Registry) *ExperienceService {
	return &ExperienceService{db: db, caches: caches}
}

// List returns every entry, most recent first.
func (s *ExperienceService) List(ctx context.Context) ([]models.Experience, error) {
	key := cache.Key(experiencePrefix, "all")
	return cache.GetOrSetAs(ctx, s.caches.Static, key, func(ctx context.Context) ([]models.Experience, error) {
		items := []models.Experience{}
		err := s.db.WithContext(ctx).
			Order("sort_order asc").
			Order("start_date desc").
			Find(&items).Error
		if err != nil {
			return nil, fmt.Errorf("list experience: %w", err)
		}
		return items, nil
	}, cache.UseDefaultTTL)
}

func (s *ExperienceService) Create(ctx context.Context, in ExperienceInput) (*models.Experience, error) {
	company := strings.TrimSpace(in.Company)
	role := strings.TrimSpace(in.Role)
	if company == "" || role == "" {
		return nil, fmt.Errorf("%w: company and role are required", ErrInvalidInput)
	}

	e := models.Experience{
		ID:          uuid.NewString(),
		Company:     company,
		Role:        role,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	}
	if err := s.db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, dbError(err)
	}

	invalidate(s.caches, experiencePrefix, homepagePrefix)
	return &e, nil
}

func (s *ExperienceService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.Experience{}, "id = ?", id)
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	invalidate(s.caches, experiencePrefix, homepagePrefix)
	return nil
}
