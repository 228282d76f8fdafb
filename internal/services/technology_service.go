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

const technologyPrefix = "technology"

// TechnologyInput is the payload for creating a technology.
type TechnologyInput struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
}

// TechnologyService reads technologies through the static cache.
type TechnologyService struct {
	db     *gorm.DB
	caches *cache.Registry
}

func NewTechnologyService(db *gorm.DB, caches *cache.Registry) *TechnologyService {
	return &TechnologyService{db: db, caches: caches}
}

// List returns every technology ordered by category then name.
func (s *TechnologyService) List(ctx context.Context) ([]models.Technology, error) {
	key := cache.Key(technologyPrefix, "all")
	return cache.GetOrSetAs(ctx, s.caches.Static, key, func(ctx context.Context) ([]models.Technology, error) {
		techs := []models.Technology{}
		if err := s.db.WithContext(ctx).Order("category asc").Order("name asc").Find(&techs).Error; err != nil {
			return nil, fmt.Errorf("list technologies: %w", err)
		}
		return techs, nil
	}, cache.UseDefaultTTL)
}

// Create stores a new technology.
func (s *TechnologyService) Create(ctx context.Context, in TechnologyInput) (*models.Technology, error) {
	name := strings.TrimSpace(in.Name)
	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	t := models.Technology{
		ID:       uuid.NewString(),
		Name:     name,
		Slug:     slug,
		Category: strings.TrimSpace(in.Category),
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		return nil, dbError(err)
	}

	s.invalidateCache()
	return &t, nil
}

// Delete removes a technology and unlinks it from every project.
func (s *TechnologyService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.Technology
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM project_technologies WHERE technology_id = ?", t.ID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&t).Error
	})
	if err != nil {
		return dbError(err)
	}

	s.invalidateCache()
	return nil
}

// Projects embed their technologies, so both go stale together.
func (s *TechnologyService) invalidateCache() {
	invalidate(s.caches, technologyPrefix, projectPrefix, homepagePrefix)
}
