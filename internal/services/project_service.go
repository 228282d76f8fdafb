package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	projectPrefix   = "project"
	MaxProjectLimit = 50
)

// ProjectFilter narrows the public project list.
type ProjectFilter struct {
	Featured   *bool
	Technology string // technology slug
	Limit      int
}

func (f ProjectFilter) cacheKey() string {
	params := map[string]string{"tech": f.Technology}
	if f.Featured != nil {
		params["featured"] = strconv.FormatBool(*f.Featured)
	}
	if f.Limit > 0 {
		params["limit"] = strconv.Itoa(f.Limit)
	}
	return cache.QueryKey(cache.Key(projectPrefix, "filter"), params)
}

// ProjectInput is the payload for creating a project.
type ProjectInput struct {
	Title        string   `json:"title" binding:"required"`
	Slug         string   `json:"slug"`
	Summary      string   `json:"summary"`
	Body         string   `json:"body"`
	RepoURL      string   `json:"repoUrl"`
	LiveURL      string   `json:"liveUrl"`
	Featured     bool     `json:"featured"`
	Published    bool     `json:"published"`
	SortOrder    int      `json:"sortOrder"`
	Technologies []string `json:"technologies"` // technology slugs
}

// ProjectPatch is the payload for updating a project. Nil fields are left as-is.
type ProjectPatch struct {
	Title        *string   `json:"title"`
	Slug         *string   `json:"slug"`
	Summary      *string   `json:"summary"`
	Body         *string   `json:"body"`
	RepoURL      *string   `json:"repoUrl"`
	LiveURL      *string   `json:"liveUrl"`
	Featured     *bool     `json:"featured"`
	Published    *bool     `json:"published"`
	SortOrder    *int      `json:"sortOrder"`
	Technologies *[]string `json:"technologies"`
}

// ProjectService reads projects through the page cache.
type ProjectService struct {
	db     *gorm.DB
	caches *cache.Registry
}

func NewProjectService(db *gorm.DB, caches *cache.Registry) *ProjectService {
	return &ProjectService{db: db, caches: caches}
}

// List returns published projects matching f, ordered for display. Limit is
// clamped to MaxProjectLimit; an unknown technology yields an empty list that
// is not cached.
func (s *ProjectService) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	if f.Limit < 0 {
		f.Limit = 0
	}
	if f.Limit > MaxProjectLimit {
		f.Limit = MaxProjectLimit
	}
	if f.Technology != "" {
		known, err := s.technologyExists(ctx, f.Technology)
		if err != nil {
			return nil, err
		}
		if !known {
			return []models.Project{}, nil
		}
	}

	return cache.GetOrSetAs(ctx, s.caches.Page, f.cacheKey(), func(ctx context.Context) ([]models.Project, error) {
		q := s.db.WithContext(ctx).
			Model(&models.Project{}).
			Preload("Technologies").
			Where("projects.published = ?", true)
		if f.Featured != nil {
			q = q.Where("projects.featured = ?", *f.Featured)
		}
		if f.Technology != "" {
			q = q.Joins("JOIN project_technologies pt ON pt.project_id = projects.id").
				Joins("JOIN technologies t ON t.id = pt.technology_id").
				Where("t.slug = ?", f.Technology)
		}
		if f.Limit > 0 {
			q = q.Limit(f.Limit)
		}

		projects := []models.Project{}
		if err := q.Order("projects.sort_order asc").Order("projects.created_at desc").Find(&projects).Error; err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		return projects, nil
	}, cache.UseDefaultTTL)
}

// technologyExists checks the cached technology list when there is one and
// falls back to the database otherwise.
func (s *ProjectService) technologyExists(ctx context.Context, slug string) (bool, error) {
	if techs, ok := cache.GetAs[[]models.Technology](s.caches.Static, cache.Key(technologyPrefix, "all")); ok {
		return slices.ContainsFunc(techs, func(t models.Technology) bool { return t.Slug == slug }), nil
	}
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Technology{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, fmt.Errorf("look up technology: %w", err)
	}
	return n > 0, nil
}

// GetBySlug returns a published project.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	key := cache.Key(projectPrefix, "slug", slug)
	return cache.GetOrSetAs(ctx, s.caches.Page, key, func(ctx context.Context) (*models.Project, error) {
		var p models.Project
		err := s.db.WithContext(ctx).
			Preload("Technologies").
			Where("slug = ? AND published = ?", slug, true).
			First(&p).Error
		if err != nil {
			return nil, dbError(err)
		}
		return &p, nil
	}, cache.UseDefaultTTL)
}

// GetByID returns any project, published or not. Admin reads skip the cache.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	if err := s.db.WithContext(ctx).Preload("Technologies").First(&p, "id = ?", id).Error; err != nil {
		return nil, dbError(err)
	}
	return &p, nil
}

// ListAll returns every project for the admin dashboard.
func (s *ProjectService) ListAll(ctx context.Context) ([]models.Project, error) {
	projects := []models.Project{}
	if err := s.db.WithContext(ctx).Preload("Technologies").Order("created_at desc").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Create stores a new project. The slug is derived from the title when empty.
func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*models.Project, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
	}

	p := models.Project{
		ID:        uuid.NewString(),
		Title:     title,
		Slug:      slug,
		Summary:   in.Summary,
		Body:      in.Body,
		RepoURL:   in.RepoURL,
		LiveURL:   in.LiveURL,
		Featured:  in.Featured,
		Published: in.Published,
		SortOrder: in.SortOrder,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		techs, err := findTechnologies(tx, in.Technologies)
		if err != nil {
			return err
		}
		p.Technologies = techs
		return tx.Create(&p).Error
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.invalidateCache()
	return &p, nil
}

// Update applies patch to the project with the given id.
func (s *ProjectService) Update(ctx context.Context, id string, patch ProjectPatch) (*models.Project, error) {
	var p models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return fmt.Errorf("%w: title is required", ErrInvalidInput)
			}
			p.Title = title
		}
		if patch.Slug != nil {
			slug := Slugify(*patch.Slug)
			if slug == "" {
				return fmt.Errorf("%w: slug is empty", ErrInvalidInput)
			}
			p.Slug = slug
		}
		if patch.Summary != nil {
			p.Summary = *patch.Summary
		}
		if patch.Body != nil {
			p.Body = *patch.Body
		}
		if patch.RepoURL != nil {
			p.RepoURL = *patch.RepoURL
		}
		if patch.LiveURL != nil {
			p.LiveURL = *patch.LiveURL
		}
		if patch.Featured != nil {
			p.Featured = *patch.Featured
		}
		if patch.Published != nil {
			p.Published = *patch.Published
		}
		if patch.SortOrder != nil {
			p.SortOrder = *patch.SortOrder
		}

		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		if patch.Technologies != nil {
			techs, err := findTechnologies(tx, *patch.Technologies)
			if err != nil {
				return err
			}
			if err := tx.Model(&p).Association("Technologies").Replace(techs); err != nil {
				return err
			}
		}
		return tx.Preload("Technologies").First(&p, "id = ?", id).Error
	})
	if err != nil {
		return nil, dbError(err)
	}

	s.invalidateCache()
	return &p, nil
}

// Delete removes the project and its technology links.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&p).Association("Technologies").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&p).Error
	})
	if err != nil {
		return dbError(err)
	}

	s.invalidateCache()
	return nil
}

func (s *ProjectService) invalidateCache() {
	invalidate(s.caches, projectPrefix, homepagePrefix)
}

// findTechnologies resolves slugs to technologies; an unknown slug is an input error.
func findTechnologies(tx *gorm.DB, slugs []string) ([]models.Technology, error) {
	techs := []models.Technology{}
	if len(slugs) == 0 {
		return techs, nil
	}
	if err := tx.Where("slug IN ?", slugs).Find(&techs).Error; err != nil {
		return nil, err
	}
	if len(techs) != len(uniqueStrings(slugs)) {
		return nil, fmt.Errorf("%w: unknown technology in %v", ErrInvalidInput, slugs)
	}
	return techs, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
