package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	postPrefix = "post"

	DefaultPostLimit = 10
	MaxPostLimit     = 50
)

// PostPage is one page of published posts.
type PostPage struct {
	Posts []models.Post `json:"posts"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// PostInput is the payload for creating a post.
type PostInput struct {
	Title     string `json:"title" binding:"required"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// PostPatch is the payload for updating a post. Nil fields are left as-is.
type PostPatch struct {
	Title     *string `json:"title"`
	Slug      *string `json:"slug"`
	Excerpt   *string `json:"excerpt"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

// PostService reads posts through the api cache.
type PostService struct {
	db     *gorm.DB
	caches *cache.Registry
	now    func() time.Time
}

func NewPostService(db *gorm.DB, caches *cache.Registry) *PostService {
	return &PostService{db: db, caches: caches, now: time.Now}
}

// NormalizePage clamps page and limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPostLimit
	}
	if limit > MaxPostLimit {
		limit = MaxPostLimit
	}
	return page, limit
}

// ListPublished returns a page of published posts, newest first.
func (s *PostService) ListPublished(ctx context.Context, page, limit int) (*PostPage, error) {
	page, limit = NormalizePage(page, limit)
	key := cache.QueryKey(cache.Key(postPrefix, "list"), map[string]string{
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(limit),
	})

	return cache.GetOrSetAs(ctx, s.caches.API, key, func(ctx context.Context) (*PostPage, error) {
		published := func() *gorm.DB {
			return s.db.WithContext(ctx).Model(&models.Post{}).Where("published = ?", true)
		}

		var total int64
		if err := published().Count(&total).Error; err != nil {
			return nil, fmt.Errorf("count posts: %w", err)
		}

		posts := []models.Post{}
		err := published().
			Order("published_at desc").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&posts).Error
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		return &PostPage{Posts: posts, Total: total, Page: page, Limit: limit}, nil
	}, cache.UseDefaultTTL)
}

// GetBySlug returns a published post.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	key := cache.Key(postPrefix, "slug", slug)
	return cache.GetOrSetAs(ctx, s.caches.API, key, func(ctx context.Context) (*models.Post, error) {
		var p models.Post
		if err := s.db.WithContext(ctx).Where("slug = ? AND published = ?", slug, true).First(&p).Error; err != nil {
			return nil, dbError(err)
		}
		return &p, nil
	}, cache.UseDefaultTTL)
}

// ListAll returns every post, drafts included, for the admin dashboard.
func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Create stores a new post. Publishing stamps PublishedAt.
func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
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

	p := models.Post{
		ID:      uuid.NewString(),
		Title:   title,
		Slug:    slug,
		Excerpt: in.Excerpt,
		Body:    in.Body,
	}
	s.setPublished(&p, in.Published)

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, dbError(err)
	}

	s.invalidateCache()
	return &p, nil
}

// Update applies patch to the post with the given id.
func (s *PostService) Update(ctx context.Context, id string, patch PostPatch) (*models.Post, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, dbError(err)
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		p.Title = title
	}
	if patch.Slug != nil {
		slug := Slugify(*patch.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug is empty", ErrInvalidInput)
		}
		p.Slug = slug
	}
	if patch.Excerpt != nil {
		p.Excerpt = *patch.Excerpt
	}
	if patch.Body != nil {
		p.Body = *patch.Body
	}
	if patch.Published != nil {
		s.setPublished(&p, *patch.Published)
	}

	if err := s.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, dbError(err)
	}

	s.invalidateCache()
	return &p, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.invalidateCache()
	return nil
}

// setPublished keeps the original PublishedAt when a post is re-published.
func (s *PostService) setPublished(p *models.Post, published bool) {
	p.Published = published
	if published && p.PublishedAt == nil {
		at := s.now().UTC()
		p.PublishedAt = &at
	}
}

func (s *PostService) invalidateCache() {
	invalidate(s.caches, postPrefix, homepagePrefix)
}
