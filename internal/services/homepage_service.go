package services

import (
	"context"

	"portfolio-api/internal/cache"
	"portfolio-api/internal/models"
)

const (
	homepagePrefix = "homepage"

	homepageProjects = 3
	homepagePosts    = 3
)

// Homepage is everything the landing page renders.
type Homepage struct {
	FeaturedProjects []models.Project    `json:"featuredProjects"`
	RecentPosts      []models.Post       `json:"recentPosts"`
	Experience       []models.Experience `json:"experience"`
	Technologies     []models.Technology `json:"technologies"`
}

// HomepageService assembles the landing page from the other services and
// caches the result as a whole in the page cache.
type HomepageService struct {
	caches       *cache.Registry
	projects     *ProjectService
	posts        *PostService
	experience   *ExperienceService
	technologies *TechnologyService
}

func NewHomepageService(caches *cache.Registry, projects *ProjectService, posts *PostService, experience *ExperienceService, technologies *TechnologyService) *HomepageService {
	return &HomepageService{
		caches:       caches,
		projects:     projects,
		posts:        posts,
		experience:   experience,
		technologies: technologies,
	}
}

func (s *HomepageService) Get(ctx context.Context) (*Homepage, error) {
	key := cache.Key(homepagePrefix, "data")
	return cache.GetOrSetAs(ctx, s.caches.Page, key, func(ctx context.Context) (*Homepage, error) {
		featured := true
		projects, err := s.projects.List(ctx, ProjectFilter{Featured: &featured, Limit: homepageProjects})
		if err != nil {
			return nil, err
		}
		posts, err := s.posts.ListPublished(ctx, 1, homepagePosts)
		if err != nil {
			return nil, err
		}
		experience, err := s.experience.List(ctx)
		if err != nil {
			return nil, err
		}
		techs, err := s.technologies.List(ctx)
		if err != nil {
			return nil, err
		}

		return &Homepage{
			FeaturedProjects: projects,
			RecentPosts:      posts.Posts,
			Experience:       experience,
			Technologies:     techs,
		}, nil
	}, cache.UseDefaultTTL)
}
