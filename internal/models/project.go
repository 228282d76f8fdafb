package models

import (
	"time"

	"gorm.io/gorm"
)

// Project is a portfolio entry
type Project struct {
	ID           string         `json:"id" gorm:"primaryKey"`
	Title        string         `json:"title" gorm:"not null"`
	Slug         string         `json:"slug" gorm:"uniqueIndex;not null"`
	Summary      string         `json:"summary"`
	Body         string         `json:"body"`
	RepoURL      string         `json:"repoUrl" gorm:"column:repo_url"`
	LiveURL      string         `json:"liveUrl" gorm:"column:live_url"`
	Featured     bool           `json:"featured" gorm:"index"`
	Published    bool           `json:"published" gorm:"index"`
	SortOrder    int            `json:"sortOrder" gorm:"column:sort_order;default:0"`
	Technologies []Technology   `json:"technologies" gorm:"many2many:project_technologies;"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}

// Technology is a tag attached to projects (language, framework, tool)
type Technology struct {
	ID        string         `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"uniqueIndex;not null"`
	Slug      string         `json:"slug" gorm:"uniqueIndex;not null"`
	Category  string         `json:"category"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Technology Model
func (Technology) TableName() string {
	return "technologies"
}
