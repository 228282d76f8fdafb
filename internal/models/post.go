package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a blog post
type Post struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Excerpt     string         `json:"excerpt"`
	Body        string         `json:"body"`
	Published   bool           `json:"published" gorm:"index"`
	PublishedAt *time.Time     `json:"publishedAt" gorm:"column:published_at;index"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Post Model
func (Post) TableName() string {
	return "posts"
}

// Experience is a work history entry
type Experience struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Company     string         `json:"company" gorm:"not null"`
	Role        string         `json:"role" gorm:"not null"`
	StartDate   string         `json:"startDate" gorm:"column:start_date"`
	EndDate     string         `json:"endDate" gorm:"column:end_date"` // empty means current
	Description string         `json:"description"`
	SortOrder   int            `json:"sortOrder" gorm:"column:sort_order;default:0"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name for Experience Model
func (Experience) TableName() string {
	return "experiences"
}

// All lists every model for migrations.
func All() []any {
	return []any{&User{}, &Technology{}, &Project{}, &Post{}, &Experience{}}
}
