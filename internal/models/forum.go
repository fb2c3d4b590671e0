package models

import "time"

// Category represents a forum category. Only admins create categories.
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name      string    `json:"name" validate:"required,min=3,max=50"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;type:varchar(60)" validate:"required,slug"`
	CreatedAt time.Time `json:"created_at"`
}

// Thread represents a discussion thread. Pinned threads sort first in
// category listings; locked threads reject posts from non-admins.
type Thread struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	CategoryID string    `json:"category_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	AuthorID   string    `json:"author_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Title      string    `json:"title" validate:"required,min=3,max=200"`
	Slug       string    `json:"slug" gorm:"index;type:varchar(220)" validate:"required,slug"`
	Pinned     bool      `json:"pinned"`
	Locked     bool      `json:"locked"`
	PostCount  int       `json:"post_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Post represents a single message within a thread.
type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ThreadID  string    `json:"thread_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	AuthorID  string    `json:"author_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Body      string    `json:"body" validate:"required,min=1,max=5000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
