package repositories

import (
	"time"

	"marketplace/internal/models"
)

// ForumRepository defines the interface for forum data access. Threads
// page newest first with pinned threads always leading; posts page
// oldest first so a thread reads top to bottom.
type ForumRepository interface {
	CreateCategory(category *models.Category) error
	ListCategories() ([]models.Category, error)
	GetCategoryBySlug(slug string) (*models.Category, error)

	CreateThread(thread *models.Thread, firstPost *models.Post) error
	GetThreadByID(id string) (*models.Thread, error)
	// ListThreads pages pinned threads first, then unpinned, both
	// newest first. beforePinned tells the query which run the cursor
	// stopped in.
	ListThreads(categoryID string, before time.Time, beforeID string, beforePinned bool, limit int) ([]models.Thread, error)
	UpdateThread(thread *models.Thread) error

	CreatePost(post *models.Post) error
	ListPosts(threadID string, after time.Time, afterID string, limit int) ([]models.Post, error)
}
