package repositories

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMForumRepository is a GORM implementation of ForumRepository.
type GORMForumRepository struct {
	db *gorm.DB
}

// NewGORMForumRepository creates a new instance of GORMForumRepository.
func NewGORMForumRepository(db *gorm.DB) *GORMForumRepository {
	return &GORMForumRepository{db: db}
}

// CreateCategory inserts a new forum category.
func (r *GORMForumRepository) CreateCategory(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("category slug %s: %w", category.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories returns every category, oldest first.
func (r *GORMForumRepository) ListCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("created_at asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategoryBySlug retrieves a category by its slug.
func (r *GORMForumRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with slug %s: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get category by slug %s: %w", slug, err)
	}
	return &category, nil
}

// CreateThread inserts a thread together with its opening post.
func (r *GORMForumRepository) CreateThread(thread *models.Thread, firstPost *models.Post) error {
	if thread.ID == "" {
		thread.ID = uuid.New().String()
	}
	firstPost.ThreadID = thread.ID
	if firstPost.ID == "" {
		firstPost.ID = uuid.New().String()
	}
	thread.PostCount = 1
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(thread).Error; err != nil {
			return err
		}
		return tx.Create(firstPost).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create thread: %w", err)
	}
	return nil
}

// GetThreadByID retrieves a thread by its ID.
func (r *GORMForumRepository) GetThreadByID(id string) (*models.Thread, error) {
	var thread models.Thread
	if err := r.db.First(&thread, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("thread with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get thread by ID %s: %w", id, err)
	}
	return &thread, nil
}

// ListThreads returns a keyset page of a category's threads, pinned
// first, then newest first.
func (r *GORMForumRepository) ListThreads(categoryID string, before time.Time, beforeID string, beforePinned bool, limit int) ([]models.Thread, error) {
	q := r.db.Where("category_id = ?", categoryID)
	if !before.IsZero() {
		if beforePinned {
			// Still inside the pinned run; the whole unpinned tail is
			// ahead of the cursor.
			q = q.Where("(pinned = ? AND (created_at < ? OR (created_at = ? AND id < ?))) OR pinned = ?", true, before, before, beforeID, false)
		} else {
			q = q.Where("pinned = ? AND (created_at < ? OR (created_at = ? AND id < ?))", false, before, before, beforeID)
		}
	}
	var threads []models.Thread
	if err := q.Order("pinned desc, created_at desc, id desc").Limit(limit).Find(&threads).Error; err != nil {
		return nil, fmt.Errorf("failed to list threads for category %s: %w", categoryID, err)
	}
	return threads, nil
}

// UpdateThread persists thread changes (pin/lock flags).
func (r *GORMForumRepository) UpdateThread(thread *models.Thread) error {
	res := r.db.Save(thread)
	if res.Error != nil {
		return fmt.Errorf("failed to update thread: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("thread with ID %s: %w", thread.ID, ErrNotFound)
	}
	return nil
}

// CreatePost inserts a post and bumps the thread's post count in one
// transaction.
func (r *GORMForumRepository) CreatePost(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Thread{}).Where("id = ?", post.ThreadID).
			Update("post_count", gorm.Expr("post_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("thread with ID %s: %w", post.ThreadID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// ListPosts returns a keyset page of a thread's posts, oldest first.
func (r *GORMForumRepository) ListPosts(threadID string, after time.Time, afterID string, limit int) ([]models.Post, error) {
	q := r.db.Where("thread_id = ?", threadID)
	if !after.IsZero() {
		q = q.Where("created_at > ? OR (created_at = ? AND id > ?)", after, after, afterID)
	}
	var posts []models.Post
	if err := q.Order("created_at asc, id asc").Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts for thread %s: %w", threadID, err)
	}
	return posts, nil
}
