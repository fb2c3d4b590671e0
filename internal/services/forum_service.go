package services

import (
	"fmt"
	"log"
	"time"

	"marketplace/internal/models"
	"marketplace/internal/repositories"
	"marketplace/internal/validation"

	"github.com/google/uuid"
)

// ForumService handles business logic for the discussion forum.
type ForumService struct {
	repo      repositories.ForumRepository
	publisher EventPublisher
}

// NewForumService creates a new ForumService. publisher may be nil.
func NewForumService(repo repositories.ForumRepository, publisher EventPublisher) *ForumService {
	return &ForumService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateCategory creates a forum category. Admin console only; the
// handler gates the role.
func (s *ForumService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      validation.Slugify(name),
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateCategory(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns every forum category.
func (s *ForumService) ListCategories() ([]models.Category, error) {
	return s.repo.ListCategories()
}

// GetCategoryBySlug resolves a category from its slug.
func (s *ForumService) GetCategoryBySlug(slug string) (*models.Category, error) {
	return s.repo.GetCategoryBySlug(slug)
}

// ListThreads returns one page of a category's threads plus the next
// cursor. Pinned threads lead the first page.
func (s *ForumService) ListThreads(categoryID, cursor string, limit int) ([]models.Thread, string, error) {
	before, beforeID, beforePinned, err := DecodePinnedCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	threads, err := s.repo.ListThreads(categoryID, before, beforeID, beforePinned, limit)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if len(threads) == limit && limit > 0 {
		last := threads[len(threads)-1]
		next = EncodePinnedCursor(last.CreatedAt, last.ID, last.Pinned)
	}
	return threads, next, nil
}

// CreateThread opens a thread in a category with its first post.
func (s *ForumService) CreateThread(categoryID, authorID, title, body string) (*models.Thread, error) {
	now := time.Now()
	thread := &models.Thread{
		ID:         uuid.New().String(),
		CategoryID: categoryID,
		AuthorID:   authorID,
		Title:      title,
		Slug:       validation.Slugify(title),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	firstPost := &models.Post{
		ID:        uuid.New().String(),
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateThread(thread, firstPost); err != nil {
		return nil, err
	}
	return thread, nil
}

// GetThread retrieves a thread by its ID.
func (s *ForumService) GetThread(id string) (*models.Thread, error) {
	return s.repo.GetThreadByID(id)
}

// ListPosts returns one page of a thread's posts, oldest first, plus
// the next cursor.
func (s *ForumService) ListPosts(threadID, cursor string, limit int) ([]models.Post, string, error) {
	after, afterID, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}
	posts, err := s.repo.ListPosts(threadID, after, afterID, limit)
	if err != nil {
		return nil, "", err
	}
	next := ""
	if len(posts) == limit && limit > 0 {
		last := posts[len(posts)-1]
		next = EncodeCursor(last.CreatedAt, last.ID)
	}
	return posts, next, nil
}

// AddPost replies to a thread. Locked threads reject everyone but
// admins.
func (s *ForumService) AddPost(threadID, authorID, role, body string) (*models.Post, error) {
	thread, err := s.repo.GetThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	if thread.Locked && role != models.RoleAdmin {
		return nil, fmt.Errorf("thread %s: %w", threadID, ErrThreadLocked)
	}

	now := time.Now()
	post := &models.Post{
		ID:        uuid.New().String(),
		ThreadID:  threadID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, err
	}

	if s.publisher != nil && thread.AuthorID != authorID {
		event := PostCreatedEvent{
			PostID:         post.ID,
			ThreadID:       threadID,
			ThreadAuthorID: thread.AuthorID,
			AuthorID:       authorID,
		}
		if err := s.publisher.Publish(EventPostCreated, event); err != nil {
			log.Printf("Warning: Failed to publish post created event for post %s: %v", post.ID, err)
		}
	}
	return post, nil
}

// SetThreadFlags pins or locks a thread. Admin console only; nil leaves
// a flag untouched.
func (s *ForumService) SetThreadFlags(threadID string, pinned, locked *bool) (*models.Thread, error) {
	thread, err := s.repo.GetThreadByID(threadID)
	if err != nil {
		return nil, err
	}
	if pinned != nil {
		thread.Pinned = *pinned
	}
	if locked != nil {
		thread.Locked = *locked
	}
	thread.UpdatedAt = time.Now()
	if err := s.repo.UpdateThread(thread); err != nil {
		return nil, err
	}
	return thread, nil
}
