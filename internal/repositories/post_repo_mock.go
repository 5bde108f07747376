package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/azat-nasyrov-dev/post-test-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MockPostRepository is an in-memory implementation of PostRepository,
// useful for tests and local development without a database.
type MockPostRepository struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts: make(map[string]models.Post),
	}
}

// Create adds a post to the in-memory store, generating an ID and
// timestamps the way the real store would.
func (m *MockPostRepository) Create(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	m.posts[post.ID] = *post
	return nil
}

// List returns posts ordered by creation time descending. Matching the
// real store, the count is taken before the author predicate is applied.
func (m *MockPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := int64(len(m.posts))

	var posts []models.Post
	for _, post := range m.posts {
		if filter.AuthorID != "" && post.AuthorID != filter.AuthorID {
			continue
		}
		posts = append(posts, post)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(posts) {
			posts = nil
		} else {
			posts = posts[filter.Offset:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(posts) {
		posts = posts[:filter.Limit]
	}
	return posts, count, nil
}

// GetByID retrieves a post by its ID from the in-memory store.
func (m *MockPostRepository) GetByID(id string) (*models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post with ID %s not found: %w", id, gorm.ErrRecordNotFound)
	}
	return &post, nil
}

// Update overwrites an existing post and refreshes its UpdatedAt.
func (m *MockPostRepository) Update(post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[post.ID]; !ok {
		return fmt.Errorf("post with ID %s not found for update: %w", post.ID, gorm.ErrRecordNotFound)
	}
	post.UpdatedAt = time.Now()
	m.posts[post.ID] = *post
	return nil
}

// Delete removes a post by its ID and reports the number of rows removed.
func (m *MockPostRepository) Delete(id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return 0, nil
	}
	delete(m.posts, id)
	return 1, nil
}
