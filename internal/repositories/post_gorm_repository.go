package repositories

import (
	"fmt"

	"github.com/azat-nasyrov-dev/post-test-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create inserts a new post. Timestamps are set by the store on insert.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if err := r.db.Omit("Author").Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// List returns posts ordered by creation time descending. The returned
// count is taken before the author predicate is applied, so it always
// reflects the unfiltered total.
func (r *GORMPostRepository) List(filter PostFilter) ([]models.Post, int64, error) {
	var count int64
	if err := r.db.Model(&models.Post{}).Count(&count).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	query := r.db.Preload("Author").Order("created_at DESC")
	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, count, nil
}

// GetByID retrieves a single post with its author preloaded.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// Update persists all fields of an existing post. GORM refreshes
// updated_at on save.
func (r *GORMPostRepository) Update(post *models.Post) error {
	res := r.db.Omit("Author").Save(post)
	if res.Error != nil {
		return fmt.Errorf("failed to update post %s: %w", post.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("post with ID %s not found for update: %w", post.ID, gorm.ErrRecordNotFound)
	}
	return nil
}

// Delete removes a post by its ID and reports the number of rows removed.
func (r *GORMPostRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&models.Post{}, "id = ?", id)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete post %s: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}
