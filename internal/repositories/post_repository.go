package repositories

import "github.com/azat-nasyrov-dev/post-test-api/internal/models"

// PostFilter narrows and pages the post listing. A zero AuthorID means no
// author predicate; Limit/Offset apply only when positive.
type PostFilter struct {
	AuthorID string
	Limit    int
	Offset   int
}

// PostRepository defines the interface for post data access.
type PostRepository interface {
	Create(post *models.Post) error
	// List returns the filtered page ordered by creation time descending,
	// together with the count of all posts before the author predicate is
	// applied.
	List(filter PostFilter) ([]models.Post, int64, error)
	GetByID(id string) (*models.Post, error)
	Update(post *models.Post) error
	Delete(id string) (int64, error)
}
