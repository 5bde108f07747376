package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/azat-nasyrov-dev/post-test-api/internal/models"
	"github.com/azat-nasyrov-dev/post-test-api/internal/repositories"
	"github.com/azat-nasyrov-dev/post-test-api/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPostService(userRepo *MockUserRepository) (*services.PostService, *repositories.MockPostRepository) {
	postRepo := repositories.NewMockPostRepository()
	return services.NewPostService(postRepo, userRepo, nil), postRepo
}

func TestPostService_CreatePost(t *testing.T) {
	service, postRepo := newPostService(new(MockUserRepository))

	author := &models.User{ID: "author-1", Email: "a@x.com", Username: strPtr("alice")}
	post, err := service.CreatePost(author, "T", "D")
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "D", post.Description)
	assert.Equal(t, "author-1", post.AuthorID)
	assert.Equal(t, "a@x.com", post.Author.Email)
	assert.False(t, post.CreatedAt.IsZero())

	stored, err := postRepo.GetByID(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "T", stored.Title)
}

func TestPostService_UpdatePost(t *testing.T) {
	service, postRepo := newPostService(new(MockUserRepository))

	author := &models.User{ID: "author-1"}
	post, err := service.CreatePost(author, "Original", "Body")
	assert.NoError(t, err)

	// A missing post is reported before any ownership consideration
	_, err = service.UpdatePost("anyone", "no-such-id", "X", "Y")
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	// A non-author is rejected and the post is left untouched
	_, err = service.UpdatePost("intruder", post.ID, "Hacked", "Hacked")
	assert.ErrorIs(t, err, services.ErrNotPostAuthor)
	stored, _ := postRepo.GetByID(post.ID)
	assert.Equal(t, "Original", stored.Title)

	// The author may overwrite; updatedAt moves past createdAt
	time.Sleep(5 * time.Millisecond)
	updated, err := service.UpdatePost("author-1", post.ID, "Updated", "New body")
	assert.NoError(t, err)
	assert.Equal(t, "Updated", updated.Title)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestPostService_DeletePost(t *testing.T) {
	service, postRepo := newPostService(new(MockUserRepository))

	author := &models.User{ID: "author-1"}
	post, err := service.CreatePost(author, "T", "D")
	assert.NoError(t, err)

	_, err = service.DeletePost("anyone", "no-such-id")
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	_, err = service.DeletePost("intruder", post.ID)
	assert.ErrorIs(t, err, services.ErrNotPostAuthor)
	_, err = postRepo.GetByID(post.ID)
	assert.NoError(t, err)

	affected, err := service.DeletePost("author-1", post.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	_, err = postRepo.GetByID(post.ID)
	assert.Error(t, err)
}

func TestPostService_ListPosts(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	service, _ := newPostService(mockUserRepo)

	alice := &models.User{ID: "alice-id", Username: strPtr("alice")}
	bob := &models.User{ID: "bob-id", Username: strPtr("bob")}

	for i := 0; i < 3; i++ {
		_, err := service.CreatePost(alice, fmt.Sprintf("alice-%d", i), "d")
		assert.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := service.CreatePost(bob, "bob-0", "d")
	assert.NoError(t, err)

	// Unfiltered listing: everything, newest first
	resp, err := service.ListPosts(services.ListPostsQuery{})
	assert.NoError(t, err)
	assert.Len(t, resp.Posts, 4)
	assert.Equal(t, int64(4), resp.PostsCount)
	assert.Equal(t, "bob-0", resp.Posts[0].Title)
	assert.Equal(t, "alice-2", resp.Posts[1].Title)

	// The author filter narrows the page but never the count
	mockUserRepo.On("GetByUsername", "alice").Return(alice, nil).Once()
	resp, err = service.ListPosts(services.ListPostsQuery{Author: "alice"})
	assert.NoError(t, err)
	assert.Len(t, resp.Posts, 3)
	assert.Equal(t, int64(4), resp.PostsCount)
	mockUserRepo.AssertExpectations(t)

	// An unknown author matches nothing; the count is still the total
	mockUserRepo.On("GetByUsername", "nobody").
		Return(nil, fmt.Errorf("failed to get user by username nobody: %w", gorm.ErrRecordNotFound)).Once()
	resp, err = service.ListPosts(services.ListPostsQuery{Author: "nobody"})
	assert.NoError(t, err)
	assert.Empty(t, resp.Posts)
	assert.Equal(t, int64(4), resp.PostsCount)
	mockUserRepo.AssertExpectations(t)

	// Limit and offset page through the ordered listing
	resp, err = service.ListPosts(services.ListPostsQuery{Limit: 2, Offset: 1})
	assert.NoError(t, err)
	assert.Len(t, resp.Posts, 2)
	assert.Equal(t, "alice-2", resp.Posts[0].Title)
	assert.Equal(t, int64(4), resp.PostsCount)
}

func TestPostService_FindPostByID(t *testing.T) {
	service, _ := newPostService(new(MockUserRepository))

	_, err := service.FindPostByID("no-such-id")
	assert.ErrorIs(t, err, services.ErrPostNotFound)

	post, err := service.CreatePost(&models.User{ID: "author-1"}, "T", "D")
	assert.NoError(t, err)

	found, err := service.FindPostByID(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
}
