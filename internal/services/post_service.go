package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/azat-nasyrov-dev/post-test-api/internal/models"
	"github.com/azat-nasyrov-dev/post-test-api/internal/repositories"
	"github.com/azat-nasyrov-dev/post-test-api/pkg/rabbitmq"

	"gorm.io/gorm"
)

// missingAuthorID is the nil UUID; generated post IDs are always random
// v4, so filtering on it matches no stored post.
const missingAuthorID = "00000000-0000-0000-0000-000000000000"

// ListPostsQuery carries the optional listing parameters.
type ListPostsQuery struct {
	Author string
	Limit  int
	Offset int
}

// PostsResponse is the API envelope for a post listing. PostsCount always
// reflects the unfiltered total, even when an author filter narrows the
// returned page.
type PostsResponse struct {
	Posts      []models.Post `json:"posts"`
	PostsCount int64         `json:"postsCount"`
}

// PostResponse is the API envelope for a single post.
type PostResponse struct {
	Post *models.Post `json:"post"`
}

// PostService handles business logic for posts, including the ownership
// rule that only a post's author may mutate or delete it.
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	mqClient *rabbitmq.Client
}

// NewPostService creates a new PostService. mqClient may be nil, in which
// case event publication is skipped.
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		mqClient: mqClient,
	}
}

// CreatePost persists a new post with the given author. Timestamps are set
// by the store.
func (s *PostService) CreatePost(author *models.User, title, description string) (*models.Post, error) {
	post := &models.Post{
		Title:       title,
		Description: description,
		AuthorID:    author.ID,
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	post.Author = *author

	s.publishEvent("post.created", post)
	return post, nil
}

// ListPosts returns posts ordered by creation time descending. An author
// filter that names no known user yields an empty page; the count is
// unaffected by the filter either way.
func (s *PostService) ListPosts(query ListPostsQuery) (*PostsResponse, error) {
	filter := repositories.PostFilter{
		Limit:  query.Limit,
		Offset: query.Offset,
	}

	if query.Author != "" {
		author, err := s.userRepo.GetByUsername(query.Author)
		switch {
		case err == nil:
			filter.AuthorID = author.ID
		case errors.Is(err, gorm.ErrRecordNotFound):
			filter.AuthorID = missingAuthorID
		default:
			return nil, fmt.Errorf("failed to resolve author %s: %w", query.Author, err)
		}
	}

	posts, count, err := s.postRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &PostsResponse{Posts: posts, PostsCount: count}, nil
}

// FindPostByID retrieves a single post.
func (s *PostService) FindPostByID(id string) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to find post %s: %w", id, err)
	}
	return post, nil
}

// UpdatePost overwrites the post's title and description. The post must
// exist, and the requester must be its author; existence is checked first.
func (s *PostService) UpdatePost(requesterID, id, title, description string) (*models.Post, error) {
	post, err := s.FindPostByID(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requesterID {
		return nil, ErrNotPostAuthor
	}

	post.Title = title
	post.Description = description

	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to update post %s: %w", id, err)
	}

	s.publishEvent("post.updated", post)
	return post, nil
}

// DeletePost removes the post and reports the number of rows removed. The
// same existence and ownership checks apply as for updates.
func (s *PostService) DeletePost(requesterID, id string) (int64, error) {
	post, err := s.FindPostByID(id)
	if err != nil {
		return 0, err
	}
	if post.AuthorID != requesterID {
		return 0, ErrNotPostAuthor
	}

	affected, err := s.postRepo.Delete(id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete post %s: %w", id, err)
	}

	s.publishEvent("post.deleted", post)
	return affected, nil
}

// BuildPostResponse wraps a post for the API envelope.
func (s *PostService) BuildPostResponse(post *models.Post) *PostResponse {
	return &PostResponse{Post: post}
}

// publishEvent emits a post lifecycle event. Publication is best effort:
// a broker failure is logged and never fails the request.
func (s *PostService) publishEvent(event string, post *models.Post) {
	if s.mqClient == nil {
		return
	}

	payload := map[string]interface{}{
		"postID":   post.ID,
		"authorID": post.AuthorID,
		"title":    post.Title,
	}
	if err := s.mqClient.PublishPostEvent(event, payload); err != nil {
		log.Printf("Warning: Failed to publish %s event for post %s: %v", event, post.ID, err)
	}
}
