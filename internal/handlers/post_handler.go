package handlers

import (
	"log"

	"github.com/azat-nasyrov-dev/post-test-api/internal/middleware"
	"github.com/azat-nasyrov-dev/post-test-api/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	postService *services.PostService
	validate    *validator.Validate
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the post routes. guard protects create, update
// and delete; reading is public.
func (h *PostHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	posts := router.Group("/posts")
	posts.Post("/", guard, h.HandleCreatePost)
	posts.Get("/", h.HandleListPosts)
	posts.Get("/:id", h.HandleGetPost)
	posts.Put("/:id", guard, h.HandleUpdatePost)
	posts.Delete("/:id", guard, h.HandleDeletePost)
}

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// PostRequest is the post request envelope.
type PostRequest struct {
	Post PostInput `json:"post"`
}

// HandleCreatePost creates a post authored by the authenticated user.
func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	author := middleware.CurrentUser(c)
	post, err := h.postService.CreatePost(author, req.Post.Title, req.Post.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.postService.BuildPostResponse(post))
}

// HandleListPosts lists posts, optionally filtered by author username and
// paged with limit/offset.
func (h *PostHandler) HandleListPosts(c *fiber.Ctx) error {
	query := services.ListPostsQuery{
		Author: c.Query("author"),
		Limit:  c.QueryInt("limit"),
		Offset: c.QueryInt("offset"),
	}

	resp, err := h.postService.ListPosts(query)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// HandleGetPost fetches a single post by its ID.
func (h *PostHandler) HandleGetPost(c *fiber.Ctx) error {
	post, err := h.postService.FindPostByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.postService.BuildPostResponse(post))
}

// HandleUpdatePost overwrites a post's title and description. Only the
// post's author may do this.
func (h *PostHandler) HandleUpdatePost(c *fiber.Ctx) error {
	var req PostRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update post request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	requester := middleware.CurrentUser(c)
	post, err := h.postService.UpdatePost(requester.ID, c.Params("id"), req.Post.Title, req.Post.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(h.postService.BuildPostResponse(post))
}

// HandleDeletePost removes a post. Only the post's author may do this.
func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	requester := middleware.CurrentUser(c)
	affected, err := h.postService.DeletePost(requester.ID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"affected": affected,
	})
}
