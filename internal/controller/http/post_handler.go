package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/entity"
	"inkwell/internal/repo/persistent"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
)

type PostHandler struct {
	postUseCase       usecase.PostUseCase
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewPostHandler(
	postUseCase usecase.PostUseCase,
	engagementUseCase usecase.EngagementUseCase,
	log *logger.Logger,
) *PostHandler {
	return &PostHandler{
		postUseCase:       postUseCase,
		engagementUseCase: engagementUseCase,
		logger:            log,
	}
}

type CreatePostRequest struct {
	Title    string   `json:"title" binding:"required,min=3,max=200"`
	Excerpt  string   `json:"excerpt" binding:"max=500"`
	Body     string   `json:"body" binding:"required"`
	Tags     []string `json:"tags"`
	Category string   `json:"category" binding:"required"`
}

type UpdatePostRequest struct {
	Title    *string  `json:"title" binding:"omitempty,min=3,max=200"`
	Excerpt  *string  `json:"excerpt" binding:"omitempty,max=500"`
	Body     *string  `json:"body"`
	Tags     []string `json:"tags"`
	Category *string  `json:"category"`
}

// Create godoc
// @Summary      Create a draft post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post data"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.Create(caller.AccountID, usecase.CreatePostInput{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Body:     req.Body,
		Tags:     req.Tags,
		Category: entity.PostCategory(req.Category),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// Update godoc
// @Summary      Update an own post
// @Description  Slug is immutable once assigned
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to update"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := usecase.UpdatePostInput{
		Title:   req.Title,
		Excerpt: req.Excerpt,
		Body:    req.Body,
		Tags:    req.Tags,
	}
	if req.Category != nil {
		category := entity.PostCategory(*req.Category)
		in.Category = &category
	}

	post, err := h.postUseCase.Update(caller, c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetBySlug godoc
// @Summary      Fetch a post by slug
// @Description  Unpublished posts are visible only to their author and moderators
// @Tags         posts
// @Produce      json
// @Param        slug path string true "Post slug"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	var viewer *entity.CallContext
	if caller, ok := middleware.Caller(c); ok {
		viewer = &caller
	}

	post, err := h.postUseCase.GetBySlug(viewer, c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// List godoc
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Param        category query string false "Filter by category"
// @Param        tag     query string false "Filter by tag"
// @Param        search  query string false "Search in title and excerpt"
// @Param        author  query string false "Filter by author ID"
// @Param        limit   query int false "Page size" default(20)
// @Param        offset  query int false "Page offset" default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	limit, offset := limitOffset(c)
	filter := postFilterFromQuery(c)

	posts, err := h.postUseCase.ListPublished(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// ListMine godoc
// @Summary      List the caller's own posts in any status
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/posts [get]
func (h *PostHandler) ListMine(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := limitOffset(c)

	posts, err := h.postUseCase.ListOwn(caller.AccountID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

// ToggleLike godoc
// @Summary      Like or unlike a post
// @Description  Toggles membership and returns the new like count
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.ToggleResult
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) ToggleLike(c *gin.Context) {
	h.toggle(c, h.engagementUseCase.ToggleLike)
}

// ToggleBookmark godoc
// @Summary      Bookmark or unbookmark a post
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.ToggleResult
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/bookmark [post]
func (h *PostHandler) ToggleBookmark(c *gin.Context) {
	h.toggle(c, h.engagementUseCase.ToggleBookmark)
}

func (h *PostHandler) toggle(c *gin.Context, apply func(actorID, postID string) (entity.ToggleResult, error)) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := apply(caller.AccountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LikedPosts godoc
// @Summary      List posts the caller has liked
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/likes [get]
func (h *PostHandler) LikedPosts(c *gin.Context) {
	h.engagedPosts(c, h.engagementUseCase.LikedPosts)
}

// BookmarkedPosts godoc
// @Summary      List posts the caller has bookmarked
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/bookmarks [get]
func (h *PostHandler) BookmarkedPosts(c *gin.Context) {
	h.engagedPosts(c, h.engagementUseCase.BookmarkedPosts)
}

func (h *PostHandler) engagedPosts(c *gin.Context, list func(actorID string, limit, offset int) ([]*entity.Post, error)) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	limit, offset := limitOffset(c)

	posts, err := list(caller.AccountID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

func postFilterFromQuery(c *gin.Context) persistent.PostFilter {
	var filter persistent.PostFilter
	if category := c.Query("category"); category != "" {
		filter = filter.WithCategory(entity.PostCategory(category))
	}
	if tag := c.Query("tag"); tag != "" {
		filter = filter.WithTag(tag)
	}
	if search := c.Query("search"); search != "" {
		filter = filter.WithSearch(search)
	}
	if author := c.Query("author"); author != "" {
		filter = filter.WithAuthor(author)
	}
	return filter
}
