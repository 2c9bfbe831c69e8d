package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
)

// ModerationHandler exposes the post state machine to moderators. Single-post
// transitions fail fast; bulk transitions are best-effort and report how many
// posts were actually affected.
type ModerationHandler struct {
	moderationUseCase usecase.ModerationUseCase
	postUseCase       usecase.PostUseCase
	logger            *logger.Logger
}

func NewModerationHandler(
	moderationUseCase usecase.ModerationUseCase,
	postUseCase usecase.PostUseCase,
	log *logger.Logger,
) *ModerationHandler {
	return &ModerationHandler{
		moderationUseCase: moderationUseCase,
		postUseCase:       postUseCase,
		logger:            log,
	}
}

// Publish godoc
// @Summary      Publish a post
// @Description  Idempotent for already-published posts; publishing a banned post requires super_admin
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /admin/posts/{id}/publish [post]
func (h *ModerationHandler) Publish(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Publish)
}

// Unpublish godoc
// @Summary      Unpublish a post back to draft
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      409  {object}  map[string]string
// @Router       /admin/posts/{id}/unpublish [post]
func (h *ModerationHandler) Unpublish(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Unpublish)
}

// Archive godoc
// @Summary      Archive a published post
// @Description  Allowed for the post's author or a moderator
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      409  {object}  map[string]string
// @Router       /posts/{id}/archive [post]
// @Router       /admin/posts/{id}/archive [post]
func (h *ModerationHandler) Archive(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Archive)
}

// Ban godoc
// @Summary      Ban a post
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      403  {object}  map[string]string
// @Router       /admin/posts/{id}/ban [post]
func (h *ModerationHandler) Ban(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Ban)
}

// Unban godoc
// @Summary      Lift a ban, returning the post to draft
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      409  {object}  map[string]string
// @Router       /admin/posts/{id}/unban [post]
func (h *ModerationHandler) Unban(c *gin.Context) {
	h.transition(c, h.moderationUseCase.Unban)
}

func (h *ModerationHandler) transition(c *gin.Context, apply func(entity.CallContext, string) (*entity.Post, error)) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	post, err := apply(caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete godoc
// @Summary      Delete a post
// @Description  Allowed for the post's author or a moderator
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts/{id} [delete]
// @Router       /admin/posts/{id} [delete]
func (h *ModerationHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.moderationUseCase.Delete(caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

type BulkPostRequest struct {
	PostIDs []string `json:"post_ids" binding:"required,min=1,max=100"`
}

// BulkPublish godoc
// @Summary      Publish several posts
// @Description  Best-effort; skips posts that cannot transition and reports the affected count
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BulkPostRequest true "Post IDs"
// @Success      200  {object}  usecase.BulkResult
// @Router       /admin/posts/bulk/publish [post]
func (h *ModerationHandler) BulkPublish(c *gin.Context) {
	h.bulk(c, h.moderationUseCase.BulkPublish)
}

// BulkUnpublish godoc
// @Summary      Unpublish several posts
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BulkPostRequest true "Post IDs"
// @Success      200  {object}  usecase.BulkResult
// @Router       /admin/posts/bulk/unpublish [post]
func (h *ModerationHandler) BulkUnpublish(c *gin.Context) {
	h.bulk(c, h.moderationUseCase.BulkUnpublish)
}

// BulkArchive godoc
// @Summary      Archive several posts
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BulkPostRequest true "Post IDs"
// @Success      200  {object}  usecase.BulkResult
// @Router       /admin/posts/bulk/archive [post]
func (h *ModerationHandler) BulkArchive(c *gin.Context) {
	h.bulk(c, h.moderationUseCase.BulkArchive)
}

// BulkDelete godoc
// @Summary      Delete several posts
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body BulkPostRequest true "Post IDs"
// @Success      200  {object}  usecase.BulkResult
// @Router       /admin/posts/bulk/delete [post]
func (h *ModerationHandler) BulkDelete(c *gin.Context) {
	h.bulk(c, h.moderationUseCase.BulkDelete)
}

func (h *ModerationHandler) bulk(c *gin.Context, apply func(entity.CallContext, []string) (usecase.BulkResult, error)) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req BulkPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := apply(caller, req.PostIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Queue godoc
// @Summary      List posts for moderation
// @Description  Returns posts in any status, filterable by status, category, tag, search text and author
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status"
// @Param        category query string false "Filter by category"
// @Param        author query string false "Filter by author ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/posts [get]
func (h *ModerationHandler) Queue(c *gin.Context) {
	limit, offset := limitOffset(c)

	filter := postFilterFromQuery(c)
	if status := c.Query("status"); status != "" {
		filter = filter.WithStatus(entity.PostStatus(status))
	}

	posts, err := h.postUseCase.ListModeration(filter, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}
