package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, log *logger.Logger) *CommentHandler {
	return &CommentHandler{commentUseCase: commentUseCase, logger: log}
}

type CreateCommentRequest struct {
	Body     string  `json:"body" binding:"required,min=1,max=2000"`
	ParentID *string `json:"parent_id"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,min=1,max=2000"`
}

// Create godoc
// @Summary      Comment on a published post
// @Description  Replies to replies are attached to the top-level parent
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body CreateCommentRequest true "Comment body"
// @Success      201  {object}  entity.Comment
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.Create(caller.AccountID, c.Param("id"), req.Body, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// Update godoc
// @Summary      Edit an own comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Param        request body UpdateCommentRequest true "New body"
// @Success      200  {object}  entity.Comment
// @Failure      403  {object}  map[string]string
// @Router       /comments/{id} [put]
func (h *CommentHandler) Update(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.Update(caller, c.Param("id"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// Delete godoc
// @Summary      Delete a comment
// @Description  Owners delete their own comments; moderators delete any
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.commentUseCase.Delete(caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ListByPost godoc
// @Summary      List a post's comments
// @Description  Top-level comments with replies nested one level deep
// @Tags         comments
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Router       /comments/post/{id} [get]
func (h *CommentHandler) ListByPost(c *gin.Context) {
	comments, err := h.commentUseCase.ListByPost(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "count": len(comments)})
}
