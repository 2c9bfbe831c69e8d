package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/usecase"
	"inkwell/pkg/logger"
)

type NewsletterHandler struct {
	newsletterUseCase usecase.NewsletterUseCase
	logger            *logger.Logger
}

func NewNewsletterHandler(newsletterUseCase usecase.NewsletterUseCase, log *logger.Logger) *NewsletterHandler {
	return &NewsletterHandler{newsletterUseCase: newsletterUseCase, logger: log}
}

type NewsletterRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body NewsletterRequest true "Email address"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /newsletter/subscribe [post]
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.newsletterUseCase.Subscribe(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "subscribed", "outcome": string(outcome)})
}

// Unsubscribe godoc
// @Summary      Unsubscribe from the newsletter
// @Description  Succeeds whether or not the address was subscribed
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        request body NewsletterRequest true "Email address"
// @Success      200  {object}  map[string]string
// @Router       /newsletter/unsubscribe [post]
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.newsletterUseCase.Unsubscribe(req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// ListSubscribers godoc
// @Summary      List newsletter subscribers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/newsletter/subscribers [get]
func (h *NewsletterHandler) ListSubscribers(c *gin.Context) {
	limit, offset := limitOffset(c)

	subs, err := h.newsletterUseCase.ListSubscribers(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribers": subs, "count": len(subs)})
}
