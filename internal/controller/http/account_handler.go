package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkwell/internal/entity"
	"inkwell/internal/usecase"
	"inkwell/pkg/logger"
	"inkwell/pkg/middleware"
)

// AccountHandler exposes the admin side of the account lifecycle plus the
// follow toggle.
type AccountHandler struct {
	accountUseCase    usecase.AccountUseCase
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewAccountHandler(
	accountUseCase usecase.AccountUseCase,
	engagementUseCase usecase.EngagementUseCase,
	log *logger.Logger,
) *AccountHandler {
	return &AccountHandler{
		accountUseCase:    accountUseCase,
		engagementUseCase: engagementUseCase,
		logger:            log,
	}
}

// ListPending godoc
// @Summary      List accounts awaiting approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /admin/accounts/pending [get]
func (h *AccountHandler) ListPending(c *gin.Context) {
	limit, offset := limitOffset(c)

	accounts, err := h.accountUseCase.ListPending(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts, "count": len(accounts)})
}

// Approve godoc
// @Summary      Approve an account
// @Description  Idempotent; re-approving reports already_in_state
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/accounts/{id}/approve [post]
func (h *AccountHandler) Approve(c *gin.Context) {
	h.lifecycle(c, h.accountUseCase.Approve)
}

// Reject godoc
// @Summary      Reject an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/accounts/{id}/reject [post]
func (h *AccountHandler) Reject(c *gin.Context) {
	h.lifecycle(c, h.accountUseCase.Reject)
}

// Suspend godoc
// @Summary      Suspend an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID"
// @Success      200  {object}  map[string]string
// @Router       /admin/accounts/{id}/suspend [post]
func (h *AccountHandler) Suspend(c *gin.Context) {
	h.lifecycle(c, h.accountUseCase.Suspend)
}

func (h *AccountHandler) lifecycle(c *gin.Context, apply func(entity.CallContext, string) (usecase.Outcome, error)) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	outcome, err := apply(caller, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_id": c.Param("id"), "outcome": string(outcome)})
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin super_admin"`
}

// SetRole godoc
// @Summary      Change an account's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID"
// @Param        request body SetRoleRequest true "New role"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/accounts/{id}/role [put]
func (h *AccountHandler) SetRole(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.accountUseCase.SetRole(caller, c.Param("id"), entity.Role(req.Role)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account_id": c.Param("id"), "role": req.Role})
}

// Delete godoc
// @Summary      Delete an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/accounts/{id} [delete]
func (h *AccountHandler) Delete(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.accountUseCase.Delete(caller, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// ToggleFollow godoc
// @Summary      Follow or unfollow an account
// @Description  Toggles membership and returns the new follower count
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Account ID to follow"
// @Success      200  {object}  entity.ToggleResult
// @Failure      400  {object}  map[string]string
// @Router       /accounts/{id}/follow [post]
func (h *AccountHandler) ToggleFollow(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.engagementUseCase.ToggleFollow(caller.AccountID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Following godoc
// @Summary      List accounts the caller follows
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/following [get]
func (h *AccountHandler) Following(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ids, err := h.engagementUseCase.Following(caller.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": ids, "count": len(ids)})
}

// Followers godoc
// @Summary      List the caller's followers
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /me/followers [get]
func (h *AccountHandler) Followers(c *gin.Context) {
	caller, ok := middleware.Caller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ids, err := h.engagementUseCase.Followers(caller.AccountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"followers": ids, "count": len(ids)})
}
