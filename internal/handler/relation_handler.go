package handler

import (
	"context"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// relationAction runs op between the caller and the :id user, flashes the
// outcome and redirects to the target profile, or to the caller's own
// profile when backToSelf is set.
func (h *Handler) relationAction(c *gin.Context, success string, backToSelf bool, op func(ctx context.Context, me, target uint) error) {
	me, _ := auth.CurrentUserID(c)
	target, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, models.NewNotFoundError("User", c.Param("id")))
		return
	}

	if err := op(c.Request.Context(), me, target); err != nil {
		if statusFor(err) >= 500 {
			h.renderError(c, err)
			return
		}
		addFlash(c, FlashDanger, publicMessage(err))
	} else {
		addFlash(c, FlashSuccess, success)
	}

	if backToSelf {
		h.redirect(c, profileURL(me))
		return
	}
	h.redirect(c, profileURL(target))
}

// Follow godoc
// @Summary      Follow a user
// @Description  Follows a public user, or sends a follow request to a private one.
// @Tags         relations
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      302
// @Router       /users/{id}/follow [post]
func (h *Handler) Follow(c *gin.Context) {
	me, _ := auth.CurrentUserID(c)
	target, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, models.NewNotFoundError("User", c.Param("id")))
		return
	}

	status, err := h.store.Follow(c.Request.Context(), me, target)
	switch {
	case err != nil && statusFor(err) >= 500:
		h.renderError(c, err)
		return
	case err != nil:
		addFlash(c, FlashDanger, publicMessage(err))
	case status == models.FollowPending:
		addFlash(c, FlashInfo, "Follow request sent.")
	default:
		addFlash(c, FlashSuccess, "You are now following this user.")
	}
	h.redirect(c, profileURL(target))
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Description  Removes a follow or cancels a pending follow request.
// @Tags         relations
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      302
// @Router       /users/{id}/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
	h.relationAction(c, "Unfollowed.", false, h.store.Unfollow)
}

// AcceptFollow godoc
// @Summary      Accept a follow request
// @Description  Accepts the user's pending follow request to the caller.
// @Tags         relations
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      302
// @Router       /users/{id}/accept [post]
func (h *Handler) AcceptFollow(c *gin.Context) {
	h.relationAction(c, "Follow request accepted.", true, h.store.AcceptFollow)
}

// DeclineFollow godoc
// @Summary      Decline a follow request
// @Description  Declines the user's pending follow request to the caller.
// @Tags         relations
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      302
// @Router       /users/{id}/decline [post]
func (h *Handler) DeclineFollow(c *gin.Context) {
	h.relationAction(c, "Follow request declined.", true, h.store.DeclineFollow)
}

// Block godoc
// @Summary      Block a user
// @Description  Blocks the user and removes follows in both directions.
// @Tags         relations
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      302
// @Router       /users/{id}/block [post]
func (h *Handler) Block(c *gin.Context) {
	h.relationAction(c, "User blocked.", false, h.store.Block)
}

// Unblock godoc
// @Summary      Unblock a user
// @Description  Removes a block placed by the caller.
// @Tags         relations
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      302
// @Router       /users/{id}/unblock [post]
func (h *Handler) Unblock(c *gin.Context) {
	h.relationAction(c, "User unblocked.", false, h.store.Unblock)
}
