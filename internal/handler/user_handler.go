package handler

import (
	"errors"
	"net/http"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// ShowProfile godoc
// @Summary      User profile
// @Description  Renders a profile. Private profiles redirect home with a notice unless the viewer owns or follows them.
// @Tags         users
// @Produce      html
// @Param        id   path      int  true  "User ID"
// @Success      200
// @Failure      302  "Private profile"
// @Failure      404
// @Router       /users/{id} [get]
func (h *Handler) ShowProfile(c *gin.Context) {
	ctx := c.Request.Context()

	targetID, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, models.NewNotFoundError("User", c.Param("id")))
		return
	}

	user, err := h.store.GetUser(ctx, targetID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var viewer *uint
	if viewerID, ok := auth.CurrentUserID(c); ok {
		viewer = &viewerID
	}

	visible, err := h.store.CanView(ctx, viewer, user)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if !visible {
		addFlash(c, FlashDanger, "This account is private.")
		h.redirect(c, "/")
		return
	}

	data, err := h.profileData(c, user, viewer)
	if err != nil {
		h.renderError(c, err)
		return
	}
	h.render(c, http.StatusOK, "users/profile.html", data)
}

func (h *Handler) profileData(c *gin.Context, user *models.User, viewer *uint) (gin.H, error) {
	ctx := c.Request.Context()

	messages, err := h.store.UserMessages(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := h.store.FollowerCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	following, err := h.store.FollowingCount(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	data := gin.H{
		"Title":     "@" + user.Username,
		"User":      user,
		"Messages":  messages,
		"Followers": followers,
		"Following": following,
		"IsOwner":   viewer != nil && *viewer == user.ID,
		"Liked":     map[uint]bool{},
	}
	if viewer == nil {
		return data, nil
	}

	ids := make([]uint, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	if data["Liked"], err = h.store.LikedMessageIDs(ctx, *viewer, ids); err != nil {
		return nil, err
	}

	if *viewer == user.ID {
		if data["PendingRequests"], err = h.store.PendingRequests(ctx, user.ID); err != nil {
			return nil, err
		}
		return data, nil
	}

	status, err := h.store.FollowStatus(ctx, *viewer, user.ID)
	if err != nil {
		return nil, err
	}
	if status != nil {
		data["FollowStatus"] = string(*status)
	}
	if data["Blocked"], err = h.store.IsBlocked(ctx, *viewer, user.ID); err != nil {
		return nil, err
	}
	return data, nil
}

// ChangePasswordForm godoc
// @Summary      Change password page
// @Description  Renders the change password form.
// @Tags         profile
// @Produce      html
// @Security     BearerAuth
// @Success      200
// @Failure      302  "Redirect to login"
// @Router       /profile/change_password [get]
func (h *Handler) ChangePasswordForm(c *gin.Context) {
	h.render(c, http.StatusOK, "users/change_password.html", gin.H{"Title": "Change password"})
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Replaces the password when the old one matches. Field errors and a wrong old password re-render the form.
// @Tags         profile
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Security     BearerAuth
// @Param        old_password          formData  string  true  "Current password"
// @Param        new_password          formData  string  true  "New password (min 6)"
// @Param        new_password_confirm  formData  string  true  "Repeat new password"
// @Success      302  "Redirect to profile"
// @Success      200  "Form re-rendered with errors"
// @Router       /profile/change_password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, _ := auth.CurrentUserID(c)

	var form PasswordChangeForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "users/change_password.html", gin.H{
			"Title": "Change password", "Errors": fieldErrors(err),
		})
		return
	}

	err := h.store.ChangePassword(c.Request.Context(), userID, form.OldPassword, form.NewPassword)
	switch {
	case err == nil:
		addFlash(c, FlashSuccess, "Password changed successfully!")
		h.redirect(c, profileURL(userID))
	case errors.Is(err, models.ErrInvalidCredentials):
		addFlash(c, FlashDanger, "Wrong password, please try again.")
		h.render(c, http.StatusOK, "users/change_password.html", gin.H{"Title": "Change password"})
	case errors.Is(err, models.ErrValidation):
		h.render(c, http.StatusOK, "users/change_password.html", gin.H{
			"Title":  "Change password",
			"Errors": map[string][]string{"NewPassword": {publicMessage(err)}},
		})
	default:
		h.renderError(c, err)
	}
}

// TogglePrivacy godoc
// @Summary      Toggle privacy
// @Description  Flips the caller's privacy flag and redirects to their profile.
// @Tags         profile
// @Security     BearerAuth
// @Success      302
// @Router       /profile/toggle_privacy [post]
func (h *Handler) TogglePrivacy(c *gin.Context) {
	userID, _ := auth.CurrentUserID(c)

	if _, err := h.store.TogglePrivacy(c.Request.Context(), userID); err != nil {
		h.renderError(c, err)
		return
	}
	h.redirect(c, profileURL(userID))
}
