package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminDashboard godoc
// @Summary      Admin dashboard
// @Description  Renders table counts and the newest users.
// @Tags         admin
// @Produce      html
// @Security     BearerAuth
// @Success      200
// @Failure      302  "Redirect to login"
// @Failure      403  "Admin access required"
// @Router       /admin/dashboard [get]
func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.store.Stats(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	recent, err := h.store.RecentUsers(ctx, 10)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":       "Admin",
		"Stats":       stats,
		"RecentUsers": recent,
	})
}
