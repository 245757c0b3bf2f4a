package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Home godoc
// @Summary      Home page
// @Description  Renders the public feed of messages from public accounts.
// @Tags         pages
// @Produce      html
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(10)
// @Success      200
// @Router       / [get]
func (h *Handler) Home(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	feed, err := h.store.Feed(c.Request.Context(), page, limit)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "index.html", gin.H{
		"Feed":     feed,
		"PrevPage": feed.Meta.CurrentPage - 1,
		"NextPage": feed.Meta.CurrentPage + 1,
	})
}
