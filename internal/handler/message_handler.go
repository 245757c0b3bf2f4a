package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/hub"
	"warbler/backend/internal/models"

	"github.com/gin-gonic/gin"
)

// region --- DTOs ---

// SendMessageResponse acknowledges a stored direct message.
type SendMessageResponse struct {
	Success string `json:"success" example:"Message sent!"`
	Message string `json:"message" example:"hi"`
}

// DirectMessageEvent is pushed to the receiver's open streams.
type DirectMessageEvent struct {
	ID        uint      `json:"id"`
	SenderID  uint      `json:"sender_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// endregion

// PostMessage godoc
// @Summary      Post a message
// @Description  Publishes a public message for the caller and redirects to their profile.
// @Tags         messages
// @Accept       x-www-form-urlencoded
// @Security     BearerAuth
// @Param        content  formData  string  true  "Message text"
// @Success      302
// @Router       /messages [post]
func (h *Handler) PostMessage(c *gin.Context) {
	userID, _ := auth.CurrentUserID(c)

	if _, err := h.store.PostMessage(c.Request.Context(), userID, c.PostForm("content")); err != nil {
		if !errors.Is(err, models.ErrValidation) {
			h.renderError(c, err)
			return
		}
		addFlash(c, FlashDanger, publicMessage(err))
	}
	h.redirect(c, profileURL(userID))
}

// ToggleLike godoc
// @Summary      Like or unlike a message
// @Description  Likes the message, or removes the caller's like. Messages the caller may not see cannot be liked.
// @Tags         messages
// @Security     BearerAuth
// @Param        id  path  int  true  "Message ID"
// @Success      302
// @Failure      404
// @Router       /messages/{id}/like [post]
func (h *Handler) ToggleLike(c *gin.Context) {
	ctx := c.Request.Context()
	userID, _ := auth.CurrentUserID(c)

	messageID, ok := parseIDParam(c, "id")
	if !ok {
		h.renderError(c, models.NewNotFoundError("Message", c.Param("id")))
		return
	}

	msg, err := h.store.GetMessage(ctx, messageID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	liked, err := h.store.HasLiked(ctx, userID, messageID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if liked {
		err = h.store.Unlike(ctx, userID, messageID)
	} else {
		visible, verr := h.store.CanView(ctx, &userID, &msg.Sender)
		if verr != nil {
			h.renderError(c, verr)
			return
		}
		if !visible {
			addFlash(c, FlashDanger, "This account is private.")
			h.redirect(c, "/")
			return
		}
		err = h.store.Like(ctx, userID, messageID)
	}
	if err != nil && !errors.Is(err, models.ErrConflict) && !errors.Is(err, models.ErrNotFound) {
		h.renderError(c, err)
		return
	}
	h.redirect(c, profileURL(msg.SenderID))
}

// SendDirectMessage godoc
// @Summary      Send a direct message
// @Description  Stores a private message from the caller to receiver_id.
// @Tags         messages
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        receiver_id  formData  int     true  "Receiver user ID"
// @Param        content      formData  string  true  "Message text"
// @Success      200  {object}  SendMessageResponse
// @Failure      400  {object}  models.ErrorResponse "Invalid input"
// @Failure      401  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse "Sender account no longer exists"
// @Failure      404  {object}  models.ErrorResponse "Receiver not found"
// @Failure      429  {object}  models.ErrorResponse "Rate limit exceeded"
// @Router       /messages/send [post]
func (h *Handler) SendDirectMessage(c *gin.Context) {
	senderID, _ := auth.CurrentUserID(c)

	receiverIDStr := c.PostForm("receiver_id")
	content := c.PostForm("content")
	if receiverIDStr == "" || content == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input."})
		return
	}

	receiverID, err := strconv.ParseUint(receiverIDStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input."})
		return
	}

	dm, err := h.store.SendDirectMessage(c.Request.Context(), senderID, uint(receiverID), content)
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid input."})
		return
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: publicMessage(err)})
		return
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Receiver not found."})
		return
	case err != nil:
		c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to send message."})
		return
	}

	h.dmSent.Inc()
	h.hub.Publish(dm.ReceiverID, hub.Event{
		Type: hub.EventDirectMessage,
		Payload: DirectMessageEvent{
			ID:        dm.ID,
			SenderID:  dm.SenderID,
			Content:   dm.Content,
			Timestamp: dm.Timestamp,
		},
	})

	c.JSON(http.StatusOK, SendMessageResponse{Success: "Message sent!", Message: dm.Content})
}

// ShowThread godoc
// @Summary      Direct message thread
// @Description  Renders every direct message between the caller and user_id, oldest first.
// @Tags         messages
// @Produce      html
// @Security     BearerAuth
// @Param        user_id  path  int  true  "Other user ID"
// @Success      200
// @Failure      404
// @Router       /messages/{user_id} [get]
func (h *Handler) ShowThread(c *gin.Context) {
	ctx := c.Request.Context()
	me, _ := auth.CurrentUserID(c)

	otherID, ok := parseIDParam(c, "user_id")
	if !ok {
		h.renderError(c, models.NewNotFoundError("User", c.Param("user_id")))
		return
	}

	other, err := h.store.GetUser(ctx, otherID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	messages, err := h.store.Thread(ctx, me, otherID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, "messages/view.html", gin.H{
		"Title":      "Messages with @" + other.Username,
		"Other":      other,
		"Messages":   messages,
		"ReceiverID": otherID,
	})
}

// StreamDirectMessages godoc
// @Summary      Direct message stream
// @Description  Pushes the caller's incoming direct messages as server-sent events until the client disconnects.
// @Tags         messages
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {object}  DirectMessageEvent
// @Router       /messages/stream [get]
func (h *Handler) StreamDirectMessages(c *gin.Context) {
	userID, _ := auth.CurrentUserID(c)

	client := h.hub.Subscribe(userID, 16)
	defer h.hub.Unsubscribe(userID, client)

	c.Stream(func(w io.Writer) bool {
		select {
		case msg, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent(hub.EventDirectMessage, string(msg))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
