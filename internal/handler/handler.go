package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/hub"
	"warbler/backend/internal/models"
	"warbler/backend/internal/store"
	"warbler/backend/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const currentUserKey = "currentUser"

// Config carries the handler dependencies that are not data stores.
type Config struct {
	JWTSecret     string
	SecureCookies bool

	// Registerer receives the handler counters. Nil keeps them unregistered.
	Registerer prometheus.Registerer

	// SendLimiter guards POST /messages/send. Nil disables limiting.
	SendLimiter gin.HandlerFunc
}

// Handler serves the HTML pages and the direct-message endpoints.
type Handler struct {
	store  *store.Store
	hub    *hub.Hub
	cfg    Config
	dmSent prometheus.Counter
}

// New creates a Handler.
func New(st *store.Store, h *hub.Hub, cfg Config) *Handler {
	dmSent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "warbler_direct_messages_sent_total",
		Help: "Direct messages stored.",
	})
	if cfg.Registerer != nil {
		cfg.Registerer.MustRegister(dmSent)
	}
	return &Handler{store: st, hub: h, cfg: cfg, dmSent: dmSent}
}

// Routes loads the templates and mounts every route on r.
func (h *Handler) Routes(r *gin.Engine) error {
	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(auth.AuthMiddleware(h.cfg.JWTSecret), Flashes())
	r.NoRoute(func(c *gin.Context) {
		h.renderError(c, models.NewNotFoundError("Page", c.Request.URL.Path))
	})

	r.GET("/", h.Home)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.RegisterUser)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.LoginUser)
	r.POST("/logout", h.Logout)
	r.GET("/users/:id", h.ShowProfile)

	authed := r.Group("/")
	authed.Use(auth.RequireLogin(), h.requireUser)
	{
		authed.GET("/profile/change_password", h.ChangePasswordForm)
		authed.POST("/profile/change_password", h.ChangePassword)
		authed.POST("/profile/toggle_privacy", h.TogglePrivacy)

		// Relation routes
		authed.POST("/users/:id/follow", h.Follow)
		authed.POST("/users/:id/unfollow", h.Unfollow)
		authed.POST("/users/:id/accept", h.AcceptFollow)
		authed.POST("/users/:id/decline", h.DeclineFollow)
		authed.POST("/users/:id/block", h.Block)
		authed.POST("/users/:id/unblock", h.Unblock)

		// Message routes
		authed.POST("/messages", h.PostMessage)
		authed.POST("/messages/:id/like", h.ToggleLike)
		send := []gin.HandlerFunc{h.SendDirectMessage}
		if h.cfg.SendLimiter != nil {
			send = append([]gin.HandlerFunc{h.cfg.SendLimiter}, send...)
		}
		authed.POST("/messages/send", send...)
		authed.GET("/messages/stream", h.StreamDirectMessages) // Must be before /:user_id
		authed.GET("/messages/:user_id", h.ShowThread)
	}

	admin := r.Group("/admin")
	admin.Use(auth.RequireLogin(), h.requireUser, auth.AdminMiddleware(h.store))
	{
		admin.GET("/dashboard", h.AdminDashboard)
	}

	return nil
}

// region --- Helpers ---

// currentUser loads the authenticated user once per request.
func (h *Handler) currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		return v.(*models.User)
	}

	var user *models.User
	if id, ok := auth.CurrentUserID(c); ok {
		u, err := h.store.GetUser(c.Request.Context(), id)
		if err == nil {
			user = u
		}
	}
	c.Set(currentUserKey, user)
	return user
}

// requireUser rejects sessions whose user no longer exists and clears them.
func (h *Handler) requireUser(c *gin.Context) {
	if h.currentUser(c) != nil {
		c.Next()
		return
	}

	auth.ClearSession(c)
	if auth.WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

// render executes an HTML template with the data every page expects.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = h.currentUser(c)
	data["Flashes"] = flashesFor(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string][]string{}
	}
	c.HTML(status, name, data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the text shown to users for err.
func publicMessage(err error) string {
	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code != models.CodeInternal {
		return appErr.Message
	}
	return "Something went wrong."
}

// renderError renders the error page with the status matching err.
func (h *Handler) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed", "path", c.Request.URL.Path, "error", err)
		c.Error(err)
	}
	h.render(c, status, "error.html", gin.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": publicMessage(err),
	})
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func profileURL(id uint) string {
	return "/users/" + strconv.FormatUint(uint64(id), 10)
}

// endregion
