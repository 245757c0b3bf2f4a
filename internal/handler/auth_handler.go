package handler

import (
	"errors"
	"net/http"
	"strings"

	"warbler/backend/internal/auth"
	"warbler/backend/internal/models"
	"warbler/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// RegisterForm godoc
// @Summary      Sign-up page
// @Description  Renders the registration form.
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /register [get]
func (h *Handler) RegisterForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Sign up", "Register": true})
}

// RegisterUser godoc
// @Summary      Register
// @Description  Creates an account, sets the session cookie and redirects to the new profile.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "Username (max 50)"
// @Param        password  formData  string  true  "Password (min 6)"
// @Success      302  "Redirect to profile"
// @Success      200  "Form re-rendered with errors"
// @Router       /register [post]
func (h *Handler) RegisterUser(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Title": "Sign up", "Register": true, "Username": form.Username, "Errors": fieldErrors(err),
		})
		return
	}

	user, err := h.store.Register(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrValidation) || errors.Is(err, models.ErrConflict) {
			addFlash(c, FlashDanger, publicMessage(err))
			h.render(c, http.StatusOK, "login.html", gin.H{
				"Title": "Sign up", "Register": true, "Username": form.Username,
			})
			return
		}
		h.renderError(c, err)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}
	addFlash(c, FlashSuccess, "Welcome to Warbler!")
	h.redirect(c, profileURL(user.ID))
}

// LoginForm godoc
// @Summary      Login page
// @Description  Renders the login form.
// @Tags         auth
// @Produce      html
// @Param        next  query  string  false  "Local path to return to after login"
// @Success      200
// @Router       /login [get]
func (h *Handler) LoginForm(c *gin.Context) {
	h.render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Next": c.Query("next")})
}

// LoginUser godoc
// @Summary      Log in
// @Description  Checks credentials, sets the session cookie and redirects to next or the profile.
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true   "Username"
// @Param        password  formData  string  true   "Password"
// @Param        next      formData  string  false  "Local path to return to"
// @Success      302  "Redirect after login"
// @Success      200  "Form re-rendered with errors"
// @Router       /login [post]
func (h *Handler) LoginUser(c *gin.Context) {
	var form CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusOK, "login.html", gin.H{
			"Title": "Log in", "Username": form.Username, "Next": form.Next, "Errors": fieldErrors(err),
		})
		return
	}

	user, err := h.store.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			addFlash(c, FlashDanger, "Invalid username or password.")
			h.render(c, http.StatusOK, "login.html", gin.H{
				"Title": "Log in", "Username": form.Username, "Next": form.Next,
			})
			return
		}
		h.renderError(c, err)
		return
	}

	if !h.startSession(c, user.ID) {
		return
	}
	addFlash(c, FlashSuccess, "Hello, "+user.Username+"!")
	h.redirect(c, safeNext(form.Next, profileURL(user.ID)))
}

// Logout godoc
// @Summary      Log out
// @Description  Clears the session cookie and redirects home.
// @Tags         auth
// @Success      302
// @Router       /logout [post]
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSession(c)
	addFlash(c, FlashInfo, "You have been logged out.")
	h.redirect(c, "/")
}

func (h *Handler) startSession(c *gin.Context, userID uint) bool {
	token, err := jwt.GenerateToken(userID, h.cfg.JWTSecret)
	if err != nil {
		h.renderError(c, models.NewInternalError(err))
		return false
	}
	auth.SetSession(c, token, h.cfg.SecureCookies)
	return true
}

// safeNext only follows local paths.
func safeNext(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}
