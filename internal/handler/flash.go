package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie      = "flash"
	incomingFlashKey = "flashes.incoming"
	pendingFlashKey  = "flashes.pending"
)

// Flash categories used by the templates.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// Flashes moves flashes left by the previous response out of their cookie
// and into the request context.
func Flashes() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(flashCookie)
		if err == nil && raw != "" {
			c.SetCookie(flashCookie, "", -1, "/", "", false, true)
			if flashes, err := decodeFlashes(raw); err == nil {
				c.Set(incomingFlashKey, flashes)
			}
		}
		c.Next()
	}
}

func addFlash(c *gin.Context, category, message string) {
	pending, _ := c.Get(pendingFlashKey)
	list, _ := pending.([]Flash)
	c.Set(pendingFlashKey, append(list, Flash{Category: category, Message: message}))
}

// flashesFor returns the flashes to show on a page rendered now.
func flashesFor(c *gin.Context) []Flash {
	var out []Flash
	for _, key := range []string{incomingFlashKey, pendingFlashKey} {
		if v, ok := c.Get(key); ok {
			out = append(out, v.([]Flash)...)
		}
	}
	return out
}

// redirect persists pending flashes for the next request and redirects.
func (h *Handler) redirect(c *gin.Context, location string) {
	if v, ok := c.Get(pendingFlashKey); ok {
		if encoded, err := encodeFlashes(v.([]Flash)); err == nil {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(flashCookie, encoded, 60, "/", "", h.cfg.SecureCookies, true)
		}
	}
	c.Redirect(http.StatusFound, location)
}

func encodeFlashes(flashes []Flash) (string, error) {
	b, err := json.Marshal(flashes)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeFlashes(raw string) ([]Flash, error) {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	var flashes []Flash
	if err := json.Unmarshal(b, &flashes); err != nil {
		return nil, err
	}
	return flashes, nil
}
