package render

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

const flashCookie = "taskpilot_flash"

// SetFlash stores a one-shot message for the next page the browser loads.
func SetFlash(c *gin.Context, msg string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, url.QueryEscape(msg), 60, "/", "", false, true)
}

// TakeFlash returns the pending flash message, if any, and clears it.
func TakeFlash(c *gin.Context) string {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

// Redirect sets msg as the flash message and issues a 303 to location so the
// browser follows up with a GET.
func Redirect(c *gin.Context, location, msg string) {
	if msg != "" {
		SetFlash(c, msg)
	}
	c.Redirect(http.StatusSeeOther, location)
}
