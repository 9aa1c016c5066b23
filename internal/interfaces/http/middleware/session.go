package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionConfig holds session cookie settings
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// DefaultSessionConfig returns session cookie defaults
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName: "timber_session",
		TTL:        72 * time.Hour,
		Secure:     false,
	}
}

// Session identifies the shopper session for the request. An existing valid
// cookie is reused; otherwise a new session ID is issued. The session ID is
// stored in the gin context under "session_id" for handlers and loggers,
// and the cookie is refreshed so the session expires only after the TTL of
// idle time.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if cookie, err := c.Cookie(cfg.CookieName); err == nil {
			// Only accept well-formed IDs; anything else gets a new session
			if _, err := uuid.Parse(cookie); err == nil {
				sessionID = cookie
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sessionID, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
		c.Set("session_id", sessionID)

		c.Next()
	}
}
