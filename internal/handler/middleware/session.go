package middleware

import (
	"time"

	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/pkg/cookie"
	"fahasa-storefront/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxSessionIDKey = "session_id"

// SessionMiddleware makes sure every request carries a browser session id. A missing or
// malformed sid cookie is replaced by a fresh one; the guest cart and the auth record are
// both keyed by it.
func SessionMiddleware(cfg config.CookieConfig, maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := cookie.GetSessionID(c)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
		}
		cookie.SetSessionCookie(c, cfg, sid, maxAge)
		c.Set(ctxSessionIDKey, sid)
		c.Next()
	}
}

func GetSessionID(c *gin.Context) string {
	if v, ok := c.Get(ctxSessionIDKey); ok {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	return ""
}

// CurrentSession is the caller as seen by the use cases. UserID stays empty for guests.
func CurrentSession(c *gin.Context) shared.Session {
	userID, _ := GetUserID(c)
	return shared.Session{ID: GetSessionID(c), UserID: userID}
}
