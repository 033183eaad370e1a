//go:build unit || e2e

package authtest

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"fahasa-storefront/internal/pkg/cookie"
	"fahasa-storefront/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Browser replays the cookies the router hands out, the way a storefront tab would.
type Browser struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func NewBrowser(t *testing.T, router *gin.Engine) *Browser {
	return &Browser{t: t, router: router, cookies: make(map[string]*http.Cookie)}
}

func (b *Browser) Do(method, path string, body any) *nethttptest.ResponseRecorder {
	b.t.Helper()

	w := httptest.PerformRequestWithCookies(b.t, b.router, method, path, body, b.Cookies(), "")
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *Browser) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(b.cookies))
	for _, c := range b.cookies {
		out = append(out, c)
	}
	return out
}

func (b *Browser) Cookie(name string) *http.Cookie {
	return b.cookies[name]
}

// SessionID returns the session cookie, issuing one first if the browser has none yet.
func (b *Browser) SessionID() uuid.UUID {
	b.t.Helper()
	if b.Cookie(cookie.SessionCookieName) == nil {
		b.Do(http.MethodGet, "/health", nil)
	}
	c := b.Cookie(cookie.SessionCookieName)
	require.NotNil(b.t, c, "session cookie was not issued")
	sid, err := uuid.Parse(c.Value)
	require.NoError(b.t, err)
	return sid
}

// Forget drops a cookie, simulating a browser that lost it.
func (b *Browser) Forget(name string) {
	delete(b.cookies, name)
}
