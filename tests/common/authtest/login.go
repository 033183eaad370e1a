//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"fahasa-storefront/internal/handler/dto/request"

	"github.com/stretchr/testify/require"
)

// LoginUser logs the browser in and returns the issued access token.
func LoginUser(t *testing.T, b *Browser, email, password string) string {
	t.Helper()

	w := b.Do(http.MethodPost, "/api/auth/login", request.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := b.Cookie("access_token")
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	return accessCookie.Value
}

func LogoutUser(t *testing.T, b *Browser) {
	t.Helper()

	w := b.Do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}
