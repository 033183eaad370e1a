package api

import (
	"net/http"
	"time"

	reqdto "fahasa-storefront/internal/handler/dto/request"
	resdto "fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/internal/handler/httperr"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/pkg/cookie"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/commands"
	"fahasa-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TokenTTL interface {
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type AuthHandler struct {
	cmds      commands.AuthCommands
	users     queries.UserQueries
	cookieCfg config.CookieConfig
	ttl       TokenTTL
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, ttl TokenTTL, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:      cmds,
		users:     users,
		cookieCfg: cfg.Cookie,
		ttl:       ttl,
	}
}

// @Summary User login
// @Description Login with email and password. The guest cart of this session is merged into the account cart.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), middleware.GetSessionID(c), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	h.setTokens(c, result.TokenPair)
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.TokenPair.AccessToken,
		User:        resdto.FromAccount(result.Account),
	})
}

// @Summary Refresh tokens
// @Description Rotate the refresh token. Reusing a rotated token ends the session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RefreshRequest false "Refresh request"
// @Success 200 {object} resdto.TokenResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req reqdto.RefreshRequest
	// the body is optional
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		token = cookie.GetRefreshToken(c)
	}
	if token == "" {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrNotAuthenticated, "Refresh token required", nil)
		return
	}

	pair, err := h.cmds.Refresh(c.Request.Context(), middleware.GetSessionID(c), token)
	if err != nil {
		cookie.ClearTokenCookies(c, h.cookieCfg)
		httperr.Abort(c, err)
		return
	}

	h.setTokens(c, pair)
	c.JSON(http.StatusOK, resdto.TokenResponse{AccessToken: pair.AccessToken})
}

// @Summary User logout
// @Description Flush the cart, forget the session's tokens and start a fresh guest cart
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.cmds.Logout(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "User not authenticated", nil)
		return
	}

	view, err := h.users.GetCurrentUser(c.Request.Context(), middleware.GetSessionID(c), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCurrentUser(view))
}

func (h *AuthHandler) setTokens(c *gin.Context, pair *commands.TokenPair) {
	cookie.SetTokenCookies(c, h.cookieCfg, pair.AccessToken, pair.RefreshToken,
		h.ttl.AccessTokenDuration(), h.ttl.RefreshTokenDuration())
}
