//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"fahasa-storefront/internal/handler/api"
	resdto "fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/pkg/config"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/pkg/jwt"
	"fahasa-storefront/internal/usecase/commands"
	"fahasa-storefront/internal/usecase/queries"
	"fahasa-storefront/internal/usecase/shared"
	"fahasa-storefront/tests/common/builder"
	"fahasa-storefront/tests/common/httptest"
	"fahasa-storefront/tests/common/testutil"
	commandsmock "fahasa-storefront/tests/mock/commands"
	queriesmock "fahasa-storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testSessionID = "6f1c2d1e-4a7b-4d39-9a43-2b8f0f1a9c11"

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	cfg := config.NewTestConfig()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	jwtService := jwt.NewService(cfg.JWT.Secret, 15*time.Minute, 24*time.Hour)
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, cfg)

	s.router.Use(middleware.SessionMiddleware(cfg.Cookie, time.Hour))
	s.router.Use(stubAuth)
	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/refresh", s.handler.Refresh)
	s.router.POST("/auth/logout", s.handler.Logout)
	s.router.GET("/auth/me", s.handler.Me)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

// stubAuth treats any bearer token as user-1.
func stubAuth(c *gin.Context) {
	if c.GetHeader("Authorization") != "" {
		c.Set("user_id", "user-1")
		c.Set("user_role", "customer")
	}
	c.Next()
}

func sessionCookie() []*http.Cookie {
	return []*http.Cookie{{Name: "sid", Value: testSessionID}}
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	reqBody := builder.NewAuthBuilder().BuildDTO()
	account := builder.NewUserBuilder().MustBuild()
	result := &commands.LoginResult{
		Account:   account,
		TokenPair: &commands.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
	}

	s.Run("success: sets token cookies and returns the account", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), testSessionID, builder.NewAuthBuilder().BuildCommand()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url, reqBody, sessionCookie(), "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("access-token", response.AccessToken)
		s.Equal(account.ID(), response.User.ID)
		s.Equal(account.Email().Value(), response.User.Email)
		s.Equal("customer", response.User.Role)

		access := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(access)
		s.Equal("access-token", access.Value)
		refresh := httptest.ExtractCookie(rec, "refresh_token")
		s.Require().NotNil(refresh)
		s.Equal("refresh-token", refresh.Value)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "invalid email", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "missing field: email (required)", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password (required)", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
			{name: "empty password", mutate: testutil.Field("password", ""), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "invalid credentials",
				commandsError:  errs.ErrInvalidCredentials,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "malformed credentials",
				commandsError:  errs.Mark(errs.New("password too short"), commands.ErrAuthenticationFailed),
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid email or password",
			},
			{
				name:           "backend unavailable",
				commandsError:  errs.Mark(errs.New("dial tcp"), errs.ErrNetworkFailure),
				expectedStatus: http.StatusBadGateway,
				expectedMsg:    "backend is unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"
	pair := &commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	s.Run("success: token from the body", func() {
		s.mockCommands.EXPECT().Refresh(gomock.Any(), testSessionID, "old-refresh").Return(pair, nil).Times(1)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url,
			map[string]any{"refresh_token": "old-refresh"}, sessionCookie(), "")

		var response resdto.TokenResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("new-access", response.AccessToken)
		s.Equal("new-refresh", httptest.ExtractCookie(rec, "refresh_token").Value)
	})

	s.Run("success: token from the cookie", func() {
		s.mockCommands.EXPECT().Refresh(gomock.Any(), testSessionID, "cookie-refresh").Return(pair, nil).Times(1)

		cookies := append(sessionCookie(), &http.Cookie{Name: "refresh_token", Value: "cookie-refresh"})
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url, nil, cookies, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 without any refresh token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("error: reused token clears cookies", func() {
		s.mockCommands.EXPECT().Refresh(gomock.Any(), testSessionID, "stale").
			Return(nil, errs.Mark(commands.ErrRefreshTokenReused, errs.ErrTokenValidation)).Times(1)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url,
			map[string]any{"refresh_token": "stale"}, sessionCookie(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "revoked")

		access := httptest.ExtractCookie(rec, "access_token")
		s.Require().NotNil(access)
		s.Empty(access.Value)
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Logout(gomock.Any(), shared.Session{ID: testSessionID, UserID: "user-1"}).
			Return(nil).Times(1)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, "/auth/logout", nil, sessionCookie(), "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: flush failure surfaces", func() {
		s.mockCommands.EXPECT().Logout(gomock.Any(), gomock.Any()).
			Return(errs.Mark(errs.New("timeout"), errs.ErrNetworkFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "")
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"
	view := &queries.CurrentUserView{
		ID:       "user-1",
		Email:    "test@example.com",
		FullName: "Nguyễn Văn A",
		Role:     "customer",
		IssuedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	s.Run("success: returns current user info", func() {
		s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), testSessionID, "user-1").
			Return(view, nil).Times(1)

		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, url, nil, sessionCookie(), "bearer-token")

		var response resdto.UserResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(resdto.UserResponse{
			ID:       "user-1",
			Email:    "test@example.com",
			FullName: "Nguyễn Văn A",
			Role:     "customer",
			IssuedAt: view.IssuedAt.Unix(),
		}, response)
	})

	s.Run("error: returns 401 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "User not authenticated")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "user not found",
				queryError:     queries.ErrUserNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "User not found",
			},
			{
				name:           "state store down",
				queryError:     errs.Mark(errs.New("conn refused"), errs.ErrStateStoreFailed),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "Session storage is unavailable",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetCurrentUser(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
