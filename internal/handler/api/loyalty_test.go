//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"fahasa-storefront/internal/domain/loyalty"
	"fahasa-storefront/internal/handler/api"
	resdto "fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/internal/pkg/errs"
	"fahasa-storefront/internal/usecase/queries"
	"fahasa-storefront/tests/common/httptest"
	queriesmock "fahasa-storefront/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoyaltyHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockLoyaltyQueries
}

func (s *LoyaltyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockLoyaltyQueries(s.mockCtrl)
	handler := api.NewLoyaltyHandler(s.mockQueries)

	s.router.Use(stubAuth)
	s.router.GET("/loyalty/me", handler.Me)
}

func (s *LoyaltyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLoyaltyHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyHandlerTestSuite))
}

func (s *LoyaltyHandlerTestSuite) TestMe() {
	silver := loyalty.Tier{Rank: "SILVER", PointsThreshold: 500, Multiplier: decimal.RequireFromString("1.02")}
	gold := loyalty.Tier{Rank: "GOLD", PointsThreshold: 2000, Multiplier: decimal.RequireFromString("1.05")}

	s.Run("success: current and next tier", func() {
		s.mockQueries.EXPECT().Me(gomock.Any(), "user-1").Return(&queries.LoyaltyView{
			Rank:         "SILVER",
			Points:       800,
			Multiplier:   silver.Multiplier,
			ActiveTier:   silver,
			NextTier:     &gold,
			PointsToNext: 1200,
			Tiers:        []loyalty.Tier{silver, gold},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/loyalty/me", nil, "bearer-token")

		var response resdto.LoyaltyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("SILVER", response.Rank)
		s.Equal(int64(800), response.Points)
		s.Equal("1.02", response.Multiplier)
		s.Require().NotNil(response.NextTier)
		s.Equal("GOLD", response.NextTier.Rank)
		s.Equal(int64(1200), response.PointsToNext)
		s.Equal([]resdto.TierResponse{
			{Rank: "SILVER", PointsThreshold: 500, Multiplier: "1.02"},
			{Rank: "GOLD", PointsThreshold: 2000, Multiplier: "1.05"},
		}, response.Tiers)
	})

	s.Run("error: 401 for guests", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/loyalty/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: backend failure", func() {
		s.mockQueries.EXPECT().Me(gomock.Any(), "user-1").
			Return(nil, errs.Mark(errs.New("timeout"), errs.ErrNetworkFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/loyalty/me", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "")
	})
}
