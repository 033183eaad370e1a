package api

import (
	"net/http"

	resdto "fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/internal/handler/httperr"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LoyaltyHandler struct {
	q queries.LoyaltyQueries
}

func NewLoyaltyHandler(q queries.LoyaltyQueries) *LoyaltyHandler {
	return &LoyaltyHandler{q: q}
}

// @Summary My loyalty standing
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.LoyaltyResponse
// @Failure 401 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /loyalty/me [get]
func (h *LoyaltyHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	view, err := h.q.Me(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLoyaltyView(view))
}
