package api

import (
	"net/http"

	reqdto "fahasa-storefront/internal/handler/dto/request"
	resdto "fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/internal/handler/httperr"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
}

func NewCheckoutHandler(cmds commands.CheckoutCommands) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds}
}

// @Summary Checkout quote
// @Description Price the selected lines with the loyalty tier and an optional voucher
// @Tags checkout
// @Produce json
// @Param voucher_id query string false "Voucher ID"
// @Success 200 {object} resdto.CheckoutQuoteResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /checkout/quote [get]
func (h *CheckoutHandler) Quote(c *gin.Context) {
	result, err := h.cmds.Quote(c.Request.Context(), middleware.CurrentSession(c), c.Query("voucher_id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteResult(result))
}

// @Summary Place order
// @Description Flush the cart, create the order for the selected lines and start the payment
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PlaceOrderRequest true "Place order request"
// @Success 201 {object} resdto.PlaceOrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout/orders [post]
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var req reqdto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	placement, err := h.cmds.PlaceOrder(c.Request.Context(), middleware.CurrentSession(c), req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromPlacement(placement))
}

// @Summary Confirm delivery
// @Description Mark a cash-on-delivery order as delivered and credit its loyalty points
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.DeliveryResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/confirm-delivery [post]
func (h *CheckoutHandler) ConfirmDelivery(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	result, err := h.cmds.ConfirmDelivery(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDelivery(result))
}
