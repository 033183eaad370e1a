package api

import (
	"net/http"

	reqdto "fahasa-storefront/internal/handler/dto/request"
	resdto "fahasa-storefront/internal/handler/dto/response"
	"fahasa-storefront/internal/handler/httperr"
	"fahasa-storefront/internal/handler/middleware"
	"fahasa-storefront/internal/usecase/commands"
	"fahasa-storefront/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Current cart of the session with selection, pending changes and a price quote
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 502 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	h.respond(c, http.StatusOK)
}

// @Summary Add item
// @Description Add a product to the cart. For signed-in users the add is sent to the backend immediately.
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddItemRequest true "Add item request"
// @Success 201 {object} resdto.LineItemMutationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	item, err := h.cmds.AddItem(c.Request.Context(), middleware.CurrentSession(c), req.ProductID, req.Quantity)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithItem(c, http.StatusCreated, resdto.FromLineItem(item))
}

// @Summary Set quantity
// @Description Change the quantity of a cart line. The change is applied locally and synced in the background.
// @Tags cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body reqdto.SetQuantityRequest true "Set quantity request"
// @Success 200 {object} resdto.LineItemMutationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /cart/items/{productId} [patch]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req reqdto.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	item, err := h.cmds.SetQuantity(c.Request.Context(), middleware.CurrentSession(c), c.Param("productId"), req.Quantity)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondWithItem(c, http.StatusOK, resdto.FromLineItem(item))
}

// @Summary Remove item
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cmds.RemoveItem(c.Request.Context(), middleware.CurrentSession(c), c.Param("productId")); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Select item
// @Description Toggle whether a line takes part in the quote and checkout
// @Tags cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body reqdto.SelectRequest true "Selection"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{productId}/selection [put]
func (h *CartHandler) SetSelected(c *gin.Context) {
	var req reqdto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SetSelected(c.Request.Context(), middleware.CurrentSession(c), c.Param("productId"), *req.Selected); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Select all
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.SelectRequest true "Selection"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/selection [put]
func (h *CartHandler) SelectAll(c *gin.Context) {
	var req reqdto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.SelectAll(c.Request.Context(), middleware.CurrentSession(c), *req.Selected); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Router /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cmds.Clear(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Sync cart
// @Description Send pending changes to the backend now instead of waiting for the debounce
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /cart/sync [post]
func (h *CartHandler) Flush(c *gin.Context) {
	if err := h.cmds.Flush(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

// @Summary Reload cart
// @Description Drop local state and reload the cart from the backend
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 502 {object} httperr.Response
// @Router /cart/refresh [post]
func (h *CartHandler) Refresh(c *gin.Context) {
	if err := h.cmds.Refresh(c.Request.Context(), middleware.CurrentSession(c)); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, http.StatusOK)
}

func (h *CartHandler) view(c *gin.Context) (resdto.CartResponse, bool) {
	view, err := h.q.View(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		httperr.Abort(c, err)
		return resdto.CartResponse{}, false
	}
	return resdto.FromCartView(view), true
}

func (h *CartHandler) respond(c *gin.Context, status int) {
	if resp, ok := h.view(c); ok {
		c.JSON(status, resp)
	}
}

func (h *CartHandler) respondWithItem(c *gin.Context, status int, item resdto.LineItemResponse) {
	resp, ok := h.view(c)
	if !ok {
		return
	}
	for _, li := range resp.Items {
		if li.ProductID == item.ProductID {
			item.Selected = li.Selected
		}
	}
	c.JSON(status, resdto.LineItemMutationResponse{Item: item, Cart: resp})
}
