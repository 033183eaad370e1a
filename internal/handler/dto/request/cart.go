package request

// Quantities are validated by the cart itself so that a bad quantity surfaces as
// INVALID_QUANTITY rather than a binding error.

type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type SelectRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}
