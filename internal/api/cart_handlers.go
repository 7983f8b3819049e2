package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errx "github.com/aura-storefront/server/internal/core/error"
	"github.com/aura-storefront/server/internal/shop/checkout"
)

type addItemRequest struct {
	ProductID  int64             `json:"product_id"`
	Quantity   int               `json:"quantity"`
	Attributes map[string]string `json:"attributes"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handler) getCart(c *gin.Context) {
	view, err := h.svc.Cart.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) addCartItem(c *gin.Context) {
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	view, err := h.svc.Cart.Add(c.Request.Context(), sessionID(c), req.ProductID, req.Quantity, req.Attributes)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// updateCartItem sets the line quantity; zero or less drops the line.
func (h *handler) updateCartItem(c *gin.Context) {
	var req quantityRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.svc.Cart.SetQuantity(c.Request.Context(), sessionID(c), c.Param("key"), req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) removeCartItem(c *gin.Context) {
	view, err := h.svc.Cart.Remove(c.Request.Context(), sessionID(c), c.Param("key"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) removeCartProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortWithError(c, errx.BadRequest(err, "product id must be numeric"))
		return
	}

	view, err := h.svc.Cart.RemoveProduct(c.Request.Context(), sessionID(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) clearCart(c *gin.Context) {
	if err := h.svc.Cart.Clear(c.Request.Context(), sessionID(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) quote(c *gin.Context) {
	q, err := h.svc.Checkout.Quote(c.Request.Context(), sessionID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

// placeOrder records the order for the signed-in member, or as a guest.
func (h *handler) placeOrder(c *gin.Context) {
	var form checkout.Form
	if !bindJSON(c, &form) {
		return
	}

	var userID string
	if u, ok := currentUser(c); ok {
		userID = u.ID
	}

	receipt, err := h.svc.Checkout.PlaceOrder(c.Request.Context(), sessionID(c), userID, form)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
