package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aura-storefront/server/internal/shop/model"
	"github.com/aura-storefront/server/internal/shop/order"
)

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// orderView adds the delivery step index to an order.
type orderView struct {
	*model.Order
	TimelineStep int `json:"timeline_step"`
}

func newOrderView(o *model.Order) orderView {
	return orderView{Order: o, TimelineStep: order.Timeline(o.Status)}
}

func (h *handler) login(c *gin.Context) {
	var req credentials
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.svc.Account.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *handler) signup(c *gin.Context) {
	var req credentials
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.svc.Account.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *handler) logout(c *gin.Context) {
	if err := h.svc.Account.Logout(c.Request.Context(), bearerToken(c)); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) account(c *gin.Context) {
	u, _ := currentUser(c)
	c.JSON(http.StatusOK, u)
}

func (h *handler) listOrders(c *gin.Context) {
	u, _ := currentUser(c)
	orders, err := h.svc.Orders.List(c.Request.Context(), u.ID, c.Query("search"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": views, "steps": order.Steps()})
}

func (h *handler) getOrder(c *gin.Context) {
	u, _ := currentUser(c)
	o, err := h.svc.Orders.Get(c.Request.Context(), u.ID, c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": newOrderView(o), "steps": order.Steps()})
}
