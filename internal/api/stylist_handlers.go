package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aura-storefront/server/internal/agent/stylist"
)

func (h *handler) chat(c *gin.Context) {
	var req stylist.Request
	if !bindJSON(c, &req) {
		return
	}

	reply, err := h.svc.Stylist.Ask(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	outcome := "answered"
	switch reply.Message {
	case stylist.OfflineMessage:
		outcome = "offline"
	case stylist.TroubleMessage:
		outcome = "error"
	case stylist.ReflectionMessage:
		outcome = "empty"
	}
	h.metrics.stylistReplies.WithLabelValues(outcome).Inc()
	h.metrics.stylistCost.Add(reply.CostUSD)

	c.JSON(http.StatusOK, reply)
}

func (h *handler) welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.svc.Stylist.Welcome(c.Query("product"))})
}
