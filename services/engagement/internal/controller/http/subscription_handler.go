package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Subscribe godoc
// @Summary      Subscribe to a channel
// @Description  Subscribing twice is a no-op; subscribing to your own channel is rejected
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id path string true "Channel (profile) ID"
// @Success      200  {object}  map[string]string
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /engage/subscribe/{channel_id} [post]
func (h *EngagementHandler) Subscribe(c *gin.Context) {
	created, err := h.subscriptionUseCase.Subscribe(c.Request.Context(), c.GetString("user_id"), c.Param("channel_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already subscribed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed successfully"})
}

// Unsubscribe godoc
// @Summary      Unsubscribe from a channel
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        channel_id path string true "Channel (profile) ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /engage/unsubscribe/{channel_id} [delete]
func (h *EngagementHandler) Unsubscribe(c *gin.Context) {
	if err := h.subscriptionUseCase.Unsubscribe(c.Request.Context(), c.GetString("user_id"), c.Param("channel_id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// ListMySubscriptions godoc
// @Summary      List channels the caller follows
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Subscription
// @Router       /engage/subscriptions/me [get]
func (h *EngagementHandler) ListMySubscriptions(c *gin.Context) {
	subs, err := h.subscriptionUseCase.ListMySubscriptions(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetSubscribers godoc
// @Summary      List a channel's subscribers
// @Description  Pass ?only=count to get the count without the list
// @Tags         engagement
// @Produce      json
// @Param        channel_id path string true "Channel (profile) ID"
// @Param        only query string false "Set to 'count' for the count only"
// @Success      200  {object}  usecase.SubscriberList
// @Failure      404  {object}  map[string]string
// @Router       /engage/subscribers/{channel_id} [get]
func (h *EngagementHandler) GetSubscribers(c *gin.Context) {
	onlyCount := c.Query("only") == "count"
	list, err := h.subscriptionUseCase.GetSubscribers(c.Request.Context(), c.Param("channel_id"), onlyCount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
