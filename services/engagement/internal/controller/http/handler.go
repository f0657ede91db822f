package http

import (
	"net/http"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	likeUseCase         usecase.LikeUseCase
	subscriptionUseCase usecase.SubscriptionUseCase
	commentUseCase      usecase.CommentUseCase
	logger              *logger.Logger
}

func NewEngagementHandler(
	likeUseCase usecase.LikeUseCase,
	subscriptionUseCase usecase.SubscriptionUseCase,
	commentUseCase usecase.CommentUseCase,
	logger *logger.Logger,
) *EngagementHandler {
	return &EngagementHandler{
		likeUseCase:         likeUseCase,
		subscriptionUseCase: subscriptionUseCase,
		commentUseCase:      commentUseCase,
		logger:              logger,
	}
}

func (h *EngagementHandler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("engagement: %v", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
