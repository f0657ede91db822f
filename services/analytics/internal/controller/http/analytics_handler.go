package http

import (
	"net/http"
	"time"

	"streamlane/pkg/apperr"
	"streamlane/pkg/logger"
	"streamlane/services/analytics/internal/entity"
	"streamlane/services/analytics/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsUseCase usecase.AnalyticsUseCase
	logger           *logger.Logger
}

func NewAnalyticsHandler(analyticsUseCase usecase.AnalyticsUseCase, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsUseCase: analyticsUseCase,
		logger:           logger,
	}
}

func (h *AnalyticsHandler) respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("analytics: %v", err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}

// callerID returns the authenticated user's id, or nil for anonymous calls.
func callerID(c *gin.Context) *string {
	if userID := c.GetString("user_id"); userID != "" {
		return &userID
	}
	return nil
}

type TrackViewRequest struct {
	VideoID  string `json:"video_id" binding:"required"`
	Duration *int   `json:"duration" binding:"required,min=0"`
}

type TrackEngagementRequest struct {
	VideoID   string                 `json:"video_id" binding:"required"`
	EventType string                 `json:"event_type" binding:"required,oneof=pause resume seek hover"`
	Timestamp *time.Time             `json:"timestamp"`
	Details   map[string]interface{} `json:"details"`
}

// TrackView godoc
// @Summary      Record a view of a video
// @Description  Every call counts as a new view; anonymous calls are accepted
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        request body TrackViewRequest true "video_id and watched duration in seconds"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /analytics/track/view [post]
func (h *AnalyticsHandler) TrackView(c *gin.Context) {
	var req TrackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.analyticsUseCase.TrackView(c.Request.Context(), callerID(c), usecase.ViewTrack{
		VideoID:         req.VideoID,
		DurationSeconds: *req.Duration,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "View recorded"})
}

// TrackEngagement godoc
// @Summary      Record a player interaction
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        request body TrackEngagementRequest true "Engagement event"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /analytics/track/engagement [post]
func (h *AnalyticsHandler) TrackEngagement(c *gin.Context) {
	var req TrackEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	track := usecase.EngagementTrack{
		VideoID:   req.VideoID,
		EventType: entity.EngagementType(req.EventType),
		Details:   req.Details,
	}
	if req.Timestamp != nil {
		track.Timestamp = *req.Timestamp
	}

	if err := h.analyticsUseCase.TrackEngagement(c.Request.Context(), callerID(c), track); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Engagement recorded"})
}

// GetVideoAnalytics godoc
// @Summary      Get aggregated analytics for a video
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Param        video_id path string true "Video ID"
// @Success      200  {object}  entity.VideoSummary
// @Failure      404  {object}  map[string]string
// @Router       /analytics/get/analytics/{video_id} [get]
func (h *AnalyticsHandler) GetVideoAnalytics(c *gin.Context) {
	summary, err := h.analyticsUseCase.GetVideoAnalytics(c.Request.Context(), c.Param("video_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetUserAnalytics godoc
// @Summary      Get analytics for every video the caller owns
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.VideoSummary
// @Router       /analytics/get/analytics/user [get]
func (h *AnalyticsHandler) GetUserAnalytics(c *gin.Context) {
	summaries, err := h.analyticsUseCase.GetUserAnalytics(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetAdminOverview godoc
// @Summary      Platform-wide analytics overview
// @Description  Admin role required
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.AdminOverview
// @Failure      403  {object}  map[string]string
// @Router       /analytics/get/analytics/admin/overview [get]
func (h *AnalyticsHandler) GetAdminOverview(c *gin.Context) {
	overview, err := h.analyticsUseCase.GetAdminOverview(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
