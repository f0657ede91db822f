package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeRequest struct {
	IsLike *bool `json:"is_like" binding:"required"`
}

// RateVideo godoc
// @Summary      Like or dislike a video
// @Description  A user holds one rating per video; repeating the action updates it
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        video_id path string true "Video ID"
// @Param        request body LikeRequest true "is_like: true for like, false for dislike"
// @Success      200  {object}  entity.Like
// @Success      201  {object}  entity.Like
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /engage/like/video/{video_id} [post]
func (h *EngagementHandler) RateVideo(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_like is required"})
		return
	}

	like, created, err := h.likeUseCase.RateVideo(c.Request.Context(), c.GetString("user_id"), c.Param("video_id"), *req.IsLike)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, like)
}

// GetLikeCount godoc
// @Summary      Get like and dislike counts for a video
// @Tags         engagement
// @Produce      json
// @Param        video_id path string true "Video ID"
// @Success      200  {object}  entity.LikeCount
// @Failure      404  {object}  map[string]string
// @Router       /engage/likes/count/{video_id} [get]
func (h *EngagementHandler) GetLikeCount(c *gin.Context) {
	count, err := h.likeUseCase.GetLikeCount(c.Request.Context(), c.Param("video_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, count)
}

// ListUserLikes godoc
// @Summary      List the caller's ratings
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Like
// @Router       /engage/likes/user [get]
func (h *EngagementHandler) ListUserLikes(c *gin.Context) {
	likes, err := h.likeUseCase.ListUserLikes(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}
