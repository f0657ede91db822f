package http

import (
	"net/http"

	"streamlane/services/engagement/internal/entity"
	"streamlane/services/engagement/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReplyPayload struct {
	UserID string `json:"user_id"`
	Text   string `json:"text" binding:"required"`
}

type CreateCommentRequest struct {
	VideoID     string         `json:"video_id" binding:"required"`
	CommentText string         `json:"comment_text" binding:"required"`
	Replies     []ReplyPayload `json:"replies"`
}

type UpdateCommentRequest struct {
	CommentText *string        `json:"comment_text"`
	Replies     []ReplyPayload `json:"replies"`
}

func toReplies(payloads []ReplyPayload) []entity.Reply {
	if payloads == nil {
		return nil
	}
	replies := make([]entity.Reply, 0, len(payloads))
	for _, p := range payloads {
		replies = append(replies, entity.Reply{UserID: p.UserID, Text: p.Text})
	}
	return replies
}

// CreateComment godoc
// @Summary      Comment on a video
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateCommentRequest true "Comment payload"
// @Success      201  {object}  entity.Comment
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /engage/comments [post]
func (h *EngagementHandler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.CreateComment(c.Request.Context(), c.GetString("user_id"), usecase.CommentCreate{
		VideoID:     req.VideoID,
		CommentText: req.CommentText,
		Replies:     toReplies(req.Replies),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments godoc
// @Summary      List comments, optionally for one video
// @Tags         engagement
// @Produce      json
// @Param        video query string false "Video ID filter"
// @Success      200  {array}  entity.Comment
// @Router       /engage/comments [get]
func (h *EngagementHandler) ListComments(c *gin.Context) {
	comments, err := h.commentUseCase.ListComments(c.Request.Context(), c.Query("video"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// GetComment godoc
// @Summary      Get a single comment
// @Tags         engagement
// @Produce      json
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  entity.Comment
// @Failure      404  {object}  map[string]string
// @Router       /engage/comments/{comment_id} [get]
func (h *EngagementHandler) GetComment(c *gin.Context) {
	comment, err := h.commentUseCase.GetComment(c.Request.Context(), c.Param("comment_id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// UpdateComment godoc
// @Summary      Update a comment (author only)
// @Tags         engagement
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        comment_id path string true "Comment ID"
// @Param        request body UpdateCommentRequest true "Fields to update"
// @Success      200  {object}  entity.Comment
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /engage/comments/{comment_id} [put]
func (h *EngagementHandler) UpdateComment(c *gin.Context) {
	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), c.GetString("user_id"), c.Param("comment_id"), usecase.CommentUpdate{
		CommentText: req.CommentText,
		Replies:     toReplies(req.Replies),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment (author only)
// @Tags         engagement
// @Produce      json
// @Security     BearerAuth
// @Param        comment_id path string true "Comment ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /engage/comments/{comment_id} [delete]
func (h *EngagementHandler) DeleteComment(c *gin.Context) {
	if err := h.commentUseCase.DeleteComment(c.Request.Context(), c.GetString("user_id"), c.Param("comment_id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
