package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/micropost/internal/pkg/response"
	"github.com/xxxsen/micropost/internal/service"
)

type FollowHandler struct {
	follows *service.FollowService
}

func NewFollowHandler(follows *service.FollowService) *FollowHandler {
	return &FollowHandler{follows: follows}
}

func (h *FollowHandler) Toggle(c *gin.Context) {
	followedID := c.Param("id")
	if _, err := h.follows.Toggle(c.Request.Context(), getUserID(c), followedID); err != nil {
		handleError(c, err)
		return
	}
	redirectTo(c, "users", "profile", followedID)
}

func (h *FollowHandler) Followers(c *gin.Context) {
	users, err := h.follows.Followers(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}

func (h *FollowHandler) Following(c *gin.Context) {
	users, err := h.follows.Following(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}
