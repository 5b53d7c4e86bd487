package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/response"
	"github.com/xxxsen/micropost/internal/pkg/userutil"
	"github.com/xxxsen/micropost/internal/service"
)

type UserHandler struct {
	users   *service.UserService
	auth    *service.AuthService
	follows *service.FollowService
	posts   *service.MicroPostService
}

func NewUserHandler(users *service.UserService, auth *service.AuthService, follows *service.FollowService, posts *service.MicroPostService) *UserHandler {
	return &UserHandler{users: users, auth: auth, follows: follows, posts: posts}
}

type updateUserRequest struct {
	Name     *string `json:"name" form:"name"`
	LastName *string `json:"last_name" form:"last_name"`
	About    *string `json:"about" form:"about"`
}

func (r updateUserRequest) input() service.UserUpdateInput {
	return service.UserUpdateInput{Name: r.Name, LastName: r.LastName, About: r.About}
}

func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")
	user, err := h.users.GetPublic(ctx, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	following, err := h.follows.IsFollowing(ctx, getUserID(c), userID)
	if err != nil {
		handleError(c, err)
		return
	}
	posts, err := h.posts.ListByAuthor(ctx, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"user":         user,
		"full_name":    userutil.FullName(*user),
		"posts":        posts,
		"is_following": following,
		"current_user": currentUser(c),
	})
}

func (h *UserHandler) EditProfileForm(c *gin.Context) {
	if !isSelf(c) {
		handleError(c, appErr.ErrUnauthorized)
		return
	}
	user, err := h.users.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	if !isSelf(c) {
		handleError(c, appErr.ErrUnauthorized)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.users.Update(c.Request.Context(), c.Param("id"), req.input()); err != nil {
		handleError(c, err)
		return
	}
	redirectTo(c, "users", "profile", c.Param("id"))
}

// List returns users, optionally narrowed by ?prefix= and ordered or grouped
// by ?filter=.
func (h *UserHandler) List(c *gin.Context) {
	filter := strings.TrimSpace(c.Query("filter"))
	prefix := strings.TrimSpace(c.Query("prefix"))
	result, err := h.users.ListFiltered(c.Request.Context(), filter, prefix)
	if err != nil {
		handleError(c, err)
		return
	}
	if filter == userutil.FilterWithPrefix {
		response.Success(c, result.Groups)
		return
	}
	response.Success(c, result.Users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetPublic(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.auth.Register(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	if !isSelf(c) {
		handleError(c, appErr.ErrUnauthorized)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.users.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if !isSelf(c) {
		handleError(c, appErr.ErrUnauthorized)
		return
	}
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.NoContent(c)
}

func isSelf(c *gin.Context) bool {
	userID := getUserID(c)
	return userID != "" && userID == c.Param("id")
}
