package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/response"
	"github.com/xxxsen/micropost/internal/render"
	"github.com/xxxsen/micropost/internal/service"
)

type MicroPostHandler struct {
	posts    *service.MicroPostService
	markdown *render.Markdown
	perPage  int
}

func NewMicroPostHandler(posts *service.MicroPostService, markdown *render.Markdown, perPage int) *MicroPostHandler {
	return &MicroPostHandler{posts: posts, markdown: markdown, perPage: perPage}
}

type postRequest struct {
	Title   *string `json:"title" form:"title"`
	Content *string `json:"content" form:"content"`
}

func (r postRequest) input() service.MicroPostInput {
	return service.MicroPostInput{Title: r.Title, Content: r.Content}
}

func (h *MicroPostHandler) Index(c *gin.Context) {
	page, err := h.posts.ListPage(c.Request.Context(), parsePage(c), h.perPage)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, page)
}

func (h *MicroPostHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.posts.Get(ctx, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	html, err := h.markdown.Render(post.Content)
	if err != nil {
		handleError(c, err)
		return
	}
	canEdit, err := h.posts.HasAccess(ctx, getUserID(c), post.ID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{
		"post":         post,
		"html":         html,
		"can_edit":     canEdit,
		"current_user": currentUser(c),
	})
}

func (h *MicroPostHandler) NewForm(c *gin.Context) {
	response.Success(c, gin.H{})
}

func (h *MicroPostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	post, err := h.posts.Create(c.Request.Context(), getUserID(c), req.input())
	if err != nil {
		handleError(c, err)
		return
	}
	redirectTo(c, "posts", "post", post.ID)
}

func (h *MicroPostHandler) EditForm(c *gin.Context) {
	post, ok := h.loadOwned(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{"post": post})
}

func (h *MicroPostHandler) Update(c *gin.Context) {
	post, ok := h.loadOwned(c)
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	if _, err := h.posts.Update(c.Request.Context(), getUserID(c), post.ID, req.input()); err != nil {
		handleError(c, err)
		return
	}
	redirectTo(c, "posts", "post", post.ID)
}

func (h *MicroPostHandler) Delete(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	if err := h.posts.Delete(c.Request.Context(), getUserID(c), post.ID); err != nil {
		handleError(c, err)
		return
	}
	redirectTo(c, "posts")
}

// loadOwned answers 404 for a missing post and 401 when the caller is not
// its author.
func (h *MicroPostHandler) loadOwned(c *gin.Context) (*model.MicroPost, bool) {
	ctx := c.Request.Context()
	post, err := h.posts.Get(ctx, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	ok, err := h.posts.HasAccess(ctx, getUserID(c), post.ID)
	if err != nil {
		handleError(c, err)
		return nil, false
	}
	if !ok {
		handleError(c, appErr.ErrPostNotOwned)
		return nil, false
	}
	return post, true
}
