package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/micropost/internal/model"
	"github.com/xxxsen/micropost/internal/pkg/response"
	"github.com/xxxsen/micropost/internal/service"
)

type CookieSettings struct {
	Name string
	// Insecure drops the Secure attribute for plain http development setups.
	Insecure bool
}

type AuthHandler struct {
	auth   *service.AuthService
	cookie CookieSettings
}

func NewAuthHandler(auth *service.AuthService, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

type authRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	response.Success(c, gin.H{})
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	response.Success(c, gin.H{})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := h.auth.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	h.signIn(c, user)
}

func (h *AuthHandler) Register(c *gin.Context) {
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
	h.signIn(c, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	redirectTo(c, "auth", "login")
}

func (h *AuthHandler) signIn(c *gin.Context, user *model.User) {
	token, err := h.auth.IssueToken(user)
	if err != nil {
		handleError(c, err)
		return
	}
	h.setCookie(c, token, int(h.auth.TokenTTL().Seconds()))
	redirectTo(c, "users", "profile", user.ID)
}

func (h *AuthHandler) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", !h.cookie.Insecure, true)
}
