package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"
	"github.com/xxxsen/common/webapi/proxyutil"

	"github.com/xxxsen/micropost/internal/auth"
	"github.com/xxxsen/micropost/internal/handler"
	"github.com/xxxsen/micropost/internal/middleware"
	"github.com/xxxsen/micropost/internal/render"
	"github.com/xxxsen/micropost/internal/service"
	"github.com/xxxsen/micropost/internal/testutil"
)

const cookieName = "authToken"

type testApp struct {
	t      *testing.T
	router http.Handler
	store  *testutil.MemStore
}

func setupRouter(t *testing.T) *testApp {
	return setupRouterWithLimit(t, 0)
}

func setupRouterWithLimit(t *testing.T, window time.Duration) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewMemStore()
	secret := []byte("handler-secret")
	authService := service.NewAuthService(store.Users(), secret, time.Hour)
	userService := service.NewUserService(store.Users())
	followService := service.NewFollowService(store.Users(), store.Follows())
	postService := service.NewMicroPostService(store.Posts())

	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService, handler.CookieSettings{Name: cookieName}),
		Users:         handler.NewUserHandler(userService, authService, followService, postService),
		Follows:       handler.NewFollowHandler(followService),
		Posts:         handler.NewMicroPostHandler(postService, render.NewMarkdown(), 16),
		Authenticator: auth.NewAuthenticator(store.Users(), secret),
		CookieName:    cookieName,
		RateWindow:    window,
		RateMaxKeys:   100,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
			middleware.Metrics(),
		),
	)
	require.NoError(t, err)
	return &testApp{t: t, router: engine, store: store}
}

func (a *testApp) do(method, target string, body interface{}, cookie string) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its id and session token.
func (a *testApp) register(email string) (string, string) {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": email, "password": "pw123"}, "")
	require.Equal(a.t, http.StatusFound, rec.Code, rec.Body.String())
	location := rec.Header().Get("Location")
	require.True(a.t, strings.HasPrefix(location, "/api/v1/users/profile/"))
	return strings.TrimPrefix(location, "/api/v1/users/profile/"), authCookie(a.t, rec).Value
}

func (a *testApp) createPost(token, title string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/api/v1/posts/new", map[string]string{"title": title, "content": "**hi**"}, token)
	require.Equal(a.t, http.StatusFound, rec.Code, rec.Body.String())
	return strings.TrimPrefix(rec.Header().Get("Location"), "/api/v1/posts/post/")
}

func authCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("cookie %s not set", cookieName)
	return nil
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (uint32, string) {
	t.Helper()
	var body proxyutil.CommonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Nil(t, body.Data)
	return body.Code, body.Message
}
