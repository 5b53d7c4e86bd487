package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/micropost/internal/auth"
	"github.com/xxxsen/micropost/internal/middleware"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/response"
)

const contextBasePathKey = "base_path"

func getIdentity(c *gin.Context) auth.Identity {
	return middleware.IdentityFrom(c)
}

func getUserID(c *gin.Context) string {
	return getIdentity(c).UserID()
}

func currentUser(c *gin.Context) interface{} {
	if user, ok := getIdentity(c).User(); ok {
		return user
	}
	return nil
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, code := statusOf(err)
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", getUserID(c)),
		zap.Error(err),
	)
	if status == http.StatusInternalServerError {
		logger.Error("request failed")
		response.Error(c, status, code, "internal error")
		return
	}
	logger.Info("request rejected", zap.Int("status", status))
	response.Error(c, status, code, err.Error())
}

func statusOf(err error) (int, uint32) {
	switch {
	case errors.Is(err, appErr.ErrInvalid):
		return http.StatusBadRequest, response.CodeInvalid
	case errors.Is(err, appErr.ErrUnauthorized):
		return http.StatusUnauthorized, response.CodeUnauthorized
	case errors.Is(err, appErr.ErrForbidden):
		return http.StatusForbidden, response.CodeForbidden
	case errors.Is(err, appErr.ErrNotFound):
		return http.StatusNotFound, response.CodeNotFound
	case errors.Is(err, appErr.ErrConflict):
		return http.StatusConflict, response.CodeConflict
	default:
		return http.StatusInternalServerError, response.CodeInternal
	}
}

func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s is %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		response.Error(c, http.StatusBadRequest, response.CodeInvalid, strings.Join(fields, ", "))
		return
	}
	response.Error(c, http.StatusBadRequest, response.CodeInvalid, "invalid request")
}

func withBasePath(base string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextBasePathKey, base)
		c.Next()
	}
}

func routePath(c *gin.Context, elems ...string) string {
	return path.Join(append([]string{"/", c.GetString(contextBasePathKey)}, elems...)...)
}

func redirectTo(c *gin.Context, elems ...string) {
	c.Redirect(http.StatusFound, routePath(c, elems...))
}

// parsePage reads ?page=, falling back to the first page.
func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
