package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

// Business codes carried in the envelope next to the HTTP status.
// CodeInternal equals the code the webapi panic recovery answers with.
const (
	CodeOK           uint32 = 0
	CodeInvalid      uint32 = 40000
	CodeUnauthorized uint32 = 40100
	CodeForbidden    uint32 = 40300
	CodeNotFound     uint32 = 40400
	CodeConflict     uint32 = 40900
	CodeRateLimited  uint32 = 42900
	CodeInternal     uint32 = 100000
)

type codeErr struct {
	code uint32
	msg  string
}

func (e codeErr) Error() string {
	return e.msg
}

func (e codeErr) Code() uint32 {
	return e.code
}

func AsCodeErr(code uint32, msg string) error {
	return codeErr{code: code, msg: msg}
}

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &proxyutil.CommonResponse{Code: CodeOK, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error aborts the chain with status and the shared envelope.
func Error(c *gin.Context, status int, code uint32, message string) {
	proxyutil.FailJson(c, status, AsCodeErr(code, message))
}
