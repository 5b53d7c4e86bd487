package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi/proxyutil"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) proxyutil.CommonResponse {
	t.Helper()
	var body proxyutil.CommonResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorKeepsStatusAndCode(t *testing.T) {
	c, rec := newContext()
	Error(c, http.StatusNotFound, CodeNotFound, "post not found")

	require.True(t, c.IsAborted())
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	require.Equal(t, CodeNotFound, body.Code)
	require.Equal(t, "post not found", body.Message)
	require.Nil(t, body.Data)
	require.Error(t, proxyutil.GetReplyErrInfo(c))
}

func TestInternalMatchesPanicEnvelope(t *testing.T) {
	c, rec := newContext()
	proxyutil.FailJson(c, http.StatusInternalServerError, json.Unmarshal([]byte("{"), &struct{}{}))
	require.Equal(t, CodeInternal, decode(t, rec).Code)
}

func TestSuccessAndCreated(t *testing.T) {
	c, rec := newContext()
	Success(c, map[string]string{"id": "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, CodeOK, body.Code)
	require.Equal(t, map[string]interface{}{"id": "1"}, body.Data)

	c, rec = newContext()
	Created(c, map[string]string{"id": "2"})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, map[string]interface{}{"id": "2"}, decode(t, rec).Data)
}
