package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestSharerUser(t *testing.T) {
	r := gin.New()
	r.GET("/me", SharerUser(), func(c *gin.Context) {
		c.String(http.StatusOK, strconv.FormatInt(UserID(c), 10))
	})

	w := perform(r, http.MethodGet, "/me", map[string]string{HeaderUserID: "42"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", w.Body.String())

	w = perform(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))

	w = perform(r, http.MethodGet, "/me", map[string]string{HeaderUserID: "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServiceToken(t *testing.T) {
	signer := jwt.New("secret", time.Minute)
	r := gin.New()
	r.Use(ServiceToken(signer))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := signer.GenerateToken(7)
	require.NoError(t, err)
	anonymous, err := signer.GenerateToken(0)
	require.NoError(t, err)

	cases := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"valid", map[string]string{"Authorization": "Bearer " + token, HeaderUserID: "7"}, http.StatusOK},
		{"valid without user", map[string]string{"Authorization": "Bearer " + anonymous}, http.StatusOK},
		{"missing", map[string]string{HeaderUserID: "7"}, http.StatusUnauthorized},
		{"garbage", map[string]string{"Authorization": "Bearer nope", HeaderUserID: "7"}, http.StatusUnauthorized},
		{"user mismatch", map[string]string{"Authorization": "Bearer " + token, HeaderUserID: "8"}, http.StatusForbidden},
		{"header dropped", map[string]string{"Authorization": "Bearer " + token}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(r, http.MethodGet, "/ok", tc.headers)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestServiceToken_DisabledWithoutVerifier(t *testing.T) {
	r := gin.New()
	r.Use(ServiceToken(nil))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/ok", nil).Code)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, RequestIDFrom(c)) })

	w := perform(r, http.MethodGet, "/id", map[string]string{HeaderRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))

	w = perform(r, http.MethodGet, "/id", nil)
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestRequestLoggerAndErrorLogger(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), RequestLogger(base), ErrorLogger())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(context.DeadlineExceeded)
		c.Status(http.StatusInternalServerError)
	})

	w := perform(r, http.MethodGet, "/boom", map[string]string{HeaderRequestID: "req-1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
	assert.Contains(t, buf.String(), `"message":"panic"`)
	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"status":500`)

	buf.Reset()
	perform(r, http.MethodGet, "/fail", nil)
	assert.Contains(t, buf.String(), "context deadline exceeded")
	assert.Contains(t, buf.String(), `"message":"request_error"`)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://shareit.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, http.MethodGet, "/x", map[string]string{"Origin": "https://shareit.example"})
	assert.Equal(t, "https://shareit.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, http.MethodGet, "/x", map[string]string{"Origin": "https://evil.example"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = perform(r, http.MethodOptions, "/x", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusNoContent, w.Code)
}

type denyAfter struct{ left int }

func (d *denyAfter) Allow(context.Context, string) bool {
	d.left--
	return d.left >= 0
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(&denyAfter{left: 1}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/x", nil).Code)
	w := perform(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", errorCode(t, w))

	open := gin.New()
	open.Use(RateLimit(nil))
	open.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	assert.Equal(t, http.StatusOK, perform(open, http.MethodGet, "/x", nil).Code)
}

func TestMetrics_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(Metrics("server"))
	r.GET("/x/:id", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	assert.Equal(t, http.StatusAccepted, perform(r, http.MethodGet, "/x/1", nil).Code)
}
