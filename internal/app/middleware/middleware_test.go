package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newCorsEngine(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(Cors(origins))
	r.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/rss.xml", func(c *gin.Context) { c.String(http.StatusOK, "feed") })
	return r
}

func TestCors(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		method     string
		path       string
		origin     string
		preflight  bool
		wantStatus int
		wantAllow  string
	}{
		{"预检请求", nil, http.MethodOptions, "/api/ping", "https://a.test", true, http.StatusNoContent, "*"},
		{"普通请求允许任意来源", nil, http.MethodGet, "/api/ping", "https://a.test", false, http.StatusOK, "*"},
		{"限定来源命中", []string{"https://a.test"}, http.MethodGet, "/api/ping", "https://a.test", false, http.StatusOK, "https://a.test"},
		{"限定来源未命中", []string{"https://a.test"}, http.MethodGet, "/api/ping", "https://b.test", false, http.StatusOK, ""},
		{"非 API 路由不处理", nil, http.MethodGet, "/rss.xml", "https://a.test", false, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}
			w := httptest.NewRecorder()
			newCorsEngine(tt.origins).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "/missing", entries[1].ContextMap()["path"])
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

