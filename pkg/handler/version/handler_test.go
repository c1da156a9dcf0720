package version

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/blogcms/internal/pkg/version"
)

func TestVersionRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler()
	r := gin.New()
	r.GET("/api/version", h.GetVersion)
	r.GET("/api/version/string", h.GetVersionString)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data version.BuildInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, version.GetVersion(), env.Data.Version)
	assert.NotEmpty(t, env.Data.GoVersion)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/version/string", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), version.GetVersion())
}
