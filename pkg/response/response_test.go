package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/blogcms/pkg/constant"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"文章不存在", constant.ErrNotFound, http.StatusNotFound},
		{"包装后的会话不存在", fmt.Errorf("load: %w", constant.ErrSessionNotFound), http.StatusNotFound},
		{"请求错误", constant.ErrBadRequest, http.StatusBadRequest},
		{"内容不可用", constant.ErrContentUnavailable, http.StatusServiceUnavailable},
		{"未知错误", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromError(tt.err))
		})
	}
}

func TestFailWithError_HidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FailWithError(c, errors.New("redis: connection refused"), "获取失败")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "获取失败", body.Message)
	assert.Nil(t, body.Data)
}
