package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/blogcms/internal/pkg/event"
	"github.com/anzhiyu-c/blogcms/pkg/service/statistics"
	"github.com/anzhiyu-c/blogcms/pkg/service/utility"
)

type failingStats struct {
	statistics.ActivityStatService
}

func (failingStats) Today(context.Context) (*statistics.DailyActivity, error) {
	return nil, errors.New("redis down")
}

func newTestRouter(svc statistics.ActivityStatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/public/statistics", NewStatisticsHandler(svc).GetTodayActivity)
	return r
}

func TestGetTodayActivity(t *testing.T) {
	cache := utility.NewMemoryCacheService()
	defer utility.StopCacheService(cache)
	svc := statistics.NewActivityStatService(cache)

	ctx := context.Background()
	now := time.Now()
	require.NoError(t, svc.Record(ctx, event.SessionOpened, now))
	require.NoError(t, svc.Record(ctx, event.CommentSubmitted, now))
	require.NoError(t, svc.Record(ctx, event.CommentSubmitted, now))
	require.NoError(t, svc.RecordActiveSessions(ctx, 4))

	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/statistics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data statistics.DailyActivity `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, now.UTC().Format("2006-01-02"), env.Data.Date)
	assert.Equal(t, int64(1), env.Data.SessionsOpened)
	assert.Equal(t, int64(2), env.Data.CommentsSubmitted)
	assert.Equal(t, int64(0), env.Data.RepliesSubmitted)
	assert.Equal(t, int64(4), env.Data.ActiveSessions)
}

func TestGetTodayActivity_Error(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(failingStats{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/public/statistics", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}
