/*
 * @Description: 活跃评论会话统计任务
 * @Author: 安知鱼
 * @Date: 2026-10-02 09:41:17
 * @LastEditTime: 2026-10-14 11:20:46
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/pkg/service/statistics"
)

// SessionCounter 统计当前未过期的评论会话
type SessionCounter interface {
	ActiveSessions(ctx context.Context) (int, error)
}

// ActiveSessionJob 定期统计活跃评论会话数并写入统计服务
type ActiveSessionJob struct {
	sessions    SessionCounter
	statService statistics.ActivityStatService
	logger      *zap.Logger
}

// NewActiveSessionJob 创建活跃会话统计任务
func NewActiveSessionJob(sessions SessionCounter, statService statistics.ActivityStatService, logger *zap.Logger) *ActiveSessionJob {
	return &ActiveSessionJob{sessions: sessions, statService: statService, logger: logger}
}

// Run 执行统计
func (j *ActiveSessionJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := j.sessions.ActiveSessions(ctx)
	if err != nil {
		j.logger.Error("统计活跃评论会话失败", zap.Error(err))
		return
	}
	if err := j.statService.RecordActiveSessions(ctx, count); err != nil {
		j.logger.Error("保存活跃评论会话数失败", zap.Error(err))
		return
	}
	j.logger.Debug("活跃评论会话统计完成", zap.Int("count", count))
}

// Name 返回任务名称
func (j *ActiveSessionJob) Name() string {
	return "ActiveSessionJob"
}
