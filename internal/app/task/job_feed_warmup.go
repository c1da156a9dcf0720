/*
 * @Description: RSS 缓存预热任务
 * @Author: 安知鱼
 * @Date: 2026-10-01 15:15:37
 * @LastEditTime: 2026-10-14 11:03:02
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/pkg/service/rss"
)

// FeedWarmupJob 清除 RSS 缓存并立即重新生成，订阅者读取时总能命中缓存
type FeedWarmupJob struct {
	rssSvc  rss.Service
	options func() *rss.RSSOptions
	logger  *zap.Logger
}

// NewFeedWarmupJob 创建 RSS 缓存预热任务。options 每次执行时读取，站点地址变更后立即生效。
func NewFeedWarmupJob(rssSvc rss.Service, options func() *rss.RSSOptions, logger *zap.Logger) *FeedWarmupJob {
	return &FeedWarmupJob{rssSvc: rssSvc, options: options, logger: logger}
}

// Run 执行预热
func (j *FeedWarmupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := j.rssSvc.InvalidateCache(ctx); err != nil {
		j.logger.Warn("清除 RSS 缓存失败", zap.Error(err))
	}
	feed, err := j.rssSvc.GenerateFeed(ctx, j.options())
	if err != nil {
		j.logger.Error("生成 RSS 失败", zap.Error(err))
		return
	}
	j.logger.Info("RSS 缓存已刷新", zap.Int("items", len(feed.Items)))
}

// Name 返回任务名称
func (j *FeedWarmupJob) Name() string {
	return "FeedWarmupJob"
}
