/*
 * @Description: 内容数据集热更新后刷新依赖它的缓存。
 * @Author: 安知鱼
 * @Date: 2026-10-03 10:12:45
 * @LastEditTime: 2026-10-15 20:44:10
 * @LastEditors: 安知鱼
 */
package listener

import (
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/event"
	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
)

// FeedRefresher 派发 RSS 缓存预热任务
type FeedRefresher interface {
	DispatchFeedWarmup() bool
}

// ContentReloadListener 监听 ContentReloaded 事件，让 RSS 缓存跟上新的数据集。
type ContentReloadListener struct {
	refresher FeedRefresher
	log       *zap.Logger
}

// NewContentReloadListener 是 ContentReloadListener 的构造函数，同时完成订阅。
func NewContentReloadListener(eventBus *event.EventBus, refresher FeedRefresher) *ContentReloadListener {
	l := &ContentReloadListener{
		refresher: refresher,
		log:       logger.Named("content_reload_listener"),
	}
	eventBus.Subscribe(event.ContentReloaded, l.handleContentReloaded)
	return l
}

func (l *ContentReloadListener) handleContentReloaded(payload interface{}) {
	if !l.refresher.DispatchFeedWarmup() {
		l.log.Warn("⚠️ 派发 RSS 预热任务失败，缓存将在过期后刷新")
		return
	}
	l.log.Info("🔄 内容已更新，已派发 RSS 预热任务")
}
