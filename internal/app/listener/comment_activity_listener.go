/*
 * @Description: 监听评论会话事件，累加每日活动统计。
 * @Author: 安知鱼
 * @Date: 2026-10-01 17:30:00
 * @LastEditTime: 2026-10-13 14:01:58
 * @LastEditors: 安知鱼
 */
package listener

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/event"
	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/service/statistics"
)

// CommentActivityListener 把会话开启、评论、回复事件计入每日统计。
type CommentActivityListener struct {
	statService statistics.ActivityStatService
	log         *zap.Logger
}

// NewCommentActivityListener 是 CommentActivityListener 的构造函数，同时完成订阅。
func NewCommentActivityListener(eventBus *event.EventBus, statService statistics.ActivityStatService) *CommentActivityListener {
	l := &CommentActivityListener{
		statService: statService,
		log:         logger.Named("comment_activity_listener"),
	}
	for _, topic := range statistics.TrackedTopics {
		eventBus.Subscribe(topic, l.handlerFor(topic))
	}
	return l
}

func (l *CommentActivityListener) handlerFor(topic event.Topic) event.Handler {
	return func(payload interface{}) {
		activity, ok := payload.(model.CommentActivity)
		if !ok {
			l.log.Error("收到的事件负载类型不正确", zap.String("topic", string(topic)))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := l.statService.Record(ctx, topic, activity.At); err != nil {
			l.log.Warn("记录评论活动失败",
				zap.String("topic", string(topic)),
				zap.String("session_id", activity.SessionID),
				zap.Error(err),
			)
		}
	}
}
