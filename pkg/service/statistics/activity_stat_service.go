/*
 * @Description: 评论活动统计服务
 * @Author: 安知鱼
 * @Date: 2026-09-29 15:30:00
 * @LastEditTime: 2026-10-16 22:08:19
 * @LastEditors: 安知鱼
 */
package statistics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/anzhiyu-c/blogcms/internal/pkg/event"
	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/service/utility"
)

// TrackedTopics 按天计数的事件
var TrackedTopics = []event.Topic{event.SessionOpened, event.CommentSubmitted, event.ReplySubmitted}

const (
	// CacheExpireDaily 日计数器保留时长，覆盖跨天查询
	CacheExpireDaily = 48 * time.Hour
	// CacheExpireActive 活跃会话数的保留时长，定时任务停止后自然过期
	CacheExpireActive = 5 * time.Minute

	// CacheKeyActiveSessions 最近一次统计的活跃会话数
	CacheKeyActiveSessions = constant.StatsKeyPrefix + "sessions:active"

	dayLayout = "20060102"
)

// DailyActivity 某一天的评论活动计数
type DailyActivity struct {
	Date              string `json:"date"`
	SessionsOpened    int64  `json:"sessionsOpened"`
	CommentsSubmitted int64  `json:"commentsSubmitted"`
	RepliesSubmitted  int64  `json:"repliesSubmitted"`
	ActiveSessions    int64  `json:"activeSessions"`
}

// ActivityStatService 评论活动统计服务接口
type ActivityStatService interface {
	// Record 为事件所在日期的计数器加一
	Record(ctx context.Context, topic event.Topic, at time.Time) error
	// RecordActiveSessions 保存当前活跃会话数
	RecordActiveSessions(ctx context.Context, count int) error
	// Today 获取今天的计数
	Today(ctx context.Context) (*DailyActivity, error)
}

type activityStatService struct {
	cacheService utility.CacheService
	now          func() time.Time
}

// NewActivityStatService 创建评论活动统计服务
func NewActivityStatService(cacheService utility.CacheService) ActivityStatService {
	return &activityStatService{cacheService: cacheService, now: time.Now}
}

// DailyKey 返回事件在某天的计数器键，日期按 UTC 计算
func DailyKey(topic event.Topic, day time.Time) string {
	return constant.StatsKeyPrefix + string(topic) + ":" + day.UTC().Format(dayLayout)
}

func (s *activityStatService) Record(ctx context.Context, topic event.Topic, at time.Time) error {
	if at.IsZero() {
		at = s.now()
	}
	key := DailyKey(topic, at)
	if _, err := s.cacheService.Increment(ctx, key); err != nil {
		return fmt.Errorf("累加统计计数失败: %w", err)
	}
	return s.cacheService.Expire(ctx, key, CacheExpireDaily)
}

func (s *activityStatService) RecordActiveSessions(ctx context.Context, count int) error {
	return s.cacheService.Set(ctx, CacheKeyActiveSessions, strconv.Itoa(count), CacheExpireActive)
}

func (s *activityStatService) Today(ctx context.Context) (*DailyActivity, error) {
	today := s.now()
	counts := make(map[event.Topic]int64, len(TrackedTopics))
	for _, topic := range TrackedTopics {
		n, err := s.readInt(ctx, DailyKey(topic, today))
		if err != nil {
			return nil, err
		}
		counts[topic] = n
	}
	active, err := s.readInt(ctx, CacheKeyActiveSessions)
	if err != nil {
		return nil, err
	}

	return &DailyActivity{
		Date:              today.UTC().Format("2006-01-02"),
		SessionsOpened:    counts[event.SessionOpened],
		CommentsSubmitted: counts[event.CommentSubmitted],
		RepliesSubmitted:  counts[event.ReplySubmitted],
		ActiveSessions:    active,
	}, nil
}

// readInt 读取计数器，不存在或无法解析时按 0 处理
func (s *activityStatService) readInt(ctx context.Context, key string) (int64, error) {
	raw, err := s.cacheService.Get(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("读取统计计数失败: %w", err)
	}
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
