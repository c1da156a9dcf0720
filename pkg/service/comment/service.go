/*
 * @Description: 评论会话服务：把单篇文章的评论区绑定到一次浏览会话
 * @Author: 安知鱼
 * @Date: 2026-09-26 09:20:48
 * @LastEditTime: 2026-10-17 11:36:02
 * @LastEditors: 安知鱼
 */
package comment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/event"
	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/domain/repository"
	"github.com/anzhiyu-c/blogcms/pkg/service/utility"
)

// Session 是对外暴露的会话视图
type Session struct {
	ID        string        `json:"id"`
	PostID    string        `json:"postId"`
	OpenedAt  time.Time     `json:"openedAt"`
	ExpiresIn int64         `json:"expiresIn"` // 秒
	Thread    *model.Thread `json:"thread"`
}

// SubmitResult 是一次提交的结果。Accepted 为 false 时 Comment 为 nil，Thread 与提交前一致。
type SubmitResult struct {
	Thread   *model.Thread
	Comment  *model.Comment
	Accepted bool
}

// sessionRecord 是会话在缓存中的持久化形态
type sessionRecord struct {
	ID       string           `json:"id"`
	PostID   string           `json:"postId"`
	Seq      uint64           `json:"seq"`
	OpenedAt time.Time        `json:"openedAt"`
	Comments []*model.Comment `json:"comments"`
}

// Service 评论会话服务的核心业务逻辑。
// 会话快照保存在 CacheService 中，同一会话的读-改-写由 KeyLocker 串行化。
type Service struct {
	articleRepo repository.ArticleRepository
	commentRepo repository.CommentRepository
	cacheSvc    utility.CacheService
	eventBus    *event.EventBus
	locker      *utility.KeyLocker
	notifier    *notifier
	ttl         time.Duration
	now         func() time.Time
	log         *zap.Logger
}

// NewService 是 Service 的构造函数。eventBus 可以为 nil。
func NewService(
	articleRepo repository.ArticleRepository,
	commentRepo repository.CommentRepository,
	cacheSvc utility.CacheService,
	eventBus *event.EventBus,
	ttl time.Duration,
) *Service {
	if ttl <= 0 {
		ttl = constant.DefaultSessionTTL
	}
	return &Service{
		articleRepo: articleRepo,
		commentRepo: commentRepo,
		cacheSvc:    cacheSvc,
		eventBus:    eventBus,
		locker:      utility.NewKeyLocker(),
		notifier:    newNotifier(),
		ttl:         ttl,
		now:         time.Now,
		log:         logger.Named("comment_session"),
	}
}

// SessionKey 返回会话快照的缓存键
func SessionKey(sessionID string) string {
	return constant.CommentSessionKeyPrefix + sessionID
}

// Open 为文章开启新的评论会话，评论区以数据集中该文章的评论为种子
func (s *Service) Open(ctx context.Context, postID string) (*Session, error) {
	if _, err := s.articleRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}
	seed, err := s.commentRepo.FindByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("加载评论种子失败: %w", err)
	}

	store := NewStore(postID, seed, WithClock(s.now))
	rec := &sessionRecord{
		ID:       uuid.NewString(),
		PostID:   postID,
		OpenedAt: s.now(),
	}
	if err := s.save(ctx, rec, store); err != nil {
		return nil, err
	}

	s.log.Debug("评论会话已开启", zap.String("session_id", rec.ID), zap.String("post_id", postID), zap.Int("seed", store.Count()))
	s.publish(event.SessionOpened, model.CommentActivity{SessionID: rec.ID, PostID: postID, At: rec.OpenedAt})
	return s.view(rec, store.Snapshot()), nil
}

// Get 返回会话当前的评论区，并刷新过期时间
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.Expire(ctx, SessionKey(sessionID), s.ttl); err != nil {
		s.log.Warn("刷新评论会话过期时间失败", zap.String("session_id", sessionID), zap.Error(err))
	}
	store := NewStore(rec.PostID, rec.Comments, WithSequence(rec.Seq), WithClock(s.now))
	return s.view(rec, store.Snapshot()), nil
}

// SubmitComment 在会话中追加顶级评论
func (s *Service) SubmitComment(ctx context.Context, sessionID string, req model.SubmitCommentRequest) (*SubmitResult, error) {
	return s.mutate(ctx, sessionID, func(store *Store) *SubmitResult {
		thread, ok := store.SubmitComment(req.Author, req.Email, req.Content)
		res := &SubmitResult{Thread: thread, Accepted: ok}
		if ok {
			res.Comment = thread.Comments[len(thread.Comments)-1]
		}
		return res
	}, event.CommentSubmitted)
}

// SubmitReply 在会话中回复顶级评论
func (s *Service) SubmitReply(ctx context.Context, sessionID, parentID, content string) (*SubmitResult, error) {
	return s.mutate(ctx, sessionID, func(store *Store) *SubmitResult {
		thread, ok := store.SubmitReply(parentID, content)
		res := &SubmitResult{Thread: thread, Accepted: ok}
		if ok {
			for _, c := range thread.Comments {
				if c.ID == parentID {
					res.Comment = c.Replies[len(c.Replies)-1]
					break
				}
			}
		}
		return res
	}, event.ReplySubmitted)
}

// mutate 在会话锁内完成 加载 -> 修改 -> 保存 -> 通知
func (s *Service) mutate(ctx context.Context, sessionID string, apply func(*Store) *SubmitResult, topic event.Topic) (*SubmitResult, error) {
	s.locker.Lock(sessionID)
	defer s.locker.Unlock(sessionID)

	rec, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	store := NewStore(rec.PostID, rec.Comments, WithSequence(rec.Seq), WithClock(s.now))

	res := apply(store)
	if !res.Accepted {
		s.log.Debug("提交内容不完整，已忽略", zap.String("session_id", sessionID), zap.String("topic", string(topic)))
		return res, nil
	}

	if err := s.save(ctx, rec, store); err != nil {
		return nil, err
	}

	activity := model.CommentActivity{SessionID: sessionID, PostID: rec.PostID, CommentID: res.Comment.ID, At: res.Comment.CreatedAt}
	if res.Comment.ParentID != nil {
		activity.ParentID = *res.Comment.ParentID
	}
	s.publish(topic, activity)
	s.notifier.publish(sessionID, res.Thread)
	return res, nil
}

// Close 结束会话，评论区随之丢弃，不会写回数据集
func (s *Service) Close(ctx context.Context, sessionID string) error {
	s.locker.Lock(sessionID)
	defer s.locker.Unlock(sessionID)

	if _, err := s.load(ctx, sessionID); err != nil {
		return err
	}
	if err := s.cacheSvc.Delete(ctx, SessionKey(sessionID)); err != nil {
		return fmt.Errorf("删除评论会话失败: %w", err)
	}
	s.notifier.closeSession(sessionID)
	s.log.Debug("评论会话已关闭", zap.String("session_id", sessionID))
	return nil
}

// Subscribe 订阅会话的变更通知。会话关闭时通道被关闭。
func (s *Service) Subscribe(ctx context.Context, sessionID string) (<-chan *model.Thread, func(), error) {
	if _, err := s.load(ctx, sessionID); err != nil {
		return nil, nil, err
	}
	ch, cancel := s.notifier.subscribe(sessionID)
	return ch, cancel, nil
}

// Check 确认会话仍然有效，不刷新过期时间
func (s *Service) Check(ctx context.Context, sessionID string) error {
	_, err := s.load(ctx, sessionID)
	return err
}

// ActiveSessions 统计当前未过期的会话数量，顺带关闭已过期会话上残留的订阅
func (s *Service) ActiveSessions(ctx context.Context) (int, error) {
	keys, err := s.cacheSvc.Scan(ctx, constant.CommentSessionKeyPrefix+"*")
	if err != nil {
		return 0, err
	}
	live := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		live[strings.TrimPrefix(key, constant.CommentSessionKeyPrefix)] = struct{}{}
	}
	for _, sessionID := range s.notifier.sessions() {
		if _, ok := live[sessionID]; !ok {
			s.discard(sessionID)
		}
	}
	return len(keys), nil
}

func (s *Service) load(ctx context.Context, sessionID string) (*sessionRecord, error) {
	if sessionID == "" {
		return nil, constant.ErrSessionNotFound
	}
	raw, err := s.cacheSvc.Get(ctx, SessionKey(sessionID))
	if err != nil {
		return nil, fmt.Errorf("读取评论会话失败: %w", err)
	}
	if raw == "" {
		s.discard(sessionID)
		return nil, constant.ErrSessionNotFound
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn("评论会话数据损坏，按不存在处理", zap.String("session_id", sessionID), zap.Error(err))
		s.discard(sessionID)
		return nil, constant.ErrSessionNotFound
	}
	return &rec, nil
}

// discard 会话已过期或不存在时释放它的订阅者
func (s *Service) discard(sessionID string) {
	if n := s.notifier.closeSession(sessionID); n > 0 {
		s.log.Debug("评论会话已过期，关闭订阅", zap.String("session_id", sessionID), zap.Int("subscribers", n))
	}
}

func (s *Service) save(ctx context.Context, rec *sessionRecord, store *Store) error {
	rec.Seq = store.Sequence()
	rec.Comments = store.Snapshot().Comments
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("序列化评论会话失败: %w", err)
	}
	if err := s.cacheSvc.Set(ctx, SessionKey(rec.ID), string(data), s.ttl); err != nil {
		return fmt.Errorf("保存评论会话失败: %w", err)
	}
	return nil
}

func (s *Service) view(rec *sessionRecord, thread *model.Thread) *Session {
	return &Session{
		ID:        rec.ID,
		PostID:    rec.PostID,
		OpenedAt:  rec.OpenedAt,
		ExpiresIn: int64(s.ttl / time.Second),
		Thread:    thread,
	}
}

func (s *Service) publish(topic event.Topic, payload model.CommentActivity) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(topic, payload)
}

// IsNotFound 判断错误是否表示会话或文章不存在
func IsNotFound(err error) bool {
	return errors.Is(err, constant.ErrSessionNotFound) || errors.Is(err, constant.ErrNotFound)
}
