/*
 * @Description: 单篇文章的内存评论区：顶级评论 + 追加式回复
 * @Author: 安知鱼
 * @Date: 2026-09-25 09:12:33
 * @LastEditTime: 2026-10-16 21:40:18
 * @LastEditors: 安知鱼
 */
package comment

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/anzhiyu-c/blogcms/internal/pkg/parser"
	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/idgen"
)

// Store 持有一篇文章在一个浏览会话内的评论区。
// 层级固定为两层：顶级评论持有回复，回复不能再被回复。
// 只支持追加，没有编辑和删除。Store 不是并发安全的，由调用方串行化访问。
type Store struct {
	postID   string
	comments []*model.Comment
	topLevel map[string]*model.Comment
	ids      map[string]struct{}
	seq      uint64
	now      func() time.Time
}

// StoreOption 配置 Store
type StoreOption func(*Store)

// WithClock 替换时间来源
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithSequence 从已保存的序号继续生成 ID，用于恢复会话
func WithSequence(seq uint64) StoreOption {
	return func(s *Store) { s.seq = seq }
}

// NewStore 使用种子快照创建评论区，只保留 postID 匹配的评论与回复。
// 种子会被深拷贝，重复 ID 的条目只保留第一次出现的。
func NewStore(postID string, seed []*model.Comment, opts ...StoreOption) *Store {
	s := &Store{
		postID:   postID,
		comments: make([]*model.Comment, 0, len(seed)),
		topLevel: make(map[string]*model.Comment, len(seed)),
		ids:      make(map[string]struct{}),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range seed {
		if c == nil || c.PostID != postID || c.ID == "" || s.has(c.ID) {
			continue
		}
		top := c.Clone()
		top.ParentID = nil
		top.Replies = make([]*model.Comment, 0, len(c.Replies))
		fillHTML(top)
		s.claim(top.ID)

		for _, r := range c.Replies {
			if r == nil || r.ID == "" || s.has(r.ID) {
				continue
			}
			if r.PostID != "" && r.PostID != postID {
				continue
			}
			reply := r.Clone()
			reply.PostID = postID
			parentID := top.ID
			reply.ParentID = &parentID
			reply.Replies = nil
			fillHTML(reply)
			s.claim(reply.ID)
			top.Replies = append(top.Replies, reply)
		}

		s.comments = append(s.comments, top)
		s.topLevel[top.ID] = top
	}
	return s
}

func (s *Store) has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Store) claim(id string) {
	s.ids[id] = struct{}{}
}

// nextID 生成一个在本评论区内从未出现过的 ID
func (s *Store) nextID(entityType uint64) string {
	for {
		s.seq++
		id, err := idgen.GeneratePublicID(s.seq, entityType)
		if err != nil {
			id = "c" + strconv.FormatUint(s.seq, 10)
		}
		if !s.has(id) {
			s.claim(id)
			return id
		}
	}
}

// PostID 返回评论区所属文章
func (s *Store) PostID() string {
	return s.postID
}

// Sequence 返回当前 ID 序号，保存会话时一并持久化
func (s *Store) Sequence() uint64 {
	return s.seq
}

// Count 顶级评论数量
func (s *Store) Count() int {
	return len(s.comments)
}

// Snapshot 返回当前评论区的深拷贝
func (s *Store) Snapshot() *model.Thread {
	t := &model.Thread{PostID: s.postID, Comments: make([]*model.Comment, len(s.comments))}
	for i, c := range s.comments {
		t.Comments[i] = c.Clone()
	}
	return t
}

// Find 按 ID 查找顶级评论或回复，返回拷贝
func (s *Store) Find(id string) (*model.Comment, bool) {
	if c, ok := s.topLevel[id]; ok {
		return c.Clone(), true
	}
	for _, c := range s.comments {
		for _, r := range c.Replies {
			if r.ID == id {
				return r.Clone(), true
			}
		}
	}
	return nil, false
}

// SubmitComment 追加一条顶级评论。
// 作者、邮箱、内容去掉首尾空白后任一为空时静默丢弃，返回 accepted=false 与未变化的快照。
// 相同输入重复提交会产生多条评论。
func (s *Store) SubmitComment(author, email, content string) (*model.Thread, bool) {
	if isBlank(author) || isBlank(email) || isBlank(content) {
		return s.Snapshot(), false
	}

	c := &model.Comment{
		ID:          s.nextID(idgen.EntityTypeComment),
		PostID:      s.postID,
		Author:      author,
		Email:       email,
		Content:     content,
		ContentHTML: render(content),
		CreatedAt:   s.now(),
		Replies:     make([]*model.Comment, 0),
	}
	s.comments = append(s.comments, c)
	s.topLevel[c.ID] = c
	return s.Snapshot(), true
}

// SubmitReply 向顶级评论 parentID 追加一条回复，作者为固定占位身份。
// 内容为空白或 parentID 不是当前评论区内的顶级评论时静默丢弃。
func (s *Store) SubmitReply(parentID, content string) (*model.Thread, bool) {
	if isBlank(content) {
		return s.Snapshot(), false
	}
	parent, ok := s.topLevel[parentID]
	if !ok {
		return s.Snapshot(), false
	}

	pid := parent.ID
	reply := &model.Comment{
		ID:          s.nextID(idgen.EntityTypeReply),
		PostID:      s.postID,
		Author:      constant.ReplyAuthorName,
		Email:       constant.ReplyAuthorEmail,
		Content:     content,
		ContentHTML: render(content),
		CreatedAt:   s.now(),
		ParentID:    &pid,
	}
	parent.Replies = append(parent.Replies, reply)
	return s.Snapshot(), true
}

// isBlank 判断去掉首尾空白后是否为空。
// 空白的范围与浏览器 String.prototype.trim 一致：包含 U+FEFF，不包含 U+0085。
func isBlank(s string) bool {
	return strings.TrimFunc(s, isTrimSpace) == ""
}

func isTrimSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// fillHTML 为种子评论补齐渲染后的正文
func fillHTML(c *model.Comment) {
	if c.ContentHTML == "" {
		c.ContentHTML = render(c.Content)
	}
}

// render 渲染评论正文，失败时留空由前端回退到原文
func render(content string) string {
	html, err := parser.MarkdownToHTML(content)
	if err != nil {
		return ""
	}
	return html
}
