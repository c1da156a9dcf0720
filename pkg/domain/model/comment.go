/*
 * @Description: 评论领域模型
 * @Author: 安知鱼
 * @Date: 2026-09-22 17:58:40
 * @LastEditTime: 2026-10-13 22:57:09
 * @LastEditors: 安知鱼
 */
package model

import "time"

// Comment 是评论的核心领域模型。
// 顶级评论持有 Replies，回复通过 ParentID 指向所属的顶级评论，层级固定为两层。
type Comment struct {
	ID     string `json:"id" yaml:"id"`
	PostID string `json:"postId" yaml:"post_id"`

	// --- 评论者信息 ---
	Author string `json:"author" yaml:"author"`
	Email  string `json:"email" yaml:"email"`

	// --- 内容 ---
	Content     string `json:"content" yaml:"content"` // 原文
	ContentHTML string `json:"contentHtml,omitempty" yaml:"-"`

	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`

	// --- 关系 ---
	ParentID *string    `json:"parentId,omitempty" yaml:"parent_id,omitempty"`
	Replies  []*Comment `json:"replies,omitempty" yaml:"replies,omitempty"`
}

// IsReply 判断是否为回复
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Clone 深拷贝评论及其全部回复
func (c *Comment) Clone() *Comment {
	if c == nil {
		return nil
	}
	cp := *c
	if c.ParentID != nil {
		pid := *c.ParentID
		cp.ParentID = &pid
	}
	if c.Replies != nil {
		cp.Replies = make([]*Comment, len(c.Replies))
		for i, r := range c.Replies {
			cp.Replies[i] = r.Clone()
		}
	}
	return &cp
}

// Thread 是一篇文章评论区在某一时刻的完整快照
type Thread struct {
	PostID   string     `json:"postId"`
	Comments []*Comment `json:"comments"`
}

// Count 顶级评论数量，即页面上展示的评论数
func (t *Thread) Count() int {
	if t == nil {
		return 0
	}
	return len(t.Comments)
}

// Total 顶级评论与回复的总数
func (t *Thread) Total() int {
	if t == nil {
		return 0
	}
	total := len(t.Comments)
	for _, c := range t.Comments {
		total += len(c.Replies)
	}
	return total
}

// Clone 深拷贝整个快照
func (t *Thread) Clone() *Thread {
	if t == nil {
		return nil
	}
	cp := &Thread{PostID: t.PostID, Comments: make([]*Comment, len(t.Comments))}
	for i, c := range t.Comments {
		cp.Comments[i] = c.Clone()
	}
	return cp
}

// SubmitCommentRequest 是提交顶级评论的输入
type SubmitCommentRequest struct {
	Author  string
	Email   string
	Content string
}

// CommentActivity 是评论相关事件的负载
type CommentActivity struct {
	SessionID string
	PostID    string
	CommentID string
	ParentID  string
	At        time.Time
}
