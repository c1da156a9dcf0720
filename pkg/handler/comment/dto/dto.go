/*
 * @Description: 评论会话接口的请求与响应结构
 * @Author: 安知鱼
 * @Date: 2026-09-26 14:05:51
 * @LastEditTime: 2026-10-19 10:42:07
 * @LastEditors: 安知鱼
 */
package dto

import (
	"time"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/service/comment"
)

// SubmitCommentRequest 定义了提交顶级评论的API请求体。
// 字段不做格式校验，去掉首尾空白后为空的提交会被静默忽略。
type SubmitCommentRequest struct {
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

// SubmitReplyRequest 定义了回复顶级评论的API请求体。
type SubmitReplyRequest struct {
	Content string `json:"content"`
}

// AvatarResponse 评论者头像
type AvatarResponse struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	PaletteIndex int    `json:"palette_index"`
	URL          string `json:"url"`
}

// CommentResponse 单条评论。顶级评论的 Replies 总是数组，回复的 Replies 省略。
type CommentResponse struct {
	ID          string             `json:"id"`
	PostID      string             `json:"post_id"`
	ParentID    *string            `json:"parent_id"`
	Author      string             `json:"author"`
	Email       string             `json:"email"`
	Content     string             `json:"content"`
	ContentHTML string             `json:"content_html"`
	CreatedAt   time.Time          `json:"created_at"`
	Avatar      AvatarResponse     `json:"avatar"`
	Replies     *[]CommentResponse `json:"replies,omitempty"`
}

// ThreadResponse 评论区快照
type ThreadResponse struct {
	PostID   string            `json:"post_id"`
	Count    int               `json:"count"`
	Total    int               `json:"total"`
	Comments []CommentResponse `json:"comments"`
}

// SessionResponse 评论会话
type SessionResponse struct {
	ID        string         `json:"id"`
	PostID    string         `json:"post_id"`
	OpenedAt  time.Time      `json:"opened_at"`
	ExpiresIn int64          `json:"expires_in"`
	Thread    ThreadResponse `json:"thread"`
}

// SubmitResponse 提交结果。Accepted 为 false 时 Comment 为 null，Thread 为未变化的快照。
type SubmitResponse struct {
	Accepted bool             `json:"accepted"`
	Comment  *CommentResponse `json:"comment"`
	Thread   ThreadResponse   `json:"thread"`
}

// NewAvatar 根据名字生成头像信息
func NewAvatar(name string) AvatarResponse {
	return AvatarResponse{
		Name:         name,
		Color:        comment.AvatarColor(name),
		PaletteIndex: comment.PaletteIndex(name),
		URL:          comment.AvatarURL(name),
	}
}

// FromComment 把领域模型转换为响应结构
func FromComment(c *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:          c.ID,
		PostID:      c.PostID,
		ParentID:    c.ParentID,
		Author:      c.Author,
		Email:       c.Email,
		Content:     c.Content,
		ContentHTML: c.ContentHTML,
		CreatedAt:   c.CreatedAt,
		Avatar:      NewAvatar(c.Author),
	}
	if !c.IsReply() {
		replies := make([]CommentResponse, 0, len(c.Replies))
		for _, r := range c.Replies {
			replies = append(replies, FromComment(r))
		}
		resp.Replies = &replies
	}
	return resp
}

// FromThread 把评论区快照转换为响应结构
func FromThread(t *model.Thread) ThreadResponse {
	resp := ThreadResponse{Comments: make([]CommentResponse, 0)}
	if t == nil {
		return resp
	}
	resp.PostID = t.PostID
	resp.Count = t.Count()
	resp.Total = t.Total()
	for _, c := range t.Comments {
		resp.Comments = append(resp.Comments, FromComment(c))
	}
	return resp
}

// FromSession 把会话转换为响应结构
func FromSession(s *comment.Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		PostID:    s.PostID,
		OpenedAt:  s.OpenedAt,
		ExpiresIn: s.ExpiresIn,
		Thread:    FromThread(s.Thread),
	}
}

// FromSubmitResult 把提交结果转换为响应结构
func FromSubmitResult(r *comment.SubmitResult) SubmitResponse {
	resp := SubmitResponse{Accepted: r.Accepted, Thread: FromThread(r.Thread)}
	if r.Comment != nil {
		c := FromComment(r.Comment)
		resp.Comment = &c
	}
	return resp
}
