/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-22 18:07:37
 * @LastEditTime: 2026-10-09 18:07:49
 * @LastEditors: 安知鱼
 */
package constant

import "github.com/anzhiyu-c/blogcms/internal/pkg/event"

// EventTopic 事件主题类型
type EventTopic = event.Topic

// 导出事件主题常量，供外部使用
const (
	EventSessionOpened    EventTopic = event.SessionOpened
	EventCommentSubmitted EventTopic = event.CommentSubmitted
	EventReplySubmitted   EventTopic = event.ReplySubmitted
	// EventContentReloaded 外部数据集热更新完成
	EventContentReloaded EventTopic = event.ContentReloaded
)
