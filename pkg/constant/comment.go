/*
 * @Description: 评论相关常量
 * @Author: 安知鱼
 * @Date: 2026-09-22 10:31:02
 * @LastEditTime: 2026-10-02 21:14:47
 * @LastEditors: 安知鱼
 */
package constant

import "time"

const (
	// ReplyAuthorName 回复使用的占位作者名，系统没有登录体系
	ReplyAuthorName = "You"
	// ReplyAuthorEmail 回复使用的占位邮箱
	ReplyAuthorEmail = "user@example.com"

	// DefaultSessionTTL 评论会话默认保留时长
	DefaultSessionTTL = 30 * time.Minute

	// CacheKeyNamespace 所有缓存键的公共前缀
	CacheKeyNamespace = "blogcms:"
	// CommentSessionKeyPrefix 评论会话快照的缓存键前缀
	CommentSessionKeyPrefix = CacheKeyNamespace + "comment:session:"
	// StatsKeyPrefix 统计计数器的缓存键前缀
	StatsKeyPrefix = CacheKeyNamespace + "stats:"
)

// DefaultSiteURL 站点地址未配置时使用的默认值
const DefaultSiteURL = "https://blogcms.example.com"
