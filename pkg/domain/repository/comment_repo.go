/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-22 17:58:48
 * @LastEditTime: 2026-10-12 03:44:26
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
)

// CommentRepository 提供评论种子快照的只读访问。
// 数据集中的评论不会被会话内的提交写回。
type CommentRepository interface {
	// FindByPostID 返回属于该文章的顶级评论及其回复，结果为深拷贝。
	// 其他文章的评论与回复不会出现在结果中。
	FindByPostID(ctx context.Context, postID string) ([]*model.Comment, error)
}
