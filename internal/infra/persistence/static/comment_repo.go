/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-23 14:32:09
 * @LastEditTime: 2026-10-09 10:51:40
 * @LastEditors: 安知鱼
 */
package static

import (
	"context"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/domain/repository"
)

type commentRepo struct {
	src *Source
}

// NewCommentRepo 基于内容数据源创建评论仓库
func NewCommentRepo(src *Source) repository.CommentRepository {
	return &commentRepo{src: src}
}

// FindByPostID 过滤出属于该文章的评论。回复只保留 post_id 同样匹配的条目。
func (r *commentRepo) FindByPostID(ctx context.Context, postID string) ([]*model.Comment, error) {
	ds, err := r.src.Dataset()
	if err != nil {
		return nil, err
	}

	result := make([]*model.Comment, 0)
	for _, c := range ds.Comments {
		if c.PostID != postID {
			continue
		}
		cp := c.Clone()
		replies := make([]*model.Comment, 0, len(cp.Replies))
		for _, reply := range cp.Replies {
			if reply.PostID == postID {
				replies = append(replies, reply)
			}
		}
		cp.Replies = replies
		result = append(result, cp)
	}
	return result, nil
}
