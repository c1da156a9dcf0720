/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-21 17:10:05
 * @LastEditTime: 2026-10-09 15:21:44
 * @LastEditors: 安知鱼
 */
package repository

import (
	"context"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
)

// ArticleRepository 提供文章与分类的只读访问，返回值均为深拷贝，按数据集顺序排列。
type ArticleRepository interface {
	FindAll(ctx context.Context) ([]*model.Article, error)
	// FindByID 未找到时返回 constant.ErrNotFound
	FindByID(ctx context.Context, id string) (*model.Article, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}
