/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-23 14:20:31
 * @LastEditTime: 2026-10-09 10:48:12
 * @LastEditors: 安知鱼
 */
package static

import (
	"context"

	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/domain/repository"
)

type articleRepo struct {
	src *Source
}

// NewArticleRepo 基于内容数据源创建文章仓库
func NewArticleRepo(src *Source) repository.ArticleRepository {
	return &articleRepo{src: src}
}

func (r *articleRepo) FindAll(ctx context.Context) ([]*model.Article, error) {
	ds, err := r.src.Dataset()
	if err != nil {
		return nil, err
	}
	list := make([]*model.Article, 0, len(ds.Posts))
	for _, p := range ds.Posts {
		list = append(list, p.Clone())
	}
	return list, nil
}

func (r *articleRepo) FindByID(ctx context.Context, id string) (*model.Article, error) {
	ds, err := r.src.Dataset()
	if err != nil {
		return nil, err
	}
	p, ok := ds.Post(id)
	if !ok {
		return nil, constant.ErrNotFound
	}
	return p.Clone(), nil
}

func (r *articleRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	ds, err := r.src.Dataset()
	if err != nil {
		return nil, err
	}
	return append([]model.Category(nil), ds.Categories...), nil
}
