// blogcms/pkg/service/article/service.go
package article

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anzhiyu-c/blogcms/internal/pkg/parser"
	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/domain/repository"
)

// maxRelated 相关文章最多返回的数量
const maxRelated = 3

// NotFoundTitle 文章不存在时元信息使用的标题
const NotFoundTitle = "Post Not Found"

type Service interface {
	// List 按关键字与分类过滤文章，保持数据集顺序
	List(ctx context.Context, options *model.ListArticlesOptions) (*model.ArticleListResult, error)
	// Get 获取文章详情，正文经过清洗
	Get(ctx context.Context, id string) (*model.Article, error)
	// Related 与文章同分类或共享标签的其他文章
	Related(ctx context.Context, id string) ([]*model.Article, error)
	// Metadata 文章详情页的 SEO 元信息，文章不存在时返回占位标题
	Metadata(ctx context.Context, id string) (*model.PageMetadata, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type serviceImpl struct {
	repo repository.ArticleRepository
}

// NewService 创建文章服务
func NewService(repo repository.ArticleRepository) Service {
	return &serviceImpl{repo: repo}
}

func (s *serviceImpl) List(ctx context.Context, options *model.ListArticlesOptions) (*model.ArticleListResult, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if options == nil {
		options = &model.ListArticlesOptions{}
	}

	query := strings.ToLower(strings.TrimSpace(options.Query))
	category := strings.TrimSpace(options.Category)

	filtered := make([]*model.Article, 0, len(posts))
	for _, p := range posts {
		if category != "" && p.Category.Slug != category {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		filtered = append(filtered, p)
	}

	result := &model.ArticleListResult{
		Posts: make([]*model.Article, 0, len(filtered)),
		Total: len(filtered),
	}
	// 推荐位固定为数据集第一篇，只在未筛选时展示；列表不重复展示筛选结果的第一篇
	if query == "" && category == "" && len(posts) > 0 {
		result.Featured = stripContent(posts[0])
	}
	if len(filtered) > 1 {
		for _, p := range filtered[1:] {
			result.Posts = append(result.Posts, stripContent(p))
		}
	}
	return result, nil
}

func matchesQuery(p *model.Article, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) || strings.Contains(strings.ToLower(p.Excerpt), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// stripContent 列表中不返回正文
func stripContent(p *model.Article) *model.Article {
	cp := p.Clone()
	cp.Content = ""
	return cp
}

func (s *serviceImpl) Get(ctx context.Context, id string) (*model.Article, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Content = parser.SanitizeArticleHTML(p.Content)
	return p, nil
}

func (s *serviceImpl) Related(ctx context.Context, id string) ([]*model.Article, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	related := make([]*model.Article, 0, maxRelated)
	for _, p := range posts {
		if len(related) == maxRelated {
			break
		}
		if p.ID == current.ID {
			continue
		}
		if p.Category.Slug == current.Category.Slug || sharesTag(p, current) {
			related = append(related, stripContent(p))
		}
	}
	return related, nil
}

func sharesTag(a, b *model.Article) bool {
	for _, tag := range a.Tags {
		if b.HasTag(tag) {
			return true
		}
	}
	return false
}

func (s *serviceImpl) Metadata(ctx context.Context, id string) (*model.PageMetadata, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, constant.ErrNotFound) {
			return &model.PageMetadata{Title: NotFoundTitle}, nil
		}
		return nil, err
	}

	images := []string{}
	if p.FeaturedImage != "" {
		images = append(images, p.FeaturedImage)
	}
	return &model.PageMetadata{
		Title:       p.SEO.MetaTitle,
		Description: p.SEO.MetaDescription,
		Keywords:    p.SEO.Keywords,
		OpenGraph: &model.OpenGraph{
			Title:         p.Title,
			Description:   p.Excerpt,
			Images:        images,
			Type:          "article",
			PublishedTime: p.PublishedAt.UTC().Format(time.RFC3339),
			Authors:       []string{p.Author.Name},
		},
		Twitter: &model.TwitterCard{
			Card:        "summary_large_image",
			Title:       p.Title,
			Description: p.Excerpt,
			Images:      images,
		},
	}, nil
}

func (s *serviceImpl) Categories(ctx context.Context) ([]model.Category, error) {
	return s.repo.ListCategories(ctx)
}
