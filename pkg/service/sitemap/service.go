/*
 * @Description: 站点地图服务
 * @Author: 安知鱼
 * @Date: 2026-09-28 11:20:00
 * @LastEditTime: 2026-10-15 09:02:44
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/domain/repository"
	"github.com/anzhiyu-c/blogcms/pkg/service/share"
)

// Service 站点地图服务接口
type Service interface {
	// GenerateSitemap 生成站点地图
	GenerateSitemap(ctx context.Context) (*URLSet, error)
	// GenerateXML 生成带 XML 声明的站点地图文档，同时返回最新文章的发布时间
	GenerateXML(ctx context.Context) ([]byte, time.Time, error)
	// GenerateRobots 生成robots.txt
	GenerateRobots(ctx context.Context) (string, error)
}

// service 站点地图服务实现
type service struct {
	articleRepo repository.ArticleRepository
	siteURL     func() string
	now         func() time.Time
}

// NewService 创建站点地图服务。siteURL 每次生成时读取，配置变更后立即生效。
func NewService(articleRepo repository.ArticleRepository, siteURL func() string) Service {
	return &service{
		articleRepo: articleRepo,
		siteURL:     siteURL,
		now:         time.Now,
	}
}

func (s *service) baseURL() string {
	return strings.TrimRight(s.siteURL(), "/")
}

// GenerateSitemap 生成站点地图
func (s *service) GenerateSitemap(ctx context.Context) (*URLSet, error) {
	set, _, err := s.build(ctx)
	return set, err
}

// GenerateXML 生成站点地图文档。内容没有文章时 lastModified 为零值。
func (s *service) GenerateXML(ctx context.Context) ([]byte, time.Time, error) {
	set, lastModified, err := s.build(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("序列化站点地图失败: %w", err)
	}
	doc := make([]byte, 0, len(xml.Header)+len(body)+1)
	doc = append(doc, xml.Header...)
	doc = append(doc, body...)
	doc = append(doc, '\n')
	return doc, lastModified, nil
}

// build 组装站点地图，返回最新文章的发布时间
func (s *service) build(ctx context.Context) (*URLSet, time.Time, error) {
	baseURL := s.baseURL()
	if baseURL == "" {
		return nil, time.Time{}, fmt.Errorf("站点URL未配置")
	}
	now := s.now()

	items := []SitemapItem{{
		URL:          baseURL + "/",
		LastModified: now,
		ChangeFreq:   ChangeFreqDaily,
		Priority:     1.0,
	}}

	newest, err := s.addArticles(ctx, baseURL, now, &items)
	if err != nil {
		logger.Named("sitemap").Warn("添加文章到站点地图时出错", zap.Error(err))
	}
	if err := s.addCategories(ctx, baseURL, now, &items); err != nil {
		logger.Named("sitemap").Warn("添加分类到站点地图时出错", zap.Error(err))
	}

	urlset := &URLSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]URL, len(items)),
	}
	for i, item := range items {
		urlset.URLs[i] = item.ToURL()
	}
	return urlset, newest, nil
}

// addArticles 添加文章到站点地图，越新的文章优先级越高
func (s *service) addArticles(ctx context.Context, baseURL string, now time.Time, items *[]SitemapItem) (time.Time, error) {
	articles, err := s.articleRepo.FindAll(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("获取文章列表失败: %w", err)
	}

	var newest time.Time
	for _, article := range articles {
		if article.PublishedAt.After(newest) {
			newest = article.PublishedAt
		}
		age := now.Sub(article.PublishedAt)
		var changeFreq ChangeFrequency
		var priority float32

		switch {
		case age < 24*time.Hour:
			changeFreq, priority = ChangeFreqDaily, 0.9
		case age < 7*24*time.Hour:
			changeFreq, priority = ChangeFreqWeekly, 0.8
		case age < 30*24*time.Hour:
			changeFreq, priority = ChangeFreqMonthly, 0.7
		default:
			changeFreq, priority = ChangeFreqYearly, 0.6
		}

		*items = append(*items, SitemapItem{
			URL:          share.ArticleURL(baseURL, article.ID),
			LastModified: article.PublishedAt,
			ChangeFreq:   changeFreq,
			Priority:     priority,
		})
	}
	return newest, nil
}

// addCategories 分类列表页
func (s *service) addCategories(ctx context.Context, baseURL string, now time.Time, items *[]SitemapItem) error {
	categories, err := s.articleRepo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("获取分类列表失败: %w", err)
	}
	for _, c := range categories {
		*items = append(*items, SitemapItem{
			URL:          baseURL + "/?category=" + url.QueryEscape(c.Slug),
			LastModified: now,
			ChangeFreq:   ChangeFreqWeekly,
			Priority:     0.5,
		})
	}
	return nil
}

// GenerateRobots 生成robots.txt
func (s *service) GenerateRobots(ctx context.Context) (string, error) {
	baseURL := s.baseURL()
	if baseURL == "" {
		return "", fmt.Errorf("站点URL未配置")
	}

	robotsContent := fmt.Sprintf(`User-agent: *
Allow: /

# 接口不需要被索引
Disallow: /api/

# 站点地图
Sitemap: %s/sitemap.xml
`, baseURL)

	return robotsContent, nil
}
