/*
 * @Description: RSS Feed 服务
 * @Author: 安知鱼
 * @Date: 2026-09-28 10:00:00
 * @LastEditTime: 2026-10-14 21:47:03
 * @LastEditors: 安知鱼
 */
package rss

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/anzhiyu-c/blogcms/internal/pkg/parser"
	"github.com/anzhiyu-c/blogcms/internal/pkg/strutil"
	"github.com/anzhiyu-c/blogcms/pkg/constant"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/domain/repository"
	"github.com/anzhiyu-c/blogcms/pkg/service/share"
	"github.com/anzhiyu-c/blogcms/pkg/service/utility"
)

// Service RSS 服务接口
type Service interface {
	// GenerateFeed 生成 RSS feed
	GenerateFeed(ctx context.Context, opts *RSSOptions) (*RSSFeed, error)
	// GenerateXML 生成 RSS XML 字符串
	GenerateXML(feed *RSSFeed) string
	// InvalidateCache 清除 RSS 缓存
	InvalidateCache(ctx context.Context) error
}

// service RSS 服务实现
type service struct {
	articleRepo repository.ArticleRepository
	cacheSvc    utility.CacheService
	site        SiteInfo
}

// NewService 创建 RSS 服务
func NewService(
	articleRepo repository.ArticleRepository,
	cacheSvc utility.CacheService,
	site SiteInfo,
) Service {
	return &service{
		articleRepo: articleRepo,
		cacheSvc:    cacheSvc,
		site:        site,
	}
}

// CacheKey RSS feed 缓存键
const CacheKey = constant.CacheKeyNamespace + "rss:feed:latest"

// rssCacheTTL RSS feed 缓存过期时间（1小时）
const rssCacheTTL = 3600

// defaultItemCount 未指定数量时输出的文章数
const defaultItemCount = 20

// GenerateFeed 生成 RSS feed（支持缓存）
func (s *service) GenerateFeed(ctx context.Context, opts *RSSOptions) (*RSSFeed, error) {
	// 尝试从缓存获取
	if cachedData, err := s.cacheSvc.Get(ctx, CacheKey); err == nil && cachedData != "" {
		var feed RSSFeed
		if err := json.Unmarshal([]byte(cachedData), &feed); err == nil {
			return &feed, nil
		}
	}

	if opts == nil {
		opts = &RSSOptions{}
	}
	if opts.ItemCount <= 0 {
		opts.ItemCount = defaultItemCount
	}
	if opts.BuildTime.IsZero() {
		opts.BuildTime = time.Now()
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	posts, err := s.articleRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取文章列表失败: %w", err)
	}
	// 最新发布的在前
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	if len(posts) > opts.ItemCount {
		posts = posts[:opts.ItemCount]
	}

	feed := &RSSFeed{
		Title:         s.site.Name,
		Link:          baseURL,
		Description:   s.site.Description,
		Language:      "en-US",
		PubDate:       opts.BuildTime.Format(time.RFC1123Z),
		LastBuildDate: opts.BuildTime.Format(time.RFC1123Z),
		Items:         make([]RSSItem, 0, len(posts)),
	}
	for _, article := range posts {
		feed.Items = append(feed.Items, buildRSSItem(article, baseURL))
	}

	// 缓存生成的 feed
	if feedData, err := json.Marshal(feed); err == nil {
		_ = s.cacheSvc.Set(ctx, CacheKey, string(feedData), rssCacheTTL*time.Second)
	}

	return feed, nil
}

// InvalidateCache 清除 RSS 缓存
func (s *service) InvalidateCache(ctx context.Context) error {
	return s.cacheSvc.Delete(ctx, CacheKey)
}

// buildRSSItem 构建单个 RSS 条目
func buildRSSItem(article *model.Article, baseURL string) RSSItem {
	articleLink := share.ArticleURL(baseURL, article.ID)

	categories := make([]string, 0, len(article.Tags)+1)
	if article.Category.Name != "" {
		categories = append(categories, article.Category.Name)
	}
	categories = append(categories, article.Tags...)

	return RSSItem{
		Title:       article.Title,
		Link:        articleLink,
		Description: articleDescription(article),
		PubDate:     article.PublishedAt.Format(time.RFC1123Z),
		GUID:        articleLink,
		Author:      article.Author.Name,
		Categories:  categories,
	}
}

// articleDescription 优先使用摘要，否则从正文提取前 200 字
func articleDescription(article *model.Article) string {
	if article.Excerpt != "" {
		return article.Excerpt
	}
	if article.Content != "" {
		return strutil.Truncate(strutil.CollapseSpace(parser.StripHTML(article.Content)), 200)
	}
	return ""
}

// GenerateXML 生成 RSS XML 字符串
func (s *service) GenerateXML(feed *RSSFeed) string {
	var sb strings.Builder

	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString("\n")
	sb.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	sb.WriteString("\n")

	sb.WriteString("  <channel>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", xmlEscape(feed.Title)))
	sb.WriteString(fmt.Sprintf("    <link>%s</link>\n", xmlEscape(feed.Link)))
	sb.WriteString(fmt.Sprintf("    <description>%s</description>\n", xmlEscape(feed.Description)))
	sb.WriteString(fmt.Sprintf("    <language>%s</language>\n", feed.Language))
	sb.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", feed.LastBuildDate))
	sb.WriteString(fmt.Sprintf("    <atom:link href=\"%s/rss.xml\" rel=\"self\" type=\"application/rss+xml\"/>\n", xmlEscape(feed.Link)))

	for _, item := range feed.Items {
		sb.WriteString("    <item>\n")
		sb.WriteString(fmt.Sprintf("      <title>%s</title>\n", xmlEscape(item.Title)))
		sb.WriteString(fmt.Sprintf("      <link>%s</link>\n", xmlEscape(item.Link)))
		sb.WriteString(fmt.Sprintf("      <guid isPermaLink=\"true\">%s</guid>\n", xmlEscape(item.GUID)))
		sb.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", item.PubDate))
		if item.Description != "" {
			sb.WriteString(fmt.Sprintf("      <description>%s</description>\n", xmlEscape(item.Description)))
		}
		if item.Author != "" {
			sb.WriteString(fmt.Sprintf("      <author>%s</author>\n", xmlEscape(item.Author)))
		}
		for _, category := range item.Categories {
			sb.WriteString(fmt.Sprintf("      <category>%s</category>\n", xmlEscape(category)))
		}
		sb.WriteString("    </item>\n")
	}

	sb.WriteString("  </channel>\n")
	sb.WriteString("</rss>")
	return sb.String()
}

// xmlEscape 转义 XML 特殊字符
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
