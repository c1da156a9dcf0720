/*
 * @Description: 文章领域模型
 * @Author: 安知鱼
 * @Date: 2026-09-21 16:40:12
 * @LastEditTime: 2026-10-10 11:02:37
 * @LastEditors: 安知鱼
 */
package model

import "time"

// ArticleAuthor 文章作者信息
type ArticleAuthor struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
	Bio    string `json:"bio" yaml:"bio"`
}

// CategoryRef 文章上引用的分类
type CategoryRef struct {
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug" yaml:"slug"`
}

// Category 分类，带展示色
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Slug  string `json:"slug" yaml:"slug"`
	Color string `json:"color" yaml:"color"`
}

// SEO 文章的搜索引擎元信息
type SEO struct {
	MetaTitle       string   `json:"metaTitle" yaml:"meta_title"`
	MetaDescription string   `json:"metaDescription" yaml:"meta_description"`
	Keywords        []string `json:"keywords" yaml:"keywords"`
}

// Article 是文章的核心领域模型，Content 为 HTML 正文
type Article struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Excerpt       string        `json:"excerpt" yaml:"excerpt"`
	Content       string        `json:"content" yaml:"content"`
	Author        ArticleAuthor `json:"author" yaml:"author"`
	Category      CategoryRef   `json:"category" yaml:"category"`
	Tags          []string      `json:"tags" yaml:"tags"`
	FeaturedImage string        `json:"featuredImage" yaml:"featured_image"`
	PublishedAt   time.Time     `json:"publishedAt" yaml:"published_at"`
	ReadingTime   int           `json:"readingTime" yaml:"reading_time"`
	SEO           SEO           `json:"seo" yaml:"seo"`
}

// Clone 深拷贝文章
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Tags = append([]string(nil), a.Tags...)
	cp.SEO.Keywords = append([]string(nil), a.SEO.Keywords...)
	return &cp
}

// HasTag 判断文章是否带有指定标签（精确匹配）
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ListArticlesOptions 文章列表的过滤条件
type ListArticlesOptions struct {
	Query    string // 标题、摘要、标签的不区分大小写包含匹配
	Category string // 分类 slug，空表示全部
}

// ArticleListResult 文章列表结果
type ArticleListResult struct {
	Featured *Article   `json:"featured,omitempty"`
	Posts    []*Article `json:"posts"`
	Total    int        `json:"total"`
}

// OpenGraph 页面的 OpenGraph 元信息
type OpenGraph struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Images        []string `json:"images"`
	Type          string   `json:"type"`
	PublishedTime string   `json:"publishedTime"`
	Authors       []string `json:"authors"`
}

// TwitterCard 页面的 Twitter 卡片元信息
type TwitterCard struct {
	Card        string   `json:"card"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// PageMetadata 文章详情页的完整元信息
type PageMetadata struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Keywords    []string     `json:"keywords,omitempty"`
	OpenGraph   *OpenGraph   `json:"openGraph,omitempty"`
	Twitter     *TwitterCard `json:"twitter,omitempty"`
}
