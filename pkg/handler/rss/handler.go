/*
 * @Description: RSS Feed 处理器
 * @Author: 安知鱼
 * @Date: 2026-09-30 00:00:00
 * @LastEditTime: 2026-10-15 18:48:25
 * @LastEditors: 安知鱼
 */
package rss

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/response"
	"github.com/anzhiyu-c/blogcms/pkg/service/rss"
)

// Handler RSS 处理器
type Handler struct {
	rssService rss.Service
	siteURL    string
	itemCount  int
}

// NewHandler 创建 RSS 处理器。siteURL 为空时从请求推断。
func NewHandler(rssService rss.Service, siteURL string, itemCount int) *Handler {
	return &Handler{
		rssService: rssService,
		siteURL:    siteURL,
		itemCount:  itemCount,
	}
}

// GetRSSFeed 获取 RSS feed
// @Summary      获取RSS订阅源
// @Description  获取网站的RSS订阅源（XML格式），/atom.xml 是它的别名
// @Tags         辅助工具
// @Produce      xml
// @Success      200  {string}  string  "RSS XML内容"
// @Failure      500  {object}  response.Response  "生成RSS feed失败"
// @Router       /rss.xml [get]
func (h *Handler) GetRSSFeed(c *gin.Context) {
	ctx := c.Request.Context()

	opts := &rss.RSSOptions{
		ItemCount: h.itemCount,
		BaseURL:   h.getSiteURL(c),
		BuildTime: time.Now(),
	}

	feed, err := h.rssService.GenerateFeed(ctx, opts)
	if err != nil {
		logger.Named("rss_handler").Error("生成 RSS feed 失败", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "生成RSS feed失败")
		return
	}

	xmlContent := h.rssService.GenerateXML(feed)

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("Cache-Control", "public, max-age=3600") // 缓存1小时
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Last-Modified", time.Now().Format(http.TimeFormat))

	c.String(http.StatusOK, xmlContent)
}

// getSiteURL 获取站点 URL
func (h *Handler) getSiteURL(c *gin.Context) string {
	if h.siteURL != "" {
		return strings.TrimRight(h.siteURL, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	// 优先使用 X-Forwarded-Proto
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}
