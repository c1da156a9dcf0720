/*
 * @Description: 站点地图与 robots.txt 处理器
 * @Author: 安知鱼
 * @Date: 2026-09-28 11:40:00
 * @LastEditTime: 2026-10-19 11:05:12
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/service/sitemap"
)

const (
	sitemapMaxAge = "public, max-age=3600"
	robotsMaxAge  = "public, max-age=86400"
)

// Handler 站点地图处理器
type Handler struct {
	svc sitemap.Service
	log *zap.Logger
}

// NewHandler 创建站点地图处理器
func NewHandler(svc sitemap.Service) *Handler {
	return &Handler{svc: svc, log: logger.Named("sitemap_handler")}
}

// GetSitemap 获取站点地图
// @Summary      获取站点地图
// @Description  Last-Modified 取最新文章的发布时间，支持 If-Modified-Since 条件请求
// @Tags         辅助工具
// @Produce      xml
// @Success      200  {string}  string  "XML格式的站点地图"
// @Success      304  "内容未变化"
// @Failure      500  {string}  string  "生成失败"
// @Router       /sitemap.xml [get]
func (h *Handler) GetSitemap(c *gin.Context) {
	doc, lastModified, err := h.svc.GenerateXML(c.Request.Context())
	if err != nil {
		h.log.Error("生成站点地图失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "生成站点地图失败")
		return
	}

	c.Header("Cache-Control", sitemapMaxAge)
	if !lastModified.IsZero() {
		lastModified = lastModified.UTC().Truncate(time.Second)
		c.Header("Last-Modified", lastModified.Format(http.TimeFormat))
		if notModified(c.Request, lastModified) {
			c.Status(http.StatusNotModified)
			return
		}
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}

// GetRobots 获取robots.txt
// @Summary      获取robots.txt
// @Tags         辅助工具
// @Produce      plain
// @Success      200  {string}  string  "robots.txt内容"
// @Failure      500  {string}  string  "生成失败"
// @Router       /robots.txt [get]
func (h *Handler) GetRobots(c *gin.Context) {
	robots, err := h.svc.GenerateRobots(c.Request.Context())
	if err != nil {
		h.log.Error("生成robots.txt失败", zap.Error(err))
		c.String(http.StatusInternalServerError, "生成robots.txt失败")
		return
	}
	c.Header("Cache-Control", robotsMaxAge)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(robots))
}

// notModified 判断客户端缓存的版本是否仍然有效
func notModified(r *http.Request, lastModified time.Time) bool {
	since := r.Header.Get("If-Modified-Since")
	if since == "" {
		return false
	}
	t, err := http.ParseTime(since)
	if err != nil {
		return false
	}
	return !lastModified.After(t)
}
