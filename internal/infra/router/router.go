/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-21 11:30:55
 * @LastEditTime: 2026-10-16 18:26:37
 * @LastEditors: 安知鱼
 */
// blogcms/internal/infra/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	article_handler "github.com/anzhiyu-c/blogcms/pkg/handler/article"
	comment_handler "github.com/anzhiyu-c/blogcms/pkg/handler/comment"
	rss_handler "github.com/anzhiyu-c/blogcms/pkg/handler/rss"
	sitemap_handler "github.com/anzhiyu-c/blogcms/pkg/handler/sitemap"
	statistics_handler "github.com/anzhiyu-c/blogcms/pkg/handler/statistics"
	version_handler "github.com/anzhiyu-c/blogcms/pkg/handler/version"
	"github.com/anzhiyu-c/blogcms/pkg/response"
)

// NoCacheMiddleware 全局反缓存中间件，确保所有API响应都不会被CDN缓存
func NoCacheMiddleware() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		// 🚫 强制禁用所有形式的缓存
		c.Header("Cache-Control", "no-cache, no-store, must-revalidate, private, max-age=0")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")

		c.Next()
	})
}

// Router 封装了应用的所有路由和其依赖的处理器。
type Router struct {
	articleHandler    *article_handler.Handler
	commentHandler    *comment_handler.Handler
	rssHandler        *rss_handler.Handler
	sitemapHandler    *sitemap_handler.Handler
	statisticsHandler *statistics_handler.StatisticsHandler
	versionHandler    *version_handler.Handler
}

// NewRouter 是 Router 的构造函数，通过依赖注入接收所有处理器。
func NewRouter(
	articleHandler *article_handler.Handler,
	commentHandler *comment_handler.Handler,
	rssHandler *rss_handler.Handler,
	sitemapHandler *sitemap_handler.Handler,
	statisticsHandler *statistics_handler.StatisticsHandler,
	versionHandler *version_handler.Handler,
) *Router {
	return &Router{
		articleHandler:    articleHandler,
		commentHandler:    commentHandler,
		rssHandler:        rssHandler,
		sitemapHandler:    sitemapHandler,
		statisticsHandler: statisticsHandler,
		versionHandler:    versionHandler,
	}
}

// Setup 注册所有路由
func (r *Router) Setup(engine *gin.Engine) {
	// 创建 /api 分组
	apiGroup := engine.Group("/api")
	// 应用全局反缓存中间件
	apiGroup.Use(NoCacheMiddleware())

	r.registerArticleRoutes(apiGroup)
	r.registerCommentRoutes(apiGroup)
	r.registerStatisticsRoutes(apiGroup)
	r.registerVersionRoutes(apiGroup)
	r.registerFeedRoutes(engine) // 直接注册到engine，不使用/api前缀

	engine.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "接口不存在")
	})
}

func (r *Router) registerArticleRoutes(api *gin.RouterGroup) {
	public := api.Group("/public")
	{
		public.GET("/categories", r.articleHandler.ListCategories)

		articles := public.Group("/articles")
		articles.GET("", r.articleHandler.ListPublic)
		articles.GET("/:id", r.articleHandler.GetPublic)
		articles.GET("/:id/related", r.articleHandler.GetRelated)
		articles.GET("/:id/metadata", r.articleHandler.GetMetadata)
		articles.GET("/:id/share", r.articleHandler.GetShareLinks)
	}
}

func (r *Router) registerCommentRoutes(api *gin.RouterGroup) {
	public := api.Group("/public")
	{
		// 开启会话挂在文章下面: POST /api/public/articles/:id/comment-sessions
		public.POST("/articles/:id/comment-sessions", r.commentHandler.OpenSession)
		public.GET("/avatar", r.commentHandler.GetAvatar)
	}

	sessions := public.Group("/comment-sessions/:sid")
	{
		sessions.GET("", r.commentHandler.GetSession)
		sessions.DELETE("", r.commentHandler.CloseSession)
		sessions.GET("/ws", r.commentHandler.Watch)
		sessions.POST("/comments", r.commentHandler.SubmitComment)
		sessions.POST("/comments/:cid/replies", r.commentHandler.SubmitReply)
	}
}

func (r *Router) registerStatisticsRoutes(api *gin.RouterGroup) {
	// GET /api/public/statistics - 今日评论活动
	api.GET("/public/statistics", r.statisticsHandler.GetTodayActivity)
}

// registerVersionRoutes 注册版本信息相关路由
func (r *Router) registerVersionRoutes(api *gin.RouterGroup) {
	versionGroup := api.Group("/version")
	{
		// GET /api/version - 获取版本信息 (JSON格式)
		versionGroup.GET("", r.versionHandler.GetVersion)

		// GET /api/version/string - 获取版本字符串 (简单字符串格式)
		versionGroup.GET("/string", r.versionHandler.GetVersionString)
	}
}

// registerFeedRoutes 注册订阅源与站点地图路由
func (r *Router) registerFeedRoutes(engine *gin.Engine) {
	// 这些路由主要供阅读器和搜索引擎使用，需要符合SEO标准
	engine.GET("/rss.xml", r.rssHandler.GetRSSFeed)
	engine.GET("/atom.xml", r.rssHandler.GetRSSFeed)

	engine.GET("/sitemap.xml", r.sitemapHandler.GetSitemap)
	engine.GET("/robots.txt", r.sitemapHandler.GetRobots)
}
