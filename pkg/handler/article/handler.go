package article

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/response"
	articleSvc "github.com/anzhiyu-c/blogcms/pkg/service/article"
	"github.com/anzhiyu-c/blogcms/pkg/service/share"
)

// Handler 封装了所有与文章相关的 HTTP 处理器。
type Handler struct {
	svc     articleSvc.Service
	siteURL string
}

// NewHandler 是 Handler 的构造函数。siteURL 用于生成分享链接。
func NewHandler(svc articleSvc.Service, siteURL string) *Handler {
	return &Handler{svc: svc, siteURL: siteURL}
}

// ListPublic
// @Summary      获取文章列表
// @Description  按关键字与分类过滤文章。未筛选时 featured 为推荐文章，posts 不包含筛选结果的第一篇
// @Tags         公开文章
// @Produce      json
// @Param        q        query string false "关键字，匹配标题、摘要与标签"
// @Param        category query string false "分类 slug"
// @Success      200 {object} response.Response{data=model.ArticleListResult} "成功响应"
// @Router       /public/articles [get]
func (h *Handler) ListPublic(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), &model.ListArticlesOptions{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	})
	if err != nil {
		response.FailWithError(c, err, "获取文章列表失败")
		return
	}
	response.Success(c, result, "获取列表成功")
}

// GetPublic
// @Summary      获取文章详情
// @Tags         公开文章
// @Produce      json
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.Article} "成功响应"
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /public/articles/{id} [get]
func (h *Handler) GetPublic(c *gin.Context) {
	article, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err, "获取文章失败")
		return
	}
	response.Success(c, article, "获取成功")
}

// GetRelated
// @Summary      获取相关文章
// @Description  同分类或共享标签的其他文章，最多 3 篇
// @Tags         公开文章
// @Produce      json
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=[]model.Article} "成功响应"
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /public/articles/{id}/related [get]
func (h *Handler) GetRelated(c *gin.Context) {
	related, err := h.svc.Related(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err, "获取相关文章失败")
		return
	}
	response.Success(c, related, "获取成功")
}

// GetMetadata
// @Summary      获取文章页元信息
// @Description  文章不存在时返回占位标题，状态码仍为 200
// @Tags         公开文章
// @Produce      json
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=model.PageMetadata} "成功响应"
// @Router       /public/articles/{id}/metadata [get]
func (h *Handler) GetMetadata(c *gin.Context) {
	meta, err := h.svc.Metadata(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err, "获取元信息失败")
		return
	}
	response.Success(c, meta, "获取成功")
}

// GetShareLinks
// @Summary      获取文章分享链接
// @Tags         公开文章
// @Produce      json
// @Param        id path string true "文章ID"
// @Success      200 {object} response.Response{data=share.Links} "成功响应"
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /public/articles/{id}/share [get]
func (h *Handler) GetShareLinks(c *gin.Context) {
	article, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err, "生成分享链接失败")
		return
	}
	links := share.BuildLinks(share.ArticleURL(h.siteURL, article.ID), article.Title)
	response.Success(c, links, "获取成功")
}

// ListCategories
// @Summary      获取分类列表
// @Tags         公开文章
// @Produce      json
// @Success      200 {object} response.Response{data=[]model.Category} "成功响应"
// @Router       /public/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "获取分类列表失败")
		return
	}
	response.Success(c, categories, "获取成功")
}
