/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-24 16:10:36
 * @LastEditTime: 2026-10-06 16:10:41
 * @LastEditors: 安知鱼
 */
package parser

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripTagsPolicy *bluemonday.Policy
var articlePolicy *bluemonday.Policy

func init() {
	// StripTagsPolicy 会移除所有的HTML标签
	stripTagsPolicy = bluemonday.StripTagsPolicy()

	articlePolicy = bluemonday.UGCPolicy()
	articlePolicy.AllowElements("table", "thead", "tbody", "tr", "th", "td", "figure", "figcaption")
	articlePolicy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
}

// StripHTML 接受一个HTML字符串，返回一个去除了所有标签的纯文本字符串。
func StripHTML(htmlContent string) string {
	return stripTagsPolicy.Sanitize(htmlContent)
}

// SanitizeArticleHTML 清理文章正文，移除脚本、事件属性等危险内容
func SanitizeArticleHTML(htmlContent string) string {
	return strings.TrimSpace(articlePolicy.Sanitize(htmlContent))
}
