/*
 * @Description: 文章分享链接
 * @Author: 安知鱼
 * @Date: 2026-09-27 14:02:51
 * @LastEditTime: 2026-10-08 10:26:13
 * @LastEditors: 安知鱼
 */
package share

import (
	"net/url"
	"strings"
)

// Links 一篇文章在各社交平台的分享地址
type Links struct {
	URL      string `json:"url"`
	Twitter  string `json:"twitter"`
	Facebook string `json:"facebook"`
	LinkedIn string `json:"linkedin"`
}

// ArticleURL 返回文章的规范地址
func ArticleURL(siteURL, id string) string {
	return strings.TrimRight(siteURL, "/") + "/blog/" + url.PathEscape(id)
}

// BuildLinks 根据页面地址与标题生成分享链接，参数均经过查询串转义
func BuildLinks(pageURL, title string) *Links {
	u := url.QueryEscape(pageURL)
	return &Links{
		URL:      pageURL,
		Twitter:  "https://twitter.com/intent/tweet?url=" + u + "&text=" + url.QueryEscape(title),
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + u,
		LinkedIn: "https://www.linkedin.com/sharing/share-offsite/?url=" + u,
	}
}
