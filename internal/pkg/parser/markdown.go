/*
 * @Description: 评论 Markdown 渲染
 * @Author: 安知鱼
 * @Date: 2026-09-24 15:57:23
 * @LastEditTime: 2026-10-06 15:57:28
 * @LastEditors: 安知鱼
 */
package parser

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var mdParser goldmark.Markdown
var policy *bluemonday.Policy

func init() {
	// 评论是短文本，只启用与排版相关的扩展，不生成标题锚点
	mdParser = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,         // 支持 GitHub Flavored Markdown
			extension.Typographer, // 美化排版
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // 硬换行
			html.WithXHTML(),     // 渲染为 XHTML
			html.WithUnsafe(),    // 信任所有原始 HTML，后续由 bluemonday 清理
		),
	)

	// UGCPolicy 适用于用户生成的内容
	policy = bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span")
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
}

// MarkdownToHTML 将 Markdown 字符串转换为安全的 HTML 字符串
func MarkdownToHTML(mdContent string) (string, error) {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(mdContent), &buf); err != nil {
		return "", err
	}
	return policy.Sanitize(buf.String()), nil
}
