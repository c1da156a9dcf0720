/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-24 16:10:53
 * @LastEditTime: 2026-10-03 16:10:58
 * @LastEditors: 安知鱼
 */
package strutil

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Truncate 安全地将UTF-8字符串截断到指定的长度，并在需要时添加省略号。
func Truncate(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLength]) + "..."
}

// UTF16Len 返回字符串按 UTF-16 编码单元计算的长度，与浏览器端 String.length 一致。
// 基本多文种平面外的字符（如 emoji）计为 2。
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// CollapseSpace 把连续空白压缩为单个空格并去掉首尾空白
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
