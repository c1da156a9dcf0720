/*
 * @Description: 评论者头像：按名字长度从固定色板取背景色
 * @Author: 安知鱼
 * @Date: 2026-09-25 15:03:27
 * @LastEditTime: 2026-10-04 12:21:50
 * @LastEditors: 安知鱼
 */
package comment

import (
	"fmt"
	"strings"

	"github.com/anzhiyu-c/blogcms/internal/pkg/strutil"
)

// AvatarPalette 头像背景色板
var AvatarPalette = []string{"3B82F6", "10B981", "F59E0B", "EF4444", "8B5CF6", "06B6D4"}

const avatarEndpoint = "https://ui-avatars.com/api/"

// PaletteIndex 名字长度对色板大小取模。长度按 UTF-16 单元计算，与浏览器端一致。
// 这只是外观上的映射，不追求分布均匀。
func PaletteIndex(name string) int {
	return strutil.UTF16Len(name) % len(AvatarPalette)
}

// AvatarColor 返回名字对应的背景色
func AvatarColor(name string) string {
	return AvatarPalette[PaletteIndex(name)]
}

// AvatarURL 生成 ui-avatars 头像地址
func AvatarURL(name string) string {
	return fmt.Sprintf("%s?name=%s&background=%s&color=ffffff&size=40",
		avatarEndpoint, encodeURIComponent(name), AvatarColor(name))
}

// encodeURIComponent 按浏览器 encodeURIComponent 的规则转义
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		b := s[i]
		if isUnreserved(b) {
			sb.WriteByte(b)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[b>>4])
		sb.WriteByte(hex[b&0x0F])
	}
	return sb.String()
}

func isUnreserved(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", b) >= 0
}
