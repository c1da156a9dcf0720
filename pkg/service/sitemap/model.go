/*
 * @Description: 站点地图数据模型
 * @Author: 安知鱼
 * @Date: 2026-09-28 11:20:00
 * @LastEditTime: 2026-10-09 18:30:12
 * @LastEditors: 安知鱼
 */
package sitemap

import (
	"encoding/xml"
	"time"
)

// URLSet 站点地图根元素
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL 站点地图URL条目
type URL struct {
	Location     string  `xml:"loc"`
	LastModified string  `xml:"lastmod,omitempty"`
	ChangeFreq   string  `xml:"changefreq,omitempty"`
	Priority     float32 `xml:"priority,omitempty"`
}

// ChangeFrequency 更新频率枚举
type ChangeFrequency string

const (
	ChangeFreqDaily   ChangeFrequency = "daily"
	ChangeFreqWeekly  ChangeFrequency = "weekly"
	ChangeFreqMonthly ChangeFrequency = "monthly"
	ChangeFreqYearly  ChangeFrequency = "yearly"
)

// SitemapItem 站点地图条目
type SitemapItem struct {
	URL          string
	LastModified time.Time
	ChangeFreq   ChangeFrequency
	Priority     float32
}

// ToURL 转换为URL结构
func (s *SitemapItem) ToURL() URL {
	return URL{
		Location:     s.URL,
		LastModified: s.LastModified.Format(time.RFC3339),
		ChangeFreq:   string(s.ChangeFreq),
		Priority:     s.Priority,
	}
}
