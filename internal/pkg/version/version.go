/*
 * @Description: 构建信息。优先使用 ldflags 注入的值，缺失时从 go 工具链写入的 vcs.* 信息推导
 * @Author: 安知鱼
 * @Date: 2026-09-26 09:40:18
 * @LastEditTime: 2026-10-19 11:21:40
 * @LastEditors: 安知鱼
 */
package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// 构建时通过 ldflags 注入，例如
//
//	-X github.com/anzhiyu-c/blogcms/internal/pkg/version.Version=v1.2.0
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

const (
	devVersion     = "dev"
	shortCommitLen = 7
)

// BuildInfo 包含构建信息
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	Modified  bool   `json:"modified,omitempty"` // 构建时工作区有未提交的修改
	GoVersion string `json:"go_version"`
}

var (
	resolveOnce sync.Once
	resolved    BuildInfo
)

// GetBuildInfo 返回当前二进制的构建信息，结果在进程内只计算一次
func GetBuildInfo() BuildInfo {
	resolveOnce.Do(func() {
		bi, _ := debug.ReadBuildInfo()
		resolved = resolve(Version, Commit, Date, bi)
	})
	return resolved
}

// GetVersion 返回应用版本号
func GetVersion() string {
	return GetBuildInfo().Version
}

// GetVersionString 返回一行可读的版本描述，例如
// "v1.2.0 (commit 1a2b3c4, modified, built 2026-10-01T08:00:00Z)"
func GetVersionString() string {
	return GetBuildInfo().String()
}

// String 实现 fmt.Stringer
func (b BuildInfo) String() string {
	var details []string
	if b.Commit != "" {
		details = append(details, "commit "+b.Commit)
	}
	if b.Modified {
		details = append(details, "modified")
	}
	if b.Date != "" {
		details = append(details, "built "+b.Date)
	}
	if len(details) == 0 {
		return b.Version
	}
	return b.Version + " (" + strings.Join(details, ", ") + ")"
}

// resolve 合并 ldflags 与 debug.BuildInfo。bi 为 nil 时只使用 ldflags。
func resolve(version, commit, date string, bi *debug.BuildInfo) BuildInfo {
	info := BuildInfo{
		Version:   version,
		Commit:    shortCommit(commit),
		Date:      date,
		GoVersion: runtime.Version(),
	}

	if bi != nil {
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}

		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if info.Commit == "" {
			info.Commit = shortCommit(settings["vcs.revision"])
		}
		if info.Date == "" {
			info.Date = normalizeTime(settings["vcs.time"])
		}
		info.Modified = settings["vcs.modified"] == "true"
	}

	if info.Version == "" {
		info.Version = devVersion
	}
	return info
}

func shortCommit(rev string) string {
	rev = strings.TrimSpace(rev)
	if len(rev) > shortCommitLen {
		return rev[:shortCommitLen]
	}
	return rev
}

// normalizeTime 统一为 UTC 的 RFC3339，无法解析时原样返回
func normalizeTime(v string) string {
	if v == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return v
	}
	return t.UTC().Format(time.RFC3339)
}
