package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func vcsBuildInfo(mainVersion string, settings map[string]string) *debug.BuildInfo {
	bi := &debug.BuildInfo{GoVersion: "go1.24.4", Main: debug.Module{Path: "github.com/anzhiyu-c/blogcms", Version: mainVersion}}
	for k, v := range settings {
		bi.Settings = append(bi.Settings, debug.BuildSetting{Key: k, Value: v})
	}
	return bi
}

func TestResolve(t *testing.T) {
	vcs := map[string]string{
		"vcs.revision": "1a2b3c4d5e6f7a8b9c0d",
		"vcs.time":     "2026-10-01T16:00:00+08:00",
		"vcs.modified": "true",
	}

	tests := []struct {
		name                  string
		version, commit, date string
		bi                    *debug.BuildInfo
		want                  BuildInfo
	}{
		{
			name: "没有任何信息",
			want: BuildInfo{Version: "dev"},
		},
		{
			name:    "ldflags 优先",
			version: "v1.2.0", commit: "ffffffffffff", date: "2026-09-30",
			bi:   vcsBuildInfo("v0.9.0", vcs),
			want: BuildInfo{Version: "v1.2.0", Commit: "fffffff", Date: "2026-09-30", Modified: true, GoVersion: "go1.24.4"},
		},
		{
			name: "从 vcs 信息推导",
			bi:   vcsBuildInfo("(devel)", vcs),
			want: BuildInfo{Version: "dev", Commit: "1a2b3c4", Date: "2026-10-01T08:00:00Z", Modified: true, GoVersion: "go1.24.4"},
		},
		{
			name: "go install 的模块版本",
			bi:   vcsBuildInfo("v1.3.1", nil),
			want: BuildInfo{Version: "v1.3.1", GoVersion: "go1.24.4"},
		},
		{
			name: "无法解析的 vcs 时间原样保留",
			bi:   vcsBuildInfo("", map[string]string{"vcs.time": "not-a-time", "vcs.modified": "false"}),
			want: BuildInfo{Version: "dev", Date: "not-a-time", GoVersion: "go1.24.4"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve(tt.version, tt.commit, tt.date, tt.bi)
			if tt.want.GoVersion == "" {
				assert.NotEmpty(t, got.GoVersion)
				got.GoVersion = ""
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildInfoString(t *testing.T) {
	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{"只有版本", BuildInfo{Version: "dev"}, "dev"},
		{"完整信息", BuildInfo{Version: "v1.2.0", Commit: "1a2b3c4", Modified: true, Date: "2026-10-01T08:00:00Z"},
			"v1.2.0 (commit 1a2b3c4, modified, built 2026-10-01T08:00:00Z)"},
		{"只有提交", BuildInfo{Version: "dev", Commit: "1a2b3c4"}, "dev (commit 1a2b3c4)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestGetBuildInfoIsStable(t *testing.T) {
	first := GetBuildInfo()
	assert.NotEmpty(t, first.Version)
	assert.Equal(t, first, GetBuildInfo())
	assert.Equal(t, first.String(), GetVersionString())
}
