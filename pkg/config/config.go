/*
 * @Description: 统一配置管理 (手动加载 ini + 环境变量覆盖)
 * @Author: 安知鱼
 * @Date: 2026-09-21 00:21:55
 * @LastEditTime: 2026-10-14 13:00:20
 * @LastEditors: 安知鱼
 */
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
)

// DefaultConfigPath 默认配置文件路径
const DefaultConfigPath = "data/conf.ini"

// EnvPrefix 环境变量前缀，例如 BLOGCMS_SITE_URL
const EnvPrefix = "BLOGCMS"

const (
	KeyServerPort         = "System.Port"
	KeyServerDebug        = "System.Debug"
	KeySiteURL            = "Site.URL"
	KeySiteName           = "Site.Name"
	KeySiteDescription    = "Site.Description"
	KeyContentPath        = "Content.Path"
	KeyCommentSessionTTL  = "Comment.SessionTTL"
	KeyFeedItemCount      = "Feed.ItemCount"
	KeyCorsAllowedOrigins = "Cors.AllowedOrigins"
	KeyRedisAddr          = "Redis.Addr"
	KeyRedisPassword      = "Redis.Password"
	KeyRedisDB            = "Redis.DB"
)

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug,
	KeySiteURL, KeySiteName, KeySiteDescription,
	KeyContentPath, KeyCommentSessionTTL, KeyFeedItemCount,
	KeyCorsAllowedOrigins,
	KeyRedisAddr, KeyRedisPassword, KeyRedisDB,
}

// 内部默认值，在 ini 和环境变量都没有提供时生效
var defaults = map[string]interface{}{
	KeyServerPort:         "8091",
	KeyServerDebug:        false,
	KeySiteURL:            "https://blogcms.example.com",
	KeySiteName:           "BlogCMS",
	KeySiteDescription:    "Insights on technology, design, business and travel",
	KeyCommentSessionTTL:  30,
	KeyFeedItemCount:      20,
	KeyCorsAllowedOrigins: "*",
	KeyRedisDB:            0,
}

type Config struct {
	vp   *viper.Viper
	path string
}

// NewConfig 从默认路径加载配置
func NewConfig() (*Config, error) {
	return Load(DefaultConfigPath)
}

// Load 手动加载配置：ini 文件作为基础值，环境变量覆盖，文件不存在时创建默认文件。
func Load(filePath string) (*Config, error) {
	log := logger.Named("config")
	vp := viper.New()
	for k, v := range defaults {
		vp.SetDefault(k, v)
	}

	// --- 步骤 1: 使用 go-ini 从文件加载配置 ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("解析配置文件 '%s' 失败: %w", filePath, err)
		}
		log.Info("未找到配置文件，将创建默认配置文件", zap.String("path", filePath))
		if err := createDefaultConfigFile(filePath); err != nil {
			log.Warn("创建默认配置文件失败，将仅依赖环境变量或内部默认值", zap.Error(err))
		} else if iniCfg, err = ini.Load(filePath); err != nil {
			log.Warn("重新加载配置文件失败", zap.Error(err))
			iniCfg = nil
		}
	}

	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				if section.Name() == ini.DefaultSection {
					viperKey = key.Name()
				}
				// 空值不覆盖内部默认值
				if strings.TrimSpace(key.Value()) == "" {
					continue
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Debug("从配置文件加载了配置", zap.String("path", filePath))
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	for _, key := range allKeys {
		envVarName := EnvName(key)
		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Info("发现环境变量，已覆盖配置", zap.String("env", envVarName), zap.String("key", key))
		}
	}

	return &Config{vp: vp, path: filePath}, nil
}

// EnvName 返回配置键对应的环境变量名，例如 Site.URL -> BLOGCMS_SITE_URL
func EnvName(key string) string {
	envReplacer := strings.NewReplacer(".", "_")
	return fmt.Sprintf("%s_%s", EnvPrefix, envReplacer.Replace(strings.ToUpper(key)))
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// Set 覆盖单个配置项，命令行参数优先级最高
func (c *Config) Set(key string, value interface{}) {
	c.vp.Set(key, value)
}

// Path 返回实际使用的配置文件路径
func (c *Config) Path() string {
	return c.path
}

// SiteURL 返回去掉末尾斜杠的站点地址
func (c *Config) SiteURL() string {
	return strings.TrimRight(c.GetString(KeySiteURL), "/")
}

// SessionTTL 评论会话保留时长，配置单位为分钟
func (c *Config) SessionTTL() time.Duration {
	minutes := c.GetInt(KeyCommentSessionTTL)
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// AllowedOrigins 解析逗号分隔的跨域来源列表
func (c *Config) AllowedOrigins() []string {
	raw := c.GetString(KeyCorsAllowedOrigins)
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8091
Debug = false

[Site]
URL = https://blogcms.example.com
Name = BlogCMS

# 留空则使用内置数据集；指定 YAML 文件后会监听文件变化并热更新
[Content]
Path =

# 评论会话保留时长（分钟）
[Comment]
SessionTTL = 30

[Feed]
ItemCount = 20

[Cors]
AllowedOrigins = *

# Redis 配置（可选）
# 如果不配置或留空 Addr，系统将自动使用内存缓存
[Redis]
Addr =
Password =
DB = 0
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
