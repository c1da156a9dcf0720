/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-21 00:21:55
 * @LastEditTime: 2026-10-17 12:19:06
 * @LastEditors: 安知鱼
 */
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anzhiyu-c/blogcms/cmd/server"
	"github.com/anzhiyu-c/blogcms/internal/infra/persistence/static"
	"github.com/anzhiyu-c/blogcms/internal/pkg/version"
)

// @title           BlogCMS API
// @version         1.0
// @description     博客文章与评论会话接口文档

// @contact.name   安知鱼

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8091
// @BasePath  /api

var (
	configPath string
	debug      bool
)

// rootCmd 不带子命令时等同于 serve
var rootCmd = &cobra.Command{
	Use:           "blogcms",
	Short:         "BlogCMS 博客内容与评论会话服务",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 服务",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

var exportContentCmd = &cobra.Command{
	Use:   "export-content <dir>",
	Short: "导出内置内容数据集，修改后通过 Content.Path 加载",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := exportContent(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ 内容数据集已导出到: %s\n", path)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "打印版本信息",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionString())
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVarP(&configPath, "config", "c", "", "配置文件路径 (默认 data/conf.ini)")
		c.Flags().BoolVar(&debug, "debug", false, "以调试模式运行，覆盖配置中的 System.Debug")
	}
	rootCmd.AddCommand(serveCmd, exportContentCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	// 调用位于 cmd/server 包中的 NewApp 函数来构建整个应用
	app, cleanup, err := server.NewApp(server.Options{ConfigPath: configPath, Debug: debug})
	if err != nil {
		return fmt.Errorf("应用初始化失败: %w", err)
	}
	defer cleanup()
	defer app.Stop()

	app.PrintBanner()
	if err := app.Run(); err != nil {
		return fmt.Errorf("应用运行失败: %w", err)
	}
	return nil
}

// exportContent 将内置数据集写入 dir，返回写入的文件路径
func exportContent(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建目录失败: %w", err)
	}
	target := filepath.Join(dir, static.DefaultDatasetName)
	if _, err := os.Stat(target); err == nil {
		return "", fmt.Errorf("文件 %s 已存在，拒绝覆盖", target)
	}
	if err := os.WriteFile(target, static.DefaultDataset(), 0644); err != nil {
		return "", fmt.Errorf("写入文件 %s 失败: %w", target, err)
	}
	return target, nil
}
