/*
 * @Description: 进程级结构化日志
 * @Author: 安知鱼
 * @Date: 2026-09-21 14:02:11
 * @LastEditTime: 2026-10-08 09:40:26
 * @LastEditors: 安知鱼
 */
package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Init 按运行模式构建生产环境日志器，并替换进程级实例。
func Init(debug bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("初始化日志器失败: %w", err)
	}
	Set(l)
	return l, nil
}

// Set 替换进程级日志器，测试中可传入 zap.NewNop()。
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// L 返回当前进程级日志器。
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Named 返回带模块名的子日志器。
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync 刷新缓冲区，进程退出前调用。
func Sync() {
	_ = L().Sync()
}
