/*
 * @Description: 内容数据源：内置数据集或外部 YAML 文件，外部文件支持热更新
 * @Author: 安知鱼
 * @Date: 2026-09-23 11:40:02
 * @LastEditTime: 2026-10-15 20:31:55
 * @LastEditors: 安知鱼
 */
package static

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/constant"
)

// ReloadFunc 在外部数据集成功重新加载后被调用
type ReloadFunc func(ds *Dataset)

// Source 持有当前生效的数据集，读取无锁
type Source struct {
	path    string
	current atomic.Pointer[Dataset]
	log     *zap.Logger

	debounce time.Duration

	mu       sync.Mutex
	onReload []ReloadFunc
	watcher  *fsnotify.Watcher
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSource 加载数据集。path 为空时使用内置数据集。
func NewSource(path string) (*Source, error) {
	s := &Source{
		path:     path,
		log:      logger.Named("content"),
		debounce: 300 * time.Millisecond,
	}

	if path == "" {
		ds, err := Decode(defaultDataset)
		if err != nil {
			return nil, fmt.Errorf("内置数据集无效: %w", err)
		}
		s.current.Store(ds)
		s.log.Info("✅ 已加载内置内容数据集", zap.Int("posts", len(ds.Posts)), zap.Int("comments", len(ds.Comments)))
		return s, nil
	}

	ds, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(ds)
	s.log.Info("✅ 已加载外部内容数据集", zap.String("path", path), zap.Int("posts", len(ds.Posts)))
	return s, nil
}

// NewSourceFromDataset 直接使用给定数据集，主要用于测试
func NewSourceFromDataset(ds *Dataset) *Source {
	s := &Source{log: logger.Named("content")}
	s.current.Store(ds)
	return s
}

func loadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取内容数据集 '%s' 失败: %w", path, err)
	}
	return Decode(data)
}

// Dataset 返回当前生效的数据集
func (s *Source) Dataset() (*Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, constant.ErrContentUnavailable
	}
	return ds, nil
}

// OnReload 注册热更新回调
func (s *Source) OnReload(fn ReloadFunc) {
	s.mu.Lock()
	s.onReload = append(s.onReload, fn)
	s.mu.Unlock()
}

// Reload 重新读取外部文件。失败时保留之前的数据集。
func (s *Source) Reload() error {
	if s.path == "" {
		return nil
	}
	ds, err := loadFile(s.path)
	if err != nil {
		s.log.Warn("⚠️ 内容数据集重新加载失败，继续使用旧数据", zap.String("path", s.path), zap.Error(err))
		return err
	}
	s.current.Store(ds)
	s.log.Info("🔄 内容数据集已重新加载", zap.String("path", s.path), zap.Int("posts", len(ds.Posts)))

	s.mu.Lock()
	callbacks := append([]ReloadFunc(nil), s.onReload...)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(ds)
	}
	return nil
}

// Watch 开始监听外部文件，非阻塞。使用内置数据集时什么也不做。
// 监听的是文件所在目录，编辑器以重命名方式保存文件时也能收到事件。
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	if err := w.Add(filepath.Dir(s.path)); err != nil {
		w.Close()
		return fmt.Errorf("监听目录 '%s' 失败: %w", filepath.Dir(s.path), err)
	}

	s.watcher = w
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	go s.run(ctx, w, s.stopCh, s.doneCh)
	s.log.Info("开始监听内容数据集变化", zap.String("path", s.path))
	return nil
}

// Stop 停止监听并等待后台 goroutine 退出
func (s *Source) Stop() {
	s.mu.Lock()
	w, stopCh, doneCh := s.watcher, s.stopCh, s.doneCh
	s.watcher = nil
	s.mu.Unlock()
	if w == nil {
		return
	}

	close(stopCh)
	<-doneCh
	if err := w.Close(); err != nil {
		s.log.Warn("关闭文件监听器出错", zap.Error(err))
	}
}

func (s *Source) run(ctx context.Context, w *fsnotify.Watcher, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	target := filepath.Clean(s.path)
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			// 合并短时间内的多次保存
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			s.log.Warn("文件监听器错误", zap.Error(err))
		case <-timerC:
			timerC = nil
			_ = s.Reload()
		}
	}
}
