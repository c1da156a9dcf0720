/*
 * @Description: 内存缓存服务实现（用于 Redis 不可用时的降级方案）
 * @Author: 安知鱼
 * @Date: 2026-09-22 00:00:00
 * @LastEditTime: 2026-10-12 20:45:43
 * @LastEditors: 安知鱼
 */
package utility

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// cacheItem 缓存项结构
type cacheItem struct {
	value      string
	expiration time.Time
	hasExpiry  bool
}

// isExpired 检查是否过期
func (item *cacheItem) isExpired(now time.Time) bool {
	return item.hasExpiry && now.After(item.expiration)
}

// memoryCacheService 是基于内存的缓存服务实现
type memoryCacheService struct {
	data     sync.Map
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewMemoryCacheService 创建内存缓存服务实例
func NewMemoryCacheService() CacheService {
	return newMemoryCacheService(time.Minute)
}

func newMemoryCacheService(cleanupInterval time.Duration) *memoryCacheService {
	svc := &memoryCacheService{
		ticker: time.NewTicker(cleanupInterval),
		done:   make(chan struct{}),
		now:    time.Now,
	}
	go svc.cleanupExpired()
	return svc
}

// cleanupExpired 定期清理过期的缓存项
func (s *memoryCacheService) cleanupExpired() {
	for {
		select {
		case <-s.ticker.C:
			now := s.now()
			s.data.Range(func(key, value interface{}) bool {
				if item, ok := value.(*cacheItem); ok && item.isExpired(now) {
					s.data.CompareAndDelete(key, value)
				}
				return true
			})
		case <-s.done:
			return
		}
	}
}

// Stop 停止清理任务，可重复调用
func (s *memoryCacheService) Stop() {
	s.stopOnce.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

// load 读取未过期的缓存项
func (s *memoryCacheService) load(key string) (*cacheItem, bool) {
	value, ok := s.data.Load(key)
	if !ok {
		return nil, false
	}
	item := value.(*cacheItem)
	if item.isExpired(s.now()) {
		s.data.CompareAndDelete(key, value)
		return nil, false
	}
	return item, true
}

func (s *memoryCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	item := &cacheItem{
		value:     toString(value),
		hasExpiry: expiration > 0,
	}
	if expiration > 0 {
		item.expiration = s.now().Add(expiration)
	}
	s.data.Store(key, item)
	return nil
}

func (s *memoryCacheService) Get(ctx context.Context, key string) (string, error) {
	item, ok := s.load(key)
	if !ok {
		return "", nil
	}
	return item.value, nil
}

func (s *memoryCacheService) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		s.data.Delete(key)
	}
	return nil
}

// Increment 原子地增加一个键的值，保留原有过期时间
func (s *memoryCacheService) Increment(ctx context.Context, key string) (int64, error) {
	for {
		value, loaded := s.data.LoadOrStore(key, &cacheItem{value: "1"})
		if !loaded {
			return 1, nil
		}

		item := value.(*cacheItem)
		if item.isExpired(s.now()) {
			if s.data.CompareAndSwap(key, value, &cacheItem{value: "1"}) {
				return 1, nil
			}
			continue
		}

		current, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("键 '%s' 的值不是整数: %w", key, err)
		}
		next := &cacheItem{
			value:      strconv.FormatInt(current+1, 10),
			expiration: item.expiration,
			hasExpiry:  item.hasExpiry,
		}
		// CAS 失败说明有并发写入，重试
		if s.data.CompareAndSwap(key, value, next) {
			return current + 1, nil
		}
	}
}

func (s *memoryCacheService) Expire(ctx context.Context, key string, expiration time.Duration) error {
	for {
		value, ok := s.data.Load(key)
		if !ok {
			return nil
		}
		item := value.(*cacheItem)
		if item.isExpired(s.now()) {
			s.data.CompareAndDelete(key, value)
			return nil
		}
		next := &cacheItem{
			value:      item.value,
			expiration: s.now().Add(expiration),
			hasExpiry:  true,
		}
		if s.data.CompareAndSwap(key, value, next) {
			return nil
		}
	}
}

// Scan 查找匹配的键（只支持 * 通配符）
func (s *memoryCacheService) Scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	now := s.now()
	s.data.Range(func(key, value interface{}) bool {
		keyStr := key.(string)
		if item, ok := value.(*cacheItem); ok && !item.isExpired(now) && matchPattern(keyStr, pattern) {
			keys = append(keys, keyStr)
		}
		return true
	})
	return keys, nil
}

// matchPattern 简单的模式匹配（支持 * 通配符）
func matchPattern(s, pattern string) bool {
	if !strings.Contains(pattern, "*") {
		return s == pattern
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]

	last := parts[len(parts)-1]
	for _, part := range parts[1 : len(parts)-1] {
		pos := strings.Index(s, part)
		if pos == -1 {
			return false
		}
		s = s[pos+len(part):]
	}
	return strings.HasSuffix(s, last)
}

func toString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
