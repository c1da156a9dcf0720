/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-25 01:41:43
 * @LastEditTime: 2026-10-06 10:13:11
 * @LastEditors: 安知鱼
 */
package utility

import "sync"

// KeyLocker 提供了一个基于字符串键（例如，评论会话ID）的锁机制。
// 它能确保对同一个键的读-改-写操作不会被并发执行。
// 每个键的互斥锁按引用计数管理，没有持有者和等待者时会被回收。
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyLocker 创建一个新的 KeyLocker 实例。
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{
		locks: make(map[string]*keyLock),
	}
}

// Lock 为给定的键获取一个锁。
// 如果另一个goroutine已经持有了该键的锁，当前goroutine将会阻塞等待，直到锁被释放。
func (l *KeyLocker) Lock(key string) {
	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &keyLock{}
		l.locks[key] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()
}

// Unlock 释放给定键的锁。
func (l *KeyLocker) Unlock(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		return
	}
	lock.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

// Len 返回当前被持有或等待中的键数量
func (l *KeyLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
