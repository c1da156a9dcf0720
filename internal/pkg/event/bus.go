/*
 * @Description: 一个带固定Worker池的异步事件总线
 * @Author: 安知鱼
 * @Date: 2026-09-22 19:06:12
 * @LastEditTime: 2026-10-11 18:20:05
 * @LastEditors: 安知鱼
 */
package event

import (
	"sync"

	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
)

// 定义事件类型
type Topic string

const (
	// 评论会话事件
	SessionOpened    Topic = "session:opened"
	CommentSubmitted Topic = "comment:submitted"
	ReplySubmitted   Topic = "reply:submitted"
	// 内容数据集事件
	ContentReloaded Topic = "content:reloaded"
)

// 事件处理器函数类型
type Handler func(payload interface{})

// Event 是在通道中传递的事件结构
type Event struct {
	Topic   Topic
	Payload interface{}
}

// EventBus 实现了基于Worker池的异步事件总线
type EventBus struct {
	mu        sync.RWMutex
	handlers  map[Topic][]Handler
	eventChan chan Event     // 带缓冲的事件通道
	wg        sync.WaitGroup // 用于优雅关闭
	closed    bool
	log       *zap.Logger
}

// 定义Worker池和通道的配置
const (
	DefaultWorkerCount = 4    // 默认启动4个后台Worker
	DefaultChannelSize = 1024 // 默认事件通道缓冲区大小
)

// NewEventBus 创建并启动一个新的事件总线
func NewEventBus() *EventBus {
	return NewEventBusWithSize(DefaultWorkerCount, DefaultChannelSize)
}

// NewEventBusWithSize 使用指定的 Worker 数量和通道容量创建事件总线
func NewEventBusWithSize(workers, size int) *EventBus {
	if workers <= 0 {
		workers = DefaultWorkerCount
	}
	if size <= 0 {
		size = DefaultChannelSize
	}
	bus := &EventBus{
		handlers:  make(map[Topic][]Handler),
		eventChan: make(chan Event, size),
		log:       logger.Named("event_bus"),
	}
	bus.startWorkers(workers)
	return bus
}

// startWorkers 启动固定数量的后台worker
func (b *EventBus) startWorkers(count int) {
	for i := 0; i < count; i++ {
		b.wg.Add(1)
		go b.worker(i + 1)
	}
}

// worker 是消费者，不断从通道中读取并处理事件
func (b *EventBus) worker(workerID int) {
	defer b.wg.Done()
	b.log.Debug("worker started", zap.Int("worker_id", workerID))

	for event := range b.eventChan {
		b.mu.RLock()
		handlers := b.handlers[event.Topic]
		b.mu.RUnlock()

		for _, handler := range handlers {
			b.dispatch(event, handler)
		}
	}
	b.log.Debug("worker stopped", zap.Int("worker_id", workerID))
}

// dispatch 执行单个处理器，处理器 panic 不会拖垮 worker
func (b *EventBus) dispatch(event Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked",
				zap.String("topic", string(event.Topic)),
				zap.Any("panic", r),
			)
		}
	}()
	handler(event.Payload)
}

// Subscribe 订阅一个事件
func (b *EventBus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], handler)
}

// Publish 发布一个事件，非阻塞；通道已满或总线已关闭时丢弃事件并返回 false
func (b *EventBus) Publish(topic Topic, payload interface{}) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return false
	}

	select {
	case b.eventChan <- Event{Topic: topic, Payload: payload}:
		return true
	default:
		b.log.Warn("event channel is full, dropping event", zap.String("topic", string(topic)))
		return false
	}
}

// Shutdown 优雅地关闭事件总线，可重复调用
func (b *EventBus) Shutdown() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	close(b.eventChan) // 关闭通道，这将使worker的range循环结束
	b.mu.Unlock()

	b.wg.Wait()
	b.log.Info("all event workers have stopped")
}
