// internal/app/task/broker.go
package task

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/service/rss"
	"github.com/anzhiyu-c/blogcms/pkg/service/statistics"
)

const (
	// ScheduleFeedWarmup 每小时整点刷新 RSS 缓存，与缓存有效期一致
	ScheduleFeedWarmup = "0 0 * * * *"
	// ScheduleActiveSessions 每分钟统计一次活跃会话
	ScheduleActiveSessions = "0 * * * * *"

	jobQueueSize = 64
)

// Broker 是整个后台任务模块的核心协调者。
type Broker struct {
	cron        *cron.Cron
	logger      *zap.Logger
	jobQueue    chan Job
	workers     sync.WaitGroup
	rssSvc      rss.Service
	rssOptions  func() *rss.RSSOptions
	sessions    SessionCounter
	statService statistics.ActivityStatService

	mu      sync.RWMutex
	stopped bool
}

// NewBroker 是 Broker 的构造函数。
func NewBroker(
	rssSvc rss.Service,
	rssOptions func() *rss.RSSOptions,
	sessions SessionCounter,
	statService statistics.ActivityStatService,
) *Broker {
	log := logger.Named("task_broker")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(log),
			NewLoggingWrapper(log),
			cron.SkipIfStillRunning(cron.DiscardLogger),
		),
	)

	broker := &Broker{
		cron:        c,
		logger:      log,
		jobQueue:    make(chan Job, jobQueueSize),
		rssSvc:      rssSvc,
		rssOptions:  rssOptions,
		sessions:    sessions,
		statService: statService,
	}

	broker.startWorkerPool()

	return broker
}

// startWorkerPool 启动固定数量的 worker goroutine 来处理任务。
func (b *Broker) startWorkerPool() {
	workerCount := runtime.NumCPU()
	if workerCount > 4 {
		workerCount = 4
	}
	b.logger.Debug("Starting task worker pool", zap.Int("concurrency", workerCount))

	for i := 0; i < workerCount; i++ {
		workerID := i + 1
		b.workers.Add(1)
		go func() {
			defer b.workers.Done()
			for job := range b.jobQueue {
				jobWithWrappers := cron.NewChain(
					NewPanicRecoveryWrapper(b.logger),
					NewLoggingWrapper(b.logger),
				).Then(job)

				b.logger.Debug("Worker picked up a job", zap.Int("worker_id", workerID), zap.String("job_name", job.Name()))
				jobWithWrappers.Run()
			}
		}()
	}
}

// RegisterCronJobs 注册所有周期性任务。
func (b *Broker) RegisterCronJobs() error {
	b.logger.Info("Registering all periodic jobs...")

	feedJob := NewFeedWarmupJob(b.rssSvc, b.rssOptions, b.logger)
	if _, err := b.cron.AddJob(ScheduleFeedWarmup, feedJob); err != nil {
		return fmt.Errorf("注册 '%s' 失败: %w", feedJob.Name(), err)
	}
	b.logger.Info("-> Successfully registered 'FeedWarmupJob'", zap.String("schedule", "every hour"))

	sessionJob := NewActiveSessionJob(b.sessions, b.statService, b.logger)
	if _, err := b.cron.AddJob(ScheduleActiveSessions, sessionJob); err != nil {
		return fmt.Errorf("注册 '%s' 失败: %w", sessionJob.Name(), err)
	}
	b.logger.Info("-> Successfully registered 'ActiveSessionJob'", zap.String("schedule", "every minute"))

	return nil
}

// Dispatch 将任务发送到队列中。队列已满或 Broker 已停止时丢弃任务并返回 false。
func (b *Broker) Dispatch(job Job) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.stopped {
		return false
	}
	select {
	case b.jobQueue <- job:
		return true
	default:
		b.logger.Warn("⚠️ 任务队列已满，丢弃任务", zap.String("job_name", job.Name()))
		return false
	}
}

// DispatchFeedWarmup 派发一次 RSS 缓存预热，内容数据集更新后调用。
func (b *Broker) DispatchFeedWarmup() bool {
	return b.Dispatch(NewFeedWarmupJob(b.rssSvc, b.rssOptions, b.logger))
}

// Start 启动 cron 调度器，并立即预热一次 RSS。
func (b *Broker) Start() {
	b.logger.Info("Task broker started.")
	b.cron.Start()
	b.DispatchFeedWarmup()
}

// Stop 优雅地停止 cron 调度器和所有 worker。可重复调用。
func (b *Broker) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	b.mu.Unlock()

	b.logger.Info("Stopping task broker...")
	ctx := b.cron.Stop()
	<-ctx.Done()
	close(b.jobQueue)
	b.workers.Wait()
	b.logger.Info("Task broker gracefully stopped.")
}
