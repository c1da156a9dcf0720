/*
 * @Description: 提供了用于 cron 任务的健壮的中间件（装饰器）。
 * @Author: 安知鱼
 * @Date: 2026-09-30 22:36:09
 * @LastEditTime: 2026-10-12 00:32:02
 * @LastEditors: 安知鱼
 */
package task

import (
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobWrapper 是 cron.JobWrapper 的类型别名，用于简化代码。
type JobWrapper = cron.JobWrapper

// NewLoggingWrapper 创建一个日志装饰器。
// 每次执行生成唯一的执行ID，记录任务的开始、结束与耗时。
func NewLoggingWrapper(logger *zap.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			jobLogger := logger.With(
				zap.String("job_name", getJobName(j)),
				zap.String("execution_id", uuid.New().String()),
			)

			startTime := time.Now()
			jobLogger.Debug("Job execution started")

			j.Run()

			jobLogger.Debug("Job execution finished", zap.Duration("duration", time.Since(startTime)))
		})
	}
}

// NewPanicRecoveryWrapper 创建一个 panic 恢复装饰器。
// 任务 panic 时记录错误与堆栈，不会导致整个应用程序崩溃。
func NewPanicRecoveryWrapper(logger *zap.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		return cron.FuncJob(func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("💥 Job panicked",
						zap.String("job_name", getJobName(j)),
						zap.Any("panic", r),
						zap.String("stack_trace", string(debug.Stack())),
					)
				}
			}()

			j.Run()
		})
	}
}

// getJobName 优先使用任务自定义的 Name() 方法，否则通过反射获取其结构体名称。
func getJobName(j cron.Job) string {
	if namedJob, ok := j.(interface{ Name() string }); ok {
		return namedJob.Name()
	}

	// 例如，对于 *task.MyJob 类型，它会返回 "task.MyJob"
	jobType := reflect.TypeOf(j)
	if jobType.Kind() == reflect.Ptr {
		return jobType.Elem().String()
	}
	return jobType.String()
}
