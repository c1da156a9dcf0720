/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-30 16:09:46
 * @LastEditTime: 2026-10-12 10:03:36
 * @LastEditors: 安知鱼
 */
// internal/app/task/jobs.go
package task

// Job 与 cron.Job 接口兼容。
type Job interface {
	Run()
	Name() string
}
