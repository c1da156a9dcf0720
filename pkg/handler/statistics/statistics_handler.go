/*
 * @Description: 评论活动统计API处理器
 * @Author: 安知鱼
 * @Date: 2026-09-29 15:30:00
 * @LastEditTime: 2026-10-13 20:02:33
 * @LastEditors: 安知鱼
 */
package statistics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/response"
	"github.com/anzhiyu-c/blogcms/pkg/service/statistics"
)

// StatisticsHandler 统计API处理器
type StatisticsHandler struct {
	statService statistics.ActivityStatService
}

// NewStatisticsHandler 创建统计处理器实例
func NewStatisticsHandler(statService statistics.ActivityStatService) *StatisticsHandler {
	return &StatisticsHandler{
		statService: statService,
	}
}

// GetTodayActivity 获取今日评论活动
// @Summary      获取今日评论活动
// @Description  今日（UTC）开启的会话数、评论数、回复数，以及最近一次统计的活跃会话数
// @Tags         访问统计
// @Produce      json
// @Success      200  {object}  response.Response{data=statistics.DailyActivity}  "获取成功"
// @Failure      500  {object}  response.Response  "获取失败"
// @Router       /public/statistics [get]
func (h *StatisticsHandler) GetTodayActivity(c *gin.Context) {
	stats, err := h.statService.Today(c.Request.Context())
	if err != nil {
		logger.Named("statistics_handler").Error("获取统计数据失败", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	response.Success(c, stats, "获取统计数据成功")
}
