/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-21 12:16:18
 * @LastEditTime: 2026-10-11 19:08:52
 * @LastEditors: 安知鱼
 */
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anzhiyu-c/blogcms/pkg/constant"
)

// Response 是统一的API返回结构体
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Fail 失败响应
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    nil,
	})
}

// SuccessWithStatus 成功响应，但允许自定义 HTTP 状态码。
// 这对于返回 201 Created 或 202 Accepted 等状态非常有用。
func SuccessWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// StatusFromError 把业务错误映射为 HTTP 状态码
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, constant.ErrNotFound), errors.Is(err, constant.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, constant.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, constant.ErrContentUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FailWithError 按错误类型返回失败响应。未识别的错误只返回 fallback 文案，不暴露内部细节。
func FailWithError(c *gin.Context, err error, fallback string) {
	code := StatusFromError(err)
	message := fallback
	if code != http.StatusInternalServerError {
		message = err.Error()
	}
	_ = c.Error(err)
	Fail(c, code, message)
}
