/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2026-09-21 12:08:15
 * @LastEditTime: 2026-10-12 19:06:30
 * @LastEditors: 安知鱼
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrInternalServer 表示服务器内部错误，可以由 Handler 转换为 500
	ErrInternalServer = errors.New("内部服务器错误")

	// ErrSessionNotFound 表示评论会话不存在或已过期，可以由 Handler 转换为 404
	ErrSessionNotFound = errors.New("评论会话不存在或已过期")

	// ErrContentUnavailable 表示内容数据集尚未加载
	ErrContentUnavailable = errors.New("内容数据集不可用")
)
