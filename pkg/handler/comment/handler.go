/*
 * @Description: 评论会话相关的 HTTP 与 WebSocket 处理器
 * @Author: 安知鱼
 * @Date: 2026-09-26 14:18:22
 * @LastEditTime: 2026-10-19 10:42:07
 * @LastEditors: 安知鱼
 */
package comment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/anzhiyu-c/blogcms/internal/pkg/logger"
	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
	"github.com/anzhiyu-c/blogcms/pkg/handler/comment/dto"
	"github.com/anzhiyu-c/blogcms/pkg/response"
	"github.com/anzhiyu-c/blogcms/pkg/service/comment"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

// Handler 封装评论会话的处理器。
// 会话的生命周期、串行化与通知都在 comment.Service 中完成，这里只做协议转换。
type Handler struct {
	svc        *comment.Service
	upgrader   websocket.Upgrader
	pingPeriod time.Duration
	log        *zap.Logger
}

// NewHandler 是 Handler 的构造函数
func NewHandler(svc *comment.Service) *Handler {
	return &Handler{
		svc:        svc,
		pingPeriod: wsPingPeriod,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// 跨域由 CORS 中间件统一控制
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: logger.Named("comment_handler"),
	}
}

// OpenSession
// @Summary      开启评论会话
// @Description  为文章开启一个新的评论会话，评论区以文章已有评论为初始内容
// @Tags         公开评论
// @Produce      json
// @Param        id path string true "文章ID"
// @Success      201 {object} response.Response{data=dto.SessionResponse} "成功响应"
// @Failure      404 {object} response.Response "文章不存在"
// @Router       /public/articles/{id}/comment-sessions [post]
func (h *Handler) OpenSession(c *gin.Context) {
	sess, err := h.svc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FailWithError(c, err, "开启评论会话失败")
		return
	}
	response.SuccessWithStatus(c, http.StatusCreated, dto.FromSession(sess), "评论会话已开启")
}

// GetSession
// @Summary      获取评论会话
// @Description  获取会话当前的评论区快照，访问会刷新会话过期时间
// @Tags         公开评论
// @Produce      json
// @Param        sid path string true "会话ID"
// @Success      200 {object} response.Response{data=dto.SessionResponse} "成功响应"
// @Failure      404 {object} response.Response "会话不存在或已过期"
// @Router       /public/comment-sessions/{sid} [get]
func (h *Handler) GetSession(c *gin.Context) {
	sess, err := h.svc.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		response.FailWithError(c, err, "获取评论会话失败")
		return
	}
	response.Success(c, dto.FromSession(sess), "获取成功")
}

// CloseSession
// @Summary      关闭评论会话
// @Tags         公开评论
// @Param        sid path string true "会话ID"
// @Success      200 {object} response.Response "成功响应"
// @Failure      404 {object} response.Response "会话不存在或已过期"
// @Router       /public/comment-sessions/{sid} [delete]
func (h *Handler) CloseSession(c *gin.Context) {
	if err := h.svc.Close(c.Request.Context(), c.Param("sid")); err != nil {
		response.FailWithError(c, err, "关闭评论会话失败")
		return
	}
	response.Success(c, nil, "评论会话已关闭")
}

// SubmitComment
// @Summary      发表评论
// @Description  在会话中追加一条顶级评论。作者、邮箱、内容任一为空白时不会保存，返回 accepted=false
// @Tags         公开评论
// @Accept       json
// @Produce      json
// @Param        sid path string true "会话ID"
// @Param        body body dto.SubmitCommentRequest true "评论内容"
// @Success      200 {object} response.Response{data=dto.SubmitResponse} "成功响应"
// @Failure      400 {object} response.Response "请求体格式错误"
// @Failure      404 {object} response.Response "会话不存在或已过期"
// @Router       /public/comment-sessions/{sid}/comments [post]
func (h *Handler) SubmitComment(c *gin.Context) {
	var req dto.SubmitCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求体格式错误: "+err.Error())
		return
	}

	res, err := h.svc.SubmitComment(c.Request.Context(), c.Param("sid"), model.SubmitCommentRequest{
		Author:  req.Author,
		Email:   req.Email,
		Content: req.Content,
	})
	if err != nil {
		response.FailWithError(c, err, "发表评论失败")
		return
	}
	response.Success(c, dto.FromSubmitResult(res), submitMessage(res.Accepted))
}

// SubmitReply
// @Summary      回复评论
// @Description  回复会话中的一条顶级评论。内容为空白或父评论不是顶级评论时不会保存，返回 accepted=false
// @Tags         公开评论
// @Accept       json
// @Produce      json
// @Param        sid path string true "会话ID"
// @Param        cid path string true "顶级评论ID"
// @Param        body body dto.SubmitReplyRequest true "回复内容"
// @Success      200 {object} response.Response{data=dto.SubmitResponse} "成功响应"
// @Failure      400 {object} response.Response "请求体格式错误"
// @Failure      404 {object} response.Response "会话不存在或已过期"
// @Router       /public/comment-sessions/{sid}/comments/{cid}/replies [post]
func (h *Handler) SubmitReply(c *gin.Context) {
	var req dto.SubmitReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求体格式错误: "+err.Error())
		return
	}

	res, err := h.svc.SubmitReply(c.Request.Context(), c.Param("sid"), c.Param("cid"), req.Content)
	if err != nil {
		response.FailWithError(c, err, "回复评论失败")
		return
	}
	response.Success(c, dto.FromSubmitResult(res), submitMessage(res.Accepted))
}

func submitMessage(accepted bool) string {
	if accepted {
		return "提交成功"
	}
	return "内容不完整，未保存"
}

// GetAvatar
// @Summary      获取评论者头像
// @Tags         公开评论
// @Produce      json
// @Param        name query string false "评论者名字"
// @Success      200 {object} response.Response{data=dto.AvatarResponse} "成功响应"
// @Router       /public/avatar [get]
func (h *Handler) GetAvatar(c *gin.Context) {
	response.Success(c, dto.NewAvatar(c.Query("name")), "获取成功")
}

// Watch
// @Summary      订阅评论区变更
// @Description  WebSocket 连接。连接建立后先推送当前快照，之后每次提交成功推送最新快照；会话关闭或过期时服务端关闭连接
// @Tags         公开评论
// @Param        sid path string true "会话ID"
// @Router       /public/comment-sessions/{sid}/ws [get]
func (h *Handler) Watch(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := c.Param("sid")

	// 先订阅再读取快照，两者之间的提交不会丢失
	updates, cancel, err := h.svc.Subscribe(ctx, sessionID)
	if err != nil {
		response.FailWithError(c, err, "订阅评论会话失败")
		return
	}
	defer cancel()
	sess, err := h.svc.Get(ctx, sessionID)
	if err != nil {
		response.FailWithError(c, err, "订阅评论会话失败")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已经写回了错误响应
		h.log.Debug("WebSocket 握手失败", zap.String("session_id", sessionID), zap.Error(err))
		return
	}
	defer conn.Close()

	// 读循环只负责处理控制帧并感知客户端断开
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.writeJSON(conn, dto.FromThread(sess.Thread)); err != nil {
		return
	}

	ticker := time.NewTicker(h.pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			return
		case thread, ok := <-updates:
			if !ok {
				h.closeConn(conn, "session closed")
				return
			}
			if err := h.writeJSON(conn, dto.FromThread(thread)); err != nil {
				return
			}
		case <-ticker.C:
			// 会话可能已按 TTL 过期，过期后不再保持连接
			if err := h.svc.Check(ctx, sessionID); err != nil {
				if comment.IsNotFound(err) {
					h.closeConn(conn, "session expired")
					return
				}
				h.log.Warn("检查评论会话失败", zap.String("session_id", sessionID), zap.Error(err))
			}
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) closeConn(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(wsWriteWait))
}

func (h *Handler) writeJSON(conn *websocket.Conn, v interface{}) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(v); err != nil {
		h.log.Debug("WebSocket 推送失败", zap.Error(err))
		return err
	}
	return nil
}
