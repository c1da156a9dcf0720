/*
 * @Description: 评论会话变更通知的订阅分发
 * @Author: 安知鱼
 * @Date: 2026-09-26 10:44:05
 * @LastEditTime: 2026-10-11 17:02:39
 * @LastEditors: 安知鱼
 */
package comment

import (
	"sync"

	"github.com/anzhiyu-c/blogcms/pkg/domain/model"
)

// notifier 按会话分发最新快照。每个订阅者的通道容量为 1，
// 消费慢的订阅者只会错过中间状态，总能拿到最新一份快照，提交方永远不会被阻塞。
type notifier struct {
	mu   sync.Mutex
	next uint64
	subs map[string]map[uint64]chan *model.Thread
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[string]map[uint64]chan *model.Thread)}
}

// subscribe 注册订阅，返回只读通道与取消函数。取消函数可重复调用。
func (n *notifier) subscribe(sessionID string) (<-chan *model.Thread, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.next++
	id := n.next
	ch := make(chan *model.Thread, 1)
	if n.subs[sessionID] == nil {
		n.subs[sessionID] = make(map[uint64]chan *model.Thread)
	}
	n.subs[sessionID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			set := n.subs[sessionID]
			if c, ok := set[id]; ok {
				delete(set, id)
				close(c)
			}
			if len(set) == 0 {
				delete(n.subs, sessionID)
			}
		})
	}
	return ch, cancel
}

// publish 向会话的所有订阅者推送快照，丢弃尚未被读取的旧快照
func (n *notifier) publish(sessionID string, t *model.Thread) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, ch := range n.subs[sessionID] {
		snapshot := t.Clone()
		select {
		case ch <- snapshot:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}

// closeSession 关闭会话的全部订阅通道，返回被关闭的数量
func (n *notifier) closeSession(sessionID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()

	set := n.subs[sessionID]
	closed := len(set)
	for id, ch := range set {
		close(ch)
		delete(set, id)
	}
	delete(n.subs, sessionID)
	return closed
}

// sessions 返回当前有订阅者的会话
func (n *notifier) sessions() []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	ids := make([]string, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}
	return ids
}

// count 返回会话当前的订阅者数量
func (n *notifier) count(sessionID string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs[sessionID])
}
