package events

import (
	"encoding/json"
	"log"
	"sync"
)

// Action 行级变更动作
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Change 单行变更事件，携带变更后的整行，订阅方按行应用而不是整表重拉
type Change struct {
	Table  string          `json:"table"`
	Action string          `json:"action"`
	RowID  string          `json:"row_id"`
	Row    json.RawMessage `json:"row,omitempty"`
}

// Client 一个订阅连接
type Client struct {
	ID     string
	UserID string
	Events chan Change
}

// Hub 管理变更事件订阅
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewHub 创建事件中心
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register 注册订阅者
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	log.Printf("[events] Client registered: id=%s user=%s (total: %d)", client.ID, client.UserID, len(h.clients))
}

// Unregister 注销订阅者
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		log.Printf("[events] Client unregistered: id=%s (total: %d)", clientID, len(h.clients))
	}
}

// Broadcast 广播事件，订阅方缓冲满则丢弃
func (h *Hub) Broadcast(change Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		select {
		case client.Events <- change:
		default:
			log.Printf("[events] Client %s buffer full, skipping event", client.ID)
		}
	}
}

// PublishRow 发布一行变更，row 序列化失败时只带 row_id
func (h *Hub) PublishRow(table, action, rowID string, row interface{}) {
	change := Change{Table: table, Action: action, RowID: rowID}
	if row != nil {
		if data, err := json.Marshal(row); err == nil {
			change.Row = data
		}
	}
	h.Broadcast(change)
}
