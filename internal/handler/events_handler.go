package handler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitfantasy/weldshop/internal/events"
	"github.com/gin-gonic/gin"
)

// HubRegistry 事件订阅注册接口
type HubRegistry interface {
	Register(client *events.Client)
	Unregister(clientID string)
}

// EventsHandler 行级变更事件推送（SSE）
type EventsHandler struct {
	hub HubRegistry
}

// NewEventsHandler 创建事件处理器
func NewEventsHandler(hub HubRegistry) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream SSE 连接端点
// GET /api/v1/events?token=xxx
func (h *EventsHandler) Stream(c *gin.Context) {
	userID := GetUserID(c)
	clientID := fmt.Sprintf("%s_%d", userID, time.Now().UnixNano())

	client := &events.Client{
		ID:     clientID,
		UserID: userID,
		Events: make(chan events.Change, 64),
	}

	h.hub.Register(client)

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.Writer.WriteString("event: connected\ndata: {\"client_id\":\"" + clientID + "\"}\n\n")
	c.Writer.Flush()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			h.hub.Unregister(clientID)
			return
		case change, ok := <-client.Events:
			if !ok {
				return
			}
			data, err := json.Marshal(change)
			if err != nil {
				continue
			}
			c.Writer.WriteString(fmt.Sprintf("event: change\ndata: %s\n\n", data))
			c.Writer.Flush()
		case <-heartbeat.C:
			c.Writer.WriteString(": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
