package events

import (
	"encoding/json"
	"testing"
)

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub()

	a := &Client{ID: "a", UserID: "u1", Events: make(chan Change, 4)}
	b := &Client{ID: "b", UserID: "u2", Events: make(chan Change, 4)}
	hub.Register(a)
	hub.Register(b)

	hub.PublishRow("inventory", ActionUpdate, "row-1", map[string]int{"quantity": 5})

	for _, client := range []*Client{a, b} {
		select {
		case change := <-client.Events:
			if change.Table != "inventory" || change.Action != ActionUpdate || change.RowID != "row-1" {
				t.Errorf("Client %s got unexpected change: %+v", client.ID, change)
			}
			var row map[string]int
			if err := json.Unmarshal(change.Row, &row); err != nil || row["quantity"] != 5 {
				t.Errorf("Client %s row payload wrong: %s", client.ID, change.Row)
			}
		default:
			t.Errorf("Client %s received nothing", client.ID)
		}
	}
}

func TestHubDropsWhenClientBufferFull(t *testing.T) {
	hub := NewHub()

	slow := &Client{ID: "slow", UserID: "u1", Events: make(chan Change, 1)}
	hub.Register(slow)

	// 第二条在缓冲满时被丢弃，Broadcast 不能阻塞
	hub.PublishRow("inventory", ActionInsert, "row-1", nil)
	hub.PublishRow("inventory", ActionInsert, "row-2", nil)

	if got := len(slow.Events); got != 1 {
		t.Errorf("Buffered events = %d, want 1", got)
	}
	change := <-slow.Events
	if change.RowID != "row-1" {
		t.Errorf("Kept event = %s, want row-1", change.RowID)
	}
}

func TestUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	c := &Client{ID: "c", UserID: "u1", Events: make(chan Change, 1)}
	hub.Register(c)
	hub.Unregister("c")

	if _, ok := <-c.Events; ok {
		t.Error("Channel should be closed after unregister")
	}

	// 已注销客户端不再接收广播
	hub.PublishRow("inventory", ActionDelete, "row-9", nil)
}
