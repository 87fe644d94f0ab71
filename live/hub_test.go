package live

import (
	"encoding/json"
	"sync"
	"testing"
	"time"
)

type recordingObserver struct {
	mu     sync.Mutex
	opened []string
	closed []string
}

func (o *recordingObserver) RoomOpened(room string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, room)
}

func (o *recordingObserver) RoomClosed(room string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = append(o.closed, room)
}

func (o *recordingObserver) snapshot() (opened, closed []string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...), append([]string(nil), o.closed...)
}

func TestHubRoomLifecycle(t *testing.T) {
	obs := &recordingObserver{}
	hub := NewHub(testLogger())
	hub.SetRoomObserver(obs)
	go hub.Run()

	first := &Client{ID: "a", Hub: hub, Send: make(chan []byte, 1), Room: "match_1"}
	second := &Client{ID: "b", Hub: hub, Send: make(chan []byte, 1), Room: "match_1"}

	hub.Register <- first
	hub.Register <- second
	waitFor(t, func() bool { return hub.RoomSize("match_1") == 2 })

	opened, _ := obs.snapshot()
	if len(opened) != 1 || opened[0] != "match_1" {
		t.Fatalf("observer opened = %v, want [match_1]", opened)
	}

	hub.BroadcastToRoom("match_1", Message{Type: EventMatchSummary, Payload: "frame"})

	for _, client := range []*Client{first, second} {
		select {
		case raw := <-client.Send:
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("client %s received invalid JSON: %v", client.ID, err)
			}
			if msg.Type != EventMatchSummary || msg.RoomID != "match_1" {
				t.Fatalf("client %s received %+v", client.ID, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s received no frame", client.ID)
		}
	}

	// Комната закрывается только после ухода последнего клиента.
	hub.Unregister <- first
	waitFor(t, func() bool { return hub.RoomSize("match_1") == 1 })
	if _, closed := obs.snapshot(); len(closed) != 0 {
		t.Fatalf("room closed too early: %v", closed)
	}

	hub.Unregister <- second
	waitFor(t, func() bool {
		_, closed := obs.snapshot()
		return len(closed) == 1
	})
	if _, closed := obs.snapshot(); closed[0] != "match_1" {
		t.Fatalf("observer closed = %v, want [match_1]", closed)
	}
	if hub.RoomSize("match_1") != 0 {
		t.Fatalf("room size = %d after last client left", hub.RoomSize("match_1"))
	}

	// Канал уходящего клиента закрыт хабом.
	if _, open := <-second.Send; open {
		t.Fatal("client send channel still open after unregister")
	}
}

func TestBroadcastToMissingRoomIsNoop(t *testing.T) {
	hub := NewHub(testLogger())
	go hub.Run()
	hub.BroadcastToRoom("match_404", Message{Type: EventMatchSummary})
}
