package live

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Dosada05/cricket-system/models"
)

type recordingHub struct {
	mu       sync.Mutex
	messages []Message
}

func (h *recordingHub) BroadcastToRoom(room string, message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	message.RoomID = room
	h.messages = append(h.messages, message)
}

func (h *recordingHub) snapshot() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

type stubSource struct {
	summary *models.MatchSummary
	players []*models.PlayerPerformance
}

func (s *stubSource) Summary(ctx context.Context, matchID int) (*models.MatchSummary, error) {
	return s.summary, nil
}

func (s *stubSource) Performances(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error) {
	return s.players, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestParseRoom(t *testing.T) {
	tests := []struct {
		room     string
		matchID  int
		detailed bool
		ok       bool
	}{
		{"match_7", 7, false, true},
		{"details_12", 12, true, true},
		{"match_abc", 0, false, false},
		{"match_0", 0, false, false},
		{"bracket_3", 0, false, false},
		{"matches", 0, false, false},
	}
	for _, tt := range tests {
		matchID, detailed, ok := parseRoom(tt.room)
		if matchID != tt.matchID || detailed != tt.detailed || ok != tt.ok {
			t.Errorf("parseRoom(%q) = (%d, %v, %v), want (%d, %v, %v)",
				tt.room, matchID, detailed, ok, tt.matchID, tt.detailed, tt.ok)
		}
	}
}

func TestBroadcasterSummaryRoom(t *testing.T) {
	hub := &recordingHub{}
	source := &stubSource{summary: &models.MatchSummary{MatchID: 7, Team1Score: "24/0"}}
	b := NewBroadcaster(hub, source, 10*time.Millisecond, testLogger())

	b.RoomOpened("match_7")
	defer b.RoomClosed("match_7")

	waitFor(t, func() bool { return len(hub.snapshot()) >= 2 })

	for _, msg := range hub.snapshot() {
		if msg.Type != EventMatchSummary {
			t.Fatalf("unexpected message type %q", msg.Type)
		}
		if msg.RoomID != "match_7" {
			t.Fatalf("unexpected room %q", msg.RoomID)
		}
		summary, ok := msg.Payload.(*models.MatchSummary)
		if !ok {
			t.Fatalf("payload is %T, want *models.MatchSummary", msg.Payload)
		}
		if summary.MatchID != 7 {
			t.Fatalf("payload match id = %d, want 7", summary.MatchID)
		}
	}
}

func TestBroadcasterDetailedRoom(t *testing.T) {
	hub := &recordingHub{}
	source := &stubSource{
		summary: &models.MatchSummary{MatchID: 3},
		players: []*models.PlayerPerformance{{UserID: 1, MatchID: 3, RunsScored: 40}},
	}
	b := NewBroadcaster(hub, source, 10*time.Millisecond, testLogger())

	b.RoomOpened("details_3")
	defer b.RoomClosed("details_3")

	waitFor(t, func() bool { return len(hub.snapshot()) >= 1 })

	msg := hub.snapshot()[0]
	if msg.Type != EventDetailedSummary {
		t.Fatalf("message type = %q, want %q", msg.Type, EventDetailedSummary)
	}
	payload, ok := msg.Payload.(detailedPayload)
	if !ok {
		t.Fatalf("payload is %T, want detailedPayload", msg.Payload)
	}
	if payload.Match.MatchID != 3 || len(payload.Players) != 1 {
		t.Fatalf("unexpected detailed payload: %+v", payload)
	}
}

func TestBroadcasterStopsOnRoomClosed(t *testing.T) {
	hub := &recordingHub{}
	source := &stubSource{summary: &models.MatchSummary{MatchID: 9}}
	b := NewBroadcaster(hub, source, 10*time.Millisecond, testLogger())

	b.RoomOpened("match_9")
	waitFor(t, func() bool { return len(hub.snapshot()) >= 1 })
	b.RoomClosed("match_9")

	// После остановки новых кадров быть не должно.
	time.Sleep(30 * time.Millisecond)
	count := len(hub.snapshot())
	time.Sleep(50 * time.Millisecond)
	if after := len(hub.snapshot()); after != count {
		t.Fatalf("broadcast continued after room closed: %d -> %d frames", count, after)
	}
}

func TestBroadcasterIgnoresLobbyRoom(t *testing.T) {
	hub := &recordingHub{}
	b := NewBroadcaster(hub, &stubSource{}, 5*time.Millisecond, testLogger())

	b.RoomOpened(LobbyRoom)
	time.Sleep(25 * time.Millisecond)
	if got := len(hub.snapshot()); got != 0 {
		t.Fatalf("lobby room produced %d frames, want 0", got)
	}
}

func TestLifecycleEvents(t *testing.T) {
	hub := &recordingHub{}
	b := NewBroadcaster(hub, &stubSource{}, time.Second, testLogger())

	b.MatchCreated(&models.Match{ID: 5})
	b.MatchFinalized(5, 2)
	b.MatchDeleted(5)

	messages := hub.snapshot()
	if len(messages) != 5 {
		t.Fatalf("got %d messages, want 5", len(messages))
	}
	if messages[0].Type != EventMatchCreated || messages[0].RoomID != LobbyRoom {
		t.Fatalf("unexpected created event: %+v", messages[0])
	}
	rooms := map[string]bool{}
	for _, msg := range messages[1:3] {
		if msg.Type != EventMatchFinalized {
			t.Fatalf("unexpected finalized event: %+v", msg)
		}
		rooms[msg.RoomID] = true
	}
	if !rooms[MatchRoom(5)] || !rooms[DetailsRoom(5)] {
		t.Fatalf("finalized event missing a room: %v", rooms)
	}
}
