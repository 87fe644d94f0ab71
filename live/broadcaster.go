package live

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/cricket-system/models"
)

// Типы сообщений, уходящих подписчикам.
const (
	EventMatchSummary    = "live_match_summary"
	EventDetailedSummary = "live_detailed_summary"
	EventMatchCreated    = "match_created"
	EventMatchFinalized  = "match_finalized"
	EventMatchDeleted    = "match_deleted"
)

// SnapshotSource отдаёт актуальное состояние матча для очередного
// кадра трансляции.
type SnapshotSource interface {
	Summary(ctx context.Context, matchID int) (*models.MatchSummary, error)
	Performances(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error)
}

// RoomBroadcaster — то, что Broadcaster требует от хаба.
type RoomBroadcaster interface {
	BroadcastToRoom(room string, message Message)
}

type detailedPayload struct {
	Match   *models.MatchSummary        `json:"match"`
	Players []*models.PlayerPerformance `json:"players"`
}

// Broadcaster ведёт по одному тикеру на занятую комнату: каждый тик —
// свежий снимок из БД всем подписчикам комнаты разом. Пустая комната
// тикер не держит.
type Broadcaster struct {
	hub      RoomBroadcaster
	source   SnapshotSource
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	cancels map[string]context.CancelFunc
}

func NewBroadcaster(hub RoomBroadcaster, source SnapshotSource, interval time.Duration, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		source:   source,
		interval: interval,
		logger:   logger,
		cancels:  make(map[string]context.CancelFunc),
	}
}

// SetSource должен вызываться до первого подключения. Разрывает цикл
// инициализации: сервис матчей получает broadcaster как notifier, а
// broadcaster читает снимки через сервис.
func (b *Broadcaster) SetSource(source SnapshotSource) {
	b.source = source
}

// RoomOpened запускает цикл трансляции комнаты. Первый кадр уходит
// сразу, дальше по тикеру.
func (b *Broadcaster) RoomOpened(room string) {
	matchID, detailed, ok := parseRoom(room)
	if !ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.mu.Lock()
	if _, running := b.cancels[room]; running {
		b.mu.Unlock()
		cancel()
		return
	}
	b.cancels[room] = cancel
	b.mu.Unlock()

	go b.run(ctx, room, matchID, detailed)
}

// RoomClosed останавливает цикл, когда уходит последний подписчик.
func (b *Broadcaster) RoomClosed(room string) {
	b.mu.Lock()
	cancel, ok := b.cancels[room]
	if ok {
		delete(b.cancels, room)
	}
	b.mu.Unlock()
	if ok {
		cancel()
	}
}

func (b *Broadcaster) run(ctx context.Context, room string, matchID int, detailed bool) {
	b.logger.Info("live broadcast started",
		slog.String("room", room), slog.Duration("interval", b.interval))
	ticker := time.NewTicker(b.interval)
	defer func() {
		ticker.Stop()
		b.logger.Info("live broadcast stopped", slog.String("room", room))
	}()

	b.tick(ctx, room, matchID, detailed)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.tick(ctx, room, matchID, detailed)
		}
	}
}

func (b *Broadcaster) tick(ctx context.Context, room string, matchID int, detailed bool) {
	if !detailed {
		summary, err := b.source.Summary(ctx, matchID)
		if err != nil {
			b.logSnapshotError(ctx, room, matchID, err)
			return
		}
		b.hub.BroadcastToRoom(room, Message{Type: EventMatchSummary, Payload: summary})
		return
	}

	var (
		summary *models.MatchSummary
		players []*models.PlayerPerformance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summary, err = b.source.Summary(gctx, matchID)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = b.source.Performances(gctx, matchID)
		return err
	})
	if err := g.Wait(); err != nil {
		b.logSnapshotError(ctx, room, matchID, err)
		return
	}
	b.hub.BroadcastToRoom(room, Message{
		Type:    EventDetailedSummary,
		Payload: detailedPayload{Match: summary, Players: players},
	})
}

func (b *Broadcaster) logSnapshotError(ctx context.Context, room string, matchID int, err error) {
	if ctx.Err() != nil {
		return
	}
	b.logger.Warn("live snapshot failed",
		slog.String("room", room), slog.Int("match_id", matchID), slog.Any("error", err))
}

// MatchCreated объявляет новый матч в лобби-комнате.
func (b *Broadcaster) MatchCreated(match *models.Match) {
	b.hub.BroadcastToRoom(LobbyRoom, Message{Type: EventMatchCreated, Payload: match})
}

// MatchFinalized рассылает итог в обе комнаты матча.
func (b *Broadcaster) MatchFinalized(matchID, winnerTeamID int) {
	payload := map[string]int{"match_id": matchID, "winner_team_id": winnerTeamID}
	b.hub.BroadcastToRoom(MatchRoom(matchID), Message{Type: EventMatchFinalized, Payload: payload})
	b.hub.BroadcastToRoom(DetailsRoom(matchID), Message{Type: EventMatchFinalized, Payload: payload})
}

func (b *Broadcaster) MatchDeleted(matchID int) {
	payload := map[string]int{"match_id": matchID}
	b.hub.BroadcastToRoom(MatchRoom(matchID), Message{Type: EventMatchDeleted, Payload: payload})
	b.hub.BroadcastToRoom(DetailsRoom(matchID), Message{Type: EventMatchDeleted, Payload: payload})
}

// parseRoom разбирает имя комнаты вида "match_12" или "details_12".
func parseRoom(room string) (matchID int, detailed bool, ok bool) {
	kind, idPart, found := strings.Cut(room, "_")
	if !found {
		return 0, false, false
	}
	id, err := strconv.Atoi(idPart)
	if err != nil || id <= 0 {
		return 0, false, false
	}
	switch kind {
	case "match":
		return id, false, true
	case "details":
		return id, true, true
	default:
		return 0, false, false
	}
}
