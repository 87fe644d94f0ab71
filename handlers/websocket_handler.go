package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/cricket-system/live"
	"github.com/Dosada05/cricket-system/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// В продакшене здесь должна быть проверка Origin по списку
		// доверенных доменов.
		return true
	},
}

type WebSocketHandler struct {
	hub          *live.Hub
	matchService services.MatchService
	logger       *slog.Logger
}

func NewWebSocketHandler(hub *live.Hub, matchService services.MatchService, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		matchService: matchService,
		logger:       logger,
	}
}

// ServeMatch подписывает клиента на сводку счёта матча
// (комната match_{id}).
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, live.MatchRoom)
}

// ServeMatchDetails подписывает клиента на детальную трансляцию
// со статистикой игроков (комната details_{id}).
func (h *WebSocketHandler) ServeMatchDetails(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, live.DetailsRoom)
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room func(int) string) {
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	// Комната не открывается для несуществующего матча.
	if _, err := h.matchService.GetByID(r.Context(), matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту HTTP-ошибкой.
		h.logger.Warn("websocket upgrade failed",
			slog.Int("match_id", matchID), slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, room(matchID))
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
