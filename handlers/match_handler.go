package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/cricket-system/middleware"
	"github.com/Dosada05/cricket-system/services"
)

type MatchHandler struct {
	matchService       services.MatchService
	performanceService services.PerformanceService
}

func NewMatchHandler(matchService services.MatchService, performanceService services.PerformanceService) *MatchHandler {
	return &MatchHandler{
		matchService:       matchService,
		performanceService: performanceService,
	}
}

func (h *MatchHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.ScheduleMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TournamentID <= 0 || input.StadiumID <= 0 || input.Team1ID <= 0 || input.Team2ID <= 0 {
		badRequestResponse(w, r, errors.New("tournament_id, stadium_id, team1_id and team2_id are required"))
		return
	}
	if input.MatchDate.IsZero() {
		badRequestResponse(w, r, errors.New("match_date is required"))
		return
	}

	match, err := h.matchService.Schedule(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GenerateFixtures строит круговое расписание турнира: матч для каждой
// пары команд.
func (h *MatchHandler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.GenerateFixturesInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.TournamentID = tournamentID
	if input.StadiumID <= 0 {
		badRequestResponse(w, r, errors.New("stadium_id is required"))
		return
	}
	if input.StartDate.IsZero() {
		badRequestResponse(w, r, errors.New("start_date is required"))
		return
	}

	matches, err := h.matchService.GenerateFixtures(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) ListByTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	matches, err := h.matchService.ListByTournament(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSummary отдаёт сводку счёта с отформатированными оверами.
func (h *MatchHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.matchService.Summary(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetScorecard отдаёт сводку вместе с построчной статистикой игроков.
func (h *MatchHandler) GetScorecard(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scorecard, err := h.matchService.Scorecard(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"scorecard": scorecard}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ApplyBall фиксирует исход одного мяча и возвращает обновлённую
// сводку матча.
func (h *MatchHandler) ApplyBall(w http.ResponseWriter, r *http.Request) {
	if _, err := middleware.GetUserIDFromContext(r.Context()); err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.BallOutcomeInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.matchService.ApplyBallOutcome(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Finalize выставляет победителя и обновляет турнирную таблицу.
func (h *MatchHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		WinnerTeamID int `json:"winner_team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.WinnerTeamID <= 0 {
		badRequestResponse(w, r, errors.New("winner_team_id is required"))
		return
	}

	if err := h.matchService.Finalize(r.Context(), userID, matchID, input.WinnerTeamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "match finalized"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.matchService.Delete(r.Context(), userID, matchID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RecordPerformance накапливает вклад игрока в матч.
func (h *MatchHandler) RecordPerformance(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.ContributionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID <= 0 {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	performance, err := h.performanceService.RecordContribution(r.Context(), userID, matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"performance": performance}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListPerformances отдаёт статистику игроков матча.
func (h *MatchHandler) ListPerformances(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchId")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	performances, err := h.performanceService.ListByMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"performances": performances}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
