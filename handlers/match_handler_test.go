package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"

	"github.com/Dosada05/cricket-system/middleware"
	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/services"
)

// stubMatchService возвращает заранее заданные значения, фиксируя
// аргументы последнего вызова.
type stubMatchService struct {
	summary     *models.MatchSummary
	match       *models.Match
	err         error
	lastUserID  int
	lastMatchID int
	lastWinner  int
}

func (s *stubMatchService) Schedule(ctx context.Context, userID int, input services.ScheduleMatchInput) (*models.Match, error) {
	s.lastUserID = userID
	return s.match, s.err
}

func (s *stubMatchService) GetByID(ctx context.Context, matchID int) (*models.Match, error) {
	s.lastMatchID = matchID
	return s.match, s.err
}

func (s *stubMatchService) List(ctx context.Context) ([]*models.MatchSummary, error) {
	return []*models.MatchSummary{s.summary}, s.err
}

func (s *stubMatchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchSummary, error) {
	return []*models.MatchSummary{s.summary}, s.err
}

func (s *stubMatchService) GenerateFixtures(ctx context.Context, userID int, input services.GenerateFixturesInput) ([]*models.Match, error) {
	s.lastUserID = userID
	return []*models.Match{s.match}, s.err
}

func (s *stubMatchService) ApplyBallOutcome(ctx context.Context, matchID int, input services.BallOutcomeInput) (*models.MatchSummary, error) {
	s.lastMatchID = matchID
	return s.summary, s.err
}

func (s *stubMatchService) Finalize(ctx context.Context, userID, matchID, winnerTeamID int) error {
	s.lastUserID, s.lastMatchID, s.lastWinner = userID, matchID, winnerTeamID
	return s.err
}

func (s *stubMatchService) Delete(ctx context.Context, userID, matchID int) error {
	s.lastUserID, s.lastMatchID = userID, matchID
	return s.err
}

func (s *stubMatchService) Summary(ctx context.Context, matchID int) (*models.MatchSummary, error) {
	s.lastMatchID = matchID
	return s.summary, s.err
}

func (s *stubMatchService) Scorecard(ctx context.Context, matchID int) (*models.Scorecard, error) {
	s.lastMatchID = matchID
	if s.err != nil {
		return nil, s.err
	}
	return &models.Scorecard{Match: s.summary}, nil
}

type stubPerformanceService struct {
	performance *models.PlayerPerformance
	err         error
}

func (s *stubPerformanceService) RecordContribution(ctx context.Context, userID, matchID int, input services.ContributionInput) (*models.PlayerPerformance, error) {
	return s.performance, s.err
}

func (s *stubPerformanceService) ListByMatch(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []*models.PlayerPerformance{s.performance}, nil
}

func newMatchRouter(matchSvc *stubMatchService, perfSvc *stubPerformanceService) *chi.Mux {
	h := NewMatchHandler(matchSvc, perfSvc)
	router := chi.NewRouter()
	router.Get("/matches/{matchId}/summary", h.GetSummary)
	router.Get("/matches/{matchId}/scorecard", h.GetScorecard)
	router.Patch("/matches/{matchId}/score", h.ApplyBall)
	router.Patch("/matches/{matchId}/finalize", h.Finalize)
	router.Delete("/matches/{matchId}", h.Delete)
	router.Patch("/matches/{matchId}/performances", h.RecordPerformance)
	return router
}

func authenticated(r *http.Request, userID int) *http.Request {
	claims := jwt.MapClaims{"user_id": float64(userID)}
	return r.WithContext(middleware.WithUserClaims(r.Context(), claims))
}

func TestGetSummary(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
	}{
		{name: "ok", target: "/matches/7/summary", wantStatus: http.StatusOK},
		{name: "bad id", target: "/matches/abc/summary", wantStatus: http.StatusBadRequest},
		{name: "not found", target: "/matches/7/summary", serviceErr: services.ErrMatchNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMatchService{
				summary: &models.MatchSummary{MatchID: 7, Team1Score: "24/1 (1.1 overs)"},
				err:     tt.serviceErr,
			}
			router := newMatchRouter(svc, &stubPerformanceService{})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				var body struct {
					Match models.MatchSummary `json:"match"`
				}
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Match.Team1Score != "24/1 (1.1 overs)" {
					t.Fatalf("team1_score = %q", body.Match.Team1Score)
				}
			}
		})
	}
}

func TestApplyBall(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		auth       bool
		serviceErr error
		wantStatus int
	}{
		{name: "ok", body: `{"team":1,"runs":4}`, auth: true, wantStatus: http.StatusOK},
		{name: "unauthenticated", body: `{"team":1,"runs":4}`, wantStatus: http.StatusUnauthorized},
		{name: "malformed body", body: `{"team":`, auth: true, wantStatus: http.StatusBadRequest},
		{name: "invalid team", body: `{"team":3,"runs":4}`, auth: true, serviceErr: services.ErrInvalidTeamNumber, wantStatus: http.StatusBadRequest},
		{name: "match missing", body: `{"team":1,"runs":4}`, auth: true, serviceErr: services.ErrMatchNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMatchService{summary: &models.MatchSummary{MatchID: 7}, err: tt.serviceErr}
			router := newMatchRouter(svc, &stubPerformanceService{})

			req := httptest.NewRequest(http.MethodPatch, "/matches/7/score", strings.NewReader(tt.body))
			if tt.auth {
				req = authenticated(req, 42)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		auth       bool
		serviceErr error
		wantStatus int
	}{
		{name: "ok", body: `{"winner_team_id":10}`, auth: true, wantStatus: http.StatusOK},
		{name: "unauthenticated", body: `{"winner_team_id":10}`, wantStatus: http.StatusUnauthorized},
		{name: "missing winner", body: `{}`, auth: true, wantStatus: http.StatusBadRequest},
		{name: "already finalized", body: `{"winner_team_id":10}`, auth: true, serviceErr: services.ErrMatchAlreadyFinalized, wantStatus: http.StatusConflict},
		{name: "winner not in match", body: `{"winner_team_id":99}`, auth: true, serviceErr: services.ErrWinnerNotInMatch, wantStatus: http.StatusBadRequest},
		{name: "not admin", body: `{"winner_team_id":10}`, auth: true, serviceErr: services.ErrNotTournamentAdmin, wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubMatchService{err: tt.serviceErr}
			router := newMatchRouter(svc, &stubPerformanceService{})

			req := httptest.NewRequest(http.MethodPatch, "/matches/7/finalize", strings.NewReader(tt.body))
			if tt.auth {
				req = authenticated(req, 42)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				if svc.lastUserID != 42 || svc.lastMatchID != 7 || svc.lastWinner != 10 {
					t.Fatalf("service called with (%d, %d, %d), want (42, 7, 10)",
						svc.lastUserID, svc.lastMatchID, svc.lastWinner)
				}
			}
		})
	}
}

func TestDeleteMatch(t *testing.T) {
	svc := &stubMatchService{}
	router := newMatchRouter(svc, &stubPerformanceService{})

	req := authenticated(httptest.NewRequest(http.MethodDelete, "/matches/7", nil), 42)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if svc.lastUserID != 42 || svc.lastMatchID != 7 {
		t.Fatalf("service called with (%d, %d), want (42, 7)", svc.lastUserID, svc.lastMatchID)
	}
}

func TestRecordPerformance(t *testing.T) {
	perf := &models.PlayerPerformance{UserID: 3, MatchID: 7, RunsScored: 40}
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{name: "ok", body: `{"player_id":3,"runs_scored":40,"balls_faced":25}`, wantStatus: http.StatusOK},
		{name: "missing player", body: `{"runs_scored":40}`, wantStatus: http.StatusBadRequest},
		{name: "unknown player", body: `{"player_id":99}`, serviceErr: services.ErrUserNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMatchRouter(&stubMatchService{}, &stubPerformanceService{performance: perf, err: tt.serviceErr})

			req := authenticated(httptest.NewRequest(http.MethodPatch, "/matches/7/performances", strings.NewReader(tt.body)), 42)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}
