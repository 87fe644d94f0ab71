package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
)

type PerformanceService interface {
	// RecordContribution добавляет дельту вклада игрока в матч. Строка
	// (user_id, match_id) создаётся при первом вызове, дальше значения
	// накапливаются; strike rate пересчитывается на стороне БД.
	RecordContribution(ctx context.Context, userID, matchID int, input ContributionInput) (*models.PlayerPerformance, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error)
}

type ContributionInput struct {
	PlayerID     int     `json:"player_id"`
	RunsScored   int     `json:"runs_scored"`
	BallsFaced   int     `json:"balls_faced"`
	WicketsTaken int     `json:"wickets_taken"`
	OversBowled  float64 `json:"overs_bowled"`
}

type performanceService struct {
	performanceRepo repositories.PerformanceRepository
	matchRepo       repositories.MatchRepository
	authorizer      TournamentAuthorizer
}

func NewPerformanceService(
	performanceRepo repositories.PerformanceRepository,
	matchRepo repositories.MatchRepository,
	authorizer TournamentAuthorizer,
) PerformanceService {
	return &performanceService{
		performanceRepo: performanceRepo,
		matchRepo:       matchRepo,
		authorizer:      authorizer,
	}
}

func (s *performanceService) RecordContribution(ctx context.Context, userID, matchID int, input ContributionInput) (*models.PlayerPerformance, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, match.TournamentID); err != nil {
		return nil, err
	}

	delta := &models.PlayerPerformance{
		UserID:       input.PlayerID,
		MatchID:      matchID,
		RunsScored:   input.RunsScored,
		BallsFaced:   input.BallsFaced,
		WicketsTaken: input.WicketsTaken,
		OversBowled:  input.OversBowled,
	}
	// Upsert перезаписывает delta накопленными значениями строки.
	if err := s.performanceRepo.Upsert(ctx, delta); err != nil {
		if errors.Is(err, repositories.ErrPerformanceRefInvalid) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to record performance for player %d in match %d: %w", input.PlayerID, matchID, err)
	}
	return delta, nil
}

func (s *performanceService) ListByMatch(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	performances, err := s.performanceRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances for match %d: %w", matchID, err)
	}
	return performances, nil
}
