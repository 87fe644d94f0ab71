package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
	"github.com/Dosada05/cricket-system/scheduling"
)

// LiveNotifier получает one-shot уведомления об изменениях состояния
// матчей. Реализуется live-хабом; nil допустим (рассылка отключена).
type LiveNotifier interface {
	MatchCreated(match *models.Match)
	MatchFinalized(matchID, winnerTeamID int)
	MatchDeleted(matchID int)
}

type MatchService interface {
	Schedule(ctx context.Context, userID int, input ScheduleMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, matchID int) (*models.Match, error)
	List(ctx context.Context) ([]*models.MatchSummary, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchSummary, error)
	// ApplyBallOutcome фиксирует один легальный мяч: раны, опционально
	// калитку, плюс один мяч к счётчику оверов выбранной команды.
	ApplyBallOutcome(ctx context.Context, matchID int, input BallOutcomeInput) (*models.MatchSummary, error)
	// GenerateFixtures создаёт круговое расписание: каждая команда
	// турнира играет с каждой.
	GenerateFixtures(ctx context.Context, userID int, input GenerateFixturesInput) ([]*models.Match, error)
	Finalize(ctx context.Context, userID, matchID, winnerTeamID int) error
	Delete(ctx context.Context, userID, matchID int) error
	Summary(ctx context.Context, matchID int) (*models.MatchSummary, error)
	Scorecard(ctx context.Context, matchID int) (*models.Scorecard, error)
}

type ScheduleMatchInput struct {
	TournamentID     int                 `json:"tournament_id"`
	StadiumID        int                 `json:"stadium_id"`
	Team1ID          int                 `json:"team1_id"`
	Team2ID          int                 `json:"team2_id"`
	MatchDate        time.Time           `json:"match_date"`
	MatchType        string              `json:"match_type,omitempty"`
	TossWinnerTeamID int                 `json:"toss_winner_team_id"`
	TossDecision     models.TossDecision `json:"toss_decision"`
}

type BallOutcomeInput struct {
	Team     int  `json:"team"`
	Runs     int  `json:"runs"`
	IsWicket bool `json:"isWicket"`
}

type GenerateFixturesInput struct {
	TournamentID int       `json:"tournament_id"`
	StadiumID    int       `json:"stadium_id"`
	StartDate    time.Time `json:"start_date"`
	IntervalDays int       `json:"interval_days,omitempty"`
	DoubleRound  bool      `json:"double_round,omitempty"`
	MatchType    string    `json:"match_type,omitempty"`
}

type matchService struct {
	txs             txStarter
	matchRepo       repositories.MatchRepository
	teamRepo        repositories.TeamRepository
	performanceRepo repositories.PerformanceRepository
	standingsRepo   repositories.StandingsRepository
	authorizer      TournamentAuthorizer
	notifier        LiveNotifier
	logger          *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	performanceRepo repositories.PerformanceRepository,
	standingsRepo repositories.StandingsRepository,
	authorizer TournamentAuthorizer,
	notifier LiveNotifier,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		txs:             sqlTxStarter{db: db},
		matchRepo:       matchRepo,
		teamRepo:        teamRepo,
		performanceRepo: performanceRepo,
		standingsRepo:   standingsRepo,
		authorizer:      authorizer,
		notifier:        notifier,
		logger:          logger,
	}
}

func (s *matchService) Schedule(ctx context.Context, userID int, input ScheduleMatchInput) (*models.Match, error) {
	if input.Team1ID == input.Team2ID {
		return nil, ErrSameTeams
	}
	if !input.TossDecision.Valid() {
		return nil, ErrInvalidTossDecision
	}
	if input.TossWinnerTeamID != input.Team1ID && input.TossWinnerTeamID != input.Team2ID {
		return nil, ErrTossWinnerNotInMatch
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, input.TournamentID); err != nil {
		return nil, err
	}

	matchType := input.MatchType
	if matchType == "" {
		matchType = models.DefaultMatchType
	}

	match := &models.Match{
		TournamentID:     input.TournamentID,
		StadiumID:        input.StadiumID,
		Team1ID:          input.Team1ID,
		Team2ID:          input.Team2ID,
		MatchDate:        input.MatchDate,
		MatchType:        matchType,
		TossWinnerTeamID: input.TossWinnerTeamID,
		TossDecision:     input.TossDecision,
	}

	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchTournamentInvalid):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrMatchStadiumInvalid):
			return nil, ErrStadiumNotFound
		case errors.Is(err, repositories.ErrMatchTeamInvalid):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if s.notifier != nil {
		s.notifier.MatchCreated(match)
	}
	return match, nil
}

func (s *matchService) GenerateFixtures(ctx context.Context, userID int, input GenerateFixturesInput) ([]*models.Match, error) {
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, input.TournamentID); err != nil {
		return nil, err
	}

	teams, err := s.teamRepo.ListByTournament(ctx, input.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", input.TournamentID, err)
	}
	teamIDs := make([]int, 0, len(teams))
	for _, team := range teams {
		teamIDs = append(teamIDs, team.ID)
	}

	pairings, err := scheduling.RoundRobinPairings(teamIDs, input.DoubleRound)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	intervalDays := input.IntervalDays
	if intervalDays <= 0 {
		intervalDays = 1
	}
	matchType := input.MatchType
	if matchType == "" {
		matchType = models.DefaultMatchType
	}

	matches := make([]*models.Match, 0, len(pairings))
	for i, pairing := range pairings {
		match := &models.Match{
			TournamentID: input.TournamentID,
			StadiumID:    input.StadiumID,
			Team1ID:      pairing.Team1ID,
			Team2ID:      pairing.Team2ID,
			MatchDate:    input.StartDate.AddDate(0, 0, i*intervalDays),
			MatchType:    matchType,
			// Жеребьёвка до матча неизвестна, по умолчанию хозяин
			// пары бьёт первым.
			TossWinnerTeamID: pairing.Team1ID,
			TossDecision:     models.TossBat,
		}
		if err := s.matchRepo.Create(ctx, match); err != nil {
			switch {
			case errors.Is(err, repositories.ErrMatchStadiumInvalid):
				return nil, ErrStadiumNotFound
			case errors.Is(err, repositories.ErrMatchTournamentInvalid):
				return nil, ErrTournamentNotFound
			}
			return nil, fmt.Errorf("failed to create fixture %d vs %d: %w", pairing.Team1ID, pairing.Team2ID, err)
		}
		matches = append(matches, match)
		if s.notifier != nil {
			s.notifier.MatchCreated(match)
		}
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		slog.Int("tournament_id", input.TournamentID), slog.Int("matches", len(matches)))
	return matches, nil
}

func (s *matchService) GetByID(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) List(ctx context.Context) ([]*models.MatchSummary, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return summarize(matches), nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchSummary, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return summarize(matches), nil
}

func summarize(matches []*models.Match) []*models.MatchSummary {
	summaries := make([]*models.MatchSummary, 0, len(matches))
	for _, m := range matches {
		summaries = append(summaries, toMatchSummary(m))
	}
	return summaries
}

func (s *matchService) ApplyBallOutcome(ctx context.Context, matchID int, input BallOutcomeInput) (*models.MatchSummary, error) {
	if input.Team != 1 && input.Team != 2 {
		return nil, ErrInvalidTeamNumber
	}

	err := s.matchRepo.ApplyBallOutcome(ctx, matchID, input.Team, input.Runs, input.IsWicket)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to apply ball outcome to match %d: %w", matchID, err)
	}

	return s.Summary(ctx, matchID)
}

// Finalize выставляет победителя и обновляет турнирную таблицу обеих
// команд в одной транзакции: либо применяются все три записи, либо ни
// одной. Повторная финализация отклоняется.
func (s *matchService) Finalize(ctx context.Context, userID, matchID, winnerTeamID int) (txErr error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, match.TournamentID); err != nil {
		return err
	}

	tx, err := s.txs.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.ErrorContext(ctx, "finalize rollback failed",
					slog.Int("match_id", matchID), slog.Any("error", rbErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				txErr = fmt.Errorf("failed to commit finalize transaction: %w", cErr)
			} else if s.notifier != nil {
				s.notifier.MatchFinalized(matchID, winnerTeamID)
			}
		}
	}()

	locked, err := s.matchRepo.GetForUpdate(ctx, tx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			txErr = ErrMatchNotFound
		} else {
			txErr = fmt.Errorf("failed to lock match %d: %w", matchID, err)
		}
		return txErr
	}
	if locked.WinnerTeamID != nil {
		txErr = ErrMatchAlreadyFinalized
		return txErr
	}
	if winnerTeamID != locked.Team1ID && winnerTeamID != locked.Team2ID {
		txErr = ErrWinnerNotInMatch
		return txErr
	}

	if txErr = s.matchRepo.SetWinner(ctx, tx, matchID, winnerTeamID); txErr != nil {
		txErr = fmt.Errorf("failed to set match winner: %w", txErr)
		return txErr
	}
	for _, teamID := range []int{locked.Team1ID, locked.Team2ID} {
		won := teamID == winnerTeamID
		if txErr = s.standingsRepo.ApplyResult(ctx, tx, locked.TournamentID, teamID, won); txErr != nil {
			txErr = fmt.Errorf("failed to update standings for team %d: %w", teamID, txErr)
			return txErr
		}
	}

	return txErr
}

// Delete удаляет матч и каскадно его строки player_performances в одной
// транзакции — единая политика вместо расхождений в исходных ручках.
func (s *matchService) Delete(ctx context.Context, userID, matchID int) (txErr error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, match.TournamentID); err != nil {
		return err
	}

	tx, err := s.txs.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.ErrorContext(ctx, "delete rollback failed",
					slog.Int("match_id", matchID), slog.Any("error", rbErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				txErr = fmt.Errorf("failed to commit delete transaction: %w", cErr)
			} else if s.notifier != nil {
				s.notifier.MatchDeleted(matchID)
			}
		}
	}()

	if txErr = s.performanceRepo.DeleteByMatch(ctx, tx, matchID); txErr != nil {
		txErr = fmt.Errorf("failed to delete performances for match %d: %w", matchID, txErr)
		return txErr
	}
	if txErr = s.matchRepo.Delete(ctx, tx, matchID); txErr != nil {
		if errors.Is(txErr, repositories.ErrMatchNotFound) {
			txErr = ErrMatchNotFound
		} else {
			txErr = fmt.Errorf("failed to delete match %d: %w", matchID, txErr)
		}
		return txErr
	}
	return txErr
}

func (s *matchService) Summary(ctx context.Context, matchID int) (*models.MatchSummary, error) {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return toMatchSummary(match), nil
}

func (s *matchService) Scorecard(ctx context.Context, matchID int) (*models.Scorecard, error) {
	summary, err := s.Summary(ctx, matchID)
	if err != nil {
		return nil, err
	}
	players, err := s.performanceRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances for match %d: %w", matchID, err)
	}
	return &models.Scorecard{Match: summary, Players: players}, nil
}
