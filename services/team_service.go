package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
)

var ErrTeamNameRequired = errors.New("team name is required")

type TeamService interface {
	Create(ctx context.Context, userID int, input CreateTeamInput) (*models.Team, error)
	GetWithPlayers(ctx context.Context, teamID int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	AddPlayerByUsername(ctx context.Context, userID, teamID int, username string) error
	Delete(ctx context.Context, userID, teamID int) error
}

type CreateTeamInput struct {
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
}

type teamService struct {
	txs        txStarter
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
	authorizer TournamentAuthorizer
	logger     *slog.Logger
}

func NewTeamService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	authorizer TournamentAuthorizer,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		txs:        sqlTxStarter{db: db},
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (s *teamService) Create(ctx context.Context, userID int, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, input.TournamentID); err != nil {
		return nil, err
	}

	team := &models.Team{TournamentID: input.TournamentID, Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamTournamentInvalid) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetWithPlayers(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}

	players, err := s.teamRepo.ListPlayers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	team.Players = players
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	teams, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for tournament %d: %w", tournamentID, err)
	}
	return teams, nil
}

func (s *teamService) AddPlayerByUsername(ctx context.Context, userID, teamID int, username string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, team.TournamentID); err != nil {
		return err
	}

	player, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user %q: %w", username, err)
	}

	if err := s.teamRepo.AddPlayer(ctx, teamID, player.ID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamPlayerConflict):
			return ErrPlayerAlreadyInTeam
		case errors.Is(err, repositories.ErrTeamPlayerInvalid):
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to add player %d to team %d: %w", player.ID, teamID, err)
	}
	return nil
}

// Delete удаляет команду и её ростер в одной транзакции.
func (s *teamService) Delete(ctx context.Context, userID, teamID int) (txErr error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, team.TournamentID); err != nil {
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
				s.logger.ErrorContext(ctx, "team delete rollback failed",
					slog.Int("team_id", teamID), slog.Any("error", rbErr))
			}
		} else {
			if cErr := tx.Commit(); cErr != nil {
				txErr = fmt.Errorf("failed to commit transaction: %w", cErr)
			}
		}
	}()

	if txErr = s.teamRepo.DeleteRoster(ctx, tx, teamID); txErr != nil {
		txErr = fmt.Errorf("failed to delete roster for team %d: %w", teamID, txErr)
		return txErr
	}
	if txErr = s.teamRepo.Delete(ctx, tx, teamID); txErr != nil {
		if errors.Is(txErr, repositories.ErrTeamNotFound) {
			txErr = ErrTeamNotFound
		} else {
			txErr = fmt.Errorf("failed to delete team %d: %w", teamID, txErr)
		}
		return txErr
	}
	return txErr
}
