package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/repositories"
)

var ErrTournamentNameRequired = errors.New("tournament name is required")

type TournamentService interface {
	Create(ctx context.Context, adminUserID int, input CreateTournamentInput) (*models.Tournament, error)
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Delete(ctx context.Context, userID, tournamentID int) error
	Standings(ctx context.Context, tournamentID int) ([]*models.StandingsEntry, error)
}

type CreateTournamentInput struct {
	Name      string     `json:"name"`
	Location  *string    `json:"location,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	standingsRepo  repositories.StandingsRepository
	authorizer     TournamentAuthorizer
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	standingsRepo repositories.StandingsRepository,
	authorizer TournamentAuthorizer,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		standingsRepo:  standingsRepo,
		authorizer:     authorizer,
	}
}

func (s *tournamentService) Create(ctx context.Context, adminUserID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	// Создатель турнира становится его админом.
	tournament := &models.Tournament{
		Name:        name,
		Location:    input.Location,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		AdminUserID: adminUserID,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentInvalidAdmin) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}
	return tournament, nil
}

func (s *tournamentService) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) Delete(ctx context.Context, userID, tournamentID int) error {
	if err := s.authorizer.EnsureTournamentAdmin(ctx, userID, tournamentID); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (s *tournamentService) Standings(ctx context.Context, tournamentID int) ([]*models.StandingsEntry, error) {
	if _, err := s.tournamentRepo.GetAdminUserID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to check tournament %d: %w", tournamentID, err)
	}

	standings, err := s.standingsRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings for tournament %d: %w", tournamentID, err)
	}
	return standings, nil
}
