package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/cricket-system/repositories"
)

// TournamentAuthorizer — единый предикат "этот пользователь — админ этого
// турнира", вместо разрозненных inline-проверок по хендлерам.
type TournamentAuthorizer interface {
	EnsureTournamentAdmin(ctx context.Context, userID, tournamentID int) error
}

type tournamentAuthorizer struct {
	tournamentRepo repositories.TournamentRepository
}

func NewTournamentAuthorizer(tournamentRepo repositories.TournamentRepository) TournamentAuthorizer {
	return &tournamentAuthorizer{tournamentRepo: tournamentRepo}
}

func (a *tournamentAuthorizer) EnsureTournamentAdmin(ctx context.Context, userID, tournamentID int) error {
	adminID, err := a.tournamentRepo.GetAdminUserID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to resolve tournament admin: %w", err)
	}
	if adminID != userID {
		return ErrNotTournamentAdmin
	}
	return nil
}
