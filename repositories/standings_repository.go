package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-system/models"
)

var ErrStandingsNotFound = errors.New("standings entry not found")

type StandingsRepository interface {
	// ApplyResult добавляет исход матча в строку (турнир, команда):
	// +1 сыгранный, победителю +1 выигранный и +2 очка, проигравшему
	// +1 проигранный. Вызывается только внутри транзакции финализации.
	ApplyResult(ctx context.Context, exec SQLExecutor, tournamentID, teamID int, won bool) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.StandingsEntry, error)
}

type postgresStandingsRepository struct {
	db *sql.DB
}

func NewPostgresStandingsRepository(db *sql.DB) StandingsRepository {
	return &postgresStandingsRepository{db: db}
}

func (r *postgresStandingsRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

// resultDeltas раскладывает исход на инкременты строки standings:
// каждой команде +1 сыгранный, победителю +1 выигранный и +2 очка,
// проигравшей +1 проигранный.
func resultDeltas(won bool) (wonDelta, lostDelta, pointsDelta int) {
	if won {
		return 1, 0, 2
	}
	return 0, 1, 0
}

func (r *postgresStandingsRepository) ApplyResult(ctx context.Context, exec SQLExecutor, tournamentID, teamID int, won bool) error {
	wonDelta, lostDelta, pointsDelta := resultDeltas(won)

	query := `
		INSERT INTO standings (tournament_id, team_id, matches_played, matches_won, matches_lost, points, updated_at)
		VALUES ($1, $2, 1, $3, $4, $5, NOW())
		ON CONFLICT (tournament_id, team_id) DO UPDATE SET
		    matches_played = standings.matches_played + 1,
		    matches_won    = standings.matches_won + EXCLUDED.matches_won,
		    matches_lost   = standings.matches_lost + EXCLUDED.matches_lost,
		    points         = standings.points + EXCLUDED.points,
		    updated_at     = NOW()`

	_, err := r.getExecutor(exec).ExecContext(ctx, query,
		tournamentID, teamID, wonDelta, lostDelta, pointsDelta)
	return err
}

func (r *postgresStandingsRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.StandingsEntry, error) {
	query := `
		SELECT s.id, s.tournament_id, s.team_id, s.matches_played, s.matches_won,
		       s.matches_lost, s.points, s.updated_at, t.name
		FROM standings s
		JOIN teams t ON s.team_id = t.id
		WHERE s.tournament_id = $1
		ORDER BY s.points DESC, s.matches_won DESC, s.team_id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.StandingsEntry, 0)
	for rows.Next() {
		var s models.StandingsEntry
		var teamName string
		if err := rows.Scan(
			&s.ID, &s.TournamentID, &s.TeamID, &s.MatchesPlayed, &s.MatchesWon,
			&s.MatchesLost, &s.Points, &s.UpdatedAt, &teamName,
		); err != nil {
			return nil, err
		}
		s.TeamName = &teamName
		standings = append(standings, &s)
	}
	return standings, rows.Err()
}
