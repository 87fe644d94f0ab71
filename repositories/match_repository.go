package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-system/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchStadiumInvalid    = errors.New("match stadium conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetForUpdate читает строку матча с блокировкой внутри транзакции
	// финализации.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context) ([]*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error)
	// ApplyBallOutcome — одиночный UPDATE с относительными инкрементами:
	// конкурентные вызовы не теряют обновлений, команда выбирается
	// значением 1 или 2.
	ApplyBallOutcome(ctx context.Context, matchID, team, runs int, wicket bool) error
	SetWinner(ctx context.Context, exec SQLExecutor, matchID, winnerTeamID int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, m *models.Match) error {
	query := `
		INSERT INTO matches
		    (tournament_id, stadium_id, team1_id, team2_id, match_date, match_type,
		     toss_winner_team_id, toss_decision)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		m.TournamentID, m.StadiumID, m.Team1ID, m.Team2ID, m.MatchDate, m.MatchType,
		m.TossWinnerTeamID, m.TossDecision,
	).Scan(&m.ID, &m.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_stadium_id_fkey":
				return ErrMatchStadiumInvalid
			default:
				return ErrMatchTeamInvalid
			}
		}
		return err
	}
	return nil
}

const matchSelectColumns = `
	m.id, m.tournament_id, m.stadium_id, m.team1_id, m.team2_id,
	m.match_date, m.match_type, m.toss_winner_team_id, m.toss_decision,
	m.team1_runs, m.team1_wickets, m.team1_balls,
	m.team2_runs, m.team2_wickets, m.team2_balls,
	m.winner_team_id, m.created_at,
	t1.name, t2.name, s.name, tr.name`

const matchSelectJoins = `
	FROM matches m
	JOIN teams t1 ON m.team1_id = t1.id
	JOIN teams t2 ON m.team2_id = t2.id
	JOIN stadiums s ON m.stadium_id = s.id
	JOIN tournaments tr ON m.tournament_id = tr.id`

func (r *postgresMatchRepository) scanMatch(row interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	var team1Name, team2Name, stadiumName, tournamentName string
	err := row.Scan(
		&m.ID, &m.TournamentID, &m.StadiumID, &m.Team1ID, &m.Team2ID,
		&m.MatchDate, &m.MatchType, &m.TossWinnerTeamID, &m.TossDecision,
		&m.Team1Runs, &m.Team1Wickets, &m.Team1Balls,
		&m.Team2Runs, &m.Team2Wickets, &m.Team2Balls,
		&m.WinnerTeamID, &m.CreatedAt,
		&team1Name, &team2Name, &stadiumName, &tournamentName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	m.Team1Name = &team1Name
	m.Team2Name = &team2Name
	m.StadiumName = &stadiumName
	m.TournamentName = &tournamentName
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT` + matchSelectColumns + matchSelectJoins + ` WHERE m.id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `
		SELECT id, tournament_id, stadium_id, team1_id, team2_id,
		       match_date, match_type, toss_winner_team_id, toss_decision,
		       team1_runs, team1_wickets, team1_balls,
		       team2_runs, team2_wickets, team2_balls,
		       winner_team_id, created_at
		FROM matches
		WHERE id = $1
		FOR UPDATE`

	var m models.Match
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.TournamentID, &m.StadiumID, &m.Team1ID, &m.Team2ID,
		&m.MatchDate, &m.MatchType, &m.TossWinnerTeamID, &m.TossDecision,
		&m.Team1Runs, &m.Team1Wickets, &m.Team1Balls,
		&m.Team2Runs, &m.Team2Wickets, &m.Team2Balls,
		&m.WinnerTeamID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, errScan := r.scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT` + matchSelectColumns + matchSelectJoins + ` ORDER BY m.match_date DESC`
	return r.list(ctx, query)
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `SELECT` + matchSelectColumns + matchSelectJoins +
		` WHERE m.tournament_id = $1 ORDER BY m.match_date DESC`
	return r.list(ctx, query, tournamentID)
}

func (r *postgresMatchRepository) ApplyBallOutcome(ctx context.Context, matchID, team, runs int, wicket bool) error {
	wicketDelta := 0
	if wicket {
		wicketDelta = 1
	}

	var query string
	if team == 1 {
		query = `
			UPDATE matches
			SET team1_runs    = team1_runs + $1,
			    team1_wickets = LEAST(team1_wickets + $2, 10),
			    team1_balls   = team1_balls + 1
			WHERE id = $3`
	} else {
		query = `
			UPDATE matches
			SET team2_runs    = team2_runs + $1,
			    team2_wickets = LEAST(team2_wickets + $2, 10),
			    team2_balls   = team2_balls + 1
			WHERE id = $3`
	}

	result, err := r.db.ExecContext(ctx, query, runs, wicketDelta, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) SetWinner(ctx context.Context, exec SQLExecutor, matchID, winnerTeamID int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx,
		`UPDATE matches SET winner_team_id = $1 WHERE id = $2`,
		winnerTeamID, matchID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}
