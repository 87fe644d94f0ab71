package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamTournamentInvalid = errors.New("team tournament conflict or invalid")
	ErrTeamPlayerConflict    = errors.New("player is already in this team")
	ErrTeamPlayerInvalid     = errors.New("team player conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error)
	ListPlayers(ctx context.Context, teamID int) ([]models.User, error)
	AddPlayer(ctx context.Context, teamID, userID int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	DeleteRoster(ctx context.Context, exec SQLExecutor, teamID int) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) Create(ctx context.Context, t *models.Team) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO teams (tournament_id, name) VALUES ($1, $2) RETURNING id, created_at`,
		t.TournamentID, t.Name,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrTeamTournamentInvalid
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.name, t.created_at, tr.name
		FROM teams t
		JOIN tournaments tr ON t.tournament_id = tr.id
		WHERE t.id = $1`

	var t models.Team
	var tournamentName string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentID, &t.Name, &t.CreatedAt, &tournamentName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	t.TournamentName = &tournamentName
	return &t, nil
}

func (r *postgresTeamRepository) List(ctx context.Context) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.name, t.created_at, tr.name
		FROM teams t
		JOIN tournaments tr ON t.tournament_id = tr.id
		ORDER BY tr.start_date DESC NULLS LAST, t.name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		var tournamentName string
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.CreatedAt, &tournamentName); err != nil {
			return nil, err
		}
		t.TournamentName = &tournamentName
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.tournament_id, t.name, t.created_at, COUNT(tp.user_id)
		FROM teams t
		LEFT JOIN team_players tp ON t.id = tp.team_id
		WHERE t.tournament_id = $1
		GROUP BY t.id
		ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		var count int
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.CreatedAt, &count); err != nil {
			return nil, err
		}
		t.PlayerCount = &count
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) ListPlayers(ctx context.Context, teamID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.player_role
		FROM team_players tp
		JOIN users u ON tp.user_id = u.id
		WHERE tp.team_id = $1
		ORDER BY u.full_name ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.PlayerRole); err != nil {
			return nil, err
		}
		players = append(players, u)
	}
	return players, rows.Err()
}

func (r *postgresTeamRepository) AddPlayer(ctx context.Context, teamID, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_players (team_id, user_id) VALUES ($1, $2)`,
		teamID, userID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrTeamPlayerConflict
			case "23503": // foreign_key_violation
				return ErrTeamPlayerInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresTeamRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) DeleteRoster(ctx context.Context, exec SQLExecutor, teamID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx, `DELETE FROM team_players WHERE team_id = $1`, teamID)
	return err
}
