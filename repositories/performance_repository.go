package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-system/models"
	"github.com/lib/pq"
)

var (
	ErrPerformanceNotFound   = errors.New("player performance not found")
	ErrPerformanceRefInvalid = errors.New("performance user or match reference invalid")
)

type PerformanceRepository interface {
	// Upsert прибавляет дельты к строке (user, match), создавая её при
	// первом вкладе игрока. strike_rate пересчитывается тем же
	// statement-ом и остаётся NULL, пока balls_faced = 0.
	Upsert(ctx context.Context, perf *models.PlayerPerformance) error
	Get(ctx context.Context, userID, matchID int) (*models.PlayerPerformance, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error)
	DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error
}

type postgresPerformanceRepository struct {
	db *sql.DB
}

func NewPostgresPerformanceRepository(db *sql.DB) PerformanceRepository {
	return &postgresPerformanceRepository{db: db}
}

func (r *postgresPerformanceRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPerformanceRepository) Upsert(ctx context.Context, p *models.PlayerPerformance) error {
	query := `
		INSERT INTO player_performances
		    (user_id, match_id, runs_scored, balls_faced, wickets_taken, overs_bowled, strike_rate)
		VALUES ($1, $2, $3, $4, $5, $6,
		        CASE WHEN $4 > 0 THEN $3::numeric / $4 * 100 END)
		ON CONFLICT (user_id, match_id) DO UPDATE SET
		    runs_scored   = player_performances.runs_scored + EXCLUDED.runs_scored,
		    balls_faced   = player_performances.balls_faced + EXCLUDED.balls_faced,
		    wickets_taken = player_performances.wickets_taken + EXCLUDED.wickets_taken,
		    overs_bowled  = player_performances.overs_bowled + EXCLUDED.overs_bowled,
		    strike_rate   = CASE
		        WHEN player_performances.balls_faced + EXCLUDED.balls_faced > 0
		        THEN (player_performances.runs_scored + EXCLUDED.runs_scored)::numeric
		             / (player_performances.balls_faced + EXCLUDED.balls_faced) * 100
		    END
		RETURNING runs_scored, balls_faced, wickets_taken, overs_bowled, strike_rate`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.MatchID, p.RunsScored, p.BallsFaced, p.WicketsTaken, p.OversBowled,
	).Scan(&p.RunsScored, &p.BallsFaced, &p.WicketsTaken, &p.OversBowled, &p.StrikeRate)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrPerformanceRefInvalid
		}
		return err
	}
	return nil
}

func (r *postgresPerformanceRepository) Get(ctx context.Context, userID, matchID int) (*models.PlayerPerformance, error) {
	query := `
		SELECT user_id, match_id, runs_scored, balls_faced, wickets_taken, overs_bowled, strike_rate
		FROM player_performances
		WHERE user_id = $1 AND match_id = $2`

	var p models.PlayerPerformance
	err := r.db.QueryRowContext(ctx, query, userID, matchID).Scan(
		&p.UserID, &p.MatchID, &p.RunsScored, &p.BallsFaced,
		&p.WicketsTaken, &p.OversBowled, &p.StrikeRate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPerformanceNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresPerformanceRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.PlayerPerformance, error) {
	query := `
		SELECT p.user_id, p.match_id, p.runs_scored, p.balls_faced,
		       p.wickets_taken, p.overs_bowled, p.strike_rate,
		       u.full_name, u.player_role
		FROM player_performances p
		JOIN users u ON u.id = p.user_id
		WHERE p.match_id = $1
		ORDER BY p.runs_scored DESC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performances := make([]*models.PlayerPerformance, 0)
	for rows.Next() {
		var p models.PlayerPerformance
		if err := rows.Scan(
			&p.UserID, &p.MatchID, &p.RunsScored, &p.BallsFaced,
			&p.WicketsTaken, &p.OversBowled, &p.StrikeRate,
			&p.FullName, &p.PlayerRole,
		); err != nil {
			return nil, err
		}
		performances = append(performances, &p)
	}
	return performances, rows.Err()
}

func (r *postgresPerformanceRepository) DeleteByMatch(ctx context.Context, exec SQLExecutor, matchID int) error {
	_, err := r.getExecutor(exec).ExecContext(ctx,
		`DELETE FROM player_performances WHERE match_id = $1`, matchID)
	return err
}
