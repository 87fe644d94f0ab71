package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-system/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentInvalidAdmin = errors.New("invalid tournament admin reference")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	// GetAdminUserID — узкая выборка для авторизационного предиката.
	GetAdminUserID(ctx context.Context, tournamentID int) (int, error)
	List(ctx context.Context) ([]*models.Tournament, error)
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, location, start_date, end_date, admin_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Location, t.StartDate, t.EndDate, t.AdminUserID,
	).Scan(&t.ID, &t.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrTournamentInvalidAdmin
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT t.id, t.name, t.location, t.start_date, t.end_date, t.admin_user_id, t.created_at,
		       u.full_name
		FROM tournaments t
		JOIN users u ON t.admin_user_id = u.id
		WHERE t.id = $1`

	var t models.Tournament
	var adminName string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Location, &t.StartDate, &t.EndDate, &t.AdminUserID, &t.CreatedAt,
		&adminName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	t.AdminName = &adminName
	return &t, nil
}

func (r *postgresTournamentRepository) GetAdminUserID(ctx context.Context, tournamentID int) (int, error) {
	var adminID int
	err := r.db.QueryRowContext(ctx,
		`SELECT admin_user_id FROM tournaments WHERE id = $1`, tournamentID,
	).Scan(&adminID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrTournamentNotFound
		}
		return 0, err
	}
	return adminID, nil
}

func (r *postgresTournamentRepository) List(ctx context.Context) ([]*models.Tournament, error) {
	query := `
		SELECT t.id, t.name, t.location, t.start_date, t.end_date, t.admin_user_id, t.created_at,
		       u.full_name
		FROM tournaments t
		JOIN users u ON t.admin_user_id = u.id
		ORDER BY t.start_date DESC NULLS LAST, t.id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		var t models.Tournament
		var adminName string
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Location, &t.StartDate, &t.EndDate, &t.AdminUserID, &t.CreatedAt,
			&adminName,
		); err != nil {
			return nil, err
		}
		t.AdminName = &adminName
		tournaments = append(tournaments, &t)
	}
	return tournaments, rows.Err()
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}
