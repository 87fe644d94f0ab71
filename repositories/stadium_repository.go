package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/cricket-system/models"
	"github.com/lib/pq"
)

var (
	ErrStadiumNotFound = errors.New("stadium not found")
	ErrStadiumInUse    = errors.New("stadium is referenced by matches")
)

type StadiumRepository interface {
	Create(ctx context.Context, stadium *models.Stadium) error
	GetByID(ctx context.Context, id int) (*models.Stadium, error)
	List(ctx context.Context) ([]*models.Stadium, error)
	Update(ctx context.Context, stadium *models.Stadium) error
	Delete(ctx context.Context, id int) error
}

type postgresStadiumRepository struct {
	db *sql.DB
}

func NewPostgresStadiumRepository(db *sql.DB) StadiumRepository {
	return &postgresStadiumRepository{db: db}
}

func (r *postgresStadiumRepository) Create(ctx context.Context, s *models.Stadium) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO stadiums (name, city) VALUES ($1, $2) RETURNING id`,
		s.Name, s.City,
	).Scan(&s.ID)
	return err
}

func (r *postgresStadiumRepository) GetByID(ctx context.Context, id int) (*models.Stadium, error) {
	var s models.Stadium
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, city FROM stadiums WHERE id = $1`, id,
	).Scan(&s.ID, &s.Name, &s.City)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStadiumNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStadiumRepository) List(ctx context.Context) ([]*models.Stadium, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, city FROM stadiums ORDER BY city ASC NULLS LAST, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stadiums := make([]*models.Stadium, 0)
	for rows.Next() {
		var s models.Stadium
		if err := rows.Scan(&s.ID, &s.Name, &s.City); err != nil {
			return nil, err
		}
		stadiums = append(stadiums, &s)
	}
	return stadiums, rows.Err()
}

func (r *postgresStadiumRepository) Update(ctx context.Context, s *models.Stadium) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE stadiums SET name = $1, city = $2 WHERE id = $3`,
		s.Name, s.City, s.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrStadiumNotFound)
}

func (r *postgresStadiumRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stadiums WHERE id = $1`, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrStadiumInUse
		}
		return err
	}
	return checkAffectedRows(result, ErrStadiumNotFound)
}
