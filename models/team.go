package models

import "time"

type Team struct {
	ID           int       `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	TournamentName *string `json:"tournament_name,omitempty" db:"-"`
	PlayerCount    *int    `json:"player_count,omitempty" db:"-"`
	Players        []User  `json:"players,omitempty" db:"-"`
}
