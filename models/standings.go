package models

import "time"

// StandingsEntry — строка турнирной таблицы: одна на пару (турнир, команда).
// Обновляется только в транзакции финализации матча.
type StandingsEntry struct {
	ID            int       `json:"id" db:"id"`
	TournamentID  int       `json:"tournament_id" db:"tournament_id"`
	TeamID        int       `json:"team_id" db:"team_id"`
	MatchesPlayed int       `json:"matches_played" db:"matches_played"`
	MatchesWon    int       `json:"matches_won" db:"matches_won"`
	MatchesLost   int       `json:"matches_lost" db:"matches_lost"`
	Points        int       `json:"points" db:"points"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`

	TeamName *string `json:"team_name,omitempty" db:"-"`
}
