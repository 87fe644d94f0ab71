package models

// PlayerPerformance — одна строка на пару (игрок, матч), накапливаемые
// показатели. StrikeRate == nil, пока balls_faced = 0.
type PlayerPerformance struct {
	UserID       int      `json:"user_id" db:"user_id"`
	MatchID      int      `json:"match_id" db:"match_id"`
	RunsScored   int      `json:"runs_scored" db:"runs_scored"`
	BallsFaced   int      `json:"balls_faced" db:"balls_faced"`
	WicketsTaken int      `json:"wickets_taken" db:"wickets_taken"`
	OversBowled  float64  `json:"overs_bowled" db:"overs_bowled"`
	StrikeRate   *float64 `json:"strike_rate,omitempty" db:"strike_rate"`

	// Заполняется join-ом с users
	FullName   string     `json:"full_name,omitempty" db:"-"`
	PlayerRole PlayerRole `json:"player_role,omitempty" db:"-"`
}
