package models

import "time"

// TossDecision соответствует ENUM toss_decision в БД.
type TossDecision string

const (
	TossBat  TossDecision = "BAT"
	TossBowl TossDecision = "BOWL"
)

func (d TossDecision) Valid() bool {
	return d == TossBat || d == TossBowl
}

const DefaultMatchType = "T20"

// Match хранит агрегатное состояние матча: по одному innings на команду.
// Мячи считаются целым счётчиком (balls), а не десятичной дробью —
// в строки вида "4.3 overs" они превращаются только на границе API.
type Match struct {
	ID               int          `json:"id" db:"id"`
	TournamentID     int          `json:"tournament_id" db:"tournament_id"`
	StadiumID        int          `json:"stadium_id" db:"stadium_id"`
	Team1ID          int          `json:"team1_id" db:"team1_id"`
	Team2ID          int          `json:"team2_id" db:"team2_id"`
	MatchDate        time.Time    `json:"match_date" db:"match_date"`
	MatchType        string       `json:"match_type" db:"match_type"`
	TossWinnerTeamID int          `json:"toss_winner_team_id" db:"toss_winner_team_id"`
	TossDecision     TossDecision `json:"toss_decision" db:"toss_decision"`

	Team1Runs    int `json:"team1_runs" db:"team1_runs"`
	Team1Wickets int `json:"team1_wickets" db:"team1_wickets"`
	Team1Balls   int `json:"team1_balls" db:"team1_balls"`
	Team2Runs    int `json:"team2_runs" db:"team2_runs"`
	Team2Wickets int `json:"team2_wickets" db:"team2_wickets"`
	Team2Balls   int `json:"team2_balls" db:"team2_balls"`

	WinnerTeamID *int      `json:"winner_team_id,omitempty" db:"winner_team_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	// Опциональные связанные данные, заполняются сервисом
	Team1Name      *string `json:"team1_name,omitempty" db:"-"`
	Team2Name      *string `json:"team2_name,omitempty" db:"-"`
	StadiumName    *string `json:"stadium_name,omitempty" db:"-"`
	TournamentName *string `json:"tournament_name,omitempty" db:"-"`
}

// MatchSummary — композитное read-представление матча с именами команд,
// стадиона и турнира и отформатированными строками счёта.
type MatchSummary struct {
	MatchID        int          `json:"match_id"`
	TournamentName string       `json:"tournament_name"`
	StadiumName    string       `json:"stadium_name"`
	Team1          string       `json:"team1"`
	Team2          string       `json:"team2"`
	Team1Score     string       `json:"team1_score"`
	Team2Score     string       `json:"team2_score"`
	Winner         *string      `json:"winner,omitempty"`
	TossWinner     *string      `json:"toss_winner,omitempty"`
	TossDecision   TossDecision `json:"toss_decision"`
	MatchType      string       `json:"match_type"`
	MatchDate      time.Time    `json:"match_date"`
}

// Scorecard — сводка матча вместе с построчной статистикой игроков.
type Scorecard struct {
	Match   *MatchSummary        `json:"match"`
	Players []*PlayerPerformance `json:"players"`
}
