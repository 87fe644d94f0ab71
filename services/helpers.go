package services

import (
	"github.com/Dosada05/cricket-system/models"
	"github.com/Dosada05/cricket-system/scoring"
	"github.com/Dosada05/cricket-system/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// toMatchSummary собирает read-представление матча: имена из join-ов и
// отформатированные строки счёта.
func toMatchSummary(m *models.Match) *models.MatchSummary {
	if m == nil {
		return nil
	}

	team1 := scoring.Innings{Runs: m.Team1Runs, Wickets: m.Team1Wickets, Balls: m.Team1Balls}
	team2 := scoring.Innings{Runs: m.Team2Runs, Wickets: m.Team2Wickets, Balls: m.Team2Balls}

	summary := &models.MatchSummary{
		MatchID:        m.ID,
		TournamentName: derefString(m.TournamentName),
		StadiumName:    derefString(m.StadiumName),
		Team1:          derefString(m.Team1Name),
		Team2:          derefString(m.Team2Name),
		Team1Score:     team1.Score(),
		Team2Score:     team2.Score(),
		TossDecision:   m.TossDecision,
		MatchType:      m.MatchType,
		MatchDate:      m.MatchDate,
	}

	if m.WinnerTeamID != nil {
		summary.Winner = teamNameByID(m, *m.WinnerTeamID)
	}
	summary.TossWinner = teamNameByID(m, m.TossWinnerTeamID)

	return summary
}

func teamNameByID(m *models.Match, teamID int) *string {
	switch teamID {
	case m.Team1ID:
		return m.Team1Name
	case m.Team2ID:
		return m.Team2Name
	}
	return nil
}

func populateUserPhotoURL(user *models.User, uploader storage.FileUploader) {
	if user == nil {
		return
	}
	user.PasswordHash = ""
	if user.PhotoKey != nil && *user.PhotoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*user.PhotoKey)
		if url != "" {
			user.PhotoURL = &url
		}
	}
}
