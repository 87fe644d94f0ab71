package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrUserNotFound       = errors.New("user not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrStadiumNotFound    = errors.New("stadium not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed     = errors.New("validation failed")
	ErrInvalidTeamNumber    = errors.New("team must be 1 or 2")
	ErrInvalidTossDecision  = errors.New("toss decision must be BAT or BOWL")
	ErrSameTeams            = errors.New("team1 and team2 must be different teams")
	ErrWinnerNotInMatch     = errors.New("winner team is not one of the match teams")
	ErrInvalidPlayerRole    = errors.New("invalid player role")
	ErrInvalidAge           = errors.New("age must be between 15 and 45")
	ErrTossWinnerNotInMatch = errors.New("toss winner is not one of the match teams")

	// Ошибки конфликтов
	ErrUsernameTaken         = errors.New("username already exists")
	ErrMatchAlreadyFinalized = errors.New("match has already been finalized")
	ErrPlayerAlreadyInTeam   = errors.New("player is already in this team")
	ErrStadiumInUse          = errors.New("stadium is still referenced by matches")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid username or password")
	ErrNotTournamentAdmin     = errors.New("only the tournament admin can perform this action")
)
