package models

import "time"

// PlayerRole соответствует ENUM player_role в БД.
type PlayerRole string

const (
	RoleBatsman    PlayerRole = "BATSMAN"
	RoleBowler     PlayerRole = "BOWLER"
	RoleAllRounder PlayerRole = "ALL_ROUNDER"
	RoleKeeper     PlayerRole = "KEEPER"
)

func (r PlayerRole) Valid() bool {
	switch r {
	case RoleBatsman, RoleBowler, RoleAllRounder, RoleKeeper:
		return true
	}
	return false
}

type User struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name"`
	Age          *int       `json:"age,omitempty" db:"age"`
	Nationality  *string    `json:"nationality,omitempty" db:"nationality"`
	PlayerRole   PlayerRole `json:"player_role" db:"player_role"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`

	PhotoKey *string `json:"-" db:"photo_key"`
	PhotoURL *string `json:"photo_url,omitempty" db:"-"`
}
