package models

import "time"

// Tournament представляет турнир. AdminUserID — единственный принципал,
// которому разрешены мутации внутри турнира (матчи, команды, статистика).
type Tournament struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Location    *string    `json:"location,omitempty" db:"location"`
	StartDate   *time.Time `json:"start_date,omitempty" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	AdminUserID int        `json:"admin_user_id" db:"admin_user_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`

	// Опциональные связанные сущности (не мапятся напрямую)
	AdminName *string `json:"admin_name,omitempty" db:"-"`
	Admin     *User   `json:"admin,omitempty" db:"-"`
}
