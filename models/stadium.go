package models

type Stadium struct {
	ID   int     `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	City *string `json:"city,omitempty" db:"city"`
}
