package models

import (
	"database/sql"
	"time"
)

// Team represents a school's team in one sport
type Team struct {
	ID           int            `db:"id"`
	SportID      int            `db:"sport_id"`
	Name         string         `db:"name"`
	ShortName    string         `db:"short_name"`
	Abbreviation string         `db:"abbreviation"`
	Conference   sql.NullString `db:"conference"`
	PrimaryColor sql.NullString `db:"primary_color"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// TeamsByAbbreviation indexes teams by abbreviation
func TeamsByAbbreviation(teams []Team) map[string]Team {
	m := make(map[string]Team, len(teams))
	for _, t := range teams {
		m[t.Abbreviation] = t
	}
	return m
}
