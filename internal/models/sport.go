package models

import (
	"fmt"
	"strings"
	"time"
)

// Sport slugs accepted by the sync and pick surfaces
const (
	SportFootball   = "football"
	SportBasketball = "basketball"
)

// BasketballWeek is the week stored on basketball games, which have no week concept
const BasketballWeek = 1

// Sport represents a sport offered for picks
type Sport struct {
	ID   int    `db:"id"`
	Slug string `db:"slug"`
	Name string `db:"name"`
}

// ParseSport normalizes and validates a sport discriminator
func ParseSport(s string) (string, error) {
	slug := strings.ToLower(strings.TrimSpace(s))
	switch slug {
	case SportFootball, SportBasketball:
		return slug, nil
	default:
		return "", fmt.Errorf("invalid sport %q: must be %q or %q", s, SportFootball, SportBasketball)
	}
}

// Season represents one season of a sport; exactly one per sport is active
type Season struct {
	ID        int       `db:"id"`
	SportID   int       `db:"sport_id"`
	Name      string    `db:"name"`
	Year      int       `db:"year"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsActive  bool      `db:"is_active"`
}
