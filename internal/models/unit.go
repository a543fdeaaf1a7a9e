package models

import (
	"fmt"
	"time"
)

// DefaultConference is the football scoreboard conference segment covering all of FBS
const DefaultConference = "all-conf"

// SyncUnit is one scoreboard request: a calendar date for basketball, a
// season year and week for football.
type SyncUnit struct {
	Date       time.Time
	Year       int
	Week       int
	Conference string
}

// BasketballDay returns the unit for the calendar date of t in t's location
func BasketballDay(t time.Time) SyncUnit {
	y, m, d := t.Date()
	return SyncUnit{Date: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// FootballWeek returns the unit for a football week across all conferences
func FootballWeek(year, week int) SyncUnit {
	return SyncUnit{Year: year, Week: week, Conference: DefaultConference}
}

// WeekFor returns the week stored on games created by this unit
func (u SyncUnit) WeekFor(sport string) int {
	if sport == SportFootball {
		return u.Week
	}
	return BasketballWeek
}

// Validate checks that the unit carries what sport needs
func (u SyncUnit) Validate(sport string) error {
	switch sport {
	case SportFootball:
		if u.Year < 1900 {
			return fmt.Errorf("invalid football year %d", u.Year)
		}
		if u.Week < 1 || u.Week > 20 {
			return fmt.Errorf("invalid football week %d", u.Week)
		}
	case SportBasketball:
		if u.Date.IsZero() {
			return fmt.Errorf("basketball sync requires a date")
		}
	default:
		return fmt.Errorf("invalid sport %q", sport)
	}
	return nil
}

// Label renders the unit for logs and responses
func (u SyncUnit) Label() string {
	if !u.Date.IsZero() {
		return u.Date.Format("2006-01-02")
	}
	return fmt.Sprintf("%d-week-%02d", u.Year, u.Week)
}
