package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSyncUnit(t *testing.T) {
	loc, _ := time.LoadLocation("UTC")
	day := BasketballDay(time.Date(2025, 1, 9, 23, 59, 0, 0, loc))

	assert.Equal(t, "2025-01-09", day.Label())
	assert.Equal(t, BasketballWeek, day.WeekFor(SportBasketball))
	assert.NoError(t, day.Validate(SportBasketball))
	assert.Error(t, SyncUnit{}.Validate(SportBasketball))

	week := FootballWeek(2024, 5)
	assert.Equal(t, "2024-week-05", week.Label())
	assert.Equal(t, 5, week.WeekFor(SportFootball))
	assert.Equal(t, DefaultConference, week.Conference)
	assert.NoError(t, week.Validate(SportFootball))
	assert.Error(t, FootballWeek(2024, 0).Validate(SportFootball))
	assert.Error(t, week.Validate("hockey"))
}
