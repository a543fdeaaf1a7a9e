package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FlexString accepts a JSON string or number and keeps its textual form.
// The scoreboard source is inconsistent about quoting epochs and scores.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode string value: %w", err)
		}
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the raw text
func (f FlexString) String() string {
	return string(f)
}

// Scoreboard is the body of a scoreboard response
type Scoreboard struct {
	Games []ScoreboardEntry `json:"games"`
}

// ScoreboardEntry wraps one game record
type ScoreboardEntry struct {
	Game ScoreboardGame `json:"game"`
}

// ScoreboardGame is one raw external game record
type ScoreboardGame struct {
	GameID         FlexString     `json:"gameID"`
	StartDate      string         `json:"startDate"`
	StartTime      string         `json:"startTime"`
	StartTimeEpoch FlexString     `json:"startTimeEpoch"`
	GameState      string         `json:"gameState"`
	CurrentPeriod  string         `json:"currentPeriod,omitempty"`
	FinalMessage   string         `json:"finalMessage,omitempty"`
	Home           ScoreboardSide `json:"home"`
	Away           ScoreboardSide `json:"away"`
}

// ScoreboardSide is the home or away half of a raw record
type ScoreboardSide struct {
	Score       FlexString           `json:"score"`
	Names       ScoreboardNames      `json:"names"`
	Winner      bool                 `json:"winner,omitempty"`
	Conferences []ScoreboardConfName `json:"conferences,omitempty"`
}

// ScoreboardNames carries the name variants of a side; Seo is the resolver key
type ScoreboardNames struct {
	Char6 string `json:"char6"`
	Short string `json:"short"`
	Seo   string `json:"seo"`
	Full  string `json:"full"`
}

// ScoreboardConfName names a side's conference
type ScoreboardConfName struct {
	ConferenceName string `json:"conferenceName"`
}

// Schedule is the body of a month schedule response
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

// ScheduleDate is one day in a month schedule
type ScheduleDate struct {
	Date  string `json:"date"`
	Games int    `json:"games"`
}
