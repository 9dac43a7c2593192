package model

import "time"

// EventState is the lifecycle state of a game.
type EventState string

// Game states. Only StateFinal is terminal.
const (
	StateUnknown   EventState = "UNKNOWN"
	StateScheduled EventState = "SCHEDULED"
	StateLive      EventState = "LIVE"
	StateDelayed   EventState = "DELAYED"
	StatePostponed EventState = "POSTPONED"
	StateFinal     EventState = "FINAL"
)

// IsTerminal reports whether no further score changes are expected.
func (s EventState) IsTerminal() bool {
	return s == StateFinal
}

// Team is the normalized team shape used inside events.
type Team struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// Event is a provider-independent view of one game.
type Event struct {
	ID        string     `json:"id"`
	League    League     `json:"league"`
	Sport     Sport      `json:"sport"`
	State     EventState `json:"state"`
	Date      time.Time  `json:"date"`
	HomeTeam  Team       `json:"homeTeam"`
	AwayTeam  Team       `json:"awayTeam"`
	HomeScore int        `json:"homeScore"`
	AwayScore int        `json:"awayScore"`
	Detail    string     `json:"detail,omitempty"` // clock / period text, e.g. "Q3 4:12"
}

// ScoreInfo is the cached snapshot for one subscription.
// A nil GeneratedDate means the snapshot was never stamped by a fetch.
type ScoreInfo struct {
	Event         Event      `json:"event"`
	GeneratedDate *time.Time `json:"generatedDate,omitempty"`
	Service       Service    `json:"service,omitempty"`
}

// Stamp sets GeneratedDate to t.
func (s *ScoreInfo) Stamp(t time.Time) {
	ts := t.UTC()
	s.GeneratedDate = &ts
}
