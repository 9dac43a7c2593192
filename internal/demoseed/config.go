package demoseed

import (
	"time"

	"github.com/okian/livescores/internal/adapters/provider/demo"
	"github.com/okian/livescores/internal/domain/model"
)

// Config holds configuration for a seeding run.
type Config struct {
	BaseURL string         // Base URL of the service
	Leagues []model.League // Leagues to seed; every league when empty
	Timeout time.Duration  // HTTP request timeout
	Workers int            // Concurrent requests
	Verbose bool           // Log every binding
}

// Binding is one demo game bound to one synthetic content id.
type Binding struct {
	ContentID string
	League    model.League
	Fixture   demo.Fixture
	EventID   string
}

// Result is the outcome of binding and reading back one game.
type Result struct {
	Binding
	Bound bool
	State model.EventState
	Err   error
}

// Stats holds run statistics.
type Stats struct {
	Planned   int
	Bound     int
	Verified  int
	Failed    int
	StartTime time.Time
	Duration  time.Duration
}
