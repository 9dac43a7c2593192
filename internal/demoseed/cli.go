package demoseed

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/okian/livescores/internal/domain/model"
)

// ParseLeagues parses a comma separated league list. An empty list means every league.
func ParseLeagues(csv string) ([]model.League, error) {
	if strings.TrimSpace(csv) == "" {
		all := model.Leagues()
		sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
		return all, nil
	}
	var out []model.League
	seen := map[model.League]bool{}
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		l, err := model.ParseLeague(part)
		if err != nil {
			return nil, err
		}
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty league list", model.ErrUnknownLeague)
	}
	return out, nil
}

// ShowHelp prints usage information for the demo-seed tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Live Scores Demo Seeder
=======================

Binds one demo game per league and fixture (scheduled, live, final) to a
synthetic content id through the HTTP API, then reads every score back.

Usage:
  go run ./cmd/demo-seed [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -leagues string
        Comma separated league codes, e.g. "nfl,eng.1" (default: all leagues)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Log every binding
  -help
        Show this help message

Examples:
  go run ./cmd/demo-seed
  go run ./cmd/demo-seed -leagues nba,wnba -url http://localhost:8080
`)
}
