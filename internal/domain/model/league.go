// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
)

// League is a league code as used in provider URLs (ESPN path segment).
type League string

// Supported leagues.
const (
	LeagueNFL             League = "nfl"
	LeagueNCAAF           League = "college-football"
	LeagueNBA             League = "nba"
	LeagueWNBA            League = "wnba"
	LeagueNCAAMB          League = "mens-college-basketball"
	LeagueMLB             League = "mlb"
	LeagueNHL             League = "nhl"
	LeagueEPL             League = "eng.1"
	LeagueLaLiga          League = "esp.1"
	LeagueBundesliga      League = "ger.1"
	LeagueSerieA          League = "ita.1"
	LeagueLigue1          League = "fra.1"
	LeagueMLS             League = "usa.1"
	LeagueChampionsLeague League = "uefa.champions"
)

// Sport groups leagues that share a payload shape upstream.
type Sport string

// Supported sports.
const (
	SportFootball   Sport = "football"
	SportBasketball Sport = "basketball"
	SportBaseball   Sport = "baseball"
	SportHockey     Sport = "hockey"
	SportSoccer     Sport = "soccer"
)

var leagueSports = map[League]Sport{
	LeagueNFL:             SportFootball,
	LeagueNCAAF:           SportFootball,
	LeagueNBA:             SportBasketball,
	LeagueWNBA:            SportBasketball,
	LeagueNCAAMB:          SportBasketball,
	LeagueMLB:             SportBaseball,
	LeagueNHL:             SportHockey,
	LeagueEPL:             SportSoccer,
	LeagueLaLiga:          SportSoccer,
	LeagueBundesliga:      SportSoccer,
	LeagueSerieA:          SportSoccer,
	LeagueLigue1:          SportSoccer,
	LeagueMLS:             SportSoccer,
	LeagueChampionsLeague: SportSoccer,
}

// ParseLeague maps a league code to a known League.
func ParseLeague(s string) (League, error) {
	l := League(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := leagueSports[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLeague, s)
	}
	return l, nil
}

// Sport returns the sport the league belongs to, or "" for unknown leagues.
func (l League) Sport() Sport {
	return leagueSports[l]
}

// Leagues returns every supported league.
func Leagues() []League {
	out := make([]League, 0, len(leagueSports))
	for l := range leagueSports {
		out = append(out, l)
	}
	return out
}
