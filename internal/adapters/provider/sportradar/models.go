package sportradar

// nflBoxscore is the subset of the NFL v7 boxscore payload we read.
type nflBoxscore struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	Scheduled string  `json:"scheduled"`
	Quarter   int     `json:"quarter"`
	Clock     string  `json:"clock"`
	Home      nflTeam `json:"home"`
	Away      nflTeam `json:"away"`
}

type nflTeam struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Market string `json:"market"`
	Alias  string `json:"alias"`
	Points int    `json:"points"`
}

// soccerSummary is the subset of the soccer v4 sport event summary we read.
type soccerSummary struct {
	SportEvent struct {
		ID          string             `json:"id"`
		StartTime   string             `json:"start_time"`
		Competitors []soccerCompetitor `json:"competitors"`
	} `json:"sport_event"`
	SportEventStatus struct {
		Status      string `json:"status"`
		MatchStatus string `json:"match_status"`
		HomeScore   int    `json:"home_score"`
		AwayScore   int    `json:"away_score"`
		Clock       *struct {
			Played string `json:"played"`
		} `json:"clock,omitempty"`
	} `json:"sport_event_status"`
}

type soccerCompetitor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Qualifier    string `json:"qualifier"`
}
