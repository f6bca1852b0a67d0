package model

// FormatStats holds a player's aggregates for one match format.
type FormatStats struct {
	Runs          int `json:"runs"`
	Wickets       int `json:"wickets"`
	Matches       int `json:"matches"`
	Centuries     int `json:"centuries"`
	HalfCenturies int `json:"half_centuries"`
}

// PlayerStats holds lifetime aggregates derived from the delivery stream.
// Centuries and half-centuries count innings, so a 103 is one century and no fifty.
type PlayerStats struct {
	Player        Player                 `json:"player"`
	TotalRuns     int                    `json:"total_runs"`
	TotalWickets  int                    `json:"total_wickets"`
	Centuries     int                    `json:"centuries"`
	HalfCenturies int                    `json:"half_centuries"`
	Matches       int                    `json:"matches"`
	ByFormat      map[Format]FormatStats `json:"by_format"`
}

// TeamStats holds a team's results across finished matches.
type TeamStats struct {
	TeamID      string `json:"team_id"`
	Played      int    `json:"played"`
	Won         int    `json:"won"`
	Lost        int    `json:"lost"`
	Tied        int    `json:"tied"`
	Drawn       int    `json:"drawn"`
	NoResult    int    `json:"no_result"`
	TotalRuns   int    `json:"total_runs"`
	WicketsLost int    `json:"wickets_lost"`
}

// WinPercentage is the share of played matches won, 0 when nothing was played.
func (t TeamStats) WinPercentage() float64 {
	if t.Played == 0 {
		return 0
	}
	return float64(t.Won) / float64(t.Played) * 100
}

// PlayerLeader pairs a player with the stat value that made them the leader.
type PlayerLeader struct {
	Player Player `json:"player"`
	Value  int    `json:"value"`
}
