// Package model contains cricket domain entities and value types used across layers.
package model

import "time"

// Format is the match format. It drives over and day limits.
type Format string

const (
	FormatT20  Format = "T20"
	FormatODI  Format = "ODI"
	FormatTest Format = "TEST"
)

// Formats lists every supported format in a stable order.
var Formats = []Format{FormatT20, FormatODI, FormatTest}

// BallType is the outcome kind of a single delivery.
type BallType string

const (
	BallNormal BallType = "NORMAL"
	BallWide   BallType = "WIDE"
	BallNoBall BallType = "NO_BALL"
	BallWicket BallType = "WICKET"
)

// WicketKind is how a batter was dismissed.
type WicketKind string

const (
	WicketCaught  WicketKind = "CAUGHT"
	WicketBowled  WicketKind = "BOWLED"
	WicketLBW     WicketKind = "LBW"
	WicketRunOut  WicketKind = "RUN_OUT"
	WicketStumped WicketKind = "STUMPED"
)

// MatchState is the top-level lifecycle of a match.
type MatchState string

const (
	MatchNotStarted MatchState = "NOT_STARTED"
	MatchInProgress MatchState = "IN_PROGRESS"
	MatchCompleted  MatchState = "COMPLETED"
	MatchAbandoned  MatchState = "ABANDONED"
)

// InningsState is the lifecycle of one innings. COMPLETED is terminal.
type InningsState string

const (
	InningsInProgress InningsState = "IN_PROGRESS"
	InningsCompleted  InningsState = "COMPLETED"
)

// PlayerType is the primary discipline of a player.
type PlayerType string

const (
	PlayerBatsman    PlayerType = "BATSMAN"
	PlayerBowler     PlayerType = "BOWLER"
	PlayerAllRounder PlayerType = "ALLROUNDER"
)

// Player is a cricketer. Identity is the ID; everything else is descriptive.
// An empty BowlingStyle means the player is not used as a bowler.
type Player struct {
	ID           string     `json:"id" validate:"required"`
	Name         string     `json:"name"`
	Country      string     `json:"country,omitempty"`
	Type         PlayerType `json:"type,omitempty"`
	BattingStyle string     `json:"batting_style,omitempty"`
	BowlingStyle string     `json:"bowling_style,omitempty"`
}

// Team is a named roster. Player order is the batting order used for replacements.
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Players []Player `json:"players"`
	Coach   string   `json:"coach,omitempty"`
}

// Umpire officiates a match.
type Umpire struct {
	Name              string `json:"name"`
	Country           string `json:"country,omitempty"`
	MatchesOfficiated int    `json:"matches_officiated,omitempty"`
	Ranking           int    `json:"ranking,omitempty"`
}

// Stadium is where a match is played.
type Stadium struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// MatchInfo identifies the match and innings a delivery belongs to.
// Observers receive it with every delivery.
type MatchInfo struct {
	MatchID       string `json:"match_id"`
	Format        Format `json:"format"`
	Innings       int    `json:"innings"`
	BattingTeamID string `json:"batting_team_id"`
	BowlingTeamID string `json:"bowling_team_id"`
}

// Outcome is how a finished match was decided.
type Outcome string

const (
	OutcomeWin      Outcome = "WIN"
	OutcomeTie      Outcome = "TIE"
	OutcomeDraw     Outcome = "DRAW"
	OutcomeNoResult Outcome = "NO_RESULT"
)

// MarginUnit qualifies MatchResult.Margin.
type MarginUnit string

const (
	MarginRuns           MarginUnit = "runs"
	MarginWickets        MarginUnit = "wickets"
	MarginInningsAndRuns MarginUnit = "innings_and_runs"
)

// InningsTotal is the final score of one innings.
type InningsTotal struct {
	Number        int    `json:"number"`
	BattingTeamID string `json:"batting_team_id"`
	Score         Score  `json:"score"`
}

// MatchResult describes a finished (completed or abandoned) match.
type MatchResult struct {
	Outcome      Outcome        `json:"outcome"`
	WinnerTeamID string         `json:"winner_team_id,omitempty"`
	LoserTeamID  string         `json:"loser_team_id,omitempty"`
	Margin       int            `json:"margin,omitempty"`
	MarginUnit   MarginUnit     `json:"margin_unit,omitempty"`
	Innings      []InningsTotal `json:"innings"`
}

// MatchSummary is a read model of a match for API responses.
type MatchSummary struct {
	ID             string         `json:"id"`
	Format         Format         `json:"format"`
	State          MatchState     `json:"state"`
	Team1          string         `json:"team1_id"`
	Team2          string         `json:"team2_id"`
	Stadium        string         `json:"stadium,omitempty"`
	Day            int            `json:"day,omitempty"`
	CurrentScore   Score          `json:"current_score"`
	CurrentInnings int            `json:"current_innings"`
	Target         int            `json:"target,omitempty"`
	Striker        string         `json:"striker_id,omitempty"`
	NonStriker     string         `json:"non_striker_id,omitempty"`
	Bowler         string         `json:"bowler_id,omitempty"`
	Innings        []InningsTotal `json:"innings"`
	Result         *MatchResult   `json:"result,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// DeliveryRecord is a delivery as kept in the journal.
type DeliveryRecord struct {
	MatchID    string    `json:"match_id"`
	Seq        int       `json:"seq"`
	Innings    int       `json:"innings"`
	Delivery   Delivery  `json:"delivery"`
	RecordedAt time.Time `json:"recorded_at"`
}
