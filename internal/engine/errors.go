// Package engine runs a cricket match ball by ball: overs, innings, the match
// state machine and the synchronous observer fan-out.
//
// A Match is not safe for concurrent use. Callers serialize every call on one
// match (the service layer holds one lock per match); separate matches share nothing.
package engine

import "errors"

// Precondition violations. The match and innings are left unchanged when any of these is returned.
var (
	ErrMatchAlreadyStarted = errors.New("match already started")
	ErrMatchNotInProgress  = errors.New("match is not in progress")
	ErrMatchFinished       = errors.New("match already finished")
	ErrNoActiveInnings     = errors.New("no innings in progress")
	ErrInningsClosed       = errors.New("innings closed")
	ErrReentrantDelivery   = errors.New("delivery submitted while observers are being notified")
	ErrNoDayLimit          = errors.New("format has no day limit")
	ErrStrikerNotAtCrease  = errors.New("striker is not at the crease")
)

// Construction failures.
var (
	ErrUnknownFormat = errors.New("unknown match format")
	ErrInvalidTeams  = errors.New("invalid teams")
	ErrFormatRules   = errors.New("format rules violated")
)
