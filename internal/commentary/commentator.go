// Package commentary turns deliveries into one line of text each.
package commentary

import (
	"fmt"
	"strings"
	"sync"

	"github.com/maxviazov/cricket-scoring-service/internal/model"
)

const defaultHistory = 300

// Commentator is a match observer that keeps the latest line and a bounded history.
type Commentator struct {
	name    string
	limit   int
	mu      sync.RWMutex
	current string
	lines   []string
}

// New returns a commentator keeping at most limit lines; limit <= 0 uses the default.
func New(name string, limit int) *Commentator {
	if limit <= 0 {
		limit = defaultHistory
	}
	return &Commentator{name: name, limit: limit}
}

func (c *Commentator) OnDelivery(_ model.MatchInfo, d model.Delivery) {
	line := Line(d)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = line
	c.lines = append(c.lines, line)
	if len(c.lines) > c.limit {
		c.lines = c.lines[len(c.lines)-c.limit:]
	}
}

func (c *Commentator) Name() string { return c.name }

// Current is the line for the latest delivery, empty before the first one.
func (c *Commentator) Current() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Lines returns the kept history, oldest first.
func (c *Commentator) Lines() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.lines...)
}

// Line renders a single delivery.
func Line(d model.Delivery) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d.%d %s bowls to %s. ", d.Over, d.Ball, name(d.Bowler), name(d.Striker))
	switch {
	case d.IsWicket:
		fmt.Fprintf(&b, "WICKET! %s is out %s!", name(d.Striker), strings.ToLower(strings.ReplaceAll(string(d.WicketKind), "_", " ")))
	case d.Type == model.BallWide:
		fmt.Fprintf(&b, "Wide, %d extra.", d.ExtraRuns)
	case d.Type == model.BallNoBall:
		fmt.Fprintf(&b, "No ball, %d extra.", d.ExtraRuns)
	case d.TotalRuns() == 1:
		b.WriteString("1 run scored.")
	case d.TotalRuns() > 1:
		fmt.Fprintf(&b, "%d runs scored.", d.TotalRuns())
	default:
		b.WriteString("No run.")
	}
	return b.String()
}

func name(p model.Player) string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
