package engine

import "github.com/maxviazov/cricket-scoring-service/internal/model"

// Observer is notified synchronously, in registration order, of every accepted delivery.
// It must not submit deliveries to the match it observes.
type Observer interface {
	OnDelivery(info model.MatchInfo, d model.Delivery)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(info model.MatchInfo, d model.Delivery)

func (f ObserverFunc) OnDelivery(info model.MatchInfo, d model.Delivery) { f(info, d) }

// ResultObserver is an optional extension: observers implementing it are told
// once when the match completes or is abandoned.
type ResultObserver interface {
	OnMatchEnd(matchID string, format model.Format, result model.MatchResult)
}

// Option configures a Match at construction.
type Option func(*Match)

// WithID sets the match identifier reported to observers.
func WithID(id string) Option {
	return func(m *Match) { m.id = id }
}

// WithObservers registers observers after the built-in stats manager.
func WithObservers(obs ...Observer) Option {
	return func(m *Match) { m.observers = append(m.observers, obs...) }
}
