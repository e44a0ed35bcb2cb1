package activity

import (
	"context"
	"sync"

	"github.com/Astemirdum/bookreview-service/pkg/kafka"
)

const DefaultRecent = 50

type UserActivity struct {
	Books   int `json:"books"`
	Reviews int `json:"reviews"`
	Updates int `json:"updates"`
}

type Snapshot struct {
	Counts map[kafka.EventType]int `json:"counts"`
	Users  map[string]UserActivity `json:"users"`
	Recent []kafka.Event           `json:"recent"`
	// events without a user or of an unknown type
	Ignored int `json:"ignored"`
}

// Feed aggregates activity events in memory. Recent keeps the newest
// events first and is bounded.
type Feed struct {
	mu      sync.RWMutex
	counts  map[kafka.EventType]int
	users   map[string]UserActivity
	recent  []kafka.Event
	limit   int
	ignored int
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultRecent
	}
	return &Feed{
		counts: make(map[kafka.EventType]int),
		users:  make(map[string]UserActivity),
		limit:  limit,
	}
}

func (f *Feed) Record(_ context.Context, ev kafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ua := f.users[ev.UserID]
	switch {
	case ev.UserID == "":
		f.ignored++
		return nil
	case ev.Type == kafka.EventBookCreated:
		ua.Books++
	case ev.Type == kafka.EventReviewCreated:
		ua.Reviews++
	case ev.Type == kafka.EventUserUpserted:
		ua.Updates++
	default:
		f.ignored++
		return nil
	}
	f.counts[ev.Type]++
	f.users[ev.UserID] = ua

	f.recent = append([]kafka.Event{ev}, f.recent...)
	if len(f.recent) > f.limit {
		f.recent = f.recent[:f.limit]
	}
	return nil
}

func (f *Feed) User(id string) (UserActivity, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ua, ok := f.users[id]
	return ua, ok
}

func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	s := Snapshot{
		Counts:  make(map[kafka.EventType]int, len(f.counts)),
		Users:   make(map[string]UserActivity, len(f.users)),
		Recent:  append([]kafka.Event{}, f.recent...),
		Ignored: f.ignored,
	}
	for k, v := range f.counts {
		s.Counts[k] = v
	}
	for k, v := range f.users {
		s.Users[k] = v
	}
	return s
}
