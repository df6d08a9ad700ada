// Package events carries "collection changed" notifications to live
// subscribers, in process or through RabbitMQ.
package events

import (
	"context"
	"sync"

	"instala_control/internal/domain/entities"
	"instala_control/internal/usecase/interfaces"
)

const subscriberBuffer = 16

// MemoryFeed fans events out to subscribers of the same process. A slow
// subscriber loses events once its buffer is full; since events carry no
// payload a later one still triggers the reload.
type MemoryFeed struct {
	mu   sync.RWMutex
	subs map[string]map[chan entities.ChangeEvent]struct{}
}

var _ interfaces.IChangeFeed = (*MemoryFeed)(nil)

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[chan entities.ChangeEvent]struct{})}
}

func (f *MemoryFeed) Publish(_ context.Context, ev entities.ChangeEvent) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for ch := range f.subs[ev.UserID] {
		select {
		case ch <- ev:
		default:
		}
	}
	return nil
}

func (f *MemoryFeed) Subscribe(ctx context.Context, userID string) (<-chan entities.ChangeEvent, error) {
	ch := make(chan entities.ChangeEvent, subscriberBuffer)

	f.mu.Lock()
	if f.subs[userID] == nil {
		f.subs[userID] = make(map[chan entities.ChangeEvent]struct{})
	}
	f.subs[userID][ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs[userID], ch)
		if len(f.subs[userID]) == 0 {
			delete(f.subs, userID)
		}
		f.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}

// Subscribers reports how many live subscriptions a user has.
func (f *MemoryFeed) Subscribers(userID string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[userID])
}
