package gemini

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// DefaultClientCooldown is how long a client that failed is left out of the
// rotation, typically long enough for a per-minute quota to reset.
const DefaultClientCooldown = time.Minute

var ErrNoClients = errors.New("no Gemini clients available")

// GeminiClientSelector spreads requests over several API keys. Clients take
// turns; one that fails rests for the cooldown and is only called again when
// every client is resting.
type GeminiClientSelector struct {
	mu       sync.Mutex
	clients  []*GeminiClient
	failedAt []time.Time
	next     int
	cooldown time.Duration
	now      func() time.Time
}

func NewGeminiClientSelector(clients []*GeminiClient) *GeminiClientSelector {
	return &GeminiClientSelector{
		clients:  clients,
		failedAt: make([]time.Time, len(clients)),
		cooldown: DefaultClientCooldown,
		now:      time.Now,
	}
}

// plan returns the client indexes to try for one request. Rested clients come
// in rotation order; if none is rested, every client is tried, the one that
// failed longest ago first.
func (s *GeminiClientSelector) plan() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.clients)
	if n == 0 {
		return nil
	}

	now := s.now()
	var ready, resting []int
	for i := range n {
		idx := (s.next + i) % n
		if !s.failedAt[idx].IsZero() && now.Sub(s.failedAt[idx]) < s.cooldown {
			resting = append(resting, idx)
			continue
		}
		ready = append(ready, idx)
	}
	s.next = (s.next + 1) % n

	if len(ready) > 0 {
		return ready
	}
	slices.SortStableFunc(resting, func(a, b int) int {
		return s.failedAt[a].Compare(s.failedAt[b])
	})
	return resting
}

func (s *GeminiClientSelector) record(idx int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failedAt[idx] = s.now()
		return
	}
	s.failedAt[idx] = time.Time{}
}

// Call runs operation against the planned clients until one succeeds.
func (s *GeminiClientSelector) Call(operation func(client *GeminiClient, idx int) error) error {
	order := s.plan()
	if len(order) == 0 {
		return ErrNoClients
	}

	var lastErr error
	for attempt, idx := range order {
		err := operation(s.clients[idx], idx)
		s.record(idx, err)
		if err == nil {
			return nil
		}
		lastErr = err
		slog.Warn("Gemini request failed, client resting",
			"client_index", idx,
			"attempt", attempt+1,
			"cooldown", s.cooldown,
			"error", err)
	}

	return fmt.Errorf("all %d tried Gemini clients failed, last error: %w", len(order), lastErr)
}
