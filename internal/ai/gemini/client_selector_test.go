package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSelector(n int, now *time.Time) *GeminiClientSelector {
	clients := make([]*GeminiClient, n)
	for i := range clients {
		clients[i] = &GeminiClient{}
	}
	s := NewGeminiClientSelector(clients)
	s.now = func() time.Time { return *now }
	return s
}

// tries runs one request and returns the client indexes it touched.
func tries(t *testing.T, s *GeminiClientSelector, failing map[int]bool) ([]int, error) {
	t.Helper()
	var tried []int
	err := s.Call(func(_ *GeminiClient, idx int) error {
		tried = append(tried, idx)
		if failing[idx] {
			return errors.New("quota exceeded")
		}
		return nil
	})
	return tried, err
}

// ============================================================================
// ROTATION
// ============================================================================

func TestCall_RotatesStartingClient(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestSelector(2, &now)

	var first []int
	for range 3 {
		tried, err := tries(t, s, nil)
		require.NoError(t, err)
		first = append(first, tried[0])
	}
	assert.Equal(t, []int{0, 1, 0}, first)
}

func TestCall_FailsOverUntilSuccess(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestSelector(3, &now)

	tried, err := tries(t, s, map[int]bool{0: true, 1: true})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, tried)
}

// ============================================================================
// COOLDOWN
// ============================================================================

func TestCall_SkipsRestingClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestSelector(3, &now)

	_, err := tries(t, s, map[int]bool{0: true, 1: true})
	require.NoError(t, err)

	for range 2 {
		tried, err := tries(t, s, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, tried, "clients 0 and 1 are resting")
	}

	now = now.Add(DefaultClientCooldown)
	tried, err := tries(t, s, nil)
	require.NoError(t, err)
	assert.Len(t, tried, 1)
	assert.NotEqual(t, 2, tried[0], "rested clients rejoin the rotation")
}

func TestCall_SuccessClearsRest(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestSelector(1, &now)

	_, err := tries(t, s, map[int]bool{0: true})
	require.Error(t, err)

	// the only client is resting but is still called
	tried, err := tries(t, s, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, tried)
	assert.True(t, s.failedAt[0].IsZero())
}

func TestCall_AllRestingTriesOldestFailureFirst(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newTestSelector(2, &now)

	s.record(1, errors.New("down"))
	now = now.Add(10 * time.Second)
	s.record(0, errors.New("down"))

	tried, err := tries(t, s, map[int]bool{0: true, 1: true})
	require.Error(t, err)
	assert.Equal(t, []int{1, 0}, tried)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestCall_WithoutClients(t *testing.T) {
	s := NewGeminiClientSelector(nil)

	err := s.Call(func(*GeminiClient, int) error { return nil })
	assert.ErrorIs(t, err, ErrNoClients)
}

func TestFarmingAdvisor_WithoutClients(t *testing.T) {
	advisor := NewFarmingAdvisor(NewGeminiClientSelector(nil))

	_, err := advisor.Answer(context.Background(), "when to sow bajra?")
	assert.EqualError(t, err, "no Gemini clients available")
}
