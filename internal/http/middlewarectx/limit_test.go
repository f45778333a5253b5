package middlewarectx

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func (l *limiters) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byIP)
}

func TestLimiters_EvictIdleAddresses(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiters(1, 5, time.Minute)
	l.now = func() time.Time { return now }

	for i := range 1000 {
		l.get(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	assert.Equal(t, 1000, l.len())

	now = now.Add(30 * time.Second)
	active := l.get("10.9.9.9")
	assert.Equal(t, 1001, l.len(), "nothing is idle yet")

	now = now.Add(45 * time.Second)
	assert.Same(t, active, l.get("10.9.9.9"))
	assert.Equal(t, 1, l.len())
}

func TestLimiters_KeepBudgetOfActiveAddress(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	l := newLimiters(0.001, 1, time.Minute)
	l.now = func() time.Time { return now }

	assert.True(t, l.get("10.0.0.1").Allow())
	now = now.Add(59 * time.Second)
	assert.False(t, l.get("10.0.0.1").Allow(), "limiter survives while the address stays active")
}
