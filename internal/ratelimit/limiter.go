package ratelimit

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Limiter hands out per-key cooldowns with a random length in [min, max).
type Limiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	min  time.Duration
	max  time.Duration
	clk  Clock
	rng  *mrand.Rand
}

func NewLimiter(min, max time.Duration, clk Clock) *Limiter {
	if clk == nil {
		clk = RealClock{}
	}
	if max < min {
		max = min
	}

	seed := func() int64 {
		var b [8]byte
		if _, err := rand.Read(b[:]); err == nil {
			return int64(binary.LittleEndian.Uint64(b[:]))
		}
		return time.Now().UnixNano()
	}()

	return &Limiter{
		next: make(map[string]time.Time),
		min:  min,
		max:  max,
		clk:  clk,
		rng:  mrand.New(mrand.NewSource(seed)),
	}
}

// TryKey reports whether key may act now. If not, it returns how long until
// it may.
func (l *Limiter) TryKey(key string) (bool, time.Duration) {
	if l.max <= 0 {
		return true, 0
	}
	now := l.clk.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.next[key]; ok && now.Before(until) {
		return false, until.Sub(now)
	}

	l.next[key] = now.Add(l.nextCooldown())
	return true, 0
}

// Try limits a user of a command. Mutating commands share one bucket so a
// user cannot dodge the cooldown by alternating /save and /journal.
func (l *Limiter) Try(userId, bucket string) (bool, time.Duration) {
	return l.TryKey("u:" + userId + "|b:" + bucket)
}

func (l *Limiter) nextCooldown() time.Duration {
	if l.min == l.max {
		return l.min
	}
	span := l.max - l.min

	jitter := time.Duration(l.rng.Int63n(int64(span)))
	return l.min + jitter
}

func (l *Limiter) Reset(userId, bucket string) {
	l.mu.Lock()
	delete(l.next, "u:"+userId+"|b:"+bucket)
	l.mu.Unlock()
}

// Prune forgets expired cooldowns.
func (l *Limiter) Prune() int {
	now := l.clk.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for k, until := range l.next {
		if !now.Before(until) {
			delete(l.next, k)
			n++
		}
	}
	return n
}
