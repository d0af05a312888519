package llm

import (
	"context"
	"sync"
	"time"
)

// RateLimiter enforces provider request-per-minute and token-per-minute
// budgets with a one-minute sliding window, reserving headroom so a burst
// never lands exactly on the limit.
type RateLimiter struct {
	mu sync.Mutex

	rpmLimit int
	tpmLimit int

	requestTimes []time.Time
	tokenUsage   []tokenEntry

	TotalRequests int
	TotalTokens   int
	RateLimitHits int

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

type tokenEntry struct {
	at     time.Time
	tokens int
}

const (
	rpmHeadroom  = 3
	tpmHeadroom  = 1500
	limiterDelay = 4 * time.Second
)

func NewRateLimiter(rpmLimit, tpmLimit int) *RateLimiter {
	return &RateLimiter{
		rpmLimit: rpmLimit,
		tpmLimit: tpmLimit,
		now:      time.Now,
		sleep:    sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Wait blocks until a request of the estimated size fits in the window.
func (rl *RateLimiter) Wait(ctx context.Context, prompt string, maxTokens int) error {
	estimated := len(prompt)/4 + maxTokens

	for {
		rl.mu.Lock()
		rl.evict()
		rpmOK := len(rl.requestTimes) < rl.rpmLimit-rpmHeadroom
		tpmOK := rl.windowTokens()+estimated < rl.tpmLimit-tpmHeadroom
		if rpmOK && tpmOK {
			rl.requestTimes = append(rl.requestTimes, rl.now())
			rl.TotalRequests++
			rl.mu.Unlock()
			return nil
		}
		rl.RateLimitHits++
		rl.mu.Unlock()

		if err := rl.sleep(ctx, limiterDelay); err != nil {
			return err
		}
	}
}

// RecordTokens feeds actual usage back into the window.
func (rl *RateLimiter) RecordTokens(count int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.tokenUsage = append(rl.tokenUsage, tokenEntry{at: rl.now(), tokens: count})
	rl.TotalTokens += count
}

func (rl *RateLimiter) evict() {
	cutoff := rl.now().Add(-time.Minute)
	times := rl.requestTimes[:0]
	for _, t := range rl.requestTimes {
		if t.After(cutoff) {
			times = append(times, t)
		}
	}
	rl.requestTimes = times

	usage := rl.tokenUsage[:0]
	for _, e := range rl.tokenUsage {
		if e.at.After(cutoff) {
			usage = append(usage, e)
		}
	}
	rl.tokenUsage = usage
}

func (rl *RateLimiter) windowTokens() int {
	total := 0
	for _, e := range rl.tokenUsage {
		total += e.tokens
	}
	return total
}
