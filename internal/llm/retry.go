package llm

import (
	"context"
	"log"
	"math"
	"strings"
	"time"
)

const (
	retryBaseDelay       = 8 * time.Second
	retryBackoffFactor   = 1.8
	estimatedMaxTokens   = 1024
	defaultRetryAttempts = 5
)

// RetryingClient wraps an LLMClient with proactive rate limiting and
// exponential backoff on provider 429 responses.
type RetryingClient struct {
	inner      LLMClient
	limiter    *RateLimiter
	maxRetries int

	sleep func(ctx context.Context, d time.Duration) error
}

func NewRetryingClient(inner LLMClient, limiter *RateLimiter, maxRetries int) *RetryingClient {
	if maxRetries <= 0 {
		maxRetries = defaultRetryAttempts
	}
	return &RetryingClient{
		inner:      inner,
		limiter:    limiter,
		maxRetries: maxRetries,
		sleep:      sleepCtx,
	}
}

func (c *RetryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, prompt, estimatedMaxTokens); err != nil {
				return "", err
			}
		}

		response, err := c.inner.Generate(ctx, prompt)
		if err == nil {
			if c.limiter != nil {
				// Providers report usage separately; the estimate keeps the
				// window conservative.
				c.limiter.RecordTokens(len(prompt)/4 + len(response)/4)
			}
			return response, nil
		}
		lastErr = err

		if isRateLimited(err) {
			wait := time.Duration(float64(retryBaseDelay) * math.Pow(retryBackoffFactor, float64(attempt)))
			log.Printf("rate limit hit, waiting %s (attempt %d/%d)", wait, attempt+1, c.maxRetries)
			if serr := c.sleep(ctx, wait); serr != nil {
				return "", serr
			}
			continue
		}

		if attempt < c.maxRetries-1 {
			log.Printf("llm call failed, retrying: %v", err)
			if serr := c.sleep(ctx, retryBaseDelay); serr != nil {
				return "", serr
			}
		}
	}

	return "", lastErr
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate_limit") || strings.Contains(msg, "rate limit")
}
