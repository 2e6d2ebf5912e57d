package retry

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"time"
)

// Policy describes how an outbound call is retried: how many attempts,
// the fixed delay between them, and which errors are worth retrying.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Retryable   func(error) bool
}

// NewPolicy creates a retry policy with the default transient-error classifier.
func NewPolicy(maxAttempts int, delay time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Delay:       delay,
		Retryable:   Transient,
	}
}

// Do runs fn until it succeeds, the error is not retryable, attempts are
// exhausted, or ctx is done. Attempts are strictly sequential; attempt N+1
// starts only after attempt N failed and the delay elapsed.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		err = fn(ctx)
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return err
		}
		if i == attempts {
			break
		}
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Transient reports whether err looks like a transport-level failure that a
// later attempt could recover from: timeouts, connection refused/reset, DNS.
// Well-formed error payloads from a collaborator are not transient.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var de *net.DNSError
	return errors.As(err, &de)
}
