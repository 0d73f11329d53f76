package giterror

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
)

// Kind is the coarse category of a transport-level failure.
type Kind int

const (
	// KindUnknown covers errors this package cannot place.
	KindUnknown Kind = iota

	// KindNetwork covers connectivity failures: refused connections,
	// unreachable networks, DNS resolution problems, TLS handshakes.
	KindNetwork

	// KindTimeout covers deadline and timeout failures.
	KindTimeout

	// KindCanceled covers context cancellation.
	KindCanceled
)

// Classify places err into a Kind by walking the error chain.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		if errors.Is(err, context.DeadlineExceeded) {
			return KindTimeout
		}
		return KindCanceled
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindTimeout
		}
		return KindNetwork
	}

	// url.Error wraps most client-side failures; its presence alone marks
	// the error as transport-level even when the cause is opaque.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return classifyMessage(urlErr.Err.Error())
	}

	return classifyMessage(err.Error())
}

// Retryable reports whether the failure is transient enough that re-issuing
// the request may succeed. Cancellation is never retryable.
func Retryable(err error) bool {
	switch Classify(err) {
	case KindNetwork, KindTimeout:
		return true
	default:
		return false
	}
}

func classifyMessage(msg string) Kind {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "timeout"),
		strings.Contains(msg, "deadline exceeded"):
		return KindTimeout
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "temporary failure"),
		strings.Contains(msg, "dial tcp"),
		strings.Contains(msg, "tls handshake"),
		strings.Contains(msg, "network is unreachable"),
		strings.Contains(msg, "broken pipe"),
		strings.Contains(msg, "eof"):
		return KindNetwork
	default:
		return KindUnknown
	}
}
