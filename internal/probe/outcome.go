// Package probe contains the building blocks shared by every probe group:
// network outcome classification, the tri-state presence evaluator, the
// fan-out-and-collect primitive, and the HTTP probe client.
//
// The whole technique rests on reading meaning into failure modes, so the
// distinction between "the hostname does not exist" and "the network was
// flaky" is load-bearing and is made exactly once, here.
package probe

import (
	"context"
	"errors"
	"net"
)

// FailureClass partitions transport-level errors into the three buckets the
// evaluator cares about.
type FailureClass int

const (
	// FailureNone means a response was received, whatever its status.
	FailureNone FailureClass = iota
	// FailureConnect covers DNS resolution failures, TCP refusals, and
	// request construction errors. The speculative hostname is not in use.
	FailureConnect
	// FailureTimeout covers request deadlines. Says nothing either way.
	FailureTimeout
	// FailureOther covers everything else (TLS faults, proxy errors, ...).
	FailureOther
)

func (f FailureClass) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureConnect:
		return "connect_failed"
	case FailureTimeout:
		return "timed_out"
	default:
		return "other"
	}
}

// Outcome is the raw result of one network attempt. Either a response was
// received (Failure == FailureNone, StatusCode set) or the attempt failed
// with a classified error. Outcomes are ephemeral; they live only until the
// evaluator turns them into a verdict.
type Outcome struct {
	StatusCode int
	Body       string
	Failure    FailureClass
	Err        error
}

// Responded reports whether a response was received at all.
func (o Outcome) Responded() bool {
	return o.Failure == FailureNone
}

// Classify maps a transport error to a FailureClass. Timeouts are checked
// before connection errors because a dial timeout satisfies both shapes.
func Classify(err error) FailureClass {
	if err == nil {
		return FailureNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return FailureConnect
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return FailureConnect
	}

	return FailureOther
}
