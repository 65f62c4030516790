package fetcher

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// NetworkErrorKind names a transport failure that ends an attempt without
// consuming the retry budget.
type NetworkErrorKind int

const (
	NetNone NetworkErrorKind = iota
	NetTimeout
	NetConnectionRefused
	NetHostUnreachable
	NetNetworkUnreachable
	NetSocket
)

func (k NetworkErrorKind) String() string {
	switch k {
	case NetTimeout:
		return "timeout"
	case NetConnectionRefused:
		return "connection_refused"
	case NetHostUnreachable:
		return "host_unreachable"
	case NetNetworkUnreachable:
		return "network_unreachable"
	case NetSocket:
		return "socket"
	default:
		return "none"
	}
}

// classifyNetworkError reports whether err is one of the handled network
// failures. Order matters: a DNS lookup that timed out is a timeout.
func classifyNetworkError(err error) (NetworkErrorKind, bool) {
	if err == nil {
		return NetNone, false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return NetTimeout, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return NetTimeout, true
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return NetConnectionRefused, true
	case errors.Is(err, syscall.EHOSTUNREACH):
		return NetHostUnreachable, true
	case errors.Is(err, syscall.ENETUNREACH):
		return NetNetworkUnreachable, true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return NetSocket, true
	}
	// read/write failures on an established connection are not socket errors
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return NetSocket, true
	}

	return NetNone, false
}

// networkMessage is the user-facing line printed for a handled network error.
func networkMessage(kind NetworkErrorKind, err error) string {
	switch kind {
	case NetTimeout:
		return "timeout error: request timed out"
	case NetConnectionRefused:
		return "connection error: connection refused"
	case NetHostUnreachable:
		return "connection error: host unreachable"
	case NetNetworkUnreachable:
		return "connection error: network unreachable"
	default:
		return "socket error: " + socketDetail(err)
	}
}

func socketDetail(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Error()
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Error()
	}
	if err == nil {
		return "unknown"
	}
	return err.Error()
}
