package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorKind is the cause class of a connection failure.
type ErrorKind string

const (
	KindAuth    ErrorKind = "auth"
	KindTimeout ErrorKind = "timeout"
	KindNetwork ErrorKind = "network"
	KindUnknown ErrorKind = "unknown"
)

// ConnectionError is returned when the database cannot be reached.
type ConnectionError struct {
	Kind ErrorKind
	Err  error
}

func (e *ConnectionError) Error() string {
	switch e.Kind {
	case KindAuth:
		return fmt.Sprintf("database: authentication failed, check the credentials in the connection string: %v", e.Err)
	case KindTimeout:
		return fmt.Sprintf("database: timed out reaching the server, check network access and allow-lists: %v", e.Err)
	case KindNetwork:
		return fmt.Sprintf("database: server unreachable, check the host in the connection string: %v", e.Err)
	default:
		return fmt.Sprintf("database: connection failed: %v", e.Err)
	}
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// mongod reports AuthenticationFailed with code 18.
const authFailedCode = 18

var (
	authHints    = []string{"auth error", "authentication failed", "bad auth"}
	networkHints = []string{"connection refused", "no such host", "network is unreachable", "host is unreachable", "connection reset"}
)

func classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	msg := strings.ToLower(err.Error())

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == authFailedCode {
		return KindAuth
	}
	if containsAny(msg, authHints) {
		return KindAuth
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || containsAny(msg, networkHints) {
		return KindNetwork
	}

	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return KindTimeout
	}
	if mongo.IsNetworkError(err) {
		return KindNetwork
	}
	return KindUnknown
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
