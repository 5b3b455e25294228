package gateway

import "time"

const (
	// DefaultTimeout bounds a single attempt of any call
	DefaultTimeout = 10 * time.Second

	// DefaultReadRetries is how many extra attempts a GET gets
	DefaultReadRetries = 2

	// BackoffInitial is the wait before the first retry; it doubles up to BackoffMax
	BackoffInitial = 200 * time.Millisecond
	BackoffMax     = 2 * time.Second

	// maxBodyBytes caps how much of a response body is read
	maxBodyBytes = 4 << 20
)
