// Package models holds the value types shared by the throttling stores and middleware.
package models

import (
	"strings"
	"time"
)

// Result represents the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int // seconds, only set when not allowed
}

// Limit is the allowance granted to one key per window.
type Limit struct {
	Requests int
	Window   time.Duration
}

const keyPrefix = "rl:ip:"

// NewIPKey builds the store key for a client IP. An unknown client shares
// the "unknown" bucket.
func NewIPKey(ip string) string {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		ip = "unknown"
	}
	return keyPrefix + ip
}

// RetryAfterSeconds rounds the wait until resetAt up to whole seconds, minimum 1.
func RetryAfterSeconds(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	if d <= 0 {
		return 1
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}
