package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Provider clients and stores return
// these (optionally wrapped) so services can translate them into domain errors.
//
// These represent factual states about upstream resources, not validation failures:
// - ErrNotFound: the upstream has no record for the request
// - ErrUnavailable: service or resource temporarily unavailable
// - ErrRateLimited: the upstream refused the call because of a quota
// - ErrTimeout: the call did not complete before its deadline
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrRateLimited = errors.New("rate limited")
	ErrTimeout     = errors.New("timeout")
)
