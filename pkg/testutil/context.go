package testutil

import (
	"net/http"

	"represent/pkg/requestcontext"
)

// WithRequestID attaches a request ID the way the requestid middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithClient attaches client metadata the way the metadata middleware would.
func WithClient(req *http.Request, clientIP, userAgent string) *http.Request {
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), clientIP, userAgent))
}
