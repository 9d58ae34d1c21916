package handler

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	dErrors "represent/pkg/domain-errors"
)

// MaxAddressLength is the longest address accepted, in characters, after trimming.
const MaxAddressLength = 500

// LookupRequest is the query of GET /representatives.
type LookupRequest struct {
	Address string

	// present is false when the address parameter was absent
	present bool
}

// LookupRequestFromQuery reads the address parameter.
func LookupRequestFromQuery(q url.Values) *LookupRequest {
	_, present := q["address"]
	return &LookupRequest{Address: q.Get("address"), present: present}
}

// Validate checks presence and length. An absent or empty address is a
// missing parameter; whitespace-only or over-long input is an invalid address.
func (r *LookupRequest) Validate() error {
	if r == nil || !r.present || r.Address == "" {
		return dErrors.New(dErrors.CodeMissingParameter, "address query parameter is required")
	}
	trimmed := strings.TrimSpace(r.Address)
	if trimmed == "" {
		return dErrors.New(dErrors.CodeInvalidAddress, "address cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxAddressLength {
		return dErrors.Newf(dErrors.CodeInvalidAddress, "address cannot exceed %d characters", MaxAddressLength)
	}
	r.Address = trimmed
	return nil
}

// CoordinatesRequest is the query of GET /representatives/geo.
type CoordinatesRequest struct {
	RawLat string
	RawLng string

	// Parsed values (populated by Validate)
	lat float64
	lng float64
}

// CoordinatesRequestFromQuery reads the lat and lng parameters.
func CoordinatesRequestFromQuery(q url.Values) *CoordinatesRequest {
	return &CoordinatesRequest{
		RawLat: strings.TrimSpace(q.Get("lat")),
		RawLng: strings.TrimSpace(q.Get("lng")),
	}
}

// Validate parses and range-checks both coordinates.
func (r *CoordinatesRequest) Validate() error {
	if r == nil || r.RawLat == "" || r.RawLng == "" {
		return dErrors.New(dErrors.CodeMissingParameter, "lat and lng query parameters are required")
	}
	lat, err := parseCoordinate(r.RawLat, 90)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidParameter, "lat must be a number between -90 and 90")
	}
	lng, err := parseCoordinate(r.RawLng, 180)
	if err != nil {
		return dErrors.New(dErrors.CodeInvalidParameter, "lng must be a number between -180 and 180")
	}
	r.lat, r.lng = lat, lng
	return nil
}

// Lat returns the validated latitude.
func (r *CoordinatesRequest) Lat() float64 { return r.lat }

// Lng returns the validated longitude.
func (r *CoordinatesRequest) Lng() float64 { return r.lng }

func parseCoordinate(raw string, bound float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < -bound || v > bound {
		return 0, strconv.ErrRange
	}
	return v, nil
}
