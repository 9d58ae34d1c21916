// Package ocd parses division identifiers and assigns each one a government level.
//
// Identifiers are hierarchical paths such as
// "ocd-division/country:us/state:ca/cd:12". The "ocd-division/" prefix is
// optional and bare "type/value" pairs ("country/us") are accepted alongside
// "type:value" segments.
package ocd

import "strings"

const prefix = "ocd-division/"

// Segment types that drive categorization.
const (
	TypeCountry   = "country"
	TypeState     = "state"
	TypeTerritory = "territory"
	TypeDistrict  = "district"
	TypeCD        = "cd"
	TypeSLDU      = "sldu"
	TypeSLDL      = "sldl"
	TypeCounty    = "county"
	TypeParish    = "parish"
	TypePlace     = "place"
)

// Segment is one "type:value" step of an identifier.
type Segment struct {
	Type  string
	Value string
}

func (s Segment) String() string {
	if s.Value == "" {
		return s.Type
	}
	return s.Type + ":" + s.Value
}

// Parse splits id into segments. Types are lower-cased; values are kept as given.
func Parse(id string) []Segment {
	id = strings.TrimSpace(id)
	if len(id) >= len(prefix) && strings.EqualFold(id[:len(prefix)], prefix) {
		id = id[len(prefix):]
	}

	parts := strings.Split(id, "/")
	segs := make([]Segment, 0, len(parts))
	for i := 0; i < len(parts); i++ {
		p := strings.TrimSpace(parts[i])
		if p == "" {
			continue
		}
		if typ, val, ok := strings.Cut(p, ":"); ok {
			segs = append(segs, Segment{Type: strings.ToLower(typ), Value: val})
			continue
		}
		// bare "type/value" form: consume the next part as the value
		seg := Segment{Type: strings.ToLower(p)}
		if i+1 < len(parts) && !strings.Contains(parts[i+1], ":") && parts[i+1] != "" {
			seg.Value = parts[i+1]
			i++
		}
		segs = append(segs, seg)
	}
	return segs
}

// LastSegment returns the final segment in "type:value" form, or the trimmed
// identifier when it has no segments.
func LastSegment(id string) string {
	segs := Parse(id)
	if len(segs) == 0 {
		return strings.TrimSpace(id)
	}
	return segs[len(segs)-1].String()
}

// Value returns the value of the first segment of type typ.
func Value(segs []Segment, typ string) (string, bool) {
	for _, s := range segs {
		if s.Type == typ {
			return s.Value, true
		}
	}
	return "", false
}
