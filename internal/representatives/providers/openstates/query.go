package openstates

import (
	"net/url"
	"strings"

	"represent/internal/representatives/ocd"
)

// federalJurisdiction is the provider's jurisdiction ID for the US Congress.
const federalJurisdiction = "ocd-jurisdiction/country:us/government"

// Chamber classifications understood by the people endpoint.
const (
	chamberUpper = "upper"
	chamberLower = "lower"
)

const perPage = "50"

// query is the people-endpoint filter derived from one division identifier.
type query struct {
	jurisdiction string
	chamber      string
	district     string
}

// buildQuery maps a division identifier onto a people query. ok is false for
// divisions the provider does not cover (counties, places, wards), which
// callers treat as "no data" without making a request. The country root is
// uncovered too: an unfiltered national query would return an arbitrary page
// of members of Congress unrelated to the address.
func buildQuery(identifier string) (q query, ok bool) {
	segs := ocd.Parse(identifier)
	if len(segs) == 0 {
		return query{}, false
	}

	state, hasState := ocd.Value(segs, ocd.TypeState)
	if !hasState || state == "" {
		return query{}, false
	}
	state = strings.ToLower(state)

	last := segs[len(segs)-1]
	switch last.Type {
	case ocd.TypeState:
		return query{jurisdiction: state}, true
	case ocd.TypeCD:
		if last.Value == "" {
			return query{}, false
		}
		return query{
			jurisdiction: federalJurisdiction,
			chamber:      chamberLower,
			district:     strings.ToUpper(state) + "-" + last.Value,
		}, true
	case ocd.TypeSLDU, ocd.TypeSLDL:
		if last.Value == "" {
			return query{}, false
		}
		chamber := chamberLower
		if last.Type == ocd.TypeSLDU {
			chamber = chamberUpper
		}
		return query{jurisdiction: state, chamber: chamber, district: last.Value}, true
	}
	return query{}, false
}

func (q query) values() url.Values {
	v := url.Values{}
	v.Set("jurisdiction", q.jurisdiction)
	if q.chamber != "" {
		v.Set("org_classification", q.chamber)
	}
	if q.district != "" {
		v.Set("district", q.district)
	}
	addCommon(v)
	return v
}

func addCommon(v url.Values) {
	v.Set("per_page", perPage)
	v.Add("include", "offices")
	v.Add("include", "links")
}
