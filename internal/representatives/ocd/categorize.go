package ocd

import "represent/internal/representatives/models"

// Rule names reported by Classify.
const (
	RuleCountryRoot      = "country_root"
	RuleFederalDistrict  = "federal_district"
	RuleStateRoot        = "state_root"
	RuleCongressional    = "congressional_district"
	RuleStateLegislative = "state_legislative"
	RuleCounty           = "county"
	RulePlace            = "place"
	RuleFallback         = "fallback"
)

// Classification is the outcome of categorizing one identifier.
// Confident is false only when no rule matched and the local default applied.
type Classification struct {
	Level     models.GovernmentLevel
	Rule      string
	Confident bool
}

type rule struct {
	name  string
	level models.GovernmentLevel
	match func(segs []Segment) bool
}

// rules is ordered most specific first; the first match wins.
var rules = []rule{
	{RuleCountryRoot, models.LevelFederal, func(s []Segment) bool {
		return len(s) == 1 && s[0].Type == TypeCountry
	}},
	{RuleFederalDistrict, models.LevelFederal, func(s []Segment) bool {
		return len(s) == 2 && s[0].Type == TypeCountry && s[1].Type == TypeDistrict
	}},
	{RuleStateRoot, models.LevelState, func(s []Segment) bool {
		t := last(s).Type
		return t == TypeState || t == TypeTerritory
	}},
	{RuleCongressional, models.LevelFederal, func(s []Segment) bool {
		return last(s).Type == TypeCD
	}},
	{RuleStateLegislative, models.LevelState, func(s []Segment) bool {
		t := last(s).Type
		return t == TypeSLDU || t == TypeSLDL
	}},
	{RuleCounty, models.LevelLocal, func(s []Segment) bool {
		return has(s, TypeCounty) || has(s, TypeParish)
	}},
	{RulePlace, models.LevelLocal, func(s []Segment) bool {
		return has(s, TypePlace)
	}},
}

// Categorize maps an identifier to a government level. It is total: any
// string, including malformed ones, yields one of the three levels.
func Categorize(id string) models.GovernmentLevel {
	return Classify(id).Level
}

// Classify is Categorize plus the matched rule. Unmatched identifiers default
// to local with Confident=false so callers can flag them for review.
func Classify(id string) Classification {
	segs := Parse(id)
	if len(segs) > 0 {
		for _, r := range rules {
			if r.match(segs) {
				return Classification{Level: r.level, Rule: r.name, Confident: true}
			}
		}
	}
	return Classification{Level: models.LevelLocal, Rule: RuleFallback}
}

func last(s []Segment) Segment {
	if len(s) == 0 {
		return Segment{}
	}
	return s[len(s)-1]
}

func has(s []Segment, typ string) bool {
	_, ok := Value(s, typ)
	return ok
}
