package models

// GovernmentLevel is the tier of government an official serves.
type GovernmentLevel string

const (
	LevelFederal GovernmentLevel = "federal"
	LevelState   GovernmentLevel = "state"
	LevelLocal   GovernmentLevel = "local"
)

// Levels is the canonical bucket order used in responses.
var Levels = []GovernmentLevel{LevelFederal, LevelState, LevelLocal}

// IsValid reports whether l is one of the three levels.
func (l GovernmentLevel) IsValid() bool {
	switch l {
	case LevelFederal, LevelState, LevelLocal:
		return true
	}
	return false
}

func (l GovernmentLevel) String() string {
	return string(l)
}

// Representative is a single elected or appointed official. ID is the
// provider-assigned identity key used for deduplication.
type Representative struct {
	ID               string
	Name             string
	Office           string
	Party            string
	Email            string
	Phone            string
	OfficeAddress    string
	Website          string
	PhotoURL         string
	GovernmentLevel  GovernmentLevel
	JurisdictionName string
}

// Jurisdiction is one division identifier returned by the resolver.
type Jurisdiction struct {
	Identifier      string
	DisplayName     string
	GovernmentLevel GovernmentLevel
	// HasData is false when the fetch for this jurisdiction yielded nothing.
	HasData bool
}

// Resolution is the resolver's answer for one address.
type Resolution struct {
	NormalizedAddress string
	Jurisdictions     []Jurisdiction
}

// Metadata summarizes a LookupResult.
type Metadata struct {
	Address          string
	TotalCount       int
	GovernmentLevels []GovernmentLevel
	DivisionCount    int
	ResponseTimeMs   int64
}

// LookupResult is the per-request response root. It is never persisted.
type LookupResult struct {
	Federal  []Representative
	State    []Representative
	Local    []Representative
	Metadata Metadata
	Warnings []string
}

// ByLevel returns the bucket for level.
func (r *LookupResult) ByLevel(level GovernmentLevel) []Representative {
	switch level {
	case LevelFederal:
		return r.Federal
	case LevelState:
		return r.State
	default:
		return r.Local
	}
}

// Add appends rep to the bucket matching its level. Unknown levels land in Local.
func (r *LookupResult) Add(rep Representative) {
	switch rep.GovernmentLevel {
	case LevelFederal:
		r.Federal = append(r.Federal, rep)
	case LevelState:
		r.State = append(r.State, rep)
	default:
		r.Local = append(r.Local, rep)
	}
}

// Total is the number of representatives across all buckets.
func (r *LookupResult) Total() int {
	return len(r.Federal) + len(r.State) + len(r.Local)
}

// LevelsPresent lists levels with at least one representative, in canonical order.
func (r *LookupResult) LevelsPresent() []GovernmentLevel {
	out := make([]GovernmentLevel, 0, len(Levels))
	for _, l := range Levels {
		if len(r.ByLevel(l)) > 0 {
			out = append(out, l)
		}
	}
	return out
}
