package openstates

import (
	"bytes"
	"encoding/json"
	"strings"

	"represent/internal/representatives/models"
	"represent/internal/representatives/ocd"
)

type peopleResponse struct {
	Results []person `json:"results"`
}

type person struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Party         partyField    `json:"party"`
	Email         string        `json:"email"`
	Image         string        `json:"image"`
	CurrentRole   *role         `json:"current_role"`
	Jurisdiction  *jurisdiction `json:"jurisdiction"`
	CapitolOffice *office       `json:"capitol_office"`
	Offices       []office      `json:"offices"`
	Links         []link        `json:"links"`
}

type role struct {
	Title             string `json:"title"`
	OrgClassification string `json:"org_classification"`
	District          string `json:"district"`
	DivisionID        string `json:"division_id"`
}

type jurisdiction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type office struct {
	Classification string `json:"classification"`
	Voice          string `json:"voice"`
	Address        string `json:"address"`
}

type link struct {
	URL string `json:"url"`
}

// partyField accepts either "Democratic" or [{"name":"Democratic"}].
type partyField string

func (p *partyField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		var list []struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		if len(list) > 0 {
			*p = partyField(list[0].Name)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = partyField(s)
	return nil
}

// toRepresentatives converts one page of people, dropping repeated IDs and
// entries without an ID. levelFor supplies each person's government level.
func toRepresentatives(people []person, fallbackJurisdiction string, levelFor func(person) models.GovernmentLevel) []models.Representative {
	reps := make([]models.Representative, 0, len(people))
	seen := make(map[string]struct{}, len(people))
	for _, p := range people {
		if p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		reps = append(reps, toRepresentative(p, fallbackJurisdiction, levelFor(p)))
	}
	return reps
}

func toRepresentative(p person, fallbackJurisdiction string, level models.GovernmentLevel) models.Representative {
	rep := models.Representative{
		ID:               p.ID,
		Name:             strings.TrimSpace(p.Name),
		Party:            strings.TrimSpace(string(p.Party)),
		Email:            strings.TrimSpace(p.Email),
		PhotoURL:         strings.TrimSpace(p.Image),
		GovernmentLevel:  level,
		JurisdictionName: fallbackJurisdiction,
	}
	if p.CurrentRole != nil {
		rep.Office = p.CurrentRole.Title
	}
	if p.Jurisdiction != nil && p.Jurisdiction.Name != "" {
		rep.JurisdictionName = p.Jurisdiction.Name
	}
	if o := capitolOffice(p); o != nil {
		rep.Phone = NormalizePhone(o.Voice)
		rep.OfficeAddress = strings.TrimSpace(o.Address)
	}
	for _, l := range p.Links {
		if l.URL != "" {
			rep.Website = l.URL
			break
		}
	}
	return rep
}

func capitolOffice(p person) *office {
	if p.CapitolOffice != nil {
		return p.CapitolOffice
	}
	for i := range p.Offices {
		if p.Offices[i].Classification == "capitol" {
			return &p.Offices[i]
		}
	}
	return nil
}

// levelFromRole categorizes a person from their jurisdiction and role
// division, used when no resolver jurisdiction is available (coordinate
// lookups). The provider's free-text classification is never consulted.
func levelFromRole(p person) models.GovernmentLevel {
	fromJurisdiction, known := jurisdictionLevel(p.Jurisdiction)
	// members of Congress sit in the national jurisdiction even when their
	// division is a state root (senators)
	if known && fromJurisdiction == models.LevelFederal {
		return models.LevelFederal
	}
	if p.CurrentRole != nil && p.CurrentRole.DivisionID != "" {
		return ocd.Categorize(p.CurrentRole.DivisionID)
	}
	if known {
		return fromJurisdiction
	}
	return models.LevelLocal
}

const jurisdictionPrefix = "ocd-jurisdiction/"

// jurisdictionLevel categorizes an OCD jurisdiction ID such as
// "ocd-jurisdiction/country:us/state:ca/government" by the division it governs.
func jurisdictionLevel(j *jurisdiction) (models.GovernmentLevel, bool) {
	if j == nil {
		return "", false
	}
	id := strings.TrimSpace(j.ID)
	if len(id) < len(jurisdictionPrefix) || !strings.EqualFold(id[:len(jurisdictionPrefix)], jurisdictionPrefix) {
		return "", false
	}
	division := id[len(jurisdictionPrefix):]
	if i := strings.LastIndex(division, "/"); i >= 0 && !strings.Contains(division[i+1:], ":") {
		division = division[:i]
	}
	if division == "" {
		return "", false
	}
	return ocd.Categorize(division), true
}

// NormalizePhone formats 10-digit US numbers (optionally prefixed with 1) as
// NNN-NNN-NNNN. Anything else is returned trimmed and unchanged.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	digits := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			digits = append(digits, raw[i])
		}
	}
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}
	d := string(digits)
	return d[:3] + "-" + d[3:6] + "-" + d[6:]
}
