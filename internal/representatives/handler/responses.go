package handler

import (
	"represent/internal/representatives/models"
)

// LookupResponse is the success body of both lookup endpoints.
type LookupResponse struct {
	Representatives RepresentativesByLevel `json:"representatives"`
	Metadata        MetadataResponse       `json:"metadata"`
	Warnings        []string               `json:"warnings,omitempty"`
}

// RepresentativesByLevel always carries all three buckets, empty or not.
type RepresentativesByLevel struct {
	Federal []RepresentativeResponse `json:"federal"`
	State   []RepresentativeResponse `json:"state"`
	Local   []RepresentativeResponse `json:"local"`
}

// RepresentativeResponse is one official. Optional fields are omitted when empty.
type RepresentativeResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Office          string `json:"office"`
	Party           string `json:"party,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	OfficeAddress   string `json:"officeAddress,omitempty"`
	Website         string `json:"website,omitempty"`
	PhotoURL        string `json:"photoUrl,omitempty"`
	GovernmentLevel string `json:"governmentLevel"`
	Jurisdiction    string `json:"jurisdiction"`
}

// MetadataResponse summarizes the lookup.
type MetadataResponse struct {
	Address          string   `json:"address,omitempty"`
	TotalCount       int      `json:"totalCount"`
	GovernmentLevels []string `json:"governmentLevels"`
	DivisionCount    int      `json:"divisionCount"`
	ResponseTimeMs   int64    `json:"responseTimeMs"`
}

// FromResult converts a lookup result into its response DTO.
func FromResult(r *models.LookupResult) *LookupResponse {
	levels := make([]string, 0, len(r.Metadata.GovernmentLevels))
	for _, l := range r.Metadata.GovernmentLevels {
		levels = append(levels, string(l))
	}
	return &LookupResponse{
		Representatives: RepresentativesByLevel{
			Federal: toResponses(r.Federal),
			State:   toResponses(r.State),
			Local:   toResponses(r.Local),
		},
		Metadata: MetadataResponse{
			Address:          r.Metadata.Address,
			TotalCount:       r.Metadata.TotalCount,
			GovernmentLevels: levels,
			DivisionCount:    r.Metadata.DivisionCount,
			ResponseTimeMs:   r.Metadata.ResponseTimeMs,
		},
		Warnings: r.Warnings,
	}
}

func toResponses(reps []models.Representative) []RepresentativeResponse {
	out := make([]RepresentativeResponse, 0, len(reps))
	for _, rep := range reps {
		out = append(out, RepresentativeResponse{
			ID:              rep.ID,
			Name:            rep.Name,
			Office:          rep.Office,
			Party:           rep.Party,
			Email:           rep.Email,
			Phone:           rep.Phone,
			OfficeAddress:   rep.OfficeAddress,
			Website:         rep.Website,
			PhotoURL:        rep.PhotoURL,
			GovernmentLevel: string(rep.GovernmentLevel),
			Jurisdiction:    rep.JurisdictionName,
		})
	}
	return out
}
