// Package civic resolves street addresses into division identifiers using the
// Google Civic Information divisionsByAddress endpoint.
package civic

import (
	"context"
	"net/url"
	"sort"

	"represent/internal/representatives/models"
	"represent/internal/representatives/ocd"
	"represent/internal/representatives/providers"
	pstrings "represent/pkg/platform/strings"
)

const operationDivisions = "divisions_by_address"

// Client calls the division-resolution provider.
type Client struct {
	baseURL string
	apiKey  string
	caller  *providers.Caller
}

// New builds a Client. baseURL has no trailing slash.
func New(baseURL, apiKey string, caller *providers.Caller) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, caller: caller}
}

type divisionsResponse struct {
	NormalizedInput *normalizedInput    `json:"normalizedInput"`
	Divisions       map[string]division `json:"divisions"`
}

type normalizedInput struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

type division struct {
	Name string `json:"name"`
}

// Resolve returns every division covering address, sorted by identifier.
// The address is assumed to be validated already. Zero divisions is reported
// as a not_found ProviderError.
func (c *Client) Resolve(ctx context.Context, address string) (*models.Resolution, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	var resp divisionsResponse
	if err := c.caller.GetJSON(ctx, operationDivisions, c.baseURL+"/divisionsByAddress?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return toResolution(resp)
}

func toResolution(resp divisionsResponse) (*models.Resolution, error) {
	if len(resp.Divisions) == 0 {
		return nil, providers.NewProviderError(providers.ErrorNotFound, providers.ProviderCivic,
			"no divisions found for address", nil)
	}

	ids := make([]string, 0, len(resp.Divisions))
	for id := range resp.Divisions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	jurisdictions := make([]models.Jurisdiction, 0, len(ids))
	for _, id := range ids {
		jurisdictions = append(jurisdictions, models.Jurisdiction{
			Identifier:      id,
			DisplayName:     resp.Divisions[id].Name,
			GovernmentLevel: ocd.Categorize(id),
		})
	}

	res := &models.Resolution{Jurisdictions: jurisdictions}
	if n := resp.NormalizedInput; n != nil {
		res.NormalizedAddress = pstrings.JoinNonEmpty(", ", n.Line1, n.City, pstrings.JoinNonEmpty(" ", n.State, n.Zip))
	}
	return res, nil
}
