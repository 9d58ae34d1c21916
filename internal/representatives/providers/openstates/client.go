// Package openstates fetches officials from the Open States v3 people API.
package openstates

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"represent/internal/representatives/models"
	"represent/internal/representatives/providers"
	"represent/pkg/platform/sentinel"
)

const (
	operationPeople    = "people"
	operationPeopleGeo = "people_geo"
)

// Client calls the legislative-data provider.
type Client struct {
	baseURL string
	apiKey  string
	caller  *providers.Caller
}

// New builds a Client. baseURL has no trailing slash.
func New(baseURL, apiKey string, caller *providers.Caller) *Client {
	return &Client{baseURL: baseURL, apiKey: apiKey, caller: caller}
}

// FetchByJurisdiction returns the officials serving j. Level comes from j,
// never from the provider. Divisions the provider does not cover, and
// divisions it answers with 404, yield an empty list rather than an error.
func (c *Client) FetchByJurisdiction(ctx context.Context, j models.Jurisdiction) ([]models.Representative, error) {
	q, ok := buildQuery(j.Identifier)
	if !ok {
		return []models.Representative{}, nil
	}

	people, err := c.people(ctx, operationPeople, "/people", q.values())
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return []models.Representative{}, nil
		}
		return nil, err
	}

	fallback := j.DisplayName
	if fallback == "" {
		fallback = j.Identifier
	}
	return toRepresentatives(people, fallback, func(person) models.GovernmentLevel {
		return j.GovernmentLevel
	}), nil
}

// FetchByCoordinates returns officials whose districts contain the point,
// each categorized by their own role's division identifier.
func (c *Client) FetchByCoordinates(ctx context.Context, lat, lng float64) ([]models.Representative, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	addCommon(v)

	people, err := c.people(ctx, operationPeopleGeo, "/people.geo", v)
	if err != nil {
		return nil, err
	}
	return toRepresentatives(people, "", levelFromRole), nil
}

func (c *Client) people(ctx context.Context, operation, path string, v url.Values) ([]person, error) {
	header := http.Header{}
	header.Set("X-API-Key", c.apiKey)

	var resp peopleResponse
	if err := c.caller.GetJSON(ctx, operation, c.baseURL+path+"?"+v.Encode(), header, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}
