package ports

import (
	"context"

	"represent/internal/representatives/models"
)

//go:generate mockgen -source=ports.go -destination=../mocks/mock_ports.go -package=mocks

// DivisionResolver turns a validated address into the divisions covering it.
type DivisionResolver interface {
	Resolve(ctx context.Context, address string) (*models.Resolution, error)
}

// RepresentativeFetcher returns the officials serving one jurisdiction. An
// empty slice is a valid answer, not an error.
type RepresentativeFetcher interface {
	FetchByJurisdiction(ctx context.Context, j models.Jurisdiction) ([]models.Representative, error)
}

// CoordinateFetcher returns officials whose districts contain a point.
type CoordinateFetcher interface {
	FetchByCoordinates(ctx context.Context, lat, lng float64) ([]models.Representative, error)
}
