package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"represent/internal/representatives/metrics"
	"represent/internal/representatives/mocks"
	"represent/internal/representatives/models"
	"represent/internal/representatives/providers"
	dErrors "represent/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	resolver *mocks.MockDivisionResolver
	fetcher  *mocks.MockRepresentativeFetcher
	geo      *mocks.MockCoordinateFetcher
	metrics  *metrics.Metrics
	logs     *bytes.Buffer
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.ctx = context.Background()
	s.resolver = mocks.NewMockDivisionResolver(ctrl)
	s.fetcher = mocks.NewMockRepresentativeFetcher(ctrl)
	s.geo = mocks.NewMockCoordinateFetcher(ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.logs = &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(s.logs, nil))
	s.service = New(s.resolver, s.fetcher, logger, s.metrics,
		WithLookupTimeout(time.Second),
		WithCoordinateFetcher(s.geo),
	)
}

func (s *ServiceSuite) TestLookup_Success() {
	country := jur("ocd-division/country:us", models.LevelFederal)
	state := jur("ocd-division/country:us/state:ca", models.LevelState)
	s.resolver.EXPECT().Resolve(gomock.Any(), "1 Dr Carlton B Goodlett Pl, San Francisco").Return(&models.Resolution{
		NormalizedAddress: "1 Dr Carlton B Goodlett Pl, San Francisco, CA 94102",
		Jurisdictions:     []models.Jurisdiction{country, state},
	}, nil)
	s.fetcher.EXPECT().FetchByJurisdiction(gomock.Any(), country).Return([]models.Representative{rep("f1", models.LevelFederal)}, nil)
	s.fetcher.EXPECT().FetchByJurisdiction(gomock.Any(), state).Return([]models.Representative{rep("s1", models.LevelState)}, nil)

	result, err := s.service.Lookup(s.ctx, "1 Dr Carlton B Goodlett Pl, San Francisco")

	s.Require().NoError(err)
	s.Equal("1 Dr Carlton B Goodlett Pl, San Francisco, CA 94102", result.Metadata.Address)
	s.Equal(2, result.Metadata.TotalCount)
	s.Equal(2, result.Metadata.DivisionCount)
	s.Equal([]models.GovernmentLevel{models.LevelFederal, models.LevelState}, result.Metadata.GovernmentLevels)
	s.GreaterOrEqual(result.Metadata.ResponseTimeMs, int64(0))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues(outcomeOK)))
}

func (s *ServiceSuite) TestLookup_AddressFallsBackToInput() {
	country := jur("ocd-division/country:us", models.LevelFederal)
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(&models.Resolution{Jurisdictions: []models.Jurisdiction{country}}, nil)
	s.fetcher.EXPECT().FetchByJurisdiction(gomock.Any(), country).Return([]models.Representative{rep("f1", models.LevelFederal)}, nil)

	result, err := s.service.Lookup(s.ctx, "  Springfield  ")

	s.Require().NoError(err)
	s.Equal("Springfield", result.Metadata.Address)
}

func (s *ServiceSuite) TestLookup_ZeroDivisionsIsAddressNotFound() {
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(&models.Resolution{}, nil)

	result, err := s.service.Lookup(s.ctx, "middle of the ocean")

	s.Nil(result)
	s.True(dErrors.HasCode(err, dErrors.CodeAddressNotFound))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LookupOutcome.WithLabelValues(string(dErrors.CodeAddressNotFound))))
}

func (s *ServiceSuite) TestLookup_ResolverErrors() {
	tests := []struct {
		name     string
		category providers.ErrorCategory
		code     dErrors.Code
	}{
		{"not found", providers.ErrorNotFound, dErrors.CodeAddressNotFound},
		{"rate limited", providers.ErrorRateLimited, dErrors.CodeRateLimitExceeded},
		{"outage", providers.ErrorProviderOutage, dErrors.CodeExternalServiceError},
		{"timeout", providers.ErrorTimeout, dErrors.CodeExternalServiceError},
		{"authentication", providers.ErrorAuthentication, dErrors.CodeExternalServiceError},
		{"bad data", providers.ErrorBadData, dErrors.CodeExternalServiceError},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
				Return(nil, providers.NewProviderError(tt.category, providers.ProviderCivic, "x", nil))

			_, err := s.service.Lookup(s.ctx, "addr")

			s.Equal(tt.code, dErrors.CodeOf(err))
		})
	}
}

func (s *ServiceSuite) TestLookup_TotalFetchFailureIsUpstreamError() {
	a := jur("ocd-division/country:us", models.LevelFederal)
	b := jur("ocd-division/country:us/state:ca", models.LevelState)
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(&models.Resolution{Jurisdictions: []models.Jurisdiction{a, b}}, nil)
	s.fetcher.EXPECT().FetchByJurisdiction(gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorProviderOutage, providers.ProviderOpenStates, "503", nil)).Times(2)

	_, err := s.service.Lookup(s.ctx, "addr")

	s.Equal(dErrors.CodeExternalServiceError, dErrors.CodeOf(err))
	s.ErrorIs(err, providers.ErrAllProvidersFailed)
}

func (s *ServiceSuite) TestLookup_TotalRateLimitIsRateLimitExceeded() {
	a := jur("ocd-division/country:us", models.LevelFederal)
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(&models.Resolution{Jurisdictions: []models.Jurisdiction{a}}, nil)
	s.fetcher.EXPECT().FetchByJurisdiction(gomock.Any(), a).
		Return(nil, providers.NewProviderError(providers.ErrorRateLimited, providers.ProviderOpenStates, "429", nil))

	_, err := s.service.Lookup(s.ctx, "addr")

	s.Equal(dErrors.CodeRateLimitExceeded, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestLookup_Timeout() {
	svc := New(s.resolver, s.fetcher, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, WithLookupTimeout(20*time.Millisecond))
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (*models.Resolution, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

	start := time.Now()
	_, err := svc.Lookup(s.ctx, "addr")

	s.Less(time.Since(start), time.Second)
	s.Equal(dErrors.CodeExternalServiceError, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestLookup_UnexpectedErrorIsInternal() {
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, errors.New("unexpected"))

	_, err := s.service.Lookup(s.ctx, "addr")

	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestLookup_FlagsUncategorizedIdentifiers() {
	ward := jur("ocd-division/country:us/state:ca/place:sf/ward:3", models.LevelLocal)
	odd := jur("ocd-division/country:us/state:ca/school_district:sfusd", models.LevelLocal)
	s.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(&models.Resolution{Jurisdictions: []models.Jurisdiction{ward, odd}}, nil)
	s.fetcher.EXPECT().FetchByJurisdiction(gomock.Any(), gomock.Any()).Return([]models.Representative{}, nil).Times(2)

	_, err := s.service.Lookup(s.ctx, "addr")

	s.Require().NoError(err)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.UncategorizedIdentifiers))
	s.Contains(s.logs.String(), "school_district:sfusd")
}

func (s *ServiceSuite) TestLookupByCoordinates() {
	s.geo.EXPECT().FetchByCoordinates(gomock.Any(), 47.6, -122.3).Return([]models.Representative{
		rep("a", models.LevelFederal),
		rep("b", models.LevelState),
		rep("a", models.LevelFederal),
	}, nil)

	result, err := s.service.LookupByCoordinates(s.ctx, 47.6, -122.3)

	s.Require().NoError(err)
	s.Equal(2, result.Metadata.TotalCount)
	s.Len(result.Federal, 1)
	s.Len(result.State, 1)
	s.Empty(result.Warnings)
}

func (s *ServiceSuite) TestLookupByCoordinates_ProviderError() {
	s.geo.EXPECT().FetchByCoordinates(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, providers.NewProviderError(providers.ErrorRateLimited, providers.ProviderOpenStates, "429", nil))

	_, err := s.service.LookupByCoordinates(s.ctx, 1, 2)

	s.Equal(dErrors.CodeRateLimitExceeded, dErrors.CodeOf(err))
}

func (s *ServiceSuite) TestLookupByCoordinates_NotConfigured() {
	svc := New(s.resolver, s.fetcher, nil, nil)

	_, err := svc.LookupByCoordinates(s.ctx, 1, 2)

	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))
}
