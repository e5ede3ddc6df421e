package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/SubhamSahu809/ProRental/internal/domain"
	"github.com/SubhamSahu809/ProRental/internal/platform/logger"
	"go.uber.org/zap"
)

const defaultEndpoint = "https://api.mapbox.com"

// MapboxGeocoder implements domain.Geocoder against the Mapbox
// forward-geocoding API, requesting a single best match per query.
type MapboxGeocoder struct {
	httpClient *http.Client
	endpoint   string
	token      string
	logger     *logger.Logger
}

// NewMapboxGeocoder builds the client. endpoint may be empty to use
// the public API; tests point it at a local server.
func NewMapboxGeocoder(endpoint, token string, log *logger.Logger) *MapboxGeocoder {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &MapboxGeocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   endpoint,
		token:      token,
		logger:     log.Named("MapboxGeocoder"),
	}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Type        string    `json:"type"`
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Resolve geocodes a free-text query. Zero features is a user-facing
// ErrLocationNotFound; transport or provider errors surface as
// ErrGeocodingUnavailable.
func (g *MapboxGeocoder) Resolve(ctx context.Context, query string) (*domain.Geometry, error) {
	reqURL := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?access_token=%s&limit=1",
		g.endpoint, url.PathEscape(query), url.QueryEscape(g.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrGeocodingUnavailable, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("Geocoding request failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrGeocodingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Error("Geocoding provider returned non-200",
			zap.String("query", query),
			zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: provider status %d", domain.ErrGeocodingUnavailable, resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrGeocodingUnavailable, err)
	}

	if len(body.Features) == 0 {
		g.logger.Info("Geocoding returned no features", zap.String("query", query))
		return nil, domain.ErrLocationNotFound
	}

	feature := body.Features[0]
	return &domain.Geometry{
		Type:        feature.Geometry.Type,
		Coordinates: feature.Geometry.Coordinates,
	}, nil
}
