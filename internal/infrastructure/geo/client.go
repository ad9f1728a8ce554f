package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"settleup/internal/domain/currency"
	"settleup/internal/shared/config"
)

// Client resolves coordinates to a country code via the Nominatim
// reverse geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.GeoConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

type reverseResponse struct {
	Address struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// ReverseCountry returns the ISO 3166-1 alpha-2 country code for the
// given coordinates.
func (c *Client) ReverseCountry(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build reverse geocode request: %w", err)
	}
	// Nominatim rejects requests without an identifying agent
	req.Header.Set("User-Agent", "settleup-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocode error: status %d", resp.StatusCode)
	}

	var parsed reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}
	if parsed.Address.CountryCode == "" {
		return "", fmt.Errorf("reverse geocode returned no country")
	}

	return strings.ToUpper(parsed.Address.CountryCode), nil
}

// At binds the client to fixed coordinates as a currency.Detector.
func (c *Client) At(lat, lon float64) currency.Detector {
	return positionDetector{client: c, lat: lat, lon: lon}
}

type positionDetector struct {
	client *Client
	lat    float64
	lon    float64
}

func (d positionDetector) DetectRegion(ctx context.Context) (string, error) {
	return d.client.ReverseCountry(ctx, d.lat, d.lon)
}
