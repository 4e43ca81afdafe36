package location

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"civiceye/internal/config"
	"civiceye/internal/debug"
	appErrors "civiceye/internal/errors"
)

// Nominatim talks to a Nominatim-compatible place service. It serves as both
// the PlaceSearcher and the Geocoder.
type Nominatim struct {
	endpoint  string
	country   string
	limit     int
	userAgent string
	http      *http.Client
}

// NewNominatim builds a client from the places settings. A nil httpClient uses
// one with a 15 second timeout.
func NewNominatim(cfg config.Places, httpClient *http.Client) *Nominatim {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = maxSuggestions
	}
	return &Nominatim{
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		country:   cfg.Country,
		limit:     limit,
		userAgent: cfg.UserAgent,
		http:      httpClient,
	}
}

// placeID accepts the numeric ids Nominatim emits as well as strings.
type placeID string

func (p *placeID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "null" {
		s = ""
	}
	*p = placeID(s)
	return nil
}

type searchHit struct {
	PlaceID     placeID        `json:"place_id"`
	DisplayName string         `json:"display_name"`
	Lat         string         `json:"lat"`
	Lon         string         `json:"lon"`
	Address     AddressDetails `json:"address"`
}

type reverseHit struct {
	Error       string `json:"error"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		AddressDetails
		Neighbourhood string `json:"neighbourhood"`
		CityDistrict  string `json:"city_district"`
	} `json:"address"`
}

// Search implements PlaceSearcher.
func (n *Nominatim) Search(ctx context.Context, query string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(n.limit))
	if n.country != "" {
		params.Set("countrycodes", n.country)
	}
	params.Set("addressdetails", "1")

	var hits []searchHit
	if err := n.getJSON(ctx, "/search", params, &hits); err != nil {
		return nil, err
	}
	results := make([]SearchResult, 0, len(hits))
	for _, h := range hits {
		lat, latErr := strconv.ParseFloat(h.Lat, 64)
		lon, lonErr := strconv.ParseFloat(h.Lon, 64)
		if latErr != nil || lonErr != nil {
			debug.Logf("nominatim: skipping hit %s with bad coordinates %q,%q", h.PlaceID, h.Lat, h.Lon)
			continue
		}
		results = append(results, SearchResult{
			ID:          string(h.PlaceID),
			DisplayName: h.DisplayName,
			Latitude:    lat,
			Longitude:   lon,
			Address:     h.Address,
		})
	}
	return results, nil
}

// Reverse implements Geocoder.
func (n *Nominatim) Reverse(ctx context.Context, latitude, longitude float64) ([]Address, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("addressdetails", "1")

	var hit reverseHit
	if err := n.getJSON(ctx, "/reverse", params, &hit); err != nil {
		return nil, err
	}
	if hit.Error != "" {
		return nil, appErrors.New(appErrors.CodeNoResult, hit.Error, nil)
	}
	a := hit.Address
	street := a.Road
	if a.HouseNumber != "" && a.Road != "" {
		street = a.HouseNumber + " " + a.Road
	}
	return []Address{{
		Name:     firstNonEmpty(hit.Name, a.Building),
		Street:   street,
		District: firstNonEmpty(a.Suburb, a.Neighbourhood, a.CityDistrict),
		City:     firstNonEmpty(a.City, a.Town, a.Village),
		Region:   a.State,
	}}, nil
}

func (n *Nominatim) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := n.endpoint + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if n.userAgent != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("nominatim %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("nominatim %s: decode: %w", path, err)
	}
	return nil
}
