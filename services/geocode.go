package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

var (
	nominatimBaseURL = defaultNominatimBaseURL
	geocodeClient    = &http.Client{Timeout: 10 * time.Second}
)

const geocodeUserAgent = "ToloDeliveryBot/1.0"

// ConfigureGeocode overrides the Nominatim endpoint (NOMINATIM_URL, or
// a test server). Empty restores the default.
func ConfigureGeocode(baseURL string) {
	if baseURL == "" {
		nominatimBaseURL = defaultNominatimBaseURL
		return
	}
	nominatimBaseURL = baseURL
}

// Address is the reverse-geocoded enrichment attached to a shared
// location. A zero Address is valid: geocoding is best-effort.
type Address struct {
	FullAddress string
	City        string
	Postcode    string
	Country     string
}

// ReverseGeocode asks Nominatim for the postal address of a coordinate
// pair. Callers log the error and continue with the zero Address.
func ReverseGeocode(ctx context.Context, lat, lon float64) (Address, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("format", "json")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nominatimBaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Address{}, err
	}
	req.Header.Set("User-Agent", geocodeUserAgent)

	resp, err := geocodeClient.Do(req)
	if err != nil {
		return Address{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Address{}, fmt.Errorf("nominatim status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
		Address     struct {
			City     string `json:"city"`
			Town     string `json:"town"`
			Postcode string `json:"postcode"`
			Country  string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Address{}, fmt.Errorf("decode nominatim response: %w", err)
	}

	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	return Address{
		FullAddress: body.DisplayName,
		City:        city,
		Postcode:    body.Address.Postcode,
		Country:     body.Address.Country,
	}, nil
}
