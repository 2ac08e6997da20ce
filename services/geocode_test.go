package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %s, want /reverse", r.URL.Path)
		}
		if r.URL.Query().Get("addressdetails") != "1" {
			t.Error("addressdetails=1 missing")
		}
		if r.Header.Get("User-Agent") != geocodeUserAgent {
			t.Errorf("user agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{
			"display_name": "Bole Road, Addis Ababa, Ethiopia",
			"address": {"city": "Addis Ababa", "postcode": "1000", "country": "Ethiopia"}
		}`))
	}))
	defer srv.Close()

	ConfigureGeocode(srv.URL)
	defer ConfigureGeocode("")

	addr, err := ReverseGeocode(context.Background(), 9.01, 38.76)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if addr.FullAddress != "Bole Road, Addis Ababa, Ethiopia" {
		t.Errorf("full address = %q", addr.FullAddress)
	}
	if addr.City != "Addis Ababa" || addr.Postcode != "1000" || addr.Country != "Ethiopia" {
		t.Errorf("address = %+v", addr)
	}
}

func TestReverseGeocodeTownFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"display_name": "Somewhere", "address": {"town": "Bishoftu", "country": "Ethiopia"}}`))
	}))
	defer srv.Close()

	ConfigureGeocode(srv.URL)
	defer ConfigureGeocode("")

	addr, err := ReverseGeocode(context.Background(), 8.75, 38.98)
	if err != nil {
		t.Fatalf("ReverseGeocode: %v", err)
	}
	if addr.City != "Bishoftu" {
		t.Errorf("city = %q, want town fallback Bishoftu", addr.City)
	}
}

func TestReverseGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ConfigureGeocode(srv.URL)
	defer ConfigureGeocode("")

	if _, err := ReverseGeocode(context.Background(), 9.01, 38.76); err == nil {
		t.Error("expected error on 503")
	}
}
