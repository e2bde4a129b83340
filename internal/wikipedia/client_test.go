// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwhitcomb/loreatlas/internal/config"
)

func newTestClient(serverURL string) *Client {
	c := NewClient(&config.WikipediaConfig{
		UserAgent: "test-agent/1.0",
		Timeout:   5 * time.Second,
	})
	c.actionBase = serverURL + "/%s/w/api.php"
	c.restBase = serverURL + "/%s/api/rest_v1"
	return c
}

func TestClient_GeoSearch(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		if ua := r.Header.Get("User-Agent"); ua != "test-agent/1.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":{"geosearch":[
			{"pageid":123,"title":"Old Lighthouse","lat":43.1,"lon":-70.7,"dist":212.4},
			{"pageid":456,"title":"Harbor Fort","lat":43.2,"lon":-70.8,"dist":890.2}
		]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	results, err := client.GeoSearch(context.Background(), 43.1, -70.7, 1000, 3, "en")
	if err != nil {
		t.Fatalf("GeoSearch: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Old Lighthouse" || results[0].Dist != 212.4 {
		t.Errorf("first result = %+v", results[0])
	}
	if gotQuery["list"] != "geosearch" || gotQuery["gsradius"] != "1000" || gotQuery["gslimit"] != "3" {
		t.Errorf("query params = %v", gotQuery)
	}
	if gotQuery["gscoord"] != "43.1|-70.7" {
		t.Errorf("gscoord = %q", gotQuery["gscoord"])
	}
}

func TestClient_GeoSearch_ClampsRadius(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("gsradius"); got != "10000" {
			t.Errorf("gsradius = %q, want 10000", got)
		}
		_, _ = w.Write([]byte(`{"query":{"geosearch":[]}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GeoSearch(context.Background(), 0, 0, 50000, 3, "en"); err != nil {
		t.Fatalf("GeoSearch: %v", err)
	}
}

func TestClient_GeoSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GeoSearch(context.Background(), 0, 0, 1000, 3, "en"); err == nil {
		t.Error("expected error on 503 response")
	}
}

func TestClient_GetSummary(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"title":"Old Lighthouse",
			"extract":"A lighthouse built in 1771.",
			"description":"Historic lighthouse",
			"coordinates":{"lat":43.1,"lon":-70.7}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	summary, err := client.GetSummary(context.Background(), "Old Lighthouse", "en")
	if err != nil {
		t.Fatalf("GetSummary: %v", err)
	}

	if gotPath != "/en/api/rest_v1/page/summary/Old_Lighthouse" {
		t.Errorf("path = %q, spaces should become underscores", gotPath)
	}
	if summary.Extract != "A lighthouse built in 1771." {
		t.Errorf("extract = %q", summary.Extract)
	}
	if summary.Coordinates == nil || summary.Coordinates.Lat != 43.1 {
		t.Errorf("coordinates = %+v", summary.Coordinates)
	}
}

func TestClient_GetSummary_LanguageSubdomain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/es/api/rest_v1/page/summary/Plaza_Mayor" {
			t.Errorf("path = %q", got)
		}
		_, _ = w.Write([]byte(`{"title":"Plaza Mayor","extract":"Una plaza."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GetSummary(context.Background(), "Plaza Mayor", "es"); err != nil {
		t.Fatalf("GetSummary: %v", err)
	}
}

func TestClient_GetSummary_NotFoundIsNotAFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	summary, err := client.GetSummary(context.Background(), "No Such Page", "en")
	if err != nil {
		t.Fatalf("a missing page should not be an error, got: %v", err)
	}
	if summary != nil {
		t.Errorf("summary = %+v, want nil for a missing page", summary)
	}
}

func TestClient_GetSummary_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GetSummary(context.Background(), "Any Page", "en"); err == nil {
		t.Error("expected error on 500 response")
	}
}
