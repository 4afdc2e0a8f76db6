package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimLocate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("request sent without a User-Agent")
		}
		if got := r.URL.Query().Get("q"); got != "London" {
			t.Errorf("q = %q, want London", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "51.5073219", "lon": "-0.1276474", "display_name": "London, Greater London, England"}]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.Client())
	client.baseURL = srv.URL

	coord, err := client.Locate(context.Background(), "London")
	if err != nil {
		t.Fatalf("Locate: unexpected error: %v", err)
	}
	if coord.Lat != 51.5073219 || coord.Lon != -0.1276474 {
		t.Errorf("Locate = %+v, want (51.5073219, -0.1276474)", coord)
	}
}

func TestNominatimNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewNominatimClient(srv.Client())
	client.baseURL = srv.URL

	_, err := client.Locate(context.Background(), "Nonexistent City123")
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("Locate: got %v, want ErrNoMatch", err)
	}
}
