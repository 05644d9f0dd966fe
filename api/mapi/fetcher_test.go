package mapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"emcmap/shared"
)

const markersBody = `{"timestamp": 1, "sets": {"townyPlugin.markerset": {"label": "Towny", "areas": {
	"Venice__0": {"label": "Venice", "x": [0, 16], "z": [0, 16]},
	"Venice__1": {"label": "Venice", "x": [32], "z": [32]}
}}}}`

const playersBody = `{"currentcount": 1, "hasStorm": true, "players": [
	{"world": "earth", "armor": 20, "name": "Fix", "x": 1.5, "y": 64, "health": 20, "z": -3.5, "sort": 0, "type": "player", "account": "Fix"}
]}`

func newFeedServer(t *testing.T, playersStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/markers", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(markersBody))
	})
	mux.HandleFunc("/players", func(w http.ResponseWriter, r *http.Request) {
		if playersStatus != http.StatusOK {
			http.Error(w, "unavailable", playersStatus)
			return
		}

		w.Write([]byte(playersBody))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestFetchAll(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK)
	f := NewHTTPFetcher(FetcherOptions{MarkersURL: srv.URL + "/markers", PlayersURL: srv.URL + "/players"})

	p, err := FetchAll(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}

	if string(p.Markers) != markersBody {
		t.Errorf("marker payload was altered")
	}

	if string(p.Players) != playersBody {
		t.Errorf("player payload was altered")
	}

	if p.FetchedAt.IsZero() {
		t.Error("expected FetchedAt to be set")
	}
}

func TestFetchAllFailsWhole(t *testing.T) {
	srv := newFeedServer(t, http.StatusServiceUnavailable)
	f := NewHTTPFetcher(FetcherOptions{MarkersURL: srv.URL + "/markers", PlayersURL: srv.URL + "/players"})

	p, err := FetchAll(context.Background(), f)
	if !shared.IsTransportError(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}

	var te *shared.TransportError
	errors.As(err, &te)
	if te.Source != srv.URL+"/players" {
		t.Errorf("Expected '%v' but got '%v'", srv.URL+"/players", te.Source)
	}

	if p.Markers != nil || p.Players != nil {
		t.Error("expected no partial payloads on failure")
	}
}

func TestDecodeAreas(t *testing.T) {
	areas, err := DecodeAreas([]byte(markersBody), "townyPlugin.markerset")
	if err != nil {
		t.Fatal(err)
	}

	if len(areas) != 2 {
		t.Errorf("Expected '%v' but got '%v'", 2, len(areas))
	}

	if areas["Venice__0"]["label"] != "Venice" {
		t.Errorf("Expected '%v' but got '%v'", "Venice", areas["Venice__0"]["label"])
	}

	if _, err := DecodeAreas([]byte(markersBody), "missing.markerset"); !shared.IsParseError(err) {
		t.Errorf("expected ParseError for missing marker set, got %v", err)
	}
}

func TestDecodePlayers(t *testing.T) {
	res, err := DecodePlayers([]byte(playersBody))
	if err != nil {
		t.Fatal(err)
	}

	if res.CurrentCount != 1 || !res.HasStorm || len(res.Players) != 1 {
		t.Fatalf("unexpected players response: %+v", res)
	}

	p := res.Players[0]
	if p.Account != "Fix" || p.X != 1.5 || p.Y != 64 || p.Z != -3.5 || p.Health != 20 {
		t.Errorf("unexpected player: %+v", p)
	}
}
