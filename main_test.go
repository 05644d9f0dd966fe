package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emcmap/shared"
	"emcmap/snapshot/snapshottest"
	"emcmap/utils/requests"
)

func newMapServer(t *testing.T) *httptest.Server {
	t.Helper()

	p := snapshottest.Payloads()

	mux := http.NewServeMux()
	mux.HandleFunc("/markers", func(w http.ResponseWriter, r *http.Request) {
		w.Write(p.Markers)
	})
	mux.HandleFunc("/players", func(w http.ResponseWriter, r *http.Request) {
		w.Write(p.Players)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func testConfig(t *testing.T, srv *httptest.Server) appConfig {
	t.Helper()

	return appConfig{
		MarkersURL: srv.URL + "/markers",
		PlayersURL: srv.URL + "/players",
		MapURL:     shared.MAP_URL,
		Markerset:  shared.DEFAULT_MARKERSET,
		Timeout:    requests.DEFAULT_TIMEOUT,
		DBDir:      t.TempDir(),
	}
}

func run(t *testing.T, cfg appConfig, args ...string) (string, error) {
	t.Helper()

	a := newApp(cfg)
	defer a.close()

	var out bytes.Buffer

	cmd := a.rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func assertContains(t *testing.T, out string, expected ...string) {
	t.Helper()

	for _, e := range expected {
		if !strings.Contains(out, e) {
			t.Errorf("Expected output to contain '%v' but got:\n%s", e, out)
		}
	}
}

func TestLinkCommand(t *testing.T) {
	cfg := appConfig{MapURL: shared.MAP_URL}

	out, err := run(t, cfg, "link", "--", "32943", "-13297")
	if err != nil {
		t.Fatal(err)
	}

	expected := "https://earthmc.net/map/?zoom=6&x=32943&z=-13297\n"
	if out != expected {
		t.Errorf("Expected '%v' but got '%v'", expected, out)
	}

	out, err = run(t, cfg, "link", "--zoom", "3", "1", "2")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "?zoom=3&x=1&z=2")

	if _, err := run(t, cfg, "link", "north", "2"); err == nil {
		t.Error("Expected an error for a non-numeric coordinate")
	}
}

func TestTownCommand(t *testing.T) {
	cfg := testConfig(t, newMapServer(t))

	out, err := run(t, cfg, "town", "Venice")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out,
		"Italy",
		"Fruitloopins",
		"10/0/5",
		"fill #FF0000, stroke #00FF00",
		"?zoom=6&x=10&z=5",
	)
}

func TestTownCommandIgnoreCase(t *testing.T) {
	cfg := testConfig(t, newMapServer(t))

	if _, err := run(t, cfg, "town", "venice"); !errors.Is(err, shared.ErrTownNotFound) {
		t.Errorf("Expected '%v' but got '%v'", shared.ErrTownNotFound, err)
	}

	out, err := run(t, cfg, "-i", "town", "venice")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "Venice")
}

func TestTownCommandDump(t *testing.T) {
	cfg := testConfig(t, newMapServer(t))

	out, err := run(t, cfg, "--dump", "town", "Rome")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "Caesar", "Brutus")
}

func TestNationCommand(t *testing.T) {
	cfg := testConfig(t, newMapServer(t))

	out, err := run(t, cfg, "nation", "Italy")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "Venice (Fruitloopins)", "Rome (Caesar)")

	if strings.Contains(out, "London") {
		t.Errorf("Expected Italy to exclude London but got:\n%s", out)
	}

	if _, err := run(t, cfg, "nation", "Atlantis"); !errors.Is(err, shared.ErrNationNotFound) {
		t.Errorf("Expected '%v' but got '%v'", shared.ErrNationNotFound, err)
	}
}

func TestResidentCommand(t *testing.T) {
	cfg := testConfig(t, newMapServer(t))

	out, err := run(t, cfg, "resident", "Fruitloopins")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "Venice", "Italy", "100/70/-200")

	out, err = run(t, cfg, "resident", "Steve")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "Hidden")

	out, err = run(t, cfg, "resident", "Nobody")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "Unknown (offline)")
}

func TestStatusCommand(t *testing.T) {
	srv := newMapServer(t)
	cfg := testConfig(t, srv)

	out, err := run(t, cfg, "status")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "OK", srv.URL+"/markers", srv.URL+"/players")
}

func TestRecordAndReplay(t *testing.T) {
	srv := newMapServer(t)
	cfg := testConfig(t, srv)

	if _, err := run(t, cfg, "--record", "town", "London"); err != nil {
		t.Fatal(err)
	}

	// Nothing left to fetch from, only the archive can answer.
	srv.Close()

	if _, err := run(t, cfg, "town", "London"); !shared.IsTransportError(err) {
		t.Errorf("Expected a transport error but got '%v'", err)
	}

	out, err := run(t, cfg, "--replay", "latest", "town", "London")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "England", "Alex")

	out, err = run(t, cfg, "archive", "list")
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected '%v' but got '%v'", 2, len(lines))
	}

	id := strings.Fields(lines[1])[0]
	if _, err := run(t, cfg, "archive", "delete", id); err != nil {
		t.Fatal(err)
	}

	out, err = run(t, cfg, "archive", "list")
	if err != nil {
		t.Fatal(err)
	}

	assertContains(t, out, "No recorded feeds.")
}
