package nations_test

import (
	"errors"
	"testing"

	"emcmap/classes/nations"
	"emcmap/shared"
	"emcmap/snapshot/snapshottest"
)

func TestGet(t *testing.T) {
	s := snapshottest.New(t, false)

	n, err := nations.Get(s, "Italy")
	if err != nil {
		t.Fatal(err)
	}

	if n.Name != "Italy" {
		t.Errorf("Expected '%v' but got '%v'", "Italy", n.Name)
	}
}

func TestGetNotFound(t *testing.T) {
	s := snapshottest.New(t, false)

	if _, err := nations.Get(s, "Atlantis"); !errors.Is(err, shared.ErrNationNotFound) {
		t.Errorf("Expected '%v' but got '%v'", shared.ErrNationNotFound, err)
	}

	// Case-sensitive snapshot must not match a differently cased name.
	if _, err := nations.Get(s, "italy"); !errors.Is(err, shared.ErrNationNotFound) {
		t.Errorf("Expected '%v' but got '%v'", shared.ErrNationNotFound, err)
	}
}

func TestGetIgnoreCase(t *testing.T) {
	s := snapshottest.New(t, true)

	for _, name := range []string{"italy", "ITALY", "Italy"} {
		n, err := nations.Get(s, name)
		if err != nil {
			t.Errorf("expected %q to resolve: %v", name, err)
			continue
		}

		// The name is taken from the popup, not from the query.
		if n.Name != "Italy" {
			t.Errorf("Expected '%v' but got '%v'", "Italy", n.Name)
		}
	}
}

func TestGetSkipsTownsWithoutNation(t *testing.T) {
	nationless := snapshottest.Rome
	nationless.Name = "Nowhere"
	nationless.Nation = ""

	s := snapshottest.With(t, false, []snapshottest.Town{nationless, snapshottest.London}, nil)

	n, err := nations.Get(s, "England")
	if err != nil {
		t.Fatal(err)
	}

	if n.Name != "England" {
		t.Errorf("Expected '%v' but got '%v'", "England", n.Name)
	}
}

func TestHas(t *testing.T) {
	s := snapshottest.New(t, false)
	london, _ := s.Town("London")
	rome, _ := s.Town("Rome")

	italy := nations.Nation{Name: "Italy"}
	if nations.Has(s, italy, london) || !nations.Has(s, italy, rome) {
		t.Error("Has reported the wrong membership")
	}
}
