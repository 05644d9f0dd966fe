// Package snapshottest builds feed payloads and snapshots from small fixtures for use in tests.
package snapshottest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"emcmap/api/mapi"
	"emcmap/shared"
	"emcmap/snapshot"
)

type Flags struct {
	Upkeep, PvP, Mobs, Public, Explosion, Fire, Capital bool
}

type Town struct {
	Name    string
	Nation  string
	Mayor   string
	Members []string
	Flags   Flags
	Fill    string
	Stroke  string
	X, Z    []int
	Desc    string // replaces the rendered popup when set
}

// Renders the town as the map would in its marker popup.
func (t Town) Description() string {
	if t.Desc != "" {
		return t.Desc
	}

	f := t.Flags
	return fmt.Sprintf(
		`<div><div style="text-align:center"><span style="font-weight:bold;font-size:120%%">%s (%s)</span></div><br />`+
			`<span style="font-weight:bold"> Mayor <span style="font-weight:bold">%s</span></span><br />`+
			`<span style="font-weight:bold"> Members <span style="font-weight:bold">%s</span></span><br />`+
			`<div style="font-weight:bold">Flags<br /><span style="font-weight:bold">hasUpkeep: %t<br /></span>`+
			`<span>pvp: %t<br /></span><span>mobs: %t<br /></span><span>public: %t<br /></span>`+
			`<span>explosion: %t<br /></span><span>fire: %t<br /></span><span>capital: %t<br /></span></div></div>`,
		t.Name, t.Nation, t.Mayor, strings.Join(t.Members, ", "),
		f.Upkeep, f.PvP, f.Mobs, f.Public, f.Explosion, f.Fire, f.Capital,
	)
}

func (t Town) marker() map[string]any {
	fill, stroke := t.Fill, t.Stroke
	if fill == "" {
		fill = "#3FB4FF"
	}
	if stroke == "" {
		stroke = "#3FB4FF"
	}

	return map[string]any{
		"label":     t.Name,
		"fillcolor": fill,
		"color":     stroke,
		"x":         t.X,
		"z":         t.Z,
		"desc":      t.Description(),
	}
}

var Venice = Town{
	Name:    "Venice",
	Nation:  "Italy",
	Mayor:   "Fruitloopins",
	Members: []string{"Fruitloopins", "Steve", "NPC42"},
	Flags:   Flags{Upkeep: true, Mobs: true, Public: true, Capital: true},
	Fill:    "#ff0000",
	Stroke:  "#00ff00",
	X:       []int{0, 10, 20},
	Z:       []int{-5, 5, 15},
}

var Rome = Town{
	Name:    "Rome",
	Nation:  "Italy",
	Mayor:   "Caesar",
	Members: []string{"Caesar", "Brutus"},
	Flags:   Flags{Upkeep: true, PvP: true, Fire: true},
	X:       []int{100, 116, 116, 100},
	Z:       []int{100, 100, 116, 116},
}

var London = Town{
	Name:    "London",
	Nation:  "England",
	Mayor:   "Alex",
	Members: []string{"Alex"},
	Flags:   Flags{Explosion: true, Capital: true},
	X:       []int{-64, -48, -48, -64},
	Z:       []int{-64, -64, -48, -48},
}

var Players = []mapi.MapPlayer{
	{World: "earth", Name: "Fruitloopins", Account: "Fruitloopins", X: 100.7, Y: 70, Z: -200.2, Health: 20, Armor: 5, Type: "player"},
	{World: "earth", Name: "Steve", Account: "Steve", X: 0, Y: 64, Z: 0, Health: 20, Type: "player"},
	{World: "earth", Name: "Wanderer", Account: "Wanderer", X: 5.9, Y: 80, Z: -5.9, Health: 12, Type: "player"},
}

// Encodes the towns as a marker feed. A decorative "__1" marker is added per town which must never be read.
func MarkersJSON(towns ...Town) []byte {
	areas := make(map[string]any, len(towns)*2)
	for i, t := range towns {
		id := fmt.Sprintf("%s_%d", t.Name, i)
		areas[id+"__0"] = t.marker()
		areas[id+"__1"] = map[string]any{"label": 1}
	}

	feed := map[string]any{
		"timestamp": 0,
		"sets": map[string]any{
			shared.DEFAULT_MARKERSET: map[string]any{"label": "Towny", "areas": areas},
		},
	}

	data, _ := json.Marshal(feed)
	return data
}

func PlayersJSON(players ...mapi.MapPlayer) []byte {
	data, _ := json.Marshal(mapi.PlayersResponse{
		CurrentCount: uint16(len(players)),
		Players:      players,
	})

	return data
}

func Payloads() mapi.Payloads {
	return mapi.Payloads{
		Markers:   MarkersJSON(Venice, Rome, London),
		Players:   PlayersJSON(Players...),
		FetchedAt: time.Unix(1700000000, 0),
	}
}

// Builds a snapshot of Venice, Rome and London with [Players] online.
func New(t testing.TB, ignoreCase bool) *snapshot.Snapshot {
	t.Helper()

	s, err := snapshot.FromPayloads(Payloads(), snapshot.Options{IgnoreCase: ignoreCase})
	if err != nil {
		t.Fatalf("failed to build fixture snapshot: %v", err)
	}

	return s
}

// Builds a snapshot from the given towns and players.
func With(t testing.TB, ignoreCase bool, towns []Town, players []mapi.MapPlayer) *snapshot.Snapshot {
	t.Helper()

	p := mapi.Payloads{Markers: MarkersJSON(towns...), Players: PlayersJSON(players...)}
	s, err := snapshot.FromPayloads(p, snapshot.Options{IgnoreCase: ignoreCase})
	if err != nil {
		t.Fatalf("failed to build fixture snapshot: %v", err)
	}

	return s
}

// A fetcher serving fixed payloads, for exercising [snapshot.Build] without a network.
type StaticFetcher struct {
	Markers, Players []byte
	MarkersErr       error
	PlayersErr       error
}

func (f StaticFetcher) FetchMarkers(_ context.Context) ([]byte, error) {
	return f.Markers, f.MarkersErr
}

func (f StaticFetcher) FetchPlayers(_ context.Context) ([]byte, error) {
	return f.Players, f.PlayersErr
}
