// Package snapshot holds one immutable, point-in-time view of the map's town markers and online players.
//
// Every lookup key in a snapshot is produced by [Snapshot.Key], which folds case only when the
// snapshot was built with ignoreCase. Anything resolving towns, nations or residents must go through
// Key so that all lookups share the same folding.
package snapshot

import (
	"slices"
	"strings"
	"time"

	"emcmap/shared"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type RawTown struct {
	Name         string
	FillColour   shared.Colour
	StrokeColour shared.Colour
	PolygonX     []int
	PolygonZ     []int
	Description  string // HTML fragment as served by the map.
}

// Copies the polygon so callers can't reach the snapshot's own slices.
func (t RawTown) clone() RawTown {
	t.PolygonX = slices.Clone(t.PolygonX)
	t.PolygonZ = slices.Clone(t.PolygonZ)
	return t
}

type RawPlayer struct {
	World   string
	Name    string
	X       float64
	Y       float32
	Z       float64
	Health  uint8
	Armor   uint8
	Sort    uint8
	Account string
	Type    string
}

// Whether the player is reporting the placeholder location used for players hidden from the map.
func (p RawPlayer) AtHiddenPosition() bool {
	return p.X == shared.HIDDEN_POSITION.X && p.Y == shared.HIDDEN_POSITION.Y && p.Z == shared.HIDDEN_POSITION.Z
}

type Snapshot struct {
	ID           string
	FetchedAt    time.Time
	CurrentCount uint16
	HasStorm     bool

	towns      map[string]RawTown
	players    map[string]RawPlayer
	townKeys   []string // sorted, for deterministic scans
	ignoreCase bool
}

func (s *Snapshot) IgnoreCase() bool {
	return s.ignoreCase
}

// Folds s into a lookup key. Case is lowered only for snapshots built with ignoreCase.
func (s *Snapshot) Key(str string) string {
	if !s.ignoreCase {
		return str
	}

	// A Caser keeps state so one is made per call rather than shared.
	return cases.Lower(language.Und).String(str)
}

// Whether str begins with prefix once both are folded with [Snapshot.Key].
func (s *Snapshot) HasKeyPrefix(str, prefix string) bool {
	return strings.HasPrefix(s.Key(str), s.Key(prefix))
}

// Town by its key. The name is folded before lookup.
// The returned town is a copy, changing it does not affect the snapshot.
func (s *Snapshot) Town(name string) (RawTown, bool) {
	t, ok := s.towns[s.Key(name)]
	if !ok {
		return RawTown{}, false
	}

	return t.clone(), true
}

// Player by account name. The name is folded before lookup.
func (s *Snapshot) Player(account string) (RawPlayer, bool) {
	p, ok := s.players[s.Key(account)]
	return p, ok
}

// All town keys in ascending order.
func (s *Snapshot) TownKeys() []string {
	return slices.Clone(s.townKeys)
}

// Calls f for every town in key order until f returns false. Each town is a copy.
func (s *Snapshot) EachTown(f func(key string, town RawTown) bool) {
	for _, k := range s.townKeys {
		if !f(k, s.towns[k].clone()) {
			return
		}
	}
}

func (s *Snapshot) TownCount() int {
	return len(s.towns)
}

func (s *Snapshot) PlayerCount() int {
	return len(s.players)
}

// Online players in ascending key order.
func (s *Snapshot) Players() []RawPlayer {
	keys := lo.Keys(s.players)
	slices.Sort(keys)

	return lo.Map(keys, func(k string, _ int) RawPlayer {
		return s.players[k]
	})
}
