package snapshot

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"emcmap/api/mapi"
	"emcmap/shared"

	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	IgnoreCase bool
	Markerset  string // defaults to shared.DEFAULT_MARKERSET
}

// Fetches both feeds and builds a snapshot from them. Either both feeds are fetched and parsed or an error is returned.
func Build(ctx context.Context, f mapi.Fetcher, ignoreCase bool) (*Snapshot, error) {
	return BuildWithOptions(ctx, f, Options{IgnoreCase: ignoreCase})
}

func BuildWithOptions(ctx context.Context, f mapi.Fetcher, opts Options) (*Snapshot, error) {
	p, err := mapi.FetchAll(ctx, f)
	if err != nil {
		return nil, err
	}

	return FromPayloads(p, opts)
}

// Builds a snapshot from already fetched (or archived) feed bodies.
func FromPayloads(p mapi.Payloads, opts Options) (*Snapshot, error) {
	if opts.Markerset == "" {
		opts.Markerset = shared.DEFAULT_MARKERSET
	}

	s := &Snapshot{
		ID:         uuid.NewString(),
		FetchedAt:  p.FetchedAt,
		ignoreCase: opts.IgnoreCase,
	}

	areas, err := mapi.DecodeAreas(p.Markers, opts.Markerset)
	if err != nil {
		if shared.IsParseError(err) {
			return nil, err
		}

		return nil, &shared.TransportError{Source: "marker feed", Err: err}
	}

	if s.towns, err = s.parseTowns(areas); err != nil {
		return nil, err
	}

	res, err := mapi.DecodePlayers(p.Players)
	if err != nil {
		return nil, &shared.TransportError{Source: "player feed", Err: err}
	}

	s.CurrentCount = res.CurrentCount
	s.HasStorm = res.HasStorm
	s.players = s.keyPlayers(res.Players)

	s.townKeys = lo.Keys(s.towns)
	slices.Sort(s.townKeys)

	log.WithFields(log.Fields{
		"id":         s.ID,
		"towns":      len(s.towns),
		"players":    len(s.players),
		"ignoreCase": s.ignoreCase,
	}).Debug("built snapshot")

	return s, nil
}

// Area IDs are visited in sorted order so that duplicate town names resolve the same way every build (last wins).
func (s *Snapshot) parseTowns(areas map[string]mapi.AreaMarker) (map[string]RawTown, error) {
	ids := lo.Filter(lo.Keys(areas), func(id string, _ int) bool {
		return strings.HasSuffix(id, shared.PRIMARY_MARKER_SUFFIX)
	})
	slices.Sort(ids)

	towns := make(map[string]RawTown, len(ids))
	for _, id := range ids {
		t, err := parseTown(id, areas[id])
		if err != nil {
			return nil, err
		}

		towns[s.Key(t.Name)] = t
	}

	return towns, nil
}

func parseTown(id string, area mapi.AreaMarker) (t RawTown, err error) {
	if t.Name, err = stringField(id, area, "label"); err != nil {
		return
	}
	if t.FillColour, err = colourField(id, area, "fillcolor"); err != nil {
		return
	}
	if t.StrokeColour, err = colourField(id, area, "color"); err != nil {
		return
	}
	if t.PolygonX, err = coordsField(id, area, "x"); err != nil {
		return
	}
	if t.PolygonZ, err = coordsField(id, area, "z"); err != nil {
		return
	}
	if t.Description, err = stringField(id, area, "desc"); err != nil {
		return
	}

	if len(t.PolygonX) == 0 || len(t.PolygonX) != len(t.PolygonZ) {
		err = shared.NewParseError("town %q has %d x and %d z coordinates", id, len(t.PolygonX), len(t.PolygonZ))
	}

	return
}

func stringField(id string, area mapi.AreaMarker, field string) (string, error) {
	v, ok := area[field].(string)
	if !ok {
		return "", shared.NewParseError("%s[%q] is not a string", id, field)
	}

	return v, nil
}

func colourField(id string, area mapi.AreaMarker, field string) (shared.Colour, error) {
	v, err := stringField(id, area, field)
	if err != nil {
		return shared.Colour{}, err
	}

	c, err := shared.ParseColour(v)
	if err != nil {
		return shared.Colour{}, fmt.Errorf("%s[%q]: %w", id, field, err)
	}

	return c, nil
}

// Coordinates are served as floats but always hold whole block positions, so they are truncated.
func coordsField(id string, area mapi.AreaMarker, field string) ([]int, error) {
	arr, ok := area[field].([]any)
	if !ok {
		return nil, shared.NewParseError("%s[%q] is not an array", id, field)
	}

	coords := make([]int, len(arr))
	for i, v := range arr {
		f, ok := v.(float64)
		if !ok {
			return nil, shared.NewParseError("%s[%q][%d] is not a number", id, field, i)
		}

		coords[i] = int(f)
	}

	return coords, nil
}

func (s *Snapshot) keyPlayers(players []mapi.MapPlayer) map[string]RawPlayer {
	m := make(map[string]RawPlayer, len(players))
	for _, p := range players {
		m[s.Key(p.Account)] = RawPlayer{
			World:   p.World,
			Name:    p.Name,
			X:       p.X,
			Y:       p.Y,
			Z:       p.Z,
			Health:  p.Health,
			Armor:   p.Armor,
			Sort:    p.Sort,
			Account: p.Account,
			Type:    p.Type,
		}
	}

	return m
}
