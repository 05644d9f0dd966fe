package towns

import (
	"errors"
	"fmt"

	"emcmap/classes/description"
	"emcmap/classes/nations"
	"emcmap/shared"
	"emcmap/snapshot"
	"emcmap/utils/geometry"

	lop "github.com/samber/lo/parallel"
)

type Flags struct {
	PvP        bool `json:"pvp"`
	Mobs       bool `json:"mobs"`
	Explosions bool `json:"explosions"`
	Fire       bool `json:"fire"`
	Capital    bool `json:"capital"`
}

type Town struct {
	Name         string          `json:"name"`
	Nation       nations.Nation  `json:"nation"`
	StrokeColour shared.Colour   `json:"strokeColour"`
	FillColour   shared.Colour   `json:"fillColour"`
	Flags        Flags           `json:"flags"`
	Position     shared.Position `json:"position"` // Mean of the claim's vertices, Y is always 0.
	Bounds       shared.Bounds   `json:"bounds"`
	Mayor        string          `json:"mayor"`
	Residents    []string        `json:"residents"`
	Area         float64         `json:"area"` // In blocks², from the outline polygon.
}

// Resolves the town and its nation. Returns [shared.ErrTownNotFound] if no such town exists
// and a [shared.ParseError] if its popup is malformed.
func Get(s *snapshot.Snapshot, name string) (Town, error) {
	raw, ok := s.Town(name)
	if !ok {
		return Town{}, fmt.Errorf("%w: %s", shared.ErrTownNotFound, name)
	}

	nationName, err := description.ParseNation(raw.Description)
	if err != nil {
		return Town{}, fmt.Errorf("town %s: %w", raw.Name, err)
	}

	nation, err := nations.Get(s, nationName)
	if err != nil {
		return Town{}, err
	}

	return WithNation(s, name, nation)
}

// Resolves the town, using an already resolved nation instead of looking it up again.
func WithNation(s *snapshot.Snapshot, name string, nation nations.Nation) (Town, error) {
	raw, ok := s.Town(name)
	if !ok {
		return Town{}, fmt.Errorf("%w: %s", shared.ErrTownNotFound, name)
	}

	c, err := description.Parse(raw.Description)
	if err != nil {
		return Town{}, fmt.Errorf("town %s: %w", raw.Name, err)
	}

	pos, bounds, err := geometry.CentroidAndBounds(raw.PolygonX, raw.PolygonZ)
	if err != nil {
		return Town{}, fmt.Errorf("town %s: %w", raw.Name, err)
	}

	return Town{
		Name:         raw.Name,
		Nation:       nation,
		StrokeColour: raw.StrokeColour,
		FillColour:   raw.FillColour,
		Flags: Flags{
			PvP:        c.PvP,
			Mobs:       c.Mobs,
			Explosions: c.Explosion,
			Fire:       c.Fire,
			Capital:    c.Capital,
		},
		Position:  pos,
		Bounds:    bounds,
		Mayor:     c.Mayor,
		Residents: c.Residents,
		Area:      geometry.CalcArea2D(raw.PolygonX, raw.PolygonZ),
	}, nil
}

// Resolves every town belonging to the nation, in town key order.
func OfNation(s *snapshot.Snapshot, nation nations.Nation) ([]Town, error) {
	keys := []string{}
	s.EachTown(func(key string, t snapshot.RawTown) bool {
		if nations.Has(s, nation, t) {
			keys = append(keys, key)
		}

		return true
	})

	errs := make([]error, len(keys))
	towns := lop.Map(keys, func(key string, i int) Town {
		t, err := WithNation(s, key, nation)
		errs[i] = err
		return t
	})

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return towns, nil
}

// The town flagged as capital of the nation.
func CapitalOf(s *snapshot.Snapshot, nation nations.Nation) (Town, error) {
	towns, err := OfNation(s, nation)
	if err != nil {
		return Town{}, err
	}

	for _, t := range towns {
		if t.Flags.Capital {
			return t, nil
		}
	}

	return Town{}, fmt.Errorf("%w: no capital for nation %s", shared.ErrTownNotFound, nation.Name)
}
