package residents

import (
	"strconv"
	"strings"

	"emcmap/classes/nations"
	"emcmap/classes/towns"
	"emcmap/shared"
	"emcmap/snapshot"

	lop "github.com/samber/lo/parallel"
	log "github.com/sirupsen/logrus"
)

type Resident struct {
	Name     string           `json:"name"`
	Online   bool             `json:"online"`
	Position *shared.Position `json:"position,omitempty"` // nil while offline
	Hidden   bool             `json:"hidden"`             // Always true while offline.
	Town     *towns.Town      `json:"town,omitempty"`
	Nation   *nations.Nation  `json:"nation,omitempty"`

	// Named "NPC" followed by a number. When the snapshot ignores case, the prefix matches in any case (eg: npc42).
	NPC bool `json:"npc"`
}

// Resolves a resident by name. This never fails, a resident belonging to no known town simply has no town.
//
// The town is the first one (in key order) whose popup contains the name anywhere. This means a name that
// is part of another resident's or mayor's name can match the wrong town.
func Get(s *snapshot.Snapshot, name string) Resident {
	key := s.Key(name)

	r := Resident{
		Name:   name,
		Hidden: true,
		NPC:    isNPC(s, name),
		Town:   findTown(s, key),
	}

	if r.Town != nil {
		nation := r.Town.Nation
		r.Nation = &nation
	}

	if p, ok := s.Player(name); ok {
		r.Name = p.Name
		r.Online = true
		r.Hidden = p.AtHiddenPosition()
		r.Position = &shared.Position{
			X: int(p.X),
			Y: int(p.Y),
			Z: int(p.Z),
		}
	}

	return r
}

// The mayor of an already resolved town.
func Mayor(s *snapshot.Snapshot, t towns.Town) Resident {
	return Get(s, t.Mayor)
}

// Every member listed in an already resolved town's popup, in listed order.
func Members(s *snapshot.Snapshot, t towns.Town) []Resident {
	return lop.Map(t.Residents, func(name string, _ int) Resident {
		return Get(s, name)
	})
}

func findTown(s *snapshot.Snapshot, key string) *towns.Town {
	var found *towns.Town
	s.EachTown(func(townKey string, raw snapshot.RawTown) bool {
		if !strings.Contains(s.Key(raw.Description), key) {
			return true
		}

		t, err := towns.Get(s, townKey)
		if err != nil {
			log.WithFields(log.Fields{"town": townKey, "err": err}).Debug("could not resolve resident's town")
			return false
		}

		found = &t
		return false
	})

	return found
}

// NPC accounts are named "NPC" followed by a number, eg: NPC4821.
func isNPC(s *snapshot.Snapshot, name string) bool {
	if !s.HasKeyPrefix(name, shared.NPC_PREFIX) {
		return false
	}

	rest := s.Key(name)[len(s.Key(shared.NPC_PREFIX)):]
	_, err := strconv.ParseUint(rest, 10, 16)

	return err == nil
}
