package nations

import (
	"fmt"

	"emcmap/classes/description"
	"emcmap/shared"
	"emcmap/snapshot"

	log "github.com/sirupsen/logrus"
)

// Nations only exist as the heading of their towns' popups, so a Nation is just the name as
// written by the first town (in key order) that belongs to it.
type Nation struct {
	Name string `json:"name"`
}

func (n Nation) String() string {
	return n.Name
}

// Finds the nation called name. Towns whose popup has no nation heading are skipped.
func Get(s *snapshot.Snapshot, name string) (Nation, error) {
	key := s.Key(name)

	var found *Nation
	s.EachTown(func(townKey string, t snapshot.RawTown) bool {
		townNation, err := description.ParseNation(t.Description)
		if err != nil {
			log.WithFields(log.Fields{"town": townKey, "err": err}).Debug("skipping town without nation heading")
			return true
		}

		if s.Key(townNation) != key {
			return true
		}

		found = &Nation{Name: townNation}
		return false
	})

	if found == nil {
		return Nation{}, fmt.Errorf("%w: %s", shared.ErrNationNotFound, name)
	}

	return *found, nil
}

// Whether the raw town's popup names this nation.
func Has(s *snapshot.Snapshot, n Nation, t snapshot.RawTown) bool {
	townNation, err := description.ParseNation(t.Description)
	if err != nil {
		return false
	}

	return s.Key(townNation) == s.Key(n.Name)
}
