package mapi

import (
	"encoding/json"
	"fmt"

	"emcmap/shared"
)

// Top level of the dynmap marker feed. Only the area markers are of interest, everything
// else (icons, lines, circles) is ignored when decoding.
type MarkersResponse struct {
	Timestamp int64                `json:"timestamp"`
	Sets      map[string]MarkerSet `json:"sets"`
}

type MarkerSet struct {
	Label string `json:"label"`

	// Marker ID → raw marker fields. Left loosely typed so that a missing or mistyped
	// field can be reported by name rather than as a generic decode failure.
	Areas map[string]AreaMarker `json:"areas"`
}

type AreaMarker = map[string]any

// Decodes the marker feed and returns the areas of the given marker set.
func DecodeAreas(data []byte, markerset string) (map[string]AreaMarker, error) {
	var res MarkersResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to decode marker feed: %w", err)
	}

	set, ok := res.Sets[markerset]
	if !ok {
		return nil, shared.NewParseError("marker set %q not present in marker feed", markerset)
	}
	if set.Areas == nil {
		return nil, shared.NewParseError("sets[%q].areas is not an object", markerset)
	}

	return set.Areas, nil
}
