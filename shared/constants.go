package shared

const MAP_URL = "https://earthmc.net/map"
const MARKERS_URL = MAP_URL + "/nova/tiles/_markers_/marker_earth.json"
const PLAYERS_URL = MAP_URL + "/nova/up/world/earth/"

// The marker set under "sets" holding the town areas.
const DEFAULT_MARKERSET = "townyPlugin.markerset"

// Only area keys with this suffix are primary town markers. Any other suffix is a
// decorative extra polygon belonging to the same town.
const PRIMARY_MARKER_SUFFIX = "__0"

// Placeholder location reported for players hidden from the map.
var HIDDEN_POSITION = struct {
	X float64
	Y float32
	Z float64
}{
	X: 0,
	Y: 64,
	Z: 0,
}

const NPC_PREFIX = "NPC"

type Zoom = uint8

var ZOOM_LEVELS = struct {
	WORLD  Zoom
	REGION Zoom
	TOWN   Zoom
	PLOT   Zoom
}{
	WORLD:  0,
	REGION: 3,
	TOWN:   6,
	PLOT:   8,
}
