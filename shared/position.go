package shared

import "fmt"

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d/%d/%d", p.X, p.Y, p.Z)
}

// Link to the live map centred on this position. See [MapLink].
func (p Position) MapLink(zoom Zoom) string {
	return MapLink(MAP_URL, p, zoom)
}

// Axis-aligned box around a town claim. X1/Z1 is the minimum corner, X2/Z2 the maximum.
type Bounds struct {
	X1 int `json:"x1"`
	Z1 int `json:"z1"`
	X2 int `json:"x2"`
	Z2 int `json:"z2"`
}

func (b Bounds) Width() int {
	return b.X2 - b.X1
}

func (b Bounds) Depth() int {
	return b.Z2 - b.Z1
}

// Returns a link to the map viewer at base, centred on pos. The Y coordinate is not part of the link.
func MapLink(base string, pos Position, zoom Zoom) string {
	return fmt.Sprintf("%s/?zoom=%d&x=%d&z=%d", base, zoom, pos.X, pos.Z)
}
