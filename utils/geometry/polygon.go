package geometry

import (
	"emcmap/shared"

	"github.com/samber/lo"
)

// Computes the centre and bounding box of a polygon given its parallel X and Z vertex lists.
//
// The centre is the integer-truncated mean of each axis independently, so it is not a true area centroid
// and can sit outside concave claims. Y is always 0 since the map does not track elevation for claims.
func CentroidAndBounds(xs, zs []int) (shared.Position, shared.Bounds, error) {
	if len(xs) == 0 {
		return shared.Position{}, shared.Bounds{}, shared.NewParseError("polygon has no x coordinates")
	}
	if len(zs) == 0 {
		return shared.Position{}, shared.Bounds{}, shared.NewParseError("polygon has no z coordinates")
	}

	centre := shared.Position{
		X: lo.Sum(xs) / len(xs),
		Y: 0,
		Z: lo.Sum(zs) / len(zs),
	}

	bounds := shared.Bounds{
		X1: lo.Min(xs),
		Z1: lo.Min(zs),
		X2: lo.Max(xs),
		Z2: lo.Max(zs),
	}

	return centre, bounds, nil
}
