package geometry

import "math"

// Calculates the claimed area of a town polygon, where each vertex list holds block coordinates.
// Returns 0 for anything that is not at least a triangle or when the lists differ in length.
func CalcArea2D(X, Z []int) float64 {
	numPoints := len(X)
	if numPoints < 3 || len(Z) != numPoints {
		return 0
	}

	if numPoints == 3 {
		return CalcTriangleArea2D(toFloats(X), toFloats(Z))
	}

	return CalcPolygonArea2D(toFloats(X), toFloats(Z), numPoints)
}

func CalcTriangleArea2D(X, Z []float64) float64 {
	vertA := X[0] * (Z[1] - Z[2])
	vertB := X[1] * (Z[2] - Z[0])
	vertC := X[2] * (Z[0] - Z[1])

	return math.Abs(vertA+vertB+vertC) / 2
}

// Calculates the area of a 2D polygon (with or without irregular vertices) using the Shoelace formula.
func CalcPolygonArea2D(X, Z []float64, numPoints int) float64 {
	area := 0.0
	j := numPoints - 1
	for i := range numPoints {
		area += (X[j] + X[i]) * (Z[j] - Z[i])
		j = i
	}

	return math.Abs(area / 2)
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}

	return out
}
