package geometry

import (
	"math"

	"github.com/golang/geo/r2"
)

// Vectors shorter than this are treated as degenerate (landmark collapse).
const minMagnitude = 1e-6

// AngleAtVertex calculates the unsigned angle in degrees at vertex b formed by
// the rays b->a and b->c, via the arccosine of the normalized dot product.
// Returns 0.0 for degenerate geometry. Range [0, 180].
//
// The sitting evaluator uses this formulation; its thresholds were tuned
// against it and it is not interchangeable with AngleAtVertexAtan2.
func AngleAtVertex(a, b, c r2.Point) float64 {
	ba := a.Sub(b)
	bc := c.Sub(b)

	normBA := ba.Norm()
	normBC := bc.Norm()
	if normBA < minMagnitude || normBC < minMagnitude {
		return 0.0
	}

	cos := ba.Dot(bc) / (normBA * normBC)
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}

// AngleAtVertexAtan2 calculates the angle in degrees at vertex b from the
// signed difference of the atan2 angles of b->c and b->a, folded into
// [0, 180] by reflecting values above 180 as 360-angle.
//
// The squat evaluator uses this formulation. It is not numerically identical
// to AngleAtVertex in general, so the two must not be unified.
func AngleAtVertexAtan2(a, b, c r2.Point) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180 / math.Pi)
	if angle > 180 {
		angle = 360 - angle
	}
	return angle
}

// TiltFromVertical calculates the angle in degrees between the vector
// (to - from) and the downward vertical (0, 1) in image coordinates.
// 0 means perfectly vertical. Returns 0.0 for degenerate geometry.
func TiltFromVertical(from, to r2.Point) float64 {
	v := to.Sub(from)

	norm := v.Norm()
	if norm < minMagnitude {
		return 0.0
	}

	vertical := r2.Point{X: 0, Y: 1}
	cos := v.Dot(vertical) / norm
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180 / math.Pi
}
