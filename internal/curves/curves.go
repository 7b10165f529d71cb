// Package curves builds the quadratic Bézier curves used to draw flows and maps flow
// magnitudes to line widths.
package curves

import "math"

// DefaultSteps is the number of intervals a curve is sampled at, giving
// DefaultSteps+1 points.
const DefaultSteps = 25

// Line widths and the exponent of the width mapping.
const (
	MinWidth      = 1.0
	MaxWidth      = 10.0
	WidthExponent = 0.57
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve is a polyline approximating a Bézier curve, first point at the origin and
// last point at the destination.
type Curve []Point

// Xs and Ys split the curve into coordinate columns, the shape most plotting
// front ends want.
func (c Curve) Xs() []float64 {
	xs := make([]float64, len(c))
	for i, p := range c {
		xs[i] = p.X
	}
	return xs
}

func (c Curve) Ys() []float64 {
	ys := make([]float64, len(c))
	for i, p := range c {
		ys[i] = p.Y
	}
	return ys
}

// ControlPoint offsets the midpoint of origin-destination to the left of the
// direction of travel by half the segment length. A zero-length segment has no
// left side, its control point is the origin itself.
func ControlPoint(origin, dest Point) Point {
	dx := dest.X - origin.X
	dy := dest.Y - origin.Y
	if dx == 0 && dy == 0 {
		return origin
	}
	// The left unit normal is (-dy, dx)/L and the offset is L/2, so L cancels out.
	return Point{
		X: (origin.X+dest.X)/2 - dy/2,
		Y: (origin.Y+dest.Y)/2 + dx/2,
	}
}

// Bezier samples the quadratic Bézier curve from origin to dest at steps+1 evenly
// spaced parameter values. steps below 1 are treated as 1.
func Bezier(origin, dest Point, steps int) Curve {
	if steps < 1 {
		steps = 1
	}
	curve := make(Curve, steps+1)

	if origin == dest {
		for i := range curve {
			curve[i] = origin
		}
		return curve
	}

	ctrl := ControlPoint(origin, dest)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		a := (1 - t) * (1 - t)
		b := 2 * (1 - t) * t
		c := t * t
		curve[i] = Point{
			X: a*origin.X + b*ctrl.X + c*dest.X,
			Y: a*origin.Y + b*ctrl.Y + c*dest.Y,
		}
	}
	// Pin the endpoints so rounding never moves them.
	curve[0] = origin
	curve[steps] = dest
	return curve
}

// Width maps flow onto [MinWidth, MaxWidth] with a power law over the flow range of
// the current edge set. When every flow is the same there is no range to map and
// MinWidth is returned.
func Width(flow, minFlow, maxFlow float64) float64 {
	if maxFlow <= minFlow {
		return MinWidth
	}
	if flow <= minFlow {
		return MinWidth
	}
	if flow >= maxFlow {
		return MaxWidth
	}
	return MinWidth + math.Pow(flow-minFlow, WidthExponent)*(MaxWidth-MinWidth)/math.Pow(maxFlow-minFlow, WidthExponent)
}
