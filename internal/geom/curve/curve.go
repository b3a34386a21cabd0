// Package curve flattens the IfcCurve family (§4.F.2) into polylines:
// lines and polylines exactly, circles/trimmed circles and b-splines by
// sampling, composite curves by concatenation with gap detection.
package curve

import (
	"math"

	"github.com/ifc-lite/ifclite/errors"
	"github.com/ifc-lite/ifclite/internal/geom"
)

// ChordTolerance is the relative chord-deviation tolerance used to
// discretize circles and other curved profiles; a stream.Options.Quality
// level overrides it for the duration of one Run.
var ChordTolerance = 0.01

const gapEpsilon = 1e-9

// Line returns the two endpoints of an infinite-length segment sampled
// between the given parameter bounds along dir from pnt.
func Line(pnt, dir geom.Vec3, t0, t1 float64) []geom.Vec3 {
	d := dir.Normalize()
	return []geom.Vec3{pnt.Add(d.Scale(t0)), pnt.Add(d.Scale(t1))}
}

// Polyline returns its control points verbatim (already exact per §4.F.2).
func Polyline(points []geom.Vec3) []geom.Vec3 { return points }

// segmentCount mirrors profile's circle discretization rule.
func segmentCount(radius, tolerance float64) int {
	if radius <= 0 {
		return 16
	}
	if tolerance <= 0 {
		tolerance = ChordTolerance
	}
	half := math.Acos(1 - tolerance)
	n := int(math.Ceil(2 * math.Pi / (2 * half)))
	if n < 16 {
		n = 16
	}
	return n
}

// Circle samples a full circle in the plane defined by origin/xAxis/yAxis.
func Circle(origin, xAxis, yAxis geom.Vec3, radius float64) []geom.Vec3 {
	n := segmentCount(radius, ChordTolerance)
	pts := make([]geom.Vec3, n+1)
	for i := 0; i <= n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = origin.Add(xAxis.Scale(radius * math.Cos(theta))).Add(yAxis.Scale(radius * math.Sin(theta)))
	}
	return pts
}

// TrimmedCircle samples an arc between two parameters (radians), honoring
// TrimSense (true = increasing parameter direction).
func TrimmedCircle(origin, xAxis, yAxis geom.Vec3, radius, t0, t1 float64, senseAgreement bool) []geom.Vec3 {
	if !senseAgreement {
		t0, t1 = t1, t0
	}
	if t1 < t0 {
		t1 += 2 * math.Pi
	}
	n := segmentCount(radius, ChordTolerance)
	span := t1 - t0
	steps := int(math.Ceil(float64(n) * span / (2 * math.Pi)))
	if steps < 1 {
		steps = 1
	}
	pts := make([]geom.Vec3, steps+1)
	for i := 0; i <= steps; i++ {
		theta := t0 + span*float64(i)/float64(steps)
		pts[i] = origin.Add(xAxis.Scale(radius * math.Cos(theta))).Add(yAxis.Scale(radius * math.Sin(theta)))
	}
	return pts
}

// BSplineWithKnots evaluates a B-spline curve via de Boor's algorithm,
// sampling at a fixed density chosen by chord tolerance heuristics
// (spec leaves exact density to the implementation).
func BSplineWithKnots(degree int, controlPoints []geom.Vec3, knots []float64, mult []int) []geom.Vec3 {
	knotVec := expandKnots(knots, mult)
	if len(knotVec) == 0 || len(controlPoints) <= degree {
		return controlPoints
	}
	uMin, uMax := knotVec[degree], knotVec[len(knotVec)-degree-1]
	samples := 8 * len(controlPoints)
	if samples < 32 {
		samples = 32
	}
	out := make([]geom.Vec3, 0, samples+1)
	for i := 0; i <= samples; i++ {
		u := uMin + (uMax-uMin)*float64(i)/float64(samples)
		out = append(out, deBoor(degree, controlPoints, knotVec, u))
	}
	return out
}

func expandKnots(knots []float64, mult []int) []float64 {
	if len(mult) == 0 {
		return knots
	}
	var out []float64
	for i, k := range knots {
		m := 1
		if i < len(mult) {
			m = mult[i]
		}
		for j := 0; j < m; j++ {
			out = append(out, k)
		}
	}
	return out
}

func deBoor(degree int, ctrl []geom.Vec3, knots []float64, u float64) geom.Vec3 {
	k := degree
	for i := degree; i < len(knots)-degree-1; i++ {
		if u >= knots[i] && u <= knots[i+1] {
			k = i
			break
		}
	}
	d := make([]geom.Vec3, degree+1)
	for j := 0; j <= degree; j++ {
		idx := k - degree + j
		if idx < 0 {
			idx = 0
		}
		if idx >= len(ctrl) {
			idx = len(ctrl) - 1
		}
		d[j] = ctrl[idx]
	}
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			idx := k - degree + j
			alphaDenom := knots[idx+degree-r+1] - knots[idx]
			alpha := 0.0
			if math.Abs(alphaDenom) > 1e-12 {
				alpha = (u - knots[idx]) / alphaDenom
			}
			d[j] = d[j-1].Scale(1 - alpha).Add(d[j].Scale(alpha))
		}
	}
	return d[degree]
}

// Composite concatenates segments end to end, failing CurveGap when a
// join exceeds gapEpsilon, per §4.F.2.
func Composite(segments [][]geom.Vec3) ([]geom.Vec3, error) {
	var out []geom.Vec3
	for i, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if len(out) > 0 {
			gap := out[len(out)-1].Sub(seg[0]).Length()
			if gap > gapEpsilon {
				return nil, errors.NewDiagnosticf(errors.ErrCurveGap, "gap of %g between segment %d and %d", gap, i-1, i)
			}
			out = append(out, seg[1:]...)
			continue
		}
		out = append(out, seg...)
	}
	return out, nil
}
