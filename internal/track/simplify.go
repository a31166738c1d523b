package track

import (
	"math"
	"sort"
)

// SimplifyOptions tunes the storage simplifier. Zero values fall back to the
// defaults below.
type SimplifyOptions struct {
	ToleranceFt       float64 // Douglas-Peucker deviation tolerance
	ElevationChangeFt float64 // local extremum worth keeping
	MaxGapMi          float64 // always keep a point at least this often
	MinTurnDeg        float64 // direction change worth keeping
	MaxPointsPerMile  int     // density cap for very dense recordings
}

const (
	defaultToleranceFt       = 33.0 // ~10 m
	defaultElevationChangeFt = 16.0 // ~5 m
	defaultMaxGapMi          = 0.1
	defaultMinTurnDeg        = 15.0
	defaultMaxPointsPerMile  = 32

	feetPerDegree = 69.0 * 5280 // rough, fine for simplification geometry
)

func (o SimplifyOptions) withDefaults() SimplifyOptions {
	if o.ToleranceFt <= 0 {
		o.ToleranceFt = defaultToleranceFt
	}
	if o.ElevationChangeFt <= 0 {
		o.ElevationChangeFt = defaultElevationChangeFt
	}
	if o.MaxGapMi <= 0 {
		o.MaxGapMi = defaultMaxGapMi
	}
	if o.MinTurnDeg <= 0 {
		o.MinTurnDeg = defaultMinTurnDeg
	}
	if o.MaxPointsPerMile <= 0 {
		o.MaxPointsPerMile = defaultMaxPointsPerMile
	}
	return o
}

// Simplify reduces an indexed track for storage while keeping route shape,
// elevation features and endpoints. The result must be re-indexed before use.
func Simplify(points []Point, opts SimplifyOptions) []Point {
	if len(points) < 3 {
		return points
	}
	o := opts.withDefaults()

	kept := removeRedundant(points, o)
	shape := douglasPeucker(kept, o.ToleranceFt)
	merged := mergeElevationFeatures(shape, kept, o)
	return capDensity(merged, o.MaxPointsPerMile)
}

// mergeElevationFeatures restores local elevation extrema that line
// simplification removed: Douglas-Peucker only sees the horizontal shape, so
// a summit on a straight ridge line would otherwise vanish.
func mergeElevationFeatures(shape, candidates []Point, o SimplifyOptions) []Point {
	const minSeparationMi = 0.002 // ~10 ft

	out := append([]Point(nil), shape...)
	for i := 1; i < len(candidates)-1; i++ {
		c := candidates[i]
		if !isElevationExtremum(candidates[i-1], c, candidates[i+1], o.ElevationChangeFt) {
			continue
		}
		tooClose := false
		for _, p := range out {
			if math.Abs(p.CumulativeMi-c.CumulativeMi) < minSeparationMi {
				tooClose = true
				break
			}
		}
		if !tooClose {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CumulativeMi < out[j].CumulativeMi })
	return out
}

// removeRedundant drops interior points that neither change direction, mark
// an elevation extremum, nor are needed to honor the maximum gap.
func removeRedundant(points []Point, o SimplifyOptions) []Point {
	out := []Point{points[0]}
	for i := 1; i < len(points)-1; i++ {
		prev := out[len(out)-1]
		curr := points[i]
		next := points[i+1]

		turn := turnAngleDeg(prev, curr, next)
		extremum := isElevationExtremum(prev, curr, next, o.ElevationChangeFt)
		gap := curr.CumulativeMi-prev.CumulativeMi > o.MaxGapMi

		if turn > o.MinTurnDeg || extremum || gap {
			out = append(out, curr)
		}
	}
	return append(out, points[len(points)-1])
}

func douglasPeucker(points []Point, toleranceFt float64) []Point {
	if len(points) < 3 {
		return points
	}

	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(points)-1; i++ {
		d := perpendicularDistanceFt(points[i], points[0], points[len(points)-1])
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= toleranceFt {
		return []Point{points[0], points[len(points)-1]}
	}
	left := douglasPeucker(points[:maxIdx+1], toleranceFt)
	right := douglasPeucker(points[maxIdx:], toleranceFt)

	merged := make([]Point, 0, len(left)+len(right)-1)
	merged = append(merged, left[:len(left)-1]...)
	return append(merged, right...)
}

// capDensity uniformly samples when a track exceeds the density cap, always
// keeping the last point.
func capDensity(points []Point, maxPerMile int) []Point {
	if len(points) < 2 {
		return points
	}
	totalMi := points[len(points)-1].CumulativeMi
	maxTotal := int(totalMi * float64(maxPerMile))
	if maxTotal < 2 || len(points) <= maxTotal {
		return points
	}

	step := float64(len(points)) / float64(maxTotal)
	out := make([]Point, 0, maxTotal+1)
	for i := 0; i < maxTotal; i++ {
		out = append(out, points[int(float64(i)*step)])
	}
	if out[len(out)-1] != points[len(points)-1] {
		out = append(out, points[len(points)-1])
	}
	return out
}

func perpendicularDistanceFt(p, a, b Point) float64 {
	x0, y0 := p.Lon, p.Lat
	x1, y1 := a.Lon, a.Lat
	x2, y2 := b.Lon, b.Lat

	num := math.Abs((y2-y1)*x0 - (x2-x1)*y0 + x2*y1 - y2*x1)
	den := math.Hypot(y2-y1, x2-x1)
	if den == 0 {
		return 0
	}
	return num / den * feetPerDegree
}

func turnAngleDeg(a, b, c Point) float64 {
	b1 := bearingDeg(a, b)
	b2 := bearingDeg(b, c)
	diff := math.Abs(b2 - b1)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

func bearingDeg(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Atan2(y, x) * 180 / math.Pi
}

func isElevationExtremum(prev, curr, next Point, thresholdFt float64) bool {
	e1, e2, e3 := prev.ElevationFt, curr.ElevationFt, next.ElevationFt
	if (e2 > e1 && e2 > e3) || (e2 < e1 && e2 < e3) {
		change := math.Max(math.Abs(e2-e1), math.Abs(e2-e3))
		return change > thresholdFt
	}
	return false
}
