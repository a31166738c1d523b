package track

import (
	"time"

	"backend-trailpace/internal/shared/geo"
)

// Point is one sample of a GPS track. Distance fields are written only by
// Index; everything else treats an indexed track as immutable.
type Point struct {
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	ElevationFt  float64   `json:"elevation_ft"`
	Time         time.Time `json:"time,omitempty"`
	DistanceMi   float64   `json:"distance_mi"`
	CumulativeMi float64   `json:"cumulative_mi"`
}

// Index returns a new slice with per-point and cumulative distances filled
// in. Points with non-finite coordinates are dropped: retaining them would
// poison every nearest-point search downstream, and index alignment is not
// part of the track contract.
func Index(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if !geo.Finite(p.Lat, p.Lon, p.ElevationFt) {
			continue
		}
		if len(out) == 0 {
			p.DistanceMi = 0
			p.CumulativeMi = 0
		} else {
			prev := out[len(out)-1]
			p.DistanceMi = geo.HaversineMi(prev.Lat, prev.Lon, p.Lat, p.Lon)
			p.CumulativeMi = prev.CumulativeMi + p.DistanceMi
		}
		out = append(out, p)
	}
	return out
}

// Downsample keeps the first point, every stride-th point after it, and the
// last point. Used to bound stored race tracks; plan accuracy is not a
// concern because first and last are preserved exactly.
func Downsample(points []Point, stride int) []Point {
	if stride <= 1 || len(points) <= 2 {
		return points
	}
	out := make([]Point, 0, len(points)/stride+2)
	for i := 0; i < len(points); i += stride {
		out = append(out, points[i])
	}
	if last := points[len(points)-1]; out[len(out)-1] != last {
		out = append(out, last)
	}
	return out
}

// Nearest returns the index of the point closest to (lat, lon) by
// great-circle distance, or -1 for an empty track. Linear scan; tracks are
// simplified to low thousands of points so no spatial index is needed.
func Nearest(points []Point, lat, lon float64) int {
	best := -1
	bestDist := 0.0
	for i, p := range points {
		d := geo.HaversineMi(lat, lon, p.Lat, p.Lon)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
