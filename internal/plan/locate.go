package plan

import (
	"log"
	"sort"

	"backend-trailpace/internal/shared/geo"
	"backend-trailpace/internal/track"
)

// Policy constants for the locator fallback. These are tuning knobs, not
// incidental values: tests pin them.
const (
	// tortuosityFactor inflates straight-line waypoint spacing to estimate
	// route distance when nothing better is known. Trails are rarely
	// straight.
	tortuosityFactor = 1.2

	// Absolute plausibility band for a located route total, used only when
	// no known total distance is available.
	minPlausibleMi = 50.0
	maxPlausibleMi = 200.0

	// Relative plausibility band around a known total distance.
	plausibleLow  = 0.5
	plausibleHigh = 3.0
)

// Locate pins each waypoint to a position along the track. It first trusts
// the track's cumulative distance annotations (strategy A); if those are
// absent or yield an implausible route total it falls back to scaling the
// straight-line waypoint spacing (strategy B). Waypoints are processed in
// ascending order index; the input slice is not modified.
func Locate(waypoints []Waypoint, points []track.Point, knownTotalMi float64) []Located {
	if len(waypoints) == 0 {
		return nil
	}

	wps := append([]Waypoint(nil), waypoints...)
	sort.SliceStable(wps, func(i, j int) bool { return wps[i].OrderIndex < wps[j].OrderIndex })

	if hasCumulative(points) {
		located := locateByCumulative(wps, points)
		if plausibleTotal(located[len(located)-1].CumulativeMi, knownTotalMi) {
			return located
		}
		log.Printf("waypoint locator: cumulative total %.1f mi implausible, using proportional fallback",
			located[len(located)-1].CumulativeMi)
	}
	return locateProportionally(wps, points, knownTotalMi)
}

func hasCumulative(points []track.Point) bool {
	for _, p := range points {
		if p.CumulativeMi > 0 {
			return true
		}
	}
	return false
}

func plausibleTotal(totalMi, knownTotalMi float64) bool {
	if knownTotalMi > 0 {
		return totalMi >= plausibleLow*knownTotalMi && totalMi <= plausibleHigh*knownTotalMi
	}
	return totalMi > minPlausibleMi && totalMi < maxPlausibleMi
}

// locateByCumulative is strategy A: nearest track point per waypoint, leg
// distance from the difference of cumulative annotations. Legs are clamped
// to >= 0 to survive out-of-order nearest matches on looping routes.
func locateByCumulative(wps []Waypoint, points []track.Point) []Located {
	out := make([]Located, len(wps))
	prevCum := 0.0
	first := true
	for i, wp := range wps {
		idx := track.Nearest(points, wp.Lat, wp.Lon)
		cum := points[idx].CumulativeMi

		leg := 0.0
		if !first {
			leg = cum - prevCum
			if leg < 0 {
				leg = 0
			}
		}
		first = false
		prevCum = cum

		running := leg
		if i > 0 {
			running += out[i-1].CumulativeMi
		}
		out[i] = Located{Waypoint: wp, LegDistanceMi: leg, CumulativeMi: running, TrackIndex: idx}
	}
	return out
}

// locateProportionally is strategy B: scale straight-line waypoint spacing
// to a known (or estimated) route total.
func locateProportionally(wps []Waypoint, points []track.Point, knownTotalMi float64) []Located {
	straight := make([]float64, len(wps))
	totalStraight := 0.0
	for i := 1; i < len(wps); i++ {
		straight[i] = geo.HaversineMi(wps[i-1].Lat, wps[i-1].Lon, wps[i].Lat, wps[i].Lon)
		totalStraight += straight[i]
	}

	total := knownTotalMi
	if total <= 0 && len(points) > 0 {
		total = points[len(points)-1].CumulativeMi
	}
	if total <= 0 {
		total = totalStraight * tortuosityFactor
	}

	scale := 0.0
	if totalStraight > 0 {
		scale = total / totalStraight
	}

	out := make([]Located, len(wps))
	running := 0.0
	for i, wp := range wps {
		leg := straight[i] * scale
		running += leg
		out[i] = Located{
			Waypoint:      wp,
			LegDistanceMi: leg,
			CumulativeMi:  running,
			TrackIndex:    track.Nearest(points, wp.Lat, wp.Lon),
		}
	}
	return out
}
