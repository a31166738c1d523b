package plan

import (
	"math"
	"reflect"
	"testing"

	"backend-trailpace/internal/track"
)

// milePosts builds a straight synthetic track with one point per mile and
// trusted cumulative annotations. 0.0145 degrees of latitude ~ 1 mile.
func milePosts(n int) []track.Point {
	pts := make([]track.Point, n)
	for i := range pts {
		pts[i] = track.Point{Lat: 40 + float64(i)*0.0145, Lon: -105, CumulativeMi: float64(i)}
		if i > 0 {
			pts[i].DistanceMi = 1
		}
	}
	return pts
}

func wpAtMile(order int, mile float64) Waypoint {
	return Waypoint{OrderIndex: order, Name: "wp", Type: "checkpoint", Lat: 40 + mile*0.0145, Lon: -105}
}

func TestLocateDirect(t *testing.T) {
	pts := milePosts(11)
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}

	located := Locate(wps, pts, 10)
	if len(located) != 3 {
		t.Fatalf("expected 3 located waypoints")
	}
	if located[0].LegDistanceMi != 0 {
		t.Fatalf("first waypoint must have zero leg distance")
	}
	if located[1].LegDistanceMi != 5 || located[2].LegDistanceMi != 5 {
		t.Fatalf("unexpected legs: %v %v", located[1].LegDistanceMi, located[2].LegDistanceMi)
	}
	if located[2].CumulativeMi != 10 {
		t.Fatalf("unexpected total: %v", located[2].CumulativeMi)
	}
}

func TestLocateSortsByOrderIndex(t *testing.T) {
	pts := milePosts(11)
	wps := []Waypoint{wpAtMile(2, 10), wpAtMile(0, 0), wpAtMile(1, 5)}

	located := Locate(wps, pts, 10)
	if located[0].OrderIndex != 0 || located[2].OrderIndex != 2 {
		t.Fatalf("expected ascending order index")
	}
	if wps[0].OrderIndex != 2 {
		t.Fatalf("caller slice must not be reordered")
	}
}

func TestLocateClampsLoopingLegs(t *testing.T) {
	pts := milePosts(11)
	// Third waypoint matches an earlier track point than the second.
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 8), wpAtMile(2, 4)}

	located := Locate(wps, pts, 10)
	if located[2].LegDistanceMi != 0 {
		t.Fatalf("expected clamped leg, got %v", located[2].LegDistanceMi)
	}
	if located[2].CumulativeMi < located[1].CumulativeMi {
		t.Fatalf("cumulative must not decrease")
	}
}

func TestLocateFallbackOnZeroCumulative(t *testing.T) {
	pts := milePosts(11)
	for i := range pts {
		pts[i].CumulativeMi = 0
		pts[i].DistanceMi = 0
	}
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}

	located := Locate(wps, pts, 0)
	if located[2].CumulativeMi <= 0 {
		t.Fatalf("fallback must produce positive distances")
	}
	// Straight-line spacing scaled by the tortuosity factor.
	straight := located[2].CumulativeMi / tortuosityFactor
	if math.Abs(located[1].CumulativeMi-straight*0.5*tortuosityFactor) > 1e-9 {
		t.Fatalf("expected proportional midpoint, got %v of %v", located[1].CumulativeMi, located[2].CumulativeMi)
	}
}

func TestLocateFallbackOnImplausibleTotal(t *testing.T) {
	pts := milePosts(11)
	for i := range pts {
		pts[i].CumulativeMi *= 1000 // corrupt annotations, e.g. unit mismatch
	}
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}

	located := Locate(wps, pts, 10)
	if math.Abs(located[2].CumulativeMi-10) > 1e-9 {
		t.Fatalf("expected fallback scaled to known total, got %v", located[2].CumulativeMi)
	}
}

func TestLocateEmpty(t *testing.T) {
	if got := Locate(nil, milePosts(3), 0); got != nil {
		t.Fatalf("expected nil for no waypoints")
	}
}

func TestLegElevations(t *testing.T) {
	pts := milePosts(11)
	for i := range pts {
		if i <= 5 {
			pts[i].ElevationFt = float64(i) * 100 // climb to mile 5
		} else {
			pts[i].ElevationFt = 500 - float64(i-5)*40 // descend after
		}
	}
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}
	located := Locate(wps, pts, 10)

	elevs := LegElevations(located, pts)
	if elevs[1].GainFt != 500 || elevs[1].LossFt != 0 {
		t.Fatalf("leg 1: %+v", elevs[1])
	}
	if elevs[2].GainFt != 0 || elevs[2].LossFt != 200 {
		t.Fatalf("leg 2: %+v", elevs[2])
	}
}

func TestLegElevationsDegenerate(t *testing.T) {
	pts := milePosts(11)
	// Both waypoints match the same track point.
	wps := []Waypoint{wpAtMile(0, 5), wpAtMile(1, 5)}
	located := Locate(wps, pts, 10)

	elevs := LegElevations(located, pts)
	if elevs[1].GainFt != 0 || elevs[1].LossFt != 0 {
		t.Fatalf("degenerate leg must be zero: %+v", elevs[1])
	}
}

func TestModelConstantPace(t *testing.T) {
	m := NewModel(10, 6000, 0)
	if got := m.LegSeconds(0, 5); got != 3000 {
		t.Fatalf("expected 3000, got %v", got)
	}
	if got := m.LegSeconds(2, 7); got != 3000 {
		t.Fatalf("any 5 mile window is 3000s at constant pace, got %v", got)
	}
	if m.StartPaceSec() != 600 || m.EndPaceSec() != 600 {
		t.Fatalf("constant pace must be 600 s/mi")
	}
}

func TestModelSlowdown(t *testing.T) {
	m := NewModel(10, 3600, 20)

	start := m.StartPaceSec()
	if math.Abs(start-360/1.1) > 1e-9 {
		t.Fatalf("start pace: %v", start)
	}
	if math.Abs(m.EndPaceSec()-start*1.2) > 1e-9 {
		t.Fatalf("end pace: %v", m.EndPaceSec())
	}

	leg1 := m.LegSeconds(0, 5)
	leg2 := m.LegSeconds(5, 10)
	if leg1 >= leg2 {
		t.Fatalf("second half must be slower: %v vs %v", leg1, leg2)
	}
	if math.Abs(leg1+leg2-3600) > 1e-9 {
		t.Fatalf("legs must sum to total: %v", leg1+leg2)
	}
}

func TestModelGuards(t *testing.T) {
	if got := NewModel(0, 3600, 10).LegSeconds(0, 5); got != 0 {
		t.Fatalf("zero distance must yield zero leg time, got %v", got)
	}
	if got := NewModel(10, 3600, 10).LegSeconds(5, 5); got != 0 {
		t.Fatalf("empty interval must yield zero, got %v", got)
	}
}

func TestBuildConstantPaceScenario(t *testing.T) {
	pts := milePosts(11)
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}

	p := Build(wps, pts, Params{TargetTimeSec: 3600})
	if len(p.Legs) != 3 {
		t.Fatalf("expected 3 rows")
	}
	if math.Abs(p.Legs[1].AdjustedSec-1800) > 1e-6 || math.Abs(p.Legs[2].AdjustedSec-1800) > 1e-6 {
		t.Fatalf("expected 1800s legs: %v %v", p.Legs[1].AdjustedSec, p.Legs[2].AdjustedSec)
	}
	if math.Abs(p.Legs[1].PaceSecPerMi-360) > 1e-6 {
		t.Fatalf("expected 360 s/mi, got %v", p.Legs[1].PaceSecPerMi)
	}
	if p.Legs[1].Pace != "6:00/mi" {
		t.Fatalf("unexpected pace string %q", p.Legs[1].Pace)
	}
}

func TestBuildSlowdownScenario(t *testing.T) {
	pts := milePosts(11)
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}

	p := Build(wps, pts, Params{TargetTimeSec: 3600, SlowdownPct: 20})
	if p.Legs[1].AdjustedSec >= p.Legs[2].AdjustedSec {
		t.Fatalf("second leg must be slower")
	}
	sum := p.Legs[1].AdjustedSec + p.Legs[2].AdjustedSec
	if math.Abs(sum-3600) > 1e-6 {
		t.Fatalf("legs must sum to target: %v", sum)
	}
	if math.Abs(p.StartPaceSec-360/1.1) > 1e-9 {
		t.Fatalf("start pace: %v", p.StartPaceSec)
	}
}

func TestBuildAverageGradeLegUnadjusted(t *testing.T) {
	pts := milePosts(11)
	for i := range pts {
		pts[i].ElevationFt = float64(i) * 30 // uniform 30 ft/mi, every leg at route average
	}
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 5), wpAtMile(2, 10)}

	p := Build(wps, pts, Params{TargetTimeSec: 3600, SlowdownPct: 10})
	for i := 1; i < len(p.Legs); i++ {
		if math.Abs(p.Legs[i].AdjustedSec-p.Legs[i].BaseSec) > 1e-6 {
			t.Fatalf("average-grade leg %d must be unadjusted: base %v adjusted %v",
				i, p.Legs[i].BaseSec, p.Legs[i].AdjustedSec)
		}
	}
}

func TestBuildTotalTimePreserved(t *testing.T) {
	pts := milePosts(21)
	for i := range pts {
		switch {
		case i < 8:
			pts[i].ElevationFt = float64(i) * 250 // steep climb
		case i < 15:
			pts[i].ElevationFt = 2000 - float64(i-8)*120
		default:
			pts[i].ElevationFt = 1160 + float64(i-15)*40
		}
	}
	wps := []Waypoint{
		wpAtMile(0, 0),
		{OrderIndex: 1, Lat: 40 + 7*0.0145, Lon: -105, RestTimeSec: 300},
		{OrderIndex: 2, Lat: 40 + 14*0.0145, Lon: -105, RestTimeSec: 600},
		wpAtMile(3, 20),
	}

	target := 21600
	p := Build(wps, pts, Params{TargetTimeSec: target, SlowdownPct: 15})

	wantMoving := float64(target - 900)
	if p.MovingTimeSec != wantMoving {
		t.Fatalf("moving time: %v", p.MovingTimeSec)
	}
	sum := 0.0
	for _, l := range p.Legs {
		sum += l.AdjustedSec
	}
	if math.Abs(sum-wantMoving)/wantMoving > 1e-6 {
		t.Fatalf("adjusted legs must sum to moving time: %v vs %v", sum, wantMoving)
	}
	// Rests are added to arrival but never to leg times.
	finish := p.Legs[len(p.Legs)-1]
	if math.Abs(finish.CumulativeSec-(wantMoving+900)) > 1e-6 {
		t.Fatalf("finish arrival: %v", finish.CumulativeSec)
	}
}

func TestBuildIdempotent(t *testing.T) {
	pts := milePosts(11)
	for i := range pts {
		pts[i].ElevationFt = float64(i*i) * 3
	}
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 3), wpAtMile(2, 10)}
	params := Params{TargetTimeSec: 7200, SlowdownPct: 12, StartOfDay: "06:30"}

	a := Build(wps, pts, params)
	b := Build(wps, pts, params)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs must produce identical plans")
	}
}

func TestBuildDayRollover(t *testing.T) {
	pts := milePosts(11)
	wps := []Waypoint{wpAtMile(0, 0), wpAtMile(1, 10)}

	p := Build(wps, pts, Params{TargetTimeSec: 7200, StartOfDay: "23:00"})
	finish := p.Legs[1]
	if finish.ArrivalClock != "01:00:00" {
		t.Fatalf("arrival clock: %q", finish.ArrivalClock)
	}
	if finish.ArrivalDayOffset != 1 {
		t.Fatalf("expected day offset 1, got %d", finish.ArrivalDayOffset)
	}
	if p.Legs[0].ArrivalDayOffset != 0 {
		t.Fatalf("start must be day 0")
	}
}

func TestBuildDegenerateInputs(t *testing.T) {
	if p := Build(nil, milePosts(5), Params{TargetTimeSec: 3600}); len(p.Legs) != 0 {
		t.Fatalf("no waypoints must yield empty plan")
	}

	p := Build([]Waypoint{wpAtMile(0, 0)}, nil, Params{TargetTimeSec: 3600})
	if len(p.Legs) != 1 || p.Legs[0].AdjustedSec != 0 {
		t.Fatalf("single waypoint with no track: %+v", p.Legs)
	}

	// Rest time exceeding the target clamps moving time to zero.
	wps := []Waypoint{wpAtMile(0, 0), {OrderIndex: 1, Lat: 40.145, Lon: -105, RestTimeSec: 9999}}
	p = Build(wps, milePosts(11), Params{TargetTimeSec: 100})
	if p.MovingTimeSec != 0 {
		t.Fatalf("moving time must clamp to zero, got %v", p.MovingTimeSec)
	}
}

func TestFormatPace(t *testing.T) {
	if got := FormatPace(360); got != "6:00/mi" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPace(3725); got != "1:02:05/mi" {
		t.Fatalf("got %q", got)
	}
	if got := FormatPace(0); got != "-" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(3661); got != "1:01:01" {
		t.Fatalf("got %q", got)
	}
	if got := FormatDuration(-5); got != "0:00:00" {
		t.Fatalf("got %q", got)
	}
}

func TestParseClock(t *testing.T) {
	if sec, ok := parseClock("06:30"); !ok || sec != 6*3600+30*60 {
		t.Fatalf("parse 06:30: %v %v", sec, ok)
	}
	for _, bad := range []string{"", "25:00", "12:61", "noon", "12"} {
		if _, ok := parseClock(bad); ok {
			t.Fatalf("expected parse failure for %q", bad)
		}
	}
}
