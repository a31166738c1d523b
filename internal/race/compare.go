package race

import (
	"time"

	"backend-trailpace/internal/plan"
	"backend-trailpace/internal/track"
)

// Comparison is one row of the planned-vs-actual table. Actual fields are
// meaningful only when HasActual is set; a race that ended early simply
// leaves later rows without actuals.
type Comparison struct {
	OrderIndex           int     `json:"order_index"`
	WaypointName         string  `json:"waypoint_name"`
	LegDistanceMi        float64 `json:"leg_distance_mi"`
	CumulativeMi         float64 `json:"cumulative_mi"`
	PlannedCumulativeSec float64 `json:"planned_cumulative_seconds"`
	HasActual            bool    `json:"has_actual"`
	ActualCumulativeSec  float64 `json:"actual_cumulative_seconds,omitempty"`
	TimeDifferenceSec    float64 `json:"time_difference_seconds,omitempty"`
	LegDurationSec       float64 `json:"leg_duration_seconds,omitempty"`
	ActualPaceSec        float64 `json:"actual_pace_seconds_per_mi,omitempty"`
	PlannedPaceSec       float64 `json:"planned_pace_seconds_per_mi,omitempty"`
	ClosestLat           float64 `json:"closest_lat,omitempty"`
	ClosestLon           float64 `json:"closest_lon,omitempty"`
}

// Compare aligns a recorded race track against the planned waypoints.
// Planned time per waypoint is redistributed proportionally to the distance
// actually covered along the race track, answering "where should I be given
// how far I have really gone", not "what did the original schedule say".
// Negative time differences mean ahead of schedule.
func Compare(waypoints []plan.Waypoint, racePoints []track.Point, plannedTotalSec float64, raceStart time.Time) []Comparison {
	if len(waypoints) == 0 {
		return nil
	}

	totalRaceMi := 0.0
	if len(racePoints) > 0 {
		totalRaceMi = racePoints[len(racePoints)-1].CumulativeMi
	}

	out := make([]Comparison, 0, len(waypoints))
	prevCumMi := 0.0
	prevMatched := false
	prevHasActual := false
	prevActual := 0.0
	prevPlanned := 0.0

	for _, wp := range waypoints {
		row := Comparison{OrderIndex: wp.OrderIndex, WaypointName: wp.Name}

		idx := track.Nearest(racePoints, wp.Lat, wp.Lon)
		if idx < 0 {
			out = append(out, row)
			prevMatched = false
			continue
		}
		pt := racePoints[idx]
		row.ClosestLat = pt.Lat
		row.ClosestLon = pt.Lon
		row.CumulativeMi = pt.CumulativeMi

		// Leg distance along the race track; falls back to zero when the
		// previous waypoint had no match.
		if prevMatched {
			row.LegDistanceMi = pt.CumulativeMi - prevCumMi
			if row.LegDistanceMi < 0 {
				row.LegDistanceMi = 0
			}
		}

		if totalRaceMi > 0 {
			row.PlannedCumulativeSec = plannedTotalSec * pt.CumulativeMi / totalRaceMi
		}

		if !pt.Time.IsZero() && !raceStart.IsZero() {
			row.HasActual = true
			row.ActualCumulativeSec = pt.Time.Sub(raceStart).Seconds()
			row.TimeDifferenceSec = row.ActualCumulativeSec - row.PlannedCumulativeSec

			if prevMatched && prevHasActual {
				row.LegDurationSec = row.ActualCumulativeSec - prevActual
				if row.LegDistanceMi > 0 {
					row.ActualPaceSec = row.LegDurationSec / row.LegDistanceMi
					row.PlannedPaceSec = (row.PlannedCumulativeSec - prevPlanned) / row.LegDistanceMi
				}
			}
			prevActual = row.ActualCumulativeSec
		}
		prevHasActual = row.HasActual

		prevMatched = true
		prevCumMi = pt.CumulativeMi
		prevPlanned = row.PlannedCumulativeSec
		out = append(out, row)
	}
	return out
}
