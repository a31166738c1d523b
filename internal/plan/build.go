package plan

import "backend-trailpace/internal/track"

// Build runs the whole planning pipeline: locate waypoints, analyze leg
// elevations, derive base leg times from the fatigue model, apply the
// elevation adjustment, and rescale so adjusted legs sum exactly to the
// moving time. Degenerate inputs (no waypoints, no distance, no target time)
// yield an empty or zero-filled plan rather than an error: mid-edit states
// are normal.
func Build(waypoints []Waypoint, points []track.Point, p Params) Plan {
	knownTotal := p.KnownTotalMi
	if knownTotal <= 0 && len(points) > 0 {
		knownTotal = points[len(points)-1].CumulativeMi
	}

	located := Locate(waypoints, points, knownTotal)
	if len(located) == 0 {
		return Plan{}
	}
	elevs := LegElevations(located, points)

	totalMi := located[len(located)-1].CumulativeMi
	var totalGain, totalLoss float64
	restTotal := 0
	for i := range located {
		totalGain += elevs[i].GainFt
		totalLoss += elevs[i].LossFt
		restTotal += located[i].RestTimeSec
	}

	moving := float64(p.TargetTimeSec - restTotal)
	if moving < 0 {
		moving = 0
	}
	model := NewModel(totalMi, moving, p.SlowdownPct)

	avgGainRate, avgLossRate := 0.0, 0.0
	if totalMi > 0 {
		avgGainRate = totalGain / totalMi
		avgLossRate = totalLoss / totalMi
	}

	base := make([]float64, len(located))
	adjusted := make([]float64, len(located))
	sumAdjusted := 0.0
	for i := 1; i < len(located); i++ {
		base[i] = model.LegSeconds(located[i-1].CumulativeMi, located[i].CumulativeMi)

		mult := 1.0
		if leg := located[i].LegDistanceMi; leg > 0 {
			mult = elevationMultiplier(elevs[i].GainFt/leg, elevs[i].LossFt/leg, avgGainRate, avgLossRate)
		}
		adjusted[i] = base[i] * mult
		sumAdjusted += adjusted[i]
	}

	// Rescale so the adjusted legs reproduce the moving time exactly. The
	// target time is authoritative; the adjustment only redistributes it.
	if sumAdjusted > 0 {
		scale := moving / sumAdjusted
		for i := range adjusted {
			adjusted[i] *= scale
		}
	}

	startSec, hasStart := parseClock(p.StartOfDay)
	legs := make([]Leg, len(located))
	arrival := 0.0
	restSoFar := 0
	for i, lw := range located {
		arrival += adjusted[i] + float64(restSoFar)
		restSoFar = lw.RestTimeSec

		pace := 0.0
		if lw.LegDistanceMi > 0 {
			pace = adjusted[i] / lw.LegDistanceMi
		}

		legs[i] = Leg{
			Waypoint:      lw.Waypoint,
			LegDistanceMi: lw.LegDistanceMi,
			CumulativeMi:  lw.CumulativeMi,
			GainFt:        elevs[i].GainFt,
			LossFt:        elevs[i].LossFt,
			BaseSec:       base[i],
			AdjustedSec:   adjusted[i],
			PaceSecPerMi:  pace,
			Pace:          FormatPace(pace),
			CumulativeSec: arrival,
			RestTimeSec:   lw.RestTimeSec,
		}
		if hasStart {
			clock, day := arrivalClock(startSec, arrival)
			legs[i].ArrivalClock = clock
			legs[i].ArrivalDayOffset = day
		}
	}

	return Plan{
		TotalDistanceMi: totalMi,
		MovingTimeSec:   moving,
		TotalGainFt:     totalGain,
		TotalLossFt:     totalLoss,
		StartPaceSec:    model.StartPaceSec(),
		EndPaceSec:      model.EndPaceSec(),
		Legs:            legs,
	}
}
