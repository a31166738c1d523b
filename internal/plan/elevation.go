package plan

import "backend-trailpace/internal/track"

// Asymmetric elevation adjustment policy: every 30 ft/mi of climb above the
// route average costs 5%, every 30 ft/mi of descent above average refunds
// 4%. Climbing hurts more than descending helps; keep it asymmetric.
const (
	elevationIncrementFt = 30.0
	gainPenaltyPerStep   = 0.05
	lossCreditPerStep    = 0.04
)

// LegElevations sums climb and descent over the track sub-range between each
// adjacent waypoint pair. Indices come from independent nearest-point
// lookups; a leg whose end index does not follow its start index is
// degenerate and contributes zero.
func LegElevations(located []Located, points []track.Point) []LegElevation {
	out := make([]LegElevation, len(located))
	for i := 1; i < len(located); i++ {
		start := track.Nearest(points, located[i-1].Lat, located[i-1].Lon)
		end := track.Nearest(points, located[i].Lat, located[i].Lon)
		if start < 0 || end < 0 || start >= end {
			continue
		}
		var gain, loss float64
		for j := start + 1; j <= end; j++ {
			delta := points[j].ElevationFt - points[j-1].ElevationFt
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		out[i] = LegElevation{GainFt: gain, LossFt: loss}
	}
	return out
}

// elevationMultiplier converts a leg's excess climb/descent rate (vs the
// route average, in ft/mi) into a pace multiplier.
func elevationMultiplier(legGainRate, legLossRate, avgGainRate, avgLossRate float64) float64 {
	excessGain := legGainRate - avgGainRate
	excessLoss := legLossRate - avgLossRate

	gainMul := 1 + (excessGain/elevationIncrementFt)*gainPenaltyPerStep
	lossMul := 1 - (excessLoss/elevationIncrementFt)*lossCreditPerStep
	return gainMul * lossMul
}
