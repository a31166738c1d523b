package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"backend-trailpace/internal/plan"
	"backend-trailpace/internal/race"
)

// WritePlanCSV renders a pacing plan's leg table as CSV, one row per
// waypoint, preceded by a header row.
func WritePlanCSV(w io.Writer, p plan.Plan) error {
	cw := csv.NewWriter(w)
	header := []string{
		"order", "waypoint", "type",
		"leg_distance_mi", "cumulative_mi",
		"gain_ft", "loss_ft",
		"leg_time", "pace", "arrival", "arrival_clock",
		"rest_seconds",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, leg := range p.Legs {
		row := []string{
			strconv.Itoa(leg.Waypoint.OrderIndex),
			leg.Waypoint.Name,
			leg.Waypoint.Type,
			formatMi(leg.LegDistanceMi),
			formatMi(leg.CumulativeMi),
			formatFt(leg.GainFt),
			formatFt(leg.LossFt),
			plan.FormatDuration(leg.AdjustedSec),
			leg.Pace,
			plan.FormatDuration(leg.CumulativeSec),
			leg.ArrivalClock,
			strconv.Itoa(leg.RestTimeSec),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteComparisonsCSV renders a planned-vs-actual table as CSV. Rows
// without recorded actuals leave the actual columns empty.
func WriteComparisonsCSV(w io.Writer, rows []race.Comparison) error {
	cw := csv.NewWriter(w)
	header := []string{
		"order", "waypoint",
		"leg_distance_mi", "cumulative_mi",
		"planned", "actual", "difference_seconds",
		"actual_pace", "planned_pace",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, c := range rows {
		row := []string{
			strconv.Itoa(c.OrderIndex),
			c.WaypointName,
			formatMi(c.LegDistanceMi),
			formatMi(c.CumulativeMi),
			plan.FormatDuration(c.PlannedCumulativeSec),
			"", "", "", "",
		}
		if c.HasActual {
			row[5] = plan.FormatDuration(c.ActualCumulativeSec)
			row[6] = strconv.FormatFloat(c.TimeDifferenceSec, 'f', 0, 64)
			row[7] = plan.FormatPace(c.ActualPaceSec)
			row[8] = plan.FormatPace(c.PlannedPaceSec)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatMi(mi float64) string {
	return strconv.FormatFloat(mi, 'f', 2, 64)
}

func formatFt(ft float64) string {
	return strconv.FormatFloat(ft, 'f', 0, 64)
}
