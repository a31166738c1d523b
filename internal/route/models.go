package route

import (
	"time"

	"backend-trailpace/internal/plan"
)

type Route struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	IsPublic        bool      `json:"is_public"`
	TargetTimeSec   int       `json:"target_time_seconds"`
	SlowdownPct     float64   `json:"slowdown_pct"`
	StartOfDay      string    `json:"start_of_day,omitempty"`
	TotalDistanceMi float64   `json:"total_distance_mi"`
	TotalGainFt     float64   `json:"total_gain_ft"`
	TotalLossFt     float64   `json:"total_loss_ft"`
	PointCount      int       `json:"point_count"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Waypoint struct {
	ID          string    `json:"id"`
	RouteID     string    `json:"route_id"`
	OrderIndex  int       `json:"order_index"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
	ElevationFt float64   `json:"elevation_ft"`
	RestTimeSec int       `json:"rest_time_seconds"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (w Waypoint) planWaypoint() plan.Waypoint {
	return plan.Waypoint{
		OrderIndex:  w.OrderIndex,
		Name:        w.Name,
		Type:        w.Type,
		Lat:         w.Lat,
		Lon:         w.Lon,
		ElevationFt: w.ElevationFt,
		RestTimeSec: w.RestTimeSec,
		Notes:       w.Notes,
	}
}
