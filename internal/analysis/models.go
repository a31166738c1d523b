package analysis

import "time"

type Analysis struct {
	ID              string    `json:"id"`
	RouteID         string    `json:"route_id"`
	Name            string    `json:"name"`
	RaceStart       time.Time `json:"race_start,omitempty"`
	TotalDistanceMi float64   `json:"total_distance_mi"`
	ActualTimeSec   float64   `json:"actual_time_seconds"`
	PointCount      int       `json:"point_count"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// SaveRequest carries the recorded race GPX inline as an XML string.
type SaveRequest struct {
	RouteID   string `json:"route_id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	GPX       string `json:"gpx"`
}
