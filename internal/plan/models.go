package plan

// Waypoint is the engine's read-only view of a user waypoint. The engine
// never mutates the caller's slice; derived fields live on Located and Leg.
type Waypoint struct {
	OrderIndex  int     `json:"order_index"`
	Name        string  `json:"name"`
	Type        string  `json:"type"` // start, checkpoint, finish, poi
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	ElevationFt float64 `json:"elevation_ft"`
	RestTimeSec int     `json:"rest_time_seconds"`
	Notes       string  `json:"notes"`
}

// Located is a waypoint pinned to a position along the route. CumulativeMi
// is the running sum of leg distances, so the first waypoint is always at 0.
type Located struct {
	Waypoint
	LegDistanceMi float64 `json:"leg_distance_mi"`
	CumulativeMi  float64 `json:"cumulative_mi"`
	TrackIndex    int     `json:"-"`
}

// LegElevation is the climb and descent accumulated over one leg, in feet.
type LegElevation struct {
	GainFt float64 `json:"gain_ft"`
	LossFt float64 `json:"loss_ft"`
}

// Params are the user-controlled planning inputs.
type Params struct {
	TargetTimeSec int     `json:"target_time_seconds"`
	SlowdownPct   float64 `json:"slowdown_factor_percent"` // 0..100
	StartOfDay    string  `json:"start_time,omitempty"`    // "HH:MM"
	KnownTotalMi  float64 `json:"known_total_mi,omitempty"`
}

// Leg is one row of the output leg table. The first row is the start
// waypoint with zero leg fields.
type Leg struct {
	Waypoint         Waypoint `json:"waypoint"`
	LegDistanceMi    float64  `json:"leg_distance_mi"`
	CumulativeMi     float64  `json:"cumulative_mi"`
	GainFt           float64  `json:"elevation_gain_ft"`
	LossFt           float64  `json:"elevation_loss_ft"`
	BaseSec          float64  `json:"base_leg_seconds"`
	AdjustedSec      float64  `json:"adjusted_leg_seconds"`
	PaceSecPerMi     float64  `json:"pace_seconds_per_mi"`
	Pace             string   `json:"pace"`
	CumulativeSec    float64  `json:"cumulative_arrival_seconds"`
	ArrivalClock     string   `json:"arrival_clock,omitempty"`
	ArrivalDayOffset int      `json:"arrival_day_offset"`
	RestTimeSec      int      `json:"rest_time_seconds"`
}

// Plan is the full leg table plus route totals.
type Plan struct {
	TotalDistanceMi float64 `json:"total_distance_mi"`
	MovingTimeSec   float64 `json:"moving_time_seconds"`
	TotalGainFt     float64 `json:"total_gain_ft"`
	TotalLossFt     float64 `json:"total_loss_ft"`
	StartPaceSec    float64 `json:"start_pace_seconds_per_mi"`
	EndPaceSec      float64 `json:"end_pace_seconds_per_mi"`
	Legs            []Leg   `json:"legs"`
}
