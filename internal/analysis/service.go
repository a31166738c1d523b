package analysis

import (
	"context"

	"backend-trailpace/internal/db"
	"backend-trailpace/internal/gpximport"
	"backend-trailpace/internal/plan"
	"backend-trailpace/internal/race"
	"backend-trailpace/internal/stream"
	"backend-trailpace/internal/track"

	"github.com/google/uuid"
)

const defaultSampleStride = 20

type Service struct {
	db     db.Querier
	hub    *stream.Hub
	stride int
}

// NewService builds the race analysis service. stride controls how the
// recorded track is thinned before storage.
func NewService(db db.Querier, hub *stream.Hub, stride int) *Service {
	if stride <= 0 {
		stride = defaultSampleStride
	}
	return &Service{db: db, hub: hub, stride: stride}
}

// Save parses a recorded race, aligns it against the route's waypoints and
// planned time, and persists the analysis with a thinned point set.
func (s *Service) Save(ctx context.Context, req SaveRequest) (Analysis, []race.Comparison, error) {
	parsed, err := gpximport.Parse([]byte(req.GPX))
	if err != nil {
		return Analysis{}, nil, err
	}
	racePoints := track.Index(parsed.Points)

	var targetSec int
	if err := s.db.QueryRow(ctx, `
		SELECT target_time_seconds FROM routes WHERE id=$1
	`, req.RouteID).Scan(&targetSec); err != nil {
		return Analysis{}, nil, err
	}

	waypoints, err := s.routeWaypoints(ctx, req.RouteID)
	if err != nil {
		return Analysis{}, nil, err
	}

	comparisons := race.Compare(waypoints, racePoints, float64(targetSec), parsed.StartTime)
	sampled := track.Downsample(racePoints, s.stride)

	a := Analysis{
		ID:         uuid.NewString(),
		RouteID:    req.RouteID,
		Name:       req.Name,
		RaceStart:  parsed.StartTime,
		PointCount: len(sampled),
		CreatedBy:  req.CreatedBy,
	}
	if len(racePoints) > 0 {
		last := racePoints[len(racePoints)-1]
		a.TotalDistanceMi = last.CumulativeMi
		if parsed.HasTime && !last.Time.IsZero() {
			a.ActualTimeSec = last.Time.Sub(parsed.StartTime).Seconds()
		}
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO race_analyses (id, route_id, name, race_start, total_distance_mi, actual_time_seconds, point_count, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, a.ID, a.RouteID, a.Name, a.RaceStart, a.TotalDistanceMi, a.ActualTimeSec, a.PointCount, a.CreatedBy)
	if err := row.Scan(&a.CreatedAt); err != nil {
		return Analysis{}, nil, err
	}

	for i, p := range sampled {
		_, err := s.db.Exec(ctx, `
			INSERT INTO race_points (analysis_id, seq, lat, lon, elevation_ft, cumulative_mi, recorded_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, a.ID, i, p.Lat, p.Lon, p.ElevationFt, p.CumulativeMi, p.Time)
		if err != nil {
			return Analysis{}, nil, err
		}
	}
	for _, c := range comparisons {
		_, err := s.db.Exec(ctx, `
			INSERT INTO race_comparisons (analysis_id, order_index, waypoint_name, leg_distance_mi, cumulative_mi,
				planned_cumulative_seconds, has_actual, actual_cumulative_seconds, time_difference_seconds,
				leg_duration_seconds, actual_pace_seconds, planned_pace_seconds)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`, a.ID, c.OrderIndex, c.WaypointName, c.LegDistanceMi, c.CumulativeMi,
			c.PlannedCumulativeSec, c.HasActual, c.ActualCumulativeSec, c.TimeDifferenceSec,
			c.LegDurationSec, c.ActualPaceSec, c.PlannedPaceSec)
		if err != nil {
			return Analysis{}, nil, err
		}
	}

	if s.hub != nil {
		s.hub.Publish(stream.Event{Type: "analysis_saved", RouteID: a.RouteID, Data: a})
	}
	return a, comparisons, nil
}

func (s *Service) routeWaypoints(ctx context.Context, routeID string) ([]plan.Waypoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT order_index, name, type, lat, lon, elevation_ft, rest_time_seconds, COALESCE(notes,'')
		FROM waypoints WHERE route_id=$1
		ORDER BY order_index
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []plan.Waypoint
	for rows.Next() {
		var wp plan.Waypoint
		if err := rows.Scan(&wp.OrderIndex, &wp.Name, &wp.Type, &wp.Lat, &wp.Lon, &wp.ElevationFt, &wp.RestTimeSec, &wp.Notes); err != nil {
			return nil, err
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}

func (s *Service) Get(ctx context.Context, id string) (Analysis, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, route_id, name, race_start, total_distance_mi, actual_time_seconds, point_count, created_by, created_at
		FROM race_analyses WHERE id=$1
	`, id)
	var a Analysis
	if err := row.Scan(&a.ID, &a.RouteID, &a.Name, &a.RaceStart, &a.TotalDistanceMi, &a.ActualTimeSec, &a.PointCount, &a.CreatedBy, &a.CreatedAt); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Analysis, error) {
	return s.list(ctx, `
		SELECT id, route_id, name, race_start, total_distance_mi, actual_time_seconds, point_count, created_by, created_at
		FROM race_analyses WHERE created_by=$1
		ORDER BY created_at DESC
	`, userID)
}

func (s *Service) ForRoute(ctx context.Context, routeID string) ([]Analysis, error) {
	return s.list(ctx, `
		SELECT id, route_id, name, race_start, total_distance_mi, actual_time_seconds, point_count, created_by, created_at
		FROM race_analyses WHERE route_id=$1
		ORDER BY created_at DESC
	`, routeID)
}

func (s *Service) list(ctx context.Context, sql, arg string) ([]Analysis, error) {
	rows, err := s.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.RouteID, &a.Name, &a.RaceStart, &a.TotalDistanceMi, &a.ActualTimeSec, &a.PointCount, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

func (s *Service) Comparisons(ctx context.Context, analysisID string) ([]race.Comparison, error) {
	rows, err := s.db.Query(ctx, `
		SELECT order_index, waypoint_name, leg_distance_mi, cumulative_mi, planned_cumulative_seconds,
		       has_actual, actual_cumulative_seconds, time_difference_seconds, leg_duration_seconds,
		       actual_pace_seconds, planned_pace_seconds
		FROM race_comparisons WHERE analysis_id=$1
		ORDER BY order_index
	`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comparisons []race.Comparison
	for rows.Next() {
		var c race.Comparison
		if err := rows.Scan(&c.OrderIndex, &c.WaypointName, &c.LegDistanceMi, &c.CumulativeMi, &c.PlannedCumulativeSec,
			&c.HasActual, &c.ActualCumulativeSec, &c.TimeDifferenceSec, &c.LegDurationSec,
			&c.ActualPaceSec, &c.PlannedPaceSec); err != nil {
			return nil, err
		}
		comparisons = append(comparisons, c)
	}
	return comparisons, nil
}

func (s *Service) Points(ctx context.Context, analysisID string) ([]track.Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT lat, lon, elevation_ft, cumulative_mi, recorded_at
		FROM race_points WHERE analysis_id=$1
		ORDER BY seq
	`, analysisID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []track.Point
	for rows.Next() {
		var p track.Point
		if err := rows.Scan(&p.Lat, &p.Lon, &p.ElevationFt, &p.CumulativeMi, &p.Time); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM race_analyses WHERE id=$1`, id)
	return err
}
