package route

import (
	"context"

	"backend-trailpace/internal/db"
	"backend-trailpace/internal/gpximport"
	"backend-trailpace/internal/plan"
	"backend-trailpace/internal/stream"
	"backend-trailpace/internal/track"

	"github.com/google/uuid"
)

type Service struct {
	db  db.Querier
	hub *stream.Hub
}

func NewService(db db.Querier, hub *stream.Hub) *Service {
	return &Service{db: db, hub: hub}
}

func (s *Service) CreateRoute(ctx context.Context, input Route) (Route, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO routes (id, name, description, is_public, target_time_seconds, slowdown_pct, start_of_day, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`, input.ID, input.Name, input.Description, input.IsPublic, input.TargetTimeSec, input.SlowdownPct, input.StartOfDay, input.CreatedBy)
	if err := row.Scan(&input.CreatedAt, &input.UpdatedAt); err != nil {
		return Route{}, err
	}
	return input, nil
}

func (s *Service) GetRoute(ctx context.Context, id string) (Route, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, is_public, target_time_seconds, slowdown_pct, COALESCE(start_of_day,''),
		       COALESCE(total_distance_mi,0), COALESCE(total_gain_ft,0), COALESCE(total_loss_ft,0),
		       COALESCE(point_count,0), created_by, created_at, updated_at
		FROM routes WHERE id=$1
	`, id)
	var r Route
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.IsPublic, &r.TargetTimeSec, &r.SlowdownPct, &r.StartOfDay,
		&r.TotalDistanceMi, &r.TotalGainFt, &r.TotalLossFt, &r.PointCount, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return Route{}, err
	}
	return r, nil
}

// ListRoutes returns the user's own routes plus public ones.
func (s *Service) ListRoutes(ctx context.Context, userID string) ([]Route, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, is_public, target_time_seconds, slowdown_pct, COALESCE(start_of_day,''),
		       COALESCE(total_distance_mi,0), COALESCE(total_gain_ft,0), COALESCE(total_loss_ft,0),
		       COALESCE(point_count,0), created_by, created_at, updated_at
		FROM routes
		WHERE created_by=$1 OR is_public
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		var r Route
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.IsPublic, &r.TargetTimeSec, &r.SlowdownPct, &r.StartOfDay,
			&r.TotalDistanceMi, &r.TotalGainFt, &r.TotalLossFt, &r.PointCount, &r.CreatedBy, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func (s *Service) UpdateRoute(ctx context.Context, id string, patch Route) (Route, error) {
	r, err := s.GetRoute(ctx, id)
	if err != nil {
		return Route{}, err
	}
	if patch.Name != "" {
		r.Name = patch.Name
	}
	if patch.Description != "" {
		r.Description = patch.Description
	}
	if patch.IsPublic {
		r.IsPublic = true
	}
	if patch.TargetTimeSec > 0 {
		r.TargetTimeSec = patch.TargetTimeSec
	}
	if patch.SlowdownPct != 0 {
		r.SlowdownPct = patch.SlowdownPct
	}
	if patch.StartOfDay != "" {
		r.StartOfDay = patch.StartOfDay
	}

	_, err = s.db.Exec(ctx, `
		UPDATE routes
		SET name=$2, description=$3, is_public=$4, target_time_seconds=$5, slowdown_pct=$6, start_of_day=$7, updated_at=NOW()
		WHERE id=$1
	`, r.ID, r.Name, r.Description, r.IsPublic, r.TargetTimeSec, r.SlowdownPct, r.StartOfDay)
	if err != nil {
		return Route{}, err
	}

	s.publish("route_updated", r.ID, r)
	return r, nil
}

func (s *Service) DeleteRoute(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM routes WHERE id=$1`, id)
	return err
}

// ImportTrack parses GPX bytes, simplifies the track for storage and replaces
// the route's point set. Totals on the route row are recomputed from the
// simplified track.
func (s *Service) ImportTrack(ctx context.Context, routeID string, gpxData []byte) (Route, error) {
	parsed, err := gpximport.Parse(gpxData)
	if err != nil {
		return Route{}, err
	}

	points := track.Index(parsed.Points)
	points = track.Index(track.Simplify(points, track.SimplifyOptions{}))

	totalMi := 0.0
	gainFt, lossFt := 0.0, 0.0
	if len(points) > 0 {
		totalMi = points[len(points)-1].CumulativeMi
	}
	for i := 1; i < len(points); i++ {
		d := points[i].ElevationFt - points[i-1].ElevationFt
		if d > 0 {
			gainFt += d
		} else {
			lossFt -= d
		}
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM route_points WHERE route_id=$1`, routeID); err != nil {
		return Route{}, err
	}
	for i, p := range points {
		_, err := s.db.Exec(ctx, `
			INSERT INTO route_points (route_id, seq, lat, lon, elevation_ft, distance_mi, cumulative_mi)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, routeID, i, p.Lat, p.Lon, p.ElevationFt, p.DistanceMi, p.CumulativeMi)
		if err != nil {
			return Route{}, err
		}
	}

	_, err = s.db.Exec(ctx, `
		UPDATE routes
		SET total_distance_mi=$2, total_gain_ft=$3, total_loss_ft=$4, point_count=$5, updated_at=NOW()
		WHERE id=$1
	`, routeID, totalMi, gainFt, lossFt, len(points))
	if err != nil {
		return Route{}, err
	}

	r, err := s.GetRoute(ctx, routeID)
	if err != nil {
		return Route{}, err
	}
	s.publish("track_imported", routeID, r)
	return r, nil
}

func (s *Service) Points(ctx context.Context, routeID string) ([]track.Point, error) {
	rows, err := s.db.Query(ctx, `
		SELECT lat, lon, elevation_ft, distance_mi, cumulative_mi
		FROM route_points WHERE route_id=$1
		ORDER BY seq
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []track.Point
	for rows.Next() {
		var p track.Point
		if err := rows.Scan(&p.Lat, &p.Lon, &p.ElevationFt, &p.DistanceMi, &p.CumulativeMi); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

func (s *Service) CreateWaypoint(ctx context.Context, input Waypoint) (Waypoint, error) {
	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO waypoints (id, route_id, order_index, name, type, lat, lon, elevation_ft, rest_time_seconds, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, input.ID, input.RouteID, input.OrderIndex, input.Name, input.Type, input.Lat, input.Lon, input.ElevationFt, input.RestTimeSec, input.Notes)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Waypoint{}, err
	}
	return input, nil
}

func (s *Service) GetWaypoint(ctx context.Context, routeID, id string) (Waypoint, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, route_id, order_index, name, type, lat, lon, elevation_ft, rest_time_seconds, COALESCE(notes,''), created_at
		FROM waypoints WHERE id=$1 AND route_id=$2
	`, id, routeID)
	var wp Waypoint
	if err := row.Scan(&wp.ID, &wp.RouteID, &wp.OrderIndex, &wp.Name, &wp.Type, &wp.Lat, &wp.Lon, &wp.ElevationFt, &wp.RestTimeSec, &wp.Notes, &wp.CreatedAt); err != nil {
		return Waypoint{}, err
	}
	return wp, nil
}

func (s *Service) UpdateWaypoint(ctx context.Context, routeID, id string, patch Waypoint) (Waypoint, error) {
	wp, err := s.GetWaypoint(ctx, routeID, id)
	if err != nil {
		return Waypoint{}, err
	}
	if patch.Name != "" {
		wp.Name = patch.Name
	}
	if patch.Type != "" {
		wp.Type = patch.Type
	}
	if patch.Lat != 0 {
		wp.Lat = patch.Lat
	}
	if patch.Lon != 0 {
		wp.Lon = patch.Lon
	}
	if patch.ElevationFt != 0 {
		wp.ElevationFt = patch.ElevationFt
	}
	if patch.RestTimeSec != 0 {
		wp.RestTimeSec = patch.RestTimeSec
	}
	if patch.Notes != "" {
		wp.Notes = patch.Notes
	}

	_, err = s.db.Exec(ctx, `
		UPDATE waypoints
		SET name=$3, type=$4, lat=$5, lon=$6, elevation_ft=$7, rest_time_seconds=$8, notes=$9
		WHERE id=$1 AND route_id=$2
	`, wp.ID, routeID, wp.Name, wp.Type, wp.Lat, wp.Lon, wp.ElevationFt, wp.RestTimeSec, wp.Notes)
	if err != nil {
		return Waypoint{}, err
	}
	return wp, nil
}

func (s *Service) DeleteWaypoint(ctx context.Context, routeID, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM waypoints WHERE id=$1 AND route_id=$2`, id, routeID)
	return err
}

func (s *Service) Waypoints(ctx context.Context, routeID string) ([]Waypoint, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, route_id, order_index, name, type, lat, lon, elevation_ft, rest_time_seconds, COALESCE(notes,''), created_at
		FROM waypoints WHERE route_id=$1
		ORDER BY order_index
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var waypoints []Waypoint
	for rows.Next() {
		var wp Waypoint
		if err := rows.Scan(&wp.ID, &wp.RouteID, &wp.OrderIndex, &wp.Name, &wp.Type, &wp.Lat, &wp.Lon, &wp.ElevationFt, &wp.RestTimeSec, &wp.Notes, &wp.CreatedAt); err != nil {
			return nil, err
		}
		waypoints = append(waypoints, wp)
	}
	return waypoints, nil
}

// Reorder rewrites order_index to match the given id sequence.
func (s *Service) Reorder(ctx context.Context, routeID string, ids []string) error {
	for i, id := range ids {
		_, err := s.db.Exec(ctx, `
			UPDATE waypoints SET order_index=$3 WHERE id=$1 AND route_id=$2
		`, id, routeID, i)
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildPlan produces the pacing table for the route's current waypoints and
// track using the stored race parameters.
func (s *Service) BuildPlan(ctx context.Context, routeID string) (plan.Plan, error) {
	r, err := s.GetRoute(ctx, routeID)
	if err != nil {
		return plan.Plan{}, err
	}
	waypoints, err := s.Waypoints(ctx, routeID)
	if err != nil {
		return plan.Plan{}, err
	}
	points, err := s.Points(ctx, routeID)
	if err != nil {
		return plan.Plan{}, err
	}

	planWaypoints := make([]plan.Waypoint, len(waypoints))
	for i, wp := range waypoints {
		planWaypoints[i] = wp.planWaypoint()
	}

	built := plan.Build(planWaypoints, points, plan.Params{
		TargetTimeSec: r.TargetTimeSec,
		SlowdownPct:   r.SlowdownPct,
		StartOfDay:    r.StartOfDay,
		KnownTotalMi:  r.TotalDistanceMi,
	})

	s.publish("plan_built", routeID, nil)
	return built, nil
}

func (s *Service) publish(eventType, routeID string, data any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(stream.Event{Type: eventType, RouteID: routeID, Data: data})
}
