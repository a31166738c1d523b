package gpximport

import (
	"errors"
	"time"

	"backend-trailpace/internal/shared/geo"
	"backend-trailpace/internal/track"

	"github.com/tkrajina/gpxgo/gpx"
)

var ErrNoTrackPoints = errors.New("gpx file contains no usable track points")

// Result is a parsed GPX file converted to the internal unit system
// (miles/feet). Points are raw; callers index them with track.Index.
type Result struct {
	Name      string
	Points    []track.Point
	StartTime time.Time
	HasTime   bool
}

// Parse reads GPX bytes and flattens all tracks and segments into a single
// ordered point list. Files with tracks but no points fall back to route
// points, matching what sparse planning exports produce.
func Parse(data []byte) (Result, error) {
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return Result{}, err
	}

	var points []track.Point
	appendPoint := func(p *gpx.GPXPoint) {
		ele := 0.0
		if p.Elevation.NotNull() {
			ele = geo.MetersToFeet(p.Elevation.Value())
		}
		points = append(points, track.Point{
			Lat:         p.Latitude,
			Lon:         p.Longitude,
			ElevationFt: ele,
			Time:        p.Timestamp,
		})
	}

	for _, trk := range g.Tracks {
		for _, seg := range trk.Segments {
			for i := range seg.Points {
				appendPoint(&seg.Points[i])
			}
		}
	}
	if len(points) == 0 {
		for _, rte := range g.Routes {
			for i := range rte.Points {
				appendPoint(&rte.Points[i])
			}
		}
	}
	if len(points) < 2 {
		return Result{}, ErrNoTrackPoints
	}

	res := Result{Name: g.Name, Points: points}
	for _, p := range points {
		if !p.Time.IsZero() {
			res.StartTime = p.Time
			res.HasTime = true
			break
		}
	}
	return res, nil
}
