package main

import (
	"iski-gpx/internal/clock"
	"iski-gpx/internal/gpx"
	"iski-gpx/internal/track"
)

// convertTrack maps input points to GPX track points in input order.
// Coordinates and elevation keep their source text.
func convertTrack(pts []track.Point, conv *clock.Converter) ([]gpx.TrackPoint, error) {
	out := make([]gpx.TrackPoint, 0, len(pts))
	for i, p := range pts {
		ts, err := conv.Timestamp(p.Time.Value)
		if err != nil {
			return nil, &track.SchemaError{Index: i, Field: "time", Err: err}
		}
		out = append(out, gpx.TrackPoint{
			Lon:  p.Lng.String(),
			Lat:  p.Lat.String(),
			Ele:  p.Elevation.String(),
			Time: ts,
		})
	}
	return out, nil
}
