package main

import (
	"fmt"
	"io"
	"time"

	"iski-gpx/internal/clock"
	"iski-gpx/internal/geo"
	"iski-gpx/internal/track"
)

type trackSummary struct {
	Points     int
	Start      time.Time
	End        time.Time
	Duration   time.Duration
	MinEle     float64
	MaxEle     float64
	Ascent     float64
	Descent    float64
	DistanceKm float64
}

// summarizeTrack walks the points in input order. Start and End are the
// first and last point, not the earliest and latest.
func summarizeTrack(pts []track.Point, conv *clock.Converter) (trackSummary, error) {
	s := trackSummary{Points: len(pts)}
	if len(pts) == 0 {
		return s, nil
	}

	for i, p := range pts {
		at, err := conv.Time(p.Time.Value)
		if err != nil {
			return trackSummary{}, &track.SchemaError{Index: i, Field: "time", Err: err}
		}
		ele := p.Elevation.Value

		if i == 0 {
			s.Start = at
			s.MinEle = ele
			s.MaxEle = ele
		} else {
			prev := pts[i-1]
			delta := ele - prev.Elevation.Value
			if delta > 0 {
				s.Ascent += delta
			} else {
				s.Descent -= delta
			}
			s.DistanceKm += geo.HaversineKm(prev.Lat.Value, prev.Lng.Value, p.Lat.Value, p.Lng.Value)
		}
		s.End = at

		if ele < s.MinEle {
			s.MinEle = ele
		}
		if ele > s.MaxEle {
			s.MaxEle = ele
		}
	}
	s.Duration = s.End.Sub(s.Start)

	return s, nil
}

func writeTrackSummary(w io.Writer, path string, s trackSummary) {
	fmt.Fprintf(w, "path: %s\n", path)
	fmt.Fprintf(w, "points: %d\n", s.Points)
	if s.Points == 0 {
		return
	}
	fmt.Fprintf(w, "start: %s\n", clock.Format(s.Start))
	fmt.Fprintf(w, "end: %s\n", clock.Format(s.End))
	fmt.Fprintf(w, "duration: %s\n", s.Duration)
	fmt.Fprintf(w, "elevation_min: %.1f\n", s.MinEle)
	fmt.Fprintf(w, "elevation_max: %.1f\n", s.MaxEle)
	fmt.Fprintf(w, "ascent: %.1f\n", s.Ascent)
	fmt.Fprintf(w, "descent: %.1f\n", s.Descent)
	fmt.Fprintf(w, "distance_km: %.3f\n", s.DistanceKm)
}
