// Package gpx writes GPX 1.1 documents holding a single track with a single
// track segment.
package gpx

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	Namespace      = "http://www.topografix.com/GPX/1/1"
	SchemaLocation = "http://www.topografix.com/GPX/1/1 http://www.topografix.com/GPX/1/1/gpx.xsd"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
)

const headerFormat = `<?xml version="1.0" encoding="UTF-8" standalone="no" ?>
<gpx xmlns="%s" creator="%s" version="1.1"
    xmlns:xsi="%s"
    xsi:schemaLocation="%s">
  <trk>
    <trkseg>
`

const footer = `    </trkseg>
  </trk>
</gpx>
`

// TrackPoint is one <trkpt>. Lon, Lat and Ele are written verbatim, so
// callers pass the numeric text exactly as it should appear.
type TrackPoint struct {
	Lon  string
	Lat  string
	Ele  string
	Time string
}

// Writer streams a document: WriteHeader, any number of WritePoint,
// then Close. The first write error is sticky and returned by every later
// call.
type Writer struct {
	w       *bufio.Writer
	creator string
	state   int
	points  int
	err     error
}

const (
	stateNew = iota
	stateOpen
	stateClosed
)

func NewWriter(w io.Writer, creator string) *Writer {
	return &Writer{w: bufio.NewWriter(w), creator: creator}
}

func escapeAttr(s string) string {
	var sb strings.Builder
	// xml.EscapeText only fails if the underlying writer does.
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}

func (gw *Writer) WriteHeader() error {
	if gw.err != nil {
		return gw.err
	}
	if gw.state != stateNew {
		return errors.New("gpx header already written")
	}
	gw.state = stateOpen
	_, gw.err = fmt.Fprintf(gw.w, headerFormat, Namespace, escapeAttr(gw.creator), xsiNamespace, SchemaLocation)
	return gw.err
}

func (gw *Writer) WritePoint(p TrackPoint) error {
	if gw.err != nil {
		return gw.err
	}
	if gw.state != stateOpen {
		return errors.New("gpx point written outside of track segment")
	}
	_, gw.err = fmt.Fprintf(gw.w,
		"      <trkpt lon=\"%s\" lat=\"%s\">\n        <ele>%s</ele>\n        <time>%s</time>\n      </trkpt>\n",
		escapeAttr(p.Lon), escapeAttr(p.Lat), escapeAttr(p.Ele), escapeAttr(p.Time))
	if gw.err == nil {
		gw.points++
	}
	return gw.err
}

// Points returns the number of track points written so far.
func (gw *Writer) Points() int {
	return gw.points
}

// Close writes the closing tags and flushes. It does not close the
// underlying writer.
func (gw *Writer) Close() error {
	if gw.err != nil {
		return gw.err
	}
	switch gw.state {
	case stateClosed:
		return nil
	case stateNew:
		if err := gw.WriteHeader(); err != nil {
			return err
		}
	}
	gw.state = stateClosed
	if _, gw.err = io.WriteString(gw.w, footer); gw.err != nil {
		return gw.err
	}
	gw.err = gw.w.Flush()
	return gw.err
}

// Encode writes a complete document containing points.
func Encode(w io.Writer, creator string, points []TrackPoint) error {
	gw := NewWriter(w, creator)
	if err := gw.WriteHeader(); err != nil {
		return err
	}
	for _, p := range points {
		if err := gw.WritePoint(p); err != nil {
			return err
		}
	}
	return gw.Close()
}
