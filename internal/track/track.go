package track

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Input format: a JSON object whose "path" key holds the ordered track:
//
//	{"path": [{"lng": 10.5, "lat": 46.2, "elevation": 1500.0, "time": 0}, ...]}
//
// time is milliseconds since local midnight of the (external) base date.
// Other keys, in the object or in points, are ignored.

var ErrMissingPath = errors.New(`missing "path" array`)

// Number is a JSON number that keeps its literal text, so coordinates can be
// written back exactly as the source had them.
type Number struct {
	Value   float64
	Literal string
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || !(b[0] == '-' || (b[0] >= '0' && b[0] <= '9')) {
		return fmt.Errorf("expected number, got %s", b)
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid number %s: %w", b, err)
	}
	n.Value = v
	n.Literal = string(b)
	return nil
}

func (n Number) String() string {
	return n.Literal
}

// Num builds a Number from a float, formatted the way encoding/json would.
func Num(v float64) Number {
	return Number{Value: v, Literal: strconv.FormatFloat(v, 'g', -1, 64)}
}

type Point struct {
	Lng       Number
	Lat       Number
	Elevation Number
	// Time is elapsed milliseconds since local midnight of the base date.
	Time Number
}

// SchemaError reports a point record that does not match the expected shape.
type SchemaError struct {
	Index int
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("path[%d]: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("path[%d].%s: %v", e.Index, e.Field, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

var ErrFieldMissing = errors.New("field is missing")

var pointFields = []string{"lng", "lat", "elevation", "time"}

type document struct {
	Path *[]json.RawMessage `json:"path"`
}

type Reader struct {
	r io.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadAll decodes the whole document and validates every point. Points are
// returned in input order.
func (rr *Reader) ReadAll() ([]Point, error) {
	var doc document
	dec := json.NewDecoder(rr.r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	if doc.Path == nil {
		return nil, ErrMissingPath
	}

	raw := *doc.Path
	pts := make([]Point, 0, len(raw))
	for i, msg := range raw {
		p, err := decodePoint(i, msg)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

func decodePoint(i int, msg json.RawMessage) (Point, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(msg, &obj); err != nil {
		return Point{}, &SchemaError{Index: i, Err: fmt.Errorf("expected object, got %s", msg)}
	}
	if obj == nil {
		return Point{}, &SchemaError{Index: i, Err: errors.New("expected object, got null")}
	}

	var vals [4]Number
	for k, name := range pointFields {
		v, ok := obj[name]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return Point{}, &SchemaError{Index: i, Field: name, Err: ErrFieldMissing}
		}
		if err := vals[k].UnmarshalJSON(v); err != nil {
			return Point{}, &SchemaError{Index: i, Field: name, Err: err}
		}
	}

	return Point{
		Lng:       vals[0],
		Lat:       vals[1],
		Elevation: vals[2],
		Time:      vals[3],
	}, nil
}

// Load reads and validates the track log at path.
func Load(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	pts, err := NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return pts, nil
}
