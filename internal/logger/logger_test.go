package logger

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestLogger(level Level, buf *bytes.Buffer) *Logger {
	l := New(level, buf)
	l.timeNow = func() time.Time { return time.Date(2003, 11, 4, 23, 15, 8, 431232, time.UTC) }
	return l
}

func TestLoggerPlain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(Debug, &buf)

	l.Log(Debug, "zone %s", "UTC")
	l.Log(Info, "test format %d", 123)
	l.Log(Warn, "careful")
	l.Log(Error, "broken: %v", "yes")

	require.Equal(t, "2003/11/04 23:15:08 DEB zone UTC\n"+
		"2003/11/04 23:15:08 INF test format 123\n"+
		"2003/11/04 23:15:08 WAR careful\n"+
		"2003/11/04 23:15:08 ERR broken: yes\n", buf.String())
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(Warn, &buf)

	l.Log(Debug, "hidden")
	l.Log(Info, "hidden")
	l.Log(Error, "shown")
	require.Equal(t, "2003/11/04 23:15:08 ERR shown\n", buf.String())

	buf.Reset()
	l.SetLevel(Debug)
	l.Log(Debug, "now shown")
	require.Equal(t, "2003/11/04 23:15:08 DEB now shown\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug":  Debug,
		"INFO":   Info,
		" warn ": Warn,
		"error":  Error,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := ParseLevel("verbose")
	require.EqualError(t, err, "invalid log level: 'verbose'")
}
