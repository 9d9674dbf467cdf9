// Package logger contains a leveled logger for diagnostics.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return 0, fmt.Errorf("invalid log level: '%s'", s)
	}
}

// Logger writes log lines to a single destination, normally the standard
// error, which keeps the standard output free for converted documents.
type Logger struct {
	level    Level
	out      io.Writer
	useColor bool
	timeNow  func() time.Time

	mutex sync.Mutex
	buf   bytes.Buffer
}

// New allocates a logger. Colors are used only when out is a terminal.
func New(level Level, out io.Writer) *Logger {
	useColor := false
	if f, ok := out.(*os.File); ok {
		useColor = term.IsTerminal(int(f.Fd()))
	}
	return &Logger{
		level:    level,
		out:      out,
		useColor: useColor,
		timeNow:  time.Now,
	}
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level Level) {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	l.level = level
}

// https://golang.org/src/log/log.go#L78
func itoa(buf *bytes.Buffer, i int, wid int) {
	// Assemble decimal in reverse order.
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	buf.Write(b[bp:])
}

func writeTime(buf *bytes.Buffer, t time.Time, useColor bool) {
	var intbuf bytes.Buffer

	// date
	year, month, day := t.Date()
	itoa(&intbuf, year, 4)
	intbuf.WriteByte('/')
	itoa(&intbuf, int(month), 2)
	intbuf.WriteByte('/')
	itoa(&intbuf, day, 2)
	intbuf.WriteByte(' ')

	// time
	hour, min, sec := t.Clock()
	itoa(&intbuf, hour, 2)
	intbuf.WriteByte(':')
	itoa(&intbuf, min, 2)
	intbuf.WriteByte(':')
	itoa(&intbuf, sec, 2)
	intbuf.WriteByte(' ')

	if useColor {
		buf.WriteString(color.RenderString(color.Gray.Code(), intbuf.String()))
	} else {
		buf.WriteString(intbuf.String())
	}
}

func writeLevel(buf *bytes.Buffer, level Level, useColor bool) {
	switch level {
	case Debug:
		if useColor {
			buf.WriteString(color.RenderString(color.Debug.Code(), "DEB"))
		} else {
			buf.WriteString("DEB")
		}

	case Info:
		if useColor {
			buf.WriteString(color.RenderString(color.Green.Code(), "INF"))
		} else {
			buf.WriteString("INF")
		}

	case Warn:
		if useColor {
			buf.WriteString(color.RenderString(color.Warn.Code(), "WAR"))
		} else {
			buf.WriteString("WAR")
		}

	case Error:
		if useColor {
			buf.WriteString(color.RenderString(color.Error.Code(), "ERR"))
		} else {
			buf.WriteString("ERR")
		}
	}
	buf.WriteByte(' ')
}

// Log writes a log entry.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if level < l.level {
		return
	}

	l.buf.Reset()
	writeTime(&l.buf, l.timeNow(), l.useColor)
	writeLevel(&l.buf, level, l.useColor)
	fmt.Fprintf(&l.buf, format, args...)
	l.buf.WriteByte('\n')
	l.out.Write(l.buf.Bytes()) //nolint:errcheck
}
