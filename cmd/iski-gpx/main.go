package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	_ "time/tzdata"

	"github.com/alecthomas/kong"

	"iski-gpx/internal/clock"
	"iski-gpx/internal/config"
	"iski-gpx/internal/gpx"
	"iski-gpx/internal/logger"
	"iski-gpx/internal/track"
)

var version = "v0.0.0"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type cliArgs struct {
	Input    string           `arg:"" name:"input-file" help:"Track log downloaded from the share page (geometry.json)."`
	Date     string           `arg:"" name:"date" help:"Local calendar date of the track, YYYY-MM-DD."`
	Config   string           `help:"Optional YAML config file." placeholder:"PATH"`
	TZ       string           `name:"tz" help:"IANA time zone the track was recorded in. Defaults to the system zone." placeholder:"ZONE"`
	LogLevel string           `name:"log-level" help:"Diagnostic log level: debug, info, warn or error." placeholder:"LEVEL"`
	Summary  bool             `help:"Print a summary of the track instead of GPX."`
	Version  kong.VersionFlag `help:"Print version and exit."`
}

// kongExit is raised by the kong exit hook so --help and --version unwind
// back into run instead of terminating the process.
type kongExit int

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	log := logger.New(logger.Warn, stderr)

	var cli cliArgs
	parser, err := kong.New(&cli,
		kong.Name("iski-gpx"),
		kong.Description("Convert an iSki track log to GPX "+version+"."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(kongExit(c)) }),
		kong.Vars{"version": version},
	)
	if err != nil {
		panic(err)
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	if _, err := parser.Parse(args); err != nil {
		var pe *kong.ParseError
		if errors.As(err, &pe) && pe.Context != nil {
			_ = pe.Context.PrintUsage(true)
		} else {
			fmt.Fprintln(stdout, "Usage: iski-gpx <input-file> <date>")
		}
		log.Log(logger.Error, "%s", err)
		return exitUsage
	}

	if err := convert(cli, stdout, log); err != nil {
		log.Log(logger.Error, "%s", err)
		return exitError
	}
	return exitOK
}

func loadConfig(cli cliArgs) (config.Config, error) {
	cfg := config.Default()
	if cli.Config != "" {
		var err error
		cfg, err = config.Load(cli.Config)
		if err != nil {
			return config.Config{}, fmt.Errorf("config %s: %w", cli.Config, err)
		}
	}

	if cli.TZ != "" {
		cfg.TimeZone = strings.TrimSpace(cli.TZ)
	}
	if cli.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(cli.LogLevel))
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// convert validates everything before the first byte reaches stdout, so a
// failure never leaves a truncated document behind.
func convert(cli cliArgs, stdout io.Writer, log *logger.Logger) error {
	base, err := clock.ParseBaseDate(cli.Date)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if cli.Config != "" {
		log.Log(logger.Debug, "config loaded from %s", cli.Config)
	}

	loc, err := clock.ResolveZone(cfg.TimeZone)
	if err != nil {
		return err
	}
	log.Log(logger.Debug, "base date %s, time zone %s", base, loc)

	pts, err := track.Load(cli.Input)
	if err != nil {
		return err
	}
	log.Log(logger.Debug, "loaded %d points from %s", len(pts), cli.Input)
	if len(pts) == 0 {
		log.Log(logger.Warn, "%s contains no points", cli.Input)
	}

	conv := clock.NewConverter(base, loc)

	var buf bytes.Buffer
	if cli.Summary {
		s, err := summarizeTrack(pts, conv)
		if err != nil {
			return err
		}
		writeTrackSummary(&buf, cli.Input, s)
	} else {
		tps, err := convertTrack(pts, conv)
		if err != nil {
			return err
		}
		if err := gpx.Encode(&buf, cfg.Creator, tps); err != nil {
			return err
		}
		log.Log(logger.Info, "converted %d points", len(tps))
	}

	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
