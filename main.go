// Photo Days - count the days between a birthday and each photo's capture date
//
// This tool reads the capture date of each photo (EXIF metadata, optionally
// the filename or the filesystem timestamp) and prints how many days after a
// reference date ("birthday") it was taken. With --summary it reports the
// first and latest photo, the days without any photo, days with several
// photos and the files whose date could not be determined.
//
// Usage:
//
//	photo-days -b 2024/01/05 IMG_*.jpg        # Day count per file
//	photo-days -b 2024/01/05 -s Photos/       # Summary over a folder
//	photo-days -d -o 04:00:00 -s Photos/      # Birthday = earliest photo, day starts at 4am
//	photo-days -b 2024/01/05 -f json -s .     # Summary as JSON
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tendant/photo-days/internal/app"
	"github.com/tendant/photo-days/internal/capture"
	"github.com/tendant/photo-days/internal/config"
	"github.com/tendant/photo-days/pkg/logger"
)

// =============================================================================
// Flags
// =============================================================================

// flagKeys maps every long and short flag name to its config key.
var flagKeys = map[string]string{
	"birthday":               config.KeyBirthday,
	"b":                      config.KeyBirthday,
	"offset":                 config.KeyOffset,
	"o":                      config.KeyOffset,
	"summary":                config.KeySummary,
	"s":                      config.KeySummary,
	"enable-stat-method":     config.KeyStatMethod,
	"t":                      config.KeyStatMethod,
	"enable-filename-method": config.KeyFilenameMethod,
	"n":                      config.KeyFilenameMethod,
	"auto-detect-birthday":   config.KeyAutoDetect,
	"d":                      config.KeyAutoDetect,
	"format":                 config.KeyFormat,
	"f":                      config.KeyFormat,
	"workers":                config.KeyWorkers,
	"w":                      config.KeyWorkers,
	"verbose":                config.KeyVerbose,
	"v":                      config.KeyVerbose,
	"log-json":               config.KeyLogJSON,
}

// defineFlags registers each option under a long and a short name.
func defineFlags(fs *flag.FlagSet) (configPath *string) {
	fs.String("birthday", "", "Reference date (day 0), format YYYY/MM/DD, zero-padded (2024/01/05)")
	fs.String("b", "", "Reference date (short for --birthday)")
	fs.String("offset", "00:00:00", "Day cutoff shift, format HH:MM:SS with two-digit minutes and seconds (04:00:00 counts photos before 4am as the previous day)")
	fs.String("o", "00:00:00", "Day cutoff shift (short for --offset)")
	fs.Bool("summary", false, "Print a summary instead of one line per file")
	fs.Bool("s", false, "Print a summary (short for --summary)")
	fs.Bool("enable-stat-method", false, "Fall back to the file modification time")
	fs.Bool("t", false, "Fall back to the file modification time (short for --enable-stat-method)")
	fs.Bool("enable-filename-method", false, "Fall back to dates in file names (DJI, IMG_YYYYMMDD_HHMMSS, ...)")
	fs.Bool("n", false, "Fall back to dates in file names (short for --enable-filename-method)")
	fs.Bool("auto-detect-birthday", false, "Use the earliest photo date when no birthday is given")
	fs.Bool("d", false, "Auto-detect birthday (short for --auto-detect-birthday)")
	fs.String("format", "text", "Output format: text, json or csv")
	fs.String("f", "text", "Output format (short for --format)")
	fs.Int("workers", 0, "Files read in parallel (default: number of CPUs)")
	fs.Int("w", 0, "Files read in parallel (short for --workers)")
	fs.Bool("verbose", false, "Log debug details to stderr")
	fs.Bool("v", false, "Log debug details (short for --verbose)")
	fs.Bool("log-json", false, "Log to stderr as JSON")

	configPath = fs.String("config", "", "YAML file with default options")
	fs.StringVar(configPath, "c", "", "YAML file with default options (short for --config)")
	return configPath
}

// overrides collects the flags given on the command line, keyed by config key.
func overrides(fs *flag.FlagSet) map[string]any {
	out := make(map[string]any)
	fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			out[key] = g.Get()
		}
	})
	return out
}

// =============================================================================
// Main Entry Point
// =============================================================================

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("photo-days", flag.ContinueOnError)
	configPath := defineFlags(fs)

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Photo Days - Count days between a birthday and photo capture dates\n\n")
		fmt.Fprintf(out, "Usage:\n")
		fmt.Fprintf(out, "  photo-days [options] PATH...\n\n")
		fmt.Fprintf(out, "PATH may be a photo or a folder (searched recursively).\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  photo-days -b 2024/01/05 IMG_*.jpg      # Day count per file\n")
		fmt.Fprintf(out, "  photo-days -b 2024/01/05 -s Photos/     # Summary\n")
		fmt.Fprintf(out, "  photo-days -d -t -s Photos/             # Birthday = earliest photo, use mtime too\n")
		fmt.Fprintf(out, "\nEnvironment variables PHOTODAYS_BIRTHDAY, PHOTODAYS_OFFSET, ... set defaults.\n")
		fmt.Fprintf(out, "PHOTODAYS_METHODS (e.g. \"exif,filename,stat\") sets the capture lookup order.\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	// Errors before the configured logger exists still go to stderr.
	boot := logger.NewConsole("error")
	defer func() { _ = boot.Sync() }()

	cfg, err := config.Load(*configPath, overrides(fs))
	if err != nil {
		boot.Error("invalid options", zap.Error(err))
		return 1
	}

	log := logger.NewConsole(cfg.LogLevel)
	if cfg.LogJSON {
		log = logger.NewJSON(cfg.LogLevel)
	}
	defer func() { _ = log.Sync() }()

	paths := fs.Args()
	if len(paths) == 0 {
		log.Error("no photo paths given")
		fs.Usage()
		return 1
	}

	resolver := capture.NewResolver(log, time.Local, cfg.Methods...)

	log.Debug("configuration",
		zap.Bool("has_birthday", cfg.HasBirthday),
		zap.Time("birthday", cfg.Birthday),
		zap.Duration("offset", cfg.Offset),
		zap.Any("methods", resolver.Methods()),
		zap.String("format", string(cfg.Format)),
		zap.Int("workers", cfg.Workers),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(*cfg, log, resolver)
	if err != nil {
		log.Error("can't build app", zap.Error(err))
		return 1
	}

	if err := application.Run(ctx, paths, os.Stdout); err != nil {
		switch {
		case errors.Is(err, app.ErrNoInput):
			log.Error("no photos found", zap.Strings("paths", paths))
		case errors.Is(err, context.Canceled):
			log.Warn("interrupted")
		default:
			log.Error("run failed", zap.Error(err))
		}
		return 1
	}
	return 0
}
