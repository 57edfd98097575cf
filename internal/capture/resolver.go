package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"
)

// ErrNoDate is returned by a single method that found no usable date.
var ErrNoDate = errors.New("no capture date")

// datePatterns contains regex patterns for extracting dates from filenames.
// Patterns are tried in order; first match wins.
var datePatterns = []struct {
	regex  *regexp.Regexp
	layout string
}{
	// DJI drone: DJI_20250619224111_0001_D.MP4
	{regexp.MustCompile(`DJI_(\d{14})`), "20060102150405"},
	{regexp.MustCompile(`DJI_(\d{8})`), "20060102"},

	// Generic timestamp: IMG_20250619_123456.jpg, PXL_20250619_123456789.jpg
	{regexp.MustCompile(`(\d{8}_\d{6})`), "20060102_150405"},

	// Sony video: 20250616_C0416.MP4
	{regexp.MustCompile(`^(\d{8})_C\d+`), "20060102"},

	// ISO date: 2025-06-19_photo.jpg
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},

	// Compact date: 20250619_photo.jpg (last resort, less specific)
	{regexp.MustCompile(`(\d{8})`), "20060102"},
}

// Resolver looks up capture times with an ordered list of methods.
type Resolver struct {
	methods []Method
	log     *zap.Logger
	loc     *time.Location
}

// NewResolver returns a Resolver trying methods in the given order.
// Filename dates carry no zone and are read in loc (time.Local when nil).
func NewResolver(log *zap.Logger, loc *time.Location, methods ...Method) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	if len(methods) == 0 {
		methods = []Method{MethodExif}
	}
	return &Resolver{methods: methods, log: log, loc: loc}
}

// Methods returns the lookup order.
func (r *Resolver) Methods() []Method {
	return append([]Method(nil), r.methods...)
}

// Resolve returns the capture time of path. Lookup failures are logged at
// debug level and produce an unresolved record.
func (r *Resolver) Resolve(ctx context.Context, path string) Record {
	for _, m := range r.methods {
		if ctx.Err() != nil {
			break
		}
		t, err := r.lookup(m, path)
		if err != nil {
			r.log.Debug("capture method failed",
				zap.String("file", path),
				zap.String("method", string(m)),
				zap.Error(err),
			)
			continue
		}
		r.log.Debug("capture time resolved",
			zap.String("file", path),
			zap.String("method", string(m)),
			zap.Time("captured", t),
		)
		return Record{File: path, Captured: t, Resolved: true, Method: m}
	}
	return Unresolved(path)
}

func (r *Resolver) lookup(m Method, path string) (time.Time, error) {
	switch m {
	case MethodExif:
		return exifDate(path)
	case MethodFilename:
		return filenameDate(filepath.Base(path), r.loc)
	case MethodStat:
		return statDate(path)
	default:
		return time.Time{}, fmt.Errorf("unsupported method %q", m)
	}
}

// exifDate extracts the capture date from a photo's EXIF metadata.
// Non-critical decode errors are tolerated as long as a date tag was read.
func exifDate(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil && (x == nil || exif.IsCriticalError(err)) {
		return time.Time{}, fmt.Errorf("decode exif: %w", err)
	}

	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoDate, err)
	}
	return t, nil
}

// filenameDate attempts to extract a date from a file name.
func filenameDate(name string, loc *time.Location) (time.Time, error) {
	for _, p := range datePatterns {
		matches := p.regex.FindStringSubmatch(name)
		if len(matches) < 2 {
			continue
		}
		if t, err := time.ParseInLocation(p.layout, matches[1], loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoDate
}

// statDate returns the file modification time.
func statDate(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	if info.IsDir() {
		return time.Time{}, fmt.Errorf("%s is a directory", path)
	}
	return info.ModTime(), nil
}
