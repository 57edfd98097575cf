// Package config builds the run configuration from an optional YAML file,
// PHOTODAYS_* environment variables and command line overrides, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tendant/photo-days/internal/capture"
	"github.com/tendant/photo-days/internal/report"
)

// Keys shared by the config file, the environment and flag overrides.
const (
	KeyBirthday       = "birthday"
	KeyOffset         = "offset"
	KeySummary        = "summary"
	KeyAutoDetect     = "auto_detect_birthday"
	KeyStatMethod     = "enable_stat_method"
	KeyFilenameMethod = "enable_filename_method"
	KeyMethods        = "methods"
	KeyFormat         = "format"
	KeyWorkers        = "workers"
	KeyLogLevel       = "log_level"
	KeyLogJSON        = "log_json"
	KeyVerbose        = "verbose"
)

const (
	EnvPrefix      = "PHOTODAYS"
	BirthdayLayout = "2006/01/02"
	OffsetLayout   = "15:04:05"

	defaultLogLevel     = "warn"
	verboseLogLevel     = "debug"
	defaultOutputFormat = "text"
)

// Config is the validated run configuration.
type Config struct {
	Birthday    time.Time
	HasBirthday bool
	Offset      time.Duration

	Summary            bool
	AutoDetectBirthday bool
	Methods            []capture.Method
	Format             report.Format
	Workers            int
	LogLevel           string
	LogJSON            bool
}

// Load reads path (skipped when empty), the environment and overrides, then
// parses and validates the result. Every invalid value is reported.
func Load(path string, overrides map[string]any) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyBirthday, "")
	v.SetDefault(KeyOffset, "00:00:00")
	v.SetDefault(KeySummary, false)
	v.SetDefault(KeyAutoDetect, false)
	v.SetDefault(KeyStatMethod, false)
	v.SetDefault(KeyFilenameMethod, false)
	v.SetDefault(KeyMethods, []string{string(capture.MethodExif)})
	v.SetDefault(KeyFormat, defaultOutputFormat)
	v.SetDefault(KeyWorkers, runtime.NumCPU())
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogJSON, false)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w %s: %v", ErrConfigFile, path, err)
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	return build(v)
}

func build(v *viper.Viper) (*Config, error) {
	var errs []error
	c := &Config{
		Summary:            v.GetBool(KeySummary),
		AutoDetectBirthday: v.GetBool(KeyAutoDetect),
		Workers:            v.GetInt(KeyWorkers),
		LogLevel:           v.GetString(KeyLogLevel),
		LogJSON:            v.GetBool(KeyLogJSON),
	}

	if s := strings.TrimSpace(v.GetString(KeyBirthday)); s != "" {
		b, err := ParseBirthday(s)
		if err != nil {
			errs = append(errs, err)
		} else {
			c.Birthday, c.HasBirthday = b, true
		}
	}

	off, err := ParseOffset(v.GetString(KeyOffset))
	if err != nil {
		errs = append(errs, err)
	}
	c.Offset = off

	f, err := report.ParseFormat(v.GetString(KeyFormat))
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	} else if c.Summary && !f.SupportsSummary() {
		errs = append(errs, fmt.Errorf("%w: %s output has no summary mode", ErrInvalidFormat, f))
	}
	c.Format = f

	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d, must be > 0", ErrInvalidWorkers, c.Workers))
	}

	methods, err := ParseMethods(v.GetStringSlice(KeyMethods))
	if err != nil {
		errs = append(errs, err)
	}
	if v.GetBool(KeyFilenameMethod) {
		methods = appendMethod(methods, capture.MethodFilename)
	}
	if v.GetBool(KeyStatMethod) {
		methods = appendMethod(methods, capture.MethodStat)
	}
	c.Methods = methods

	if v.GetBool(KeyVerbose) {
		c.LogLevel = verboseLogLevel
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return c, nil
}

// ParseMethods parses a lookup order such as "exif,filename". Entries may be
// separated by commas or spaces. EXIF is always consulted, first unless
// listed elsewhere; repeated names are dropped.
func ParseMethods(names []string) ([]capture.Method, error) {
	var out []capture.Method
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			m, err := capture.ParseMethod(part)
			if err != nil {
				return []capture.Method{capture.MethodExif}, fmt.Errorf("%w: %v", ErrInvalidMethod, err)
			}
			out = appendMethod(out, m)
		}
	}
	if !slices.Contains(out, capture.MethodExif) {
		out = append([]capture.Method{capture.MethodExif}, out...)
	}
	return out, nil
}

func appendMethod(methods []capture.Method, m capture.Method) []capture.Method {
	if slices.Contains(methods, m) {
		return methods
	}
	return append(methods, m)
}

// ParseBirthday parses a zero-padded YYYY/MM/DD date.
func ParseBirthday(s string) (time.Time, error) {
	t, err := time.Parse(BirthdayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected zero-padded YYYY/MM/DD", ErrInvalidBirthday, s)
	}
	return t, nil
}

// ParseOffset parses an HH:MM:SS cutoff shift into a duration. Minutes and
// seconds must be two digits.
func ParseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse(OffsetLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: expected HH:MM:SS with two-digit minutes and seconds", ErrInvalidOffset, s)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}
