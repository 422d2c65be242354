package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// newFlagSet returns a FlagSet that reports errors instead of exiting,
// so the gate's error mapping stays in charge of the process exit code.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// timeLayouts accepted for scheduling flags, most specific first.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimeFlag parses an operator-supplied date into local time.
func parseTimeFlag(value string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected e.g. 2006-01-02 15:04", value)
}

// Optional flag extraction: a flag counts as supplied only when the
// operator set it, so zero and empty are applied rather than skipped.

func optionalString(fs *pflag.FlagSet, name string, value *string) *string {
	if fs.Changed(name) {
		return value
	}
	return nil
}

func optionalInt(fs *pflag.FlagSet, name string, value *int) *int {
	if fs.Changed(name) {
		return value
	}
	return nil
}

func optionalInt64(fs *pflag.FlagSet, name string, value *int64) *int64 {
	if fs.Changed(name) {
		return value
	}
	return nil
}

func optionalFloat(fs *pflag.FlagSet, name string, value *float64) *float64 {
	if fs.Changed(name) {
		return value
	}
	return nil
}

func optionalBool(fs *pflag.FlagSet, name string, value *bool) *bool {
	if fs.Changed(name) {
		return value
	}
	return nil
}

func optionalTime(fs *pflag.FlagSet, name string, value *string) (*time.Time, error) {
	if !fs.Changed(name) {
		return nil, nil
	}
	t, err := parseTimeFlag(*value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
