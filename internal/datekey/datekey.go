// Package datekey handles the YYYYMMDD date keys that name a day's article
// file and brief file.
package datekey

import (
	"errors"
	"fmt"
	"time"
)

// Layout is the time layout for date keys.
const Layout = "20060102"

// DefaultTimezone is the IANA zone used to decide what "today" means.
// The upstream feed publishes on US Eastern time, so briefs roll over with it.
const DefaultTimezone = "America/New_York"

// ErrInvalidKey is returned when a string is not a valid YYYYMMDD date.
var ErrInvalidKey = errors.New("invalid date key")

// Key identifies one day's input/output pair.
type Key string

// String returns the key as a string.
func (k Key) String() string {
	return string(k)
}

// Time returns the midnight instant of the key's date in the given location.
func (k Key) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, string(k), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKey, string(k))
	}
	return t, nil
}

// Parse validates a caller-supplied date key.
func Parse(s string) (Key, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	// time.Parse normalizes out-of-range components (e.g. 20241301),
	// so require an exact round trip.
	if t.Format(Layout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return Key(s), nil
}

// Today returns the date key for the current moment in loc.
func Today(loc *time.Location) Key {
	return ForTime(time.Now(), loc)
}

// ForTime returns the date key for t as observed in loc.
func ForTime(t time.Time, loc *time.Location) Key {
	return Key(t.In(loc).Format(Layout))
}

// LoadLocation resolves an IANA timezone name, falling back to
// DefaultTimezone when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}
