// Package timezone validates user-supplied timezone identifiers.
//
// Only IANA names (including backward-compatible links like "US/Eastern")
// are accepted. Raw UTC offsets ("+05:30", "UTC+5") and short abbreviations
// ("EST", "PST") are rejected before any database lookup, because the
// abbreviations are ambiguous across regions and some of them would
// otherwise resolve against the tz database.
package timezone

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	// Embedded zone data keeps lookups working on hosts without /usr/share/zoneinfo.
	_ "time/tzdata"

	"github.com/maypok86/otter/v2"
)

// DefaultCacheSize bounds the number of loaded locations kept in memory.
const DefaultCacheSize = 1_000

var (
	// offsetPattern matches signed numeric forms: "+05:30", "-0800", "UTC+5", "GMT-03:00".
	offsetPattern = regexp.MustCompile(`^(?i:(?:UTC|GMT)\s*)?[+-]`)

	// abbreviationPattern matches short all-letter uppercase strings such as "EST" or "CEST".
	abbreviationPattern = regexp.MustCompile(`^[A-Z]{2,5}$`)

	// uppercaseNames are IANA names that would otherwise look like abbreviations.
	// Each names a single zone or region, so they bypass the abbreviation check.
	// Abbreviation-shaped tz entries (CET, EET, EST, HST, MET, MST, WET) stay rejected.
	uppercaseNames = map[string]bool{
		"UTC": true,
		"UCT": true,
		"GMT": true,
		"GB":  true,
		"NZ":  true,
		"PRC": true,
		"ROC": true,
		"ROK": true,
	}
)

// Handle is a validated IANA timezone. The zero value is not usable;
// handles are only produced by a Resolver.
type Handle struct {
	loc  *time.Location
	name string
}

// Name returns the identifier the handle was resolved from, e.g. "America/New_York".
func (h Handle) Name() string {
	return h.name
}

// Location returns the zone rules for the handle.
func (h Handle) Location() *time.Location {
	return h.loc
}

// String implements fmt.Stringer.
func (h Handle) String() string {
	return h.name
}

// Resolver turns free-text timezone identifiers into Handles.
// It is safe for concurrent use.
type Resolver struct {
	cache  *otter.Cache[string, *time.Location]
	logger *slog.Logger
}

// NewResolver returns a Resolver that keeps up to cacheSize loaded locations.
// A cacheSize <= 0 uses DefaultCacheSize.
func NewResolver(logger *slog.Logger, cacheSize int) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Resolver{
		cache: otter.Must(&otter.Options[string, *time.Location]{
			MaximumSize: cacheSize,
		}),
		logger: logger,
	}
}

var defaultResolver = NewResolver(nil, DefaultCacheSize)

// Resolve validates input with the package's shared Resolver.
func Resolve(input string) (Handle, error) {
	return defaultResolver.Resolve(input)
}

// Resolve classifies input and returns a Handle for valid IANA names.
//
// The checks run in a fixed order:
//  1. signed UTC offsets are rejected (ErrOffsetForm)
//  2. 2-5 letter uppercase abbreviations are rejected (ErrAbbreviation),
//     except unambiguous tz names such as "UTC", "GMT" and "NZ"
//  3. the name is looked up in the tz database (ErrInvalidName on failure)
//
// The input is trimmed; an empty input is an invalid name. Callers that want
// a UTC default must pass "UTC" themselves.
func (r *Resolver) Resolve(input string) (Handle, error) {
	name := strings.TrimSpace(input)

	if offsetPattern.MatchString(name) {
		r.logger.Debug("rejected offset timezone", "input", name)
		return Handle{}, &ValidationError{
			Kind:  ErrOffsetForm,
			Input: name,
			Message: fmt.Sprintf("Timezone offset '%s' is not supported. "+
				"Please use a valid IANA timezone name (e.g., 'Asia/Kolkata' instead of '+05:30').", name),
		}
	}

	if abbreviationPattern.MatchString(name) && !uppercaseNames[name] {
		r.logger.Debug("rejected abbreviated timezone", "input", name)
		return Handle{}, &ValidationError{
			Kind:  ErrAbbreviation,
			Input: name,
			Message: fmt.Sprintf("Timezone abbreviation '%s' is ambiguous. "+
				"Please use a valid IANA timezone name (e.g., 'America/New_York' instead of 'EST').", name),
		}
	}

	loc, err := r.load(name)
	if err != nil {
		r.logger.Debug("timezone lookup failed", "input", name, "error", err)
		return Handle{}, &ValidationError{
			Kind:  ErrInvalidName,
			Input: name,
			Message: fmt.Sprintf("Invalid timezone: '%s'. "+
				"Please use a valid IANA timezone name (e.g., 'America/New_York').", name),
		}
	}

	return Handle{name: name, loc: loc}, nil
}

// load returns the location for name, consulting the cache first.
func (r *Resolver) load(name string) (*time.Location, error) {
	// time.LoadLocation maps "" to UTC and "Local" to the host zone;
	// neither is an IANA identifier.
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%q is not an IANA timezone name", name)
	}

	if loc, ok := r.cache.GetIfPresent(name); ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading location: %w", err)
	}

	r.cache.Set(name, loc)
	r.logger.Debug("timezone loaded", "name", name)
	return loc, nil
}
