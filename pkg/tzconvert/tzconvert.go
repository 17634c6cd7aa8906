// Package tzconvert computes current times and wall-clock conversions
// between validated IANA timezones.
//
// Every call is independent: the only inputs are the clock, the arguments,
// and the read-only zone rules carried by each timezone.Handle.
package tzconvert

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/tztime/pkg/timezone"
)

// DatetimeLayout renders an instant as ISO-8601 with a numeric offset.
// UTC is written as "+00:00", never "Z".
const DatetimeLayout = "2006-01-02T15:04:05-07:00"

// ErrNonexistentTime is the kind of a *timezone.ValidationError for a wall
// clock that is skipped by a spring-forward transition in the source zone.
var ErrNonexistentTime = errors.New("local time does not exist")

// ZonedMoment is an instant rendered in a timezone.
type ZonedMoment struct {
	Time     time.Time
	Timezone timezone.Handle
	// IsDST is only computed by Engine.Now; conversions leave it false.
	IsDST bool
}

// Datetime returns the moment as "2006-01-02T15:04:05-07:00".
func (m ZonedMoment) Datetime() string {
	return m.Time.Format(DatetimeLayout)
}

// UTCOffset returns the zone offset at the moment as "+HH:MM".
func (m ZonedMoment) UTCOffset() string {
	return FormatUTCOffset(m.OffsetSeconds())
}

// OffsetSeconds returns the zone offset at the moment in seconds east of UTC.
func (m ZonedMoment) OffsetSeconds() int {
	return offsetOf(m.Time)
}

// ConversionResult is one instant seen from the source and target zones.
type ConversionResult struct {
	Source ZonedMoment
	Target ZonedMoment
	// DifferenceSeconds is the target offset minus the source offset.
	DifferenceSeconds int
}

// TimeDifference returns the offset difference as "+H:MM" or "-H:MM".
func (r ConversionResult) TimeDifference() string {
	return FormatOffsetDiff(r.DifferenceSeconds)
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used for "now" and for "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Engine performs time computations. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	now    func() time.Time
	logger *slog.Logger
}

// New returns an Engine using the system clock unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the current instant rendered in tz, with the DST flag set by
// comparing the current offset against the January 1st offset.
func (e *Engine) Now(tz timezone.Handle) ZonedMoment {
	t := e.now().In(tz.Location())
	m := ZonedMoment{
		Time:     t,
		Timezone: tz,
		IsDST:    isDST(t),
	}
	e.logger.Debug("current time computed", "timezone", tz.Name(), "datetime", m.Datetime(), "is_dst", m.IsDST)
	return m
}

// Convert reads timeString as a wall clock on today's date in source and
// re-expresses that instant in target.
//
// "Today" is the calendar date in the source zone at the moment of the call.
// A wall clock skipped by a spring-forward transition is rejected with
// ErrNonexistentTime. A wall clock repeated by a fall-back transition
// resolves to its earliest occurrence without any signal to the caller.
func (e *Engine) Convert(source timezone.Handle, timeString string, target timezone.Handle) (ConversionResult, error) {
	wc, err := ParseWallClock(timeString)
	if err != nil {
		return ConversionResult{}, err
	}

	year, month, day := e.now().In(source.Location()).Date()

	instant, ok := resolveLocal(year, month, day, wc, source.Location())
	if !ok {
		e.logger.Debug("nonexistent local time", "timezone", source.Name(), "time", wc.String(),
			"date", fmt.Sprintf("%04d-%02d-%02d", year, month, day))
		return ConversionResult{}, &timezone.ValidationError{
			Kind:  ErrNonexistentTime,
			Input: wc.String(),
			Message: fmt.Sprintf("The time %s does not exist in timezone '%s' due to a DST transition (spring forward). "+
				"Please choose a different time.", wc, source.Name()),
		}
	}

	src := ZonedMoment{Time: instant.In(source.Location()), Timezone: source}
	dst := ZonedMoment{Time: instant.In(target.Location()), Timezone: target}
	result := ConversionResult{
		Source:            src,
		Target:            dst,
		DifferenceSeconds: dst.OffsetSeconds() - src.OffsetSeconds(),
	}

	e.logger.Debug("time converted",
		"source", source.Name(), "source_datetime", src.Datetime(),
		"target", target.Name(), "target_datetime", dst.Datetime(),
		"time_difference", result.TimeDifference())
	return result, nil
}

// resolveLocal finds the instant at which loc's wall clock reads
// year-month-day wc. It reports false when no such instant exists.
//
// Candidate offsets are the ones in effect a day either side of the target;
// a candidate counts only if it renders back to the requested wall clock.
// Two valid candidates mean a fall-back overlap, and the earlier instant wins.
func resolveLocal(year int, month time.Month, day int, wc WallClock, loc *time.Location) (time.Time, bool) {
	naive := time.Date(year, month, day, wc.Hour, wc.Minute, 0, 0, time.UTC)

	var (
		best  time.Time
		found bool
	)
	for _, near := range []time.Time{naive.Add(-24 * time.Hour), naive.Add(24 * time.Hour)} {
		off := offsetOf(near.In(loc))
		candidate := naive.Add(-time.Duration(off) * time.Second)

		local := candidate.In(loc)
		y, m, d := local.Date()
		if y != year || m != month || d != day || local.Hour() != wc.Hour || local.Minute() != wc.Minute {
			continue
		}
		if !found || candidate.Before(best) {
			best = candidate
			found = true
		}
	}
	return best, found
}
