package model

import (
	"fmt"
	"time"
)

// ISODate is the wire format for all dates in input payloads and reports.
const ISODate = "2006-01-02"

type ConstraintKind string

const (
	ConstraintDate     ConstraintKind = "date"
	ConstraintInterval ConstraintKind = "interval"
)

func (k ConstraintKind) IsValid() bool {
	return k == ConstraintDate || k == ConstraintInterval
}

// DateConstraint is one date-based constraint, either a single date or a
// closed interval. Which fields are meaningful depends on Kind.
type DateConstraint struct {
	Kind  ConstraintKind
	Date  time.Time // set when Kind == ConstraintDate
	Start time.Time // set when Kind == ConstraintInterval
	End   time.Time // set when Kind == ConstraintInterval, Start <= End
}

// Covers reports whether the constraint covers the given day.
func (c DateConstraint) Covers(day time.Time) bool {
	if c.Kind == ConstraintDate {
		return c.Date.Equal(day)
	}
	return !day.Before(c.Start) && !day.After(c.End)
}

// Describe builds the stable human-readable description used in reports.
// Consumers parse this micro-format, so it must not change shape.
func (c DateConstraint) Describe() string {
	if c.Kind == ConstraintDate {
		return fmt.Sprintf("date:%s", c.Date.Format(ISODate))
	}
	return fmt.Sprintf("interval:%s..%s", c.Start.Format(ISODate), c.End.Format(ISODate))
}

// PersonConstraints holds one person's hard and soft constraints.
// Hard constraints disallow a weekend, soft constraints only penalize it.
type PersonConstraints struct {
	Name            string
	HardConstraints []DateConstraint
	SoftConstraints []DateConstraint
}

// InputData is the fully validated optimization input. The core packages
// assume it was produced by the boundary loader and never re-validate it:
// MinDate <= MaxDate, names are unique, non-empty and trimmed, and every
// interval satisfies Start <= End.
type InputData struct {
	MinDate time.Time
	MaxDate time.Time
	People  []PersonConstraints
}

// Midnight normalizes a date to UTC midnight so that Equal/Before/After
// comparisons behave as pure calendar-date comparisons.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
