// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

// A Unit selects a single field of a civil value. It is used by the per-field
// operations With, Plus, Minus, Until and Range.
//
// Units are ordered from the smallest to the largest.
type Unit int

const (
	Nanosecond Unit = iota
	Second
	Minute
	Hour
	Day
	Month
	Year

	numUnits
)

// String implements fmt.Stringer.
func (u Unit) String() string {
	switch u {
	case Nanosecond:
		return "nanosecond"
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Day:
		return "day"
	case Month:
		return "month"
	case Year:
		return "year"
	}
	panic("invalid civil.Unit")
}

// ParseUnit returns the Unit named by s, which must be one of the strings
// returned by Unit.String, optionally with a trailing "s".
func ParseUnit(s string) (Unit, bool) {
	for u := Nanosecond; u < numUnits; u++ {
		if name := u.String(); s == name || s == name+"s" {
			return u, true
		}
	}
	return 0, false
}

// isClock reports whether u is one of the time-of-day units.
func (u Unit) isClock() bool {
	return u <= Hour
}

// nanos returns the length of a clock unit or a day in nanoseconds.
func (u Unit) nanos() int64 {
	switch u {
	case Nanosecond:
		return 1
	case Second:
		return nanosPerSecond
	case Minute:
		return nanosPerMinute
	case Hour:
		return nanosPerHour
	case Day:
		return nanosPerDay
	}
	panic("civil: " + u.String() + " has no fixed length")
}

// seconds returns the length of a unit of at least a second in seconds.
func (u Unit) seconds() int64 {
	return u.nanos() / nanosPerSecond
}
