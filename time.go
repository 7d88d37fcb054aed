// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
)

// A Time represents a time of day, as the number of nanoseconds since
// midnight. It is always in the range [0, 24h).
//
// Times can be compared using Go's arithmetic operators.
type Time int64

// Midnight is the first Time of a day.
const Midnight Time = 0

// normClock carries nsec into sec, sec into min, min into hour and hour into
// days. The returned days are the whole days contained in the hour, rounded
// towards the past, so that the remaining hour is in [0,24).
//
// A standalone Time drops the days. A DateTime adds them to its date.
func normClock(hour, min, sec, nsec int64) (days int64, t Time) {
	sec, nsec = norm(sec, nsec, nanosPerSecond)
	min, sec = norm(min, sec, 60)
	hour, min = norm(hour, min, 60)
	days, hour = norm(0, hour, 24)
	return days, Time(hour*nanosPerHour + min*nanosPerMinute + sec*nanosPerSecond + nsec)
}

// TimeOf returns the Time corresponding to the given clock reading.
//
// The arguments may be outside their usual ranges and will be normalized. For
// example, 10:60 converts to 11:00. Whole days are discarded, so 25:00 is the
// same as 01:00 and -01:00 is the same as 23:00.
func TimeOf(hour, min, sec, nsec int) Time {
	_, t := normClock(int64(hour), int64(min), int64(sec), int64(nsec))
	return t
}

// TimeOfNano returns the Time that is nanoOfDay nanoseconds after midnight,
// discarding whole days.
func TimeOfNano(nanoOfDay int64) Time {
	_, n := norm(0, nanoOfDay, nanosPerDay)
	return Time(n)
}

// Clock returns the hour, minute and second of t.
func (t Time) Clock() (hour, min, sec int) {
	s := t.SecondOfDay()
	return s / 3600, s / 60 % 60, s % 60
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u.
func (t Time) Compare(u Time) int {
	return cmp.Compare(t, u)
}

// GoString implements fmt.GoStringer and formats t to be printed in Go source code.
func (t Time) GoString() string {
	hour, min, sec := t.Clock()
	return fmt.Sprintf("civil.TimeOf(%d, %d, %d, %d)", hour, min, sec, t.Nanosecond())
}

// Hour returns the hour of t, in the range [0, 23].
func (t Time) Hour() int {
	return int(int64(t) / nanosPerHour)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The time
// is represented as a [binary.Varint] of the nanoseconds since midnight.
func (t Time) MarshalBinary() ([]byte, error) {
	return binary.AppendVarint(nil, int64(t)), nil
}

// MarshalText implements the encoding.TextMarshaler interface. The time is
// formatted as RFC3339Time.
func (t Time) MarshalText() ([]byte, error) {
	return t.AppendFormat(nil, RFC3339Time), nil
}

// Minus is Plus(u, -v).
func (t Time) Minus(u Unit, v int64) Time {
	return t.Plus(u, -v)
}

// Minute returns the minute of t, in the range [0, 59].
func (t Time) Minute() int {
	return int(int64(t) / nanosPerMinute % 60)
}

// NanoOfDay returns the nanoseconds since midnight.
func (t Time) NanoOfDay() int64 {
	return int64(t)
}

// Nanosecond returns the nanosecond of the second of t, in the range
// [0, 999999999].
func (t Time) Nanosecond() int {
	return int(int64(t) % nanosPerSecond)
}

// Plus returns t with v units added, wrapping around midnight. Date units
// leave t unchanged.
func (t Time) Plus(u Unit, v int64) Time {
	switch u {
	case Hour, Minute, Second, Nanosecond:
		// Reduce first, so that large v can not overflow.
		_, r := norm(0, v, nanosPerDay/u.nanos())
		return TimeOfNano(int64(t) + r*u.nanos())
	case Day, Month, Year:
		return t
	}
	panic("invalid civil.Unit")
}

// Range returns the smallest and largest valid values of the field u. Date
// fields of a Time are always zero.
func (t Time) Range(u Unit) (min, max int64) {
	switch u {
	case Hour:
		return 0, 23
	case Minute, Second:
		return 0, 59
	case Nanosecond:
		return 0, nanosPerSecond - 1
	case Day, Month, Year:
		return 0, 0
	}
	panic("invalid civil.Unit")
}

// Second returns the second of t, in the range [0, 59].
func (t Time) Second() int {
	return int(int64(t) / nanosPerSecond % 60)
}

// SecondOfDay returns the seconds since midnight.
func (t Time) SecondOfDay() int {
	return int(int64(t) / nanosPerSecond)
}

// String returns t formatted as RFC3339Time.
func (t Time) String() string {
	return t.Format(RFC3339Time)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (t *Time) UnmarshalBinary(b []byte) error {
	var v int64
	if err := decodeVarints("time", b, &v); err != nil {
		return err
	}
	if v < 0 || v >= nanosPerDay {
		return errors.New("encoded time out of range")
	}
	*t = Time(v)
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The time
// must be formatted as RFC3339Time.
func (t *Time) UnmarshalText(b []byte) error {
	v, err := ParseTime(RFC3339Time, string(b))
	if err == nil {
		*t = v
	}
	return err
}

// Until returns the number of whole units from t to end. It is negative if
// end is before t. Date units always return zero.
func (t Time) Until(end Time, u Unit) int64 {
	switch u {
	case Hour, Minute, Second, Nanosecond:
		return int64(end-t) / u.nanos()
	case Day, Month, Year:
		return 0
	}
	panic("invalid civil.Unit")
}

// With returns t with the field u set to v. The result is normalized as by
// TimeOf, so setting the minute to 60 advances the hour. Date units leave t
// unchanged.
func (t Time) With(u Unit, v int64) Time {
	hour, min, sec := t.Clock()
	nsec := t.Nanosecond()
	switch u {
	case Hour:
		_, t = normClock(v, int64(min), int64(sec), int64(nsec))
	case Minute:
		_, t = normClock(int64(hour), v, int64(sec), int64(nsec))
	case Second:
		_, t = normClock(int64(hour), int64(min), v, int64(nsec))
	case Nanosecond:
		_, t = normClock(int64(hour), int64(min), int64(sec), v)
	case Day, Month, Year:
	default:
		panic("invalid civil.Unit")
	}
	return t
}
