// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange is returned when converting a civil value whose year lies
// outside of [MinYear, MaxYear] into a time.Time.
var ErrOutOfRange = errors.New("civil: year out of range")

// A DateTime is a Date combined with a Time, without an offset.
//
// DateTimes can be compared with == and ordered with Compare.
type DateTime struct {
	date Date
	time Time
}

// DateTimeOf returns the DateTime corresponding to the given fields.
//
// The arguments may be outside their usual ranges and will be normalized.
// Clock fields are normalized first; whole days of hours are then added to
// the day, before the date is normalized as by Of. For example, 2023-12-31
// 24:00 converts to 2024-01-01 00:00.
func DateTimeOf(year int, month time.Month, day, hour, min, sec, nsec int) DateTime {
	days, t := normClock(int64(hour), int64(min), int64(sec), int64(nsec))
	return DateTime{date: Of(year, month, day) + Date(days), time: t}
}

// EpochDateTime returns the DateTime that is nanoOfDay nanoseconds after the
// start of the given epoch day. nanoOfDay may be outside of a day, in which
// case it is carried into the date.
func EpochDateTime(epochDay, nanoOfDay int64) DateTime {
	d, n := norm(epochDay, nanoOfDay, nanosPerDay)
	return DateTime{date: Date(d), time: Time(n)}
}

// AddDate adds the given number of years, months and days to the date of dt,
// as Date.AddDate does. The time of day is unchanged.
func (dt DateTime) AddDate(years, months, days int) DateTime {
	dt.date = dt.date.AddDate(years, months, days)
	return dt
}

// AddPeriod adds every field of p to the corresponding field of dt and
// normalizes the result as DateTimeOf does.
func (dt DateTime) AddPeriod(p Period) DateTime {
	year, month, day := dt.date.Date()
	hour, min, sec := dt.time.Clock()
	days, t := normClock(
		int64(hour)+int64(p.Hours),
		int64(min)+int64(p.Minutes),
		int64(sec)+int64(p.Seconds),
		int64(dt.time.Nanosecond())+p.Nanoseconds,
	)
	d := Of(year+p.Years, month+time.Month(p.Months), day+p.Days)
	return DateTime{date: d + Date(days), time: t}
}

// After reports whether dt is after u.
func (dt DateTime) After(u DateTime) bool {
	return dt.Compare(u) > 0
}

// Before reports whether dt is before u.
func (dt DateTime) Before(u DateTime) bool {
	return dt.Compare(u) < 0
}

// Compare returns -1, 0 or +1 depending on whether dt is before, equal to or
// after u.
func (dt DateTime) Compare(u DateTime) int {
	if c := dt.date.Compare(u.date); c != 0 {
		return c
	}
	return dt.time.Compare(u.time)
}

// Date returns the date of dt.
func (dt DateTime) Date() Date {
	return dt.date
}

// Day returns the day of the month of dt.
func (dt DateTime) Day() int {
	return dt.date.Day()
}

// DayOfWeek returns the day of the week of dt, counting from Monday = 0.
func (dt DateTime) DayOfWeek() int {
	return dt.date.DayOfWeek()
}

// EpochSecond returns the number of seconds since 1970-01-01T00:00:00 and the
// nanosecond within that second, treating dt as UTC.
func (dt DateTime) EpochSecond() (sec, nsec int64) {
	return int64(dt.date)*secondsPerDay + int64(dt.time.SecondOfDay()), int64(dt.time.Nanosecond())
}

// GoString implements fmt.GoStringer and formats dt to be printed in Go source code.
func (dt DateTime) GoString() string {
	year, month, day := dt.date.Date()
	hour, min, sec := dt.time.Clock()
	return fmt.Sprintf("civil.DateTimeOf(%d, %d, %d, %d, %d, %d, %d)", year, month, day, hour, min, sec, dt.time.Nanosecond())
}

// Hour returns the hour of dt.
func (dt DateTime) Hour() int {
	return dt.time.Hour()
}

// In returns the time.Time with the same fields as dt in loc. It fails with
// ErrOutOfRange if the year of dt is outside of [MinYear, MaxYear].
func (dt DateTime) In(loc *time.Location) (time.Time, error) {
	year, month, day := dt.date.Date()
	if year < MinYear || year > MaxYear {
		return time.Time{}, ErrOutOfRange
	}
	hour, min, sec := dt.time.Clock()
	return time.Date(year, month, day, hour, min, sec, dt.time.Nanosecond(), loc), nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The value
// is represented as the varint encoded date, followed by the varint encoded
// time.
func (dt DateTime) MarshalBinary() ([]byte, error) {
	return dt.appendBinary(make([]byte, 0, 2*binary.MaxVarintLen64)), nil
}

func (dt DateTime) appendBinary(b []byte) []byte {
	b = dt.date.appendBinary(b)
	return binary.AppendVarint(b, int64(dt.time))
}

// MarshalText implements the encoding.TextMarshaler interface. The value is
// formatted as RFC3339DateTime.
func (dt DateTime) MarshalText() ([]byte, error) {
	return dt.AppendFormat(nil, RFC3339DateTime), nil
}

// Minus is Plus(u, -v).
func (dt DateTime) Minus(u Unit, v int64) DateTime {
	return dt.Plus(u, -v)
}

// MinusDateTime subtracts the epoch offset of u from dt. See PlusDateTime.
func (dt DateTime) MinusDateTime(u DateTime) DateTime {
	return EpochDateTime(int64(dt.date-u.date), int64(dt.time-u.time))
}

// Minute returns the minute of dt.
func (dt DateTime) Minute() int {
	return dt.time.Minute()
}

// Month returns the month of dt.
func (dt DateTime) Month() time.Month {
	return dt.date.Month()
}

// Nanosecond returns the nanosecond of dt.
func (dt DateTime) Nanosecond() int {
	return dt.time.Nanosecond()
}

// PeriodUntil returns the years, months, days and clock fields from dt to
// end. All fields of the result have the same sign, and adding it to dt
// yields end, unless a month addition had to clamp a day.
func (dt DateTime) PeriodUntil(end DateTime) Period {
	days, nanos := dt.spanTo(end)
	p := dt.date.PeriodUntil(dt.date + Date(days))
	p.Hours = int(nanos / nanosPerHour)
	p.Minutes = int(nanos / nanosPerMinute % 60)
	p.Seconds = int(nanos / nanosPerSecond % 60)
	p.Nanoseconds = nanos % nanosPerSecond
	return p
}

// Plus returns dt with v units added. Date units are added as by
// Date.Plus and keep the time of day. Clock units are added linearly and
// carry into the date.
func (dt DateTime) Plus(u Unit, v int64) DateTime {
	switch u {
	case Year, Month, Day:
		dt.date = dt.date.Plus(u, v)
		return dt
	case Hour, Minute, Second, Nanosecond:
		// Split off whole days first, so that large v can not overflow.
		days, r := norm(0, v, nanosPerDay/u.nanos())
		return EpochDateTime(int64(dt.date)+days, int64(dt.time)+r*u.nanos())
	}
	panic("invalid civil.Unit")
}

// PlusDateTime treats u as a span since 1970-01-01T00:00:00 and adds it to
// dt.
func (dt DateTime) PlusDateTime(u DateTime) DateTime {
	return EpochDateTime(int64(dt.date+u.date), int64(dt.time+u.time))
}

// Second returns the second of dt.
func (dt DateTime) Second() int {
	return dt.time.Second()
}

// String returns dt formatted as RFC3339DateTime.
func (dt DateTime) String() string {
	return dt.Format(RFC3339DateTime)
}

// Time returns the time of day of dt.
func (dt DateTime) Time() Time {
	return dt.time
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (dt *DateTime) UnmarshalBinary(b []byte) error {
	var d, t int64
	if err := decodeVarints("date-time", b, &d, &t); err != nil {
		return err
	}
	if t < 0 || t >= nanosPerDay {
		return errors.New("encoded time out of range")
	}
	*dt = DateTime{date: Date(d), time: Time(t)}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The value
// must be formatted as RFC3339DateTime.
func (dt *DateTime) UnmarshalText(b []byte) error {
	v, err := ParseDateTime(RFC3339DateTime, string(b))
	if err == nil {
		*dt = v
	}
	return err
}

// Until returns the number of whole units from dt to end. It is negative if
// end is before dt.
//
// Counting nanoseconds overflows for spans of more than ~292 years.
func (dt DateTime) Until(end DateTime, u Unit) int64 {
	days, nanos := dt.spanTo(end)
	switch u {
	case Year, Month:
		return dt.date.Until(dt.date+Date(days), u)
	case Day:
		return days
	case Hour, Minute, Second, Nanosecond:
		return days*(nanosPerDay/u.nanos()) + nanos/u.nanos()
	}
	panic("invalid civil.Unit")
}

// With returns dt with the field u set to v, normalized as by DateTimeOf.
func (dt DateTime) With(u Unit, v int64) DateTime {
	year, month, day := dt.date.Date()
	hour, min, sec := dt.time.Clock()
	nsec := dt.time.Nanosecond()
	switch u {
	case Year:
		year = int(v)
	case Month:
		month = time.Month(v)
	case Day:
		day = int(v)
	case Hour:
		hour = int(v)
	case Minute:
		min = int(v)
	case Second:
		sec = int(v)
	case Nanosecond:
		nsec = int(v)
	default:
		panic("invalid civil.Unit")
	}
	return DateTimeOf(year, month, day, hour, min, sec, nsec)
}

// Year returns the year of dt.
func (dt DateTime) Year() int {
	return dt.date.Year()
}

// spanTo returns the whole days and remaining nanoseconds from dt to end.
// Both results have the same sign.
func (dt DateTime) spanTo(end DateTime) (days, nanos int64) {
	days = int64(end.date - dt.date)
	nanos = int64(end.time - dt.time)
	switch {
	case days > 0 && nanos < 0:
		days--
		nanos += nanosPerDay
	case days < 0 && nanos > 0:
		days++
		nanos -= nanosPerDay
	}
	return days, nanos
}
