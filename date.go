// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package civil contains proleptic Gregorian calendar and civil time types.
//
// The standard library time package models a point in time in a location.
// That is the right abstraction most of the time, but there are cases where
// it is awkward:
//
//   - A date or a wall clock reading without a location has no natural
//     time.Time representation. Picking a fixed clock time and location works,
//     but leaks into every comparison and every serialized value.
//   - Field arithmetic ("the 32nd of December", "25 o'clock") is normalized by
//     time.Date, but there is no way to do the same thing for a span of
//     calendar time, like "1 year, 11 months and 30 days".
//   - time.Duration can only represent ~292 years, which makes it unsuitable
//     for counting days across the full range of years.
//
// This package provides small value types for each of those concepts:
//
//   - [Date] is a day in the proleptic Gregorian calendar.
//   - [Time] is a wall clock reading, without a date.
//   - [DateTime] combines the two.
//   - [Period] is a signed span of years, months, days and clock fields.
//   - [Instant] is a point on the linear time axis, as seconds and nanoseconds
//     since the Unix epoch.
//   - [Offset] is a fixed offset from UTC, in seconds. A [Clock] supplies
//     offsets and [AutoClock] re-reads the host offset every time.
//   - [Zoned] is a DateTime at a fixed Offset.
//
// All types are immutable values. Every operation that looks like a mutation
// ("with minute", "plus a year") returns a new value. Out of range fields are
// never an error: they are normalized by carrying into the next larger field,
// just as time.Date does.
//
// The package never derives an offset from a time zone database. Offsets are
// supplied by the caller, usually from the time package. There is no support
// for historical calendar reforms: dates before 1582 use the Gregorian rules
// as well.
package civil

import (
	"cmp"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// The epoch-day conversions are the classic March-based algorithms: treating
// March as the first month of the year moves the leap day to the end of the
// year, so the day of the year can be mapped to a month with a linear formula.

const (
	// MinYear and MaxYear bound the years the arithmetic is designed for.
	// Results outside of this range are implementation defined.
	MinYear = -999_999_999
	MaxYear = 999_999_999

	// Days in a full 400 year cycle.
	daysPerCycle = 146097

	// Days from 0000-01-01 to 1970-01-01.
	days0000To1970 = daysPerCycle*5 - (30*365 + 7)

	nanosPerSecond = int64(time.Second)
	nanosPerMinute = int64(time.Minute)
	nanosPerHour   = int64(time.Hour)
	nanosPerDay    = 24 * nanosPerHour

	secondsPerDay = 24 * 60 * 60
)

// daysBefore[m] counts the number of days in a non-leap year before month m
// begins. There is an entry for m=12, counting the number of days before
// January of next year (365).
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int) bool {
	return isLeap(int64(year))
}

func isLeap(year int64) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month of year. month must be
// in range.
func DaysIn(month time.Month, year int) int {
	return daysIn(month, int64(year))
}

func daysIn(m time.Month, year int64) int {
	if m == time.February && isLeap(year) {
		return 29
	}
	return daysBefore[m] - daysBefore[m-1]
}

// epochDayOf returns the number of days from 1970-01-01 to the given date.
// month and day must be in range.
func epochDayOf(year int64, month time.Month, day int64) int64 {
	total := 365 * year
	if year >= 0 {
		total += (year+3)/4 - (year+99)/100 + (year+399)/400
	} else {
		total -= year/-4 - year/-100 + year/-400
	}
	total += int64(daysBefore[month-1])
	if month > time.February && isLeap(year) {
		total++
	}
	total += day - 1
	return total - days0000To1970
}

// civilOf is the inverse of epochDayOf.
func civilOf(epochDay int64) (year int64, month time.Month, day int) {
	// Shift so that day 0 is 0000-03-01.
	zeroDay := epochDay + days0000To1970 - 60
	var adjust int64
	if zeroDay < 0 {
		// Move into the positive range, one 400 year cycle at a time.
		cycles := (zeroDay+1)/daysPerCycle - 1
		adjust = cycles * 400
		zeroDay -= cycles * daysPerCycle
	}
	year = (400*zeroDay + 591) / daysPerCycle
	doy := zeroDay - (365*year + year/4 - year/100 + year/400)
	if doy < 0 {
		// The estimate is off by at most one year.
		year--
		doy = zeroDay - (365*year + year/4 - year/100 + year/400)
	}
	year += adjust

	// Months counted from March.
	m := (doy*5 + 2) / 153
	month = time.Month((m+2)%12 + 1)
	day = int(doy - (m*306+5)/10 + 1)
	year += m / 10
	return year, month, day
}

// norm returns nhi, nlo such that
//
//	hi * base + lo == nhi * base + nlo
//	0 <= nlo < base
func norm[T ~int | ~int64](hi, lo, base T) (nhi, nlo T) {
	if lo < 0 {
		n := (-lo-1)/base + 1
		hi -= n
		lo += n * base
	}
	if lo >= base {
		n := lo / base
		hi += n
		lo -= n * base
	}
	return hi, lo
}

// A Date represents a date, as the number of days since 1970-01-01 (the epoch
// day). The zero value of Date is thus the same date as the Unix epoch. The
// Gregorian calendar is used, even for dates lying before its introduction.
//
// Dates can be compared using Go's arithmetic operators, and a number of days
// can be added to them directly.
type Date int64

// Of returns the Date corresponding to the given date.
//
// The arguments may be outside their usual ranges and will be normalized
// during the conversion, just as for [time.Date]. For example, October 32
// converts to November 1. The month is carried into the year first, then the
// date is reconstructed from its epoch day, so normalizing is idempotent.
func Of(year int, month time.Month, day int) Date {
	y, m := norm(int64(year), int64(month)-1, 12)
	return Date(epochDayOf(y, time.Month(m)+1, 1) + int64(day) - 1)
}

// Today returns the current date in the given location.
func Today(loc *time.Location) Date {
	return Of(NowFunc().In(loc).Date())
}

// EpochDay returns the number of days since 1970-01-01. It is negative for
// earlier dates.
func (d Date) EpochDay() int64 {
	return int64(d)
}

// AddDate returns the date corresponding to adding the given number of years,
// months, and days to d. For example, AddDate(-1, 2, 3) applied to January 1,
// 2011 returns March 4, 2010.
//
// AddDate normalizes its result in the same way that Of does, so, for
// example, adding one month to October 31 yields December 1, the normalized
// form for November 31.
//
// AddDate(0, 0, days) is equivalent to d+Date(days).
func (d Date) AddDate(years, months, days int) Date {
	year, month, day := d.Date()
	return Of(year+years, month+time.Month(months), day+days)
}

// At combines d with a time of day.
func (d Date) At(t Time) DateTime {
	return DateTime{date: d, time: t}
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after u.
func (d Date) Compare(u Date) int {
	return cmp.Compare(d, u)
}

// Date returns the normalized year, month and day specified by d.
func (d Date) Date() (year int, month time.Month, day int) {
	y, month, day := civilOf(int64(d))
	return int(y), month, day
}

// Day returns the day of the month of d.
func (d Date) Day() int {
	_, _, day := d.Date()
	return day
}

// DayOfWeek returns the day of the week of d, counting from Monday = 0 to
// Sunday = 6.
func (d Date) DayOfWeek() int {
	// 1970-01-01 was a Thursday.
	dow := (int64(d) + 3) % 7
	if dow < 0 {
		dow += 7
	}
	return int(dow)
}

// GoString implements fmt.GoStringer and formats d to be printed in Go source code.
func (d Date) GoString() string {
	year, month, day := d.Date()
	return fmt.Sprintf("civil.Of(%d, %d, %d)", year, month, day)
}

// IsLeap reports whether d is in a leap year.
func (d Date) IsLeap() bool {
	return IsLeap(d.Year())
}

// ISOWeek returns the ISO 8601 year and week number in which d occurs. Week
// ranges from 1 to 53. Jan 01 to Jan 03 of year n might belong to week 52 or
// 53 of year n-1, and Dec 29 to Dec 31 might belong to week 1 of year n+1.
func (d Date) ISOWeek() (year, week int) {
	// See this comment for an explanation:
	// https://cs.opensource.google/go/go/+/refs/tags/go1.20.6:src/time/time.go;l=544

	offset := time.Thursday - d.Weekday()
	if offset == 4 {
		offset = -3
	}
	d += Date(offset)
	return d.Year(), (d.YearDay()-1)/7 + 1
}

// LengthOfMonth returns the number of days in the month of d.
func (d Date) LengthOfMonth() int {
	year, month, _ := d.Date()
	return DaysIn(month, year)
}

// LengthOfYear returns the number of days in the year of d.
func (d Date) LengthOfYear() int {
	if d.IsLeap() {
		return 366
	}
	return 365
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The date is
// represented as a [binary.Varint] representing the epoch day.
func (d Date) MarshalBinary() ([]byte, error) {
	return d.appendBinary(make([]byte, 0, binary.MaxVarintLen64)), nil
}

func (d Date) appendBinary(b []byte) []byte {
	return binary.AppendVarint(b, int64(d))
}

// MarshalText implements the encoding.TextMarshaler interface. The date is
// formatted in ISO 8601 format.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Minus is Plus(u, -v).
func (d Date) Minus(u Unit, v int64) Date {
	return d.Plus(u, -v)
}

// Month returns the month of the year specified by d.
func (d Date) Month() time.Month {
	_, month, _ := d.Date()
	return month
}

// PeriodUntil returns the number of whole years, months and days from d to
// end. Adding the result to d with AddDate yields end, unless a month
// addition had to clamp a day (e.g. January 31 to February 28).
//
// All fields of the result have the same sign. Months are in the range
// [-11, 11].
func (d Date) PeriodUntil(end Date) Period {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := end.Date()
	months := prolepticMonth(y2, m2) - prolepticMonth(y1, m1)
	days := d2 - d1
	switch {
	case months > 0 && days < 0:
		months--
		days = int(end - d.addMonthsClamped(months))
	case months < 0 && days > 0:
		months++
		days -= DaysIn(m2, y2)
	}
	return Period{Years: months / 12, Months: months % 12, Days: days}
}

// Plus returns d with v units added. Adding months or years normalizes the
// day, as AddDate does. Clock units are converted into whole days, rounding
// towards the past.
func (d Date) Plus(u Unit, v int64) Date {
	switch u {
	case Year:
		return d.AddDate(int(v), 0, 0)
	case Month:
		return d.AddDate(0, int(v), 0)
	case Day:
		return d + Date(v)
	case Hour, Minute, Second, Nanosecond:
		days, _ := norm(0, v, nanosPerDay/u.nanos())
		return d + Date(days)
	}
	panic("invalid civil.Unit")
}

// Range returns the smallest and largest valid values of the field u in d.
// The clock fields of a Date are always zero.
func (d Date) Range(u Unit) (min, max int64) {
	switch u {
	case Year:
		return MinYear, MaxYear
	case Month:
		return 1, 12
	case Day:
		return 1, int64(d.LengthOfMonth())
	case Hour, Minute, Second, Nanosecond:
		return 0, 0
	}
	panic("invalid civil.Unit")
}

// String returns the date formatted as ISO 8601.
//
// The returned string is meant for debugging; for a stable serialized
// representation, use d.MarshalText or d.MarshalBinary.
func (d Date) String() string {
	return d.Format(RFC3339)
}

// Time returns the given moment in time in the given location.
func (d Date) Time(hour, min, sec, nsec int, loc *time.Location) time.Time {
	return time.Date(1970, 1, 1+int(d), hour, min, sec, nsec, loc)
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (d *Date) UnmarshalBinary(b []byte) error {
	v, i := binary.Varint(b)
	switch {
	case i == 0:
		return errors.New("encoded date truncated")
	case i < 0:
		return errors.New("encoded date overflows int64")
	case i != len(b):
		return errors.New("extra data after date")
	}
	*d = Date(v)
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The date
// must be in ISO 8601 format.
func (d *Date) UnmarshalText(b []byte) error {
	v, err := Parse(RFC3339, string(b))
	if err == nil {
		*d = v
	}
	return err
}

// Until returns the number of whole units from d to end. For months and
// years, a unit is only complete once the day of the month has been reached.
// Clock units count the full days in between.
func (d Date) Until(end Date, u Unit) int64 {
	switch u {
	case Year:
		return d.monthsUntil(end) / 12
	case Month:
		return d.monthsUntil(end)
	case Day:
		return int64(end - d)
	case Hour, Minute, Second, Nanosecond:
		return int64(end-d) * (nanosPerDay / u.nanos())
	}
	panic("invalid civil.Unit")
}

// Weekday returns the day of the week specified by d.
func (d Date) Weekday() time.Weekday {
	return time.Weekday(d.DayOfWeek()+1) % 7
}

// With returns d with the field u set to v. The result is normalized, so
// setting the day to 31 in a month with 30 days yields the first of the next
// month. Clock units do not apply to dates and leave d unchanged.
func (d Date) With(u Unit, v int64) Date {
	year, month, day := d.Date()
	switch u {
	case Year:
		return Of(int(v), month, day)
	case Month:
		return Of(year, time.Month(v), day)
	case Day:
		return Of(year, month, int(v))
	case Hour, Minute, Second, Nanosecond:
		return d
	}
	panic("invalid civil.Unit")
}

// Year returns the year in which d occurs.
func (d Date) Year() int {
	year, _, _ := d.Date()
	return year
}

// YearDay returns the day of the year specified by d, in the range [1,365] for
// non-leap years, and [1,366] in leap years.
func (d Date) YearDay() int {
	y, _, _ := civilOf(int64(d))
	return int(int64(d)-epochDayOf(y, time.January, 1)) + 1
}

// addMonthsClamped adds months to d, clamping the day to the end of the
// resulting month instead of overflowing into the next one.
func (d Date) addMonthsClamped(months int) Date {
	year, month, day := d.Date()
	y, m := norm(year, int(month)-1+months, 12)
	if n := DaysIn(time.Month(m+1), y); day > n {
		day = n
	}
	return Of(y, time.Month(m+1), day)
}

// monthsUntil returns the number of complete months from d to end.
func (d Date) monthsUntil(end Date) int64 {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := end.Date()
	// Pack the day into the lower bits, so that an incomplete month does not
	// count.
	p1 := int64(prolepticMonth(y1, m1))*32 + int64(d1)
	p2 := int64(prolepticMonth(y2, m2))*32 + int64(d2)
	return (p2 - p1) / 32
}

// prolepticMonth returns the number of months since January of year 0.
func prolepticMonth(year int, month time.Month) int {
	return year*12 + int(month) - 1
}
