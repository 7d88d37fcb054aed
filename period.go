// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A Period is a signed span of calendar and clock fields, such as "1 year,
// 2 months and 3 hours". It is used for relative arithmetic on dates and
// times.
//
// The fields of a Period can be set freely. A Period is normalized by
// PeriodOf, Normalize and With:
//
//   - the clock fields are carried into whole days, leaving Hours in [0,23],
//     Minutes and Seconds in [0,59] and Nanoseconds in [0,999999999];
//   - the days are then carried into months and years by adding them to
//     January 1 of year Years (after adding Months), as Of would.
//
// A normalized Period counts months as a span, not as a calendar month:
// Months is in [0,11] and Days in [0,30]. The date carry uses the month
// lengths of the calendar year given by Years, so the same number of days
// can normalize differently for different years.
type Period struct {
	Years       int
	Months      int
	Days        int
	Hours       int
	Minutes     int
	Seconds     int
	Nanoseconds int64
}

// PeriodOf returns the normalized Period with the given fields.
func PeriodOf(years, months, days, hours, minutes, seconds int, nanoseconds int64) Period {
	return Period{
		Years:       years,
		Months:      months,
		Days:        days,
		Hours:       hours,
		Minutes:     minutes,
		Seconds:     seconds,
		Nanoseconds: nanoseconds,
	}.Normalize()
}

// Add returns the field-wise sum of p and q. The result is not normalized.
func (p Period) Add(q Period) Period {
	return Period{
		Years:       p.Years + q.Years,
		Months:      p.Months + q.Months,
		Days:        p.Days + q.Days,
		Hours:       p.Hours + q.Hours,
		Minutes:     p.Minutes + q.Minutes,
		Seconds:     p.Seconds + q.Seconds,
		Nanoseconds: p.Nanoseconds + q.Nanoseconds,
	}
}

// Get returns the field u of p.
func (p Period) Get(u Unit) int64 {
	switch u {
	case Year:
		return int64(p.Years)
	case Month:
		return int64(p.Months)
	case Day:
		return int64(p.Days)
	case Hour:
		return int64(p.Hours)
	case Minute:
		return int64(p.Minutes)
	case Second:
		return int64(p.Seconds)
	case Nanosecond:
		return p.Nanoseconds
	}
	panic("invalid civil.Unit")
}

// IsZero reports whether all fields of p are zero.
func (p Period) IsZero() bool {
	return p == Period{}
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The period
// is represented as seven varints, from Years to Nanoseconds.
func (p Period) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 7*binary.MaxVarintLen64)
	for u := Year; u >= Nanosecond; u-- {
		b = binary.AppendVarint(b, p.Get(u))
	}
	return b, nil
}

// MarshalText implements the encoding.TextMarshaler interface. The period is
// formatted as by String.
//
// Seconds and Nanoseconds are combined into a single decimal number, so a
// Period only round-trips through its text form if they have the same sign
// and Nanoseconds is less than a second, as is the case for normalized
// periods.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Neg returns p with all fields negated. The result is not normalized.
func (p Period) Neg() Period {
	return Period{}.Sub(p)
}

// Normalize returns p in its normalized form, as described on Period.
// Normalizing a normalized Period returns it unchanged.
func (p Period) Normalize() Period {
	total := int64(p.Hours)*nanosPerHour +
		int64(p.Minutes)*nanosPerMinute +
		int64(p.Seconds)*nanosPerSecond +
		p.Nanoseconds
	days, rem := norm(0, total, nanosPerDay)

	d := Of(p.Years, time.Month(p.Months+1), p.Days+int(days)+1)
	year, month, day := d.Date()
	return Period{
		Years:       year,
		Months:      int(month) - 1,
		Days:        day - 1,
		Hours:       int(rem / nanosPerHour),
		Minutes:     int(rem / nanosPerMinute % 60),
		Seconds:     int(rem / nanosPerSecond % 60),
		Nanoseconds: rem % nanosPerSecond,
	}
}

// String returns p in ISO 8601 duration format, e.g. "P1Y2M3DT4H5M6.5S".
// Every field carries its own sign. The zero Period is "PT0S".
func (p Period) String() string {
	if p.IsZero() {
		return "PT0S"
	}
	b := []byte{'P'}
	appendField := func(v int64, unit byte) {
		if v != 0 {
			b = strconv.AppendInt(b, v, 10)
			b = append(b, unit)
		}
	}
	appendField(int64(p.Years), 'Y')
	appendField(int64(p.Months), 'M')
	appendField(int64(p.Days), 'D')
	secs, nanos := int64(p.Seconds), p.Nanoseconds
	if p.Hours == 0 && p.Minutes == 0 && secs == 0 && nanos == 0 {
		return string(b)
	}
	b = append(b, 'T')
	appendField(int64(p.Hours), 'H')
	appendField(int64(p.Minutes), 'M')
	if secs != 0 || nanos != 0 {
		secs, nanos = norm(secs, nanos, nanosPerSecond)
		if secs < 0 && nanos > 0 {
			// Write negative fractions as -(s).(n), not (s)+0.(n).
			secs, nanos = secs+1, nanosPerSecond-nanos
			b = append(b, '-')
			b = strconv.AppendInt(b, -secs, 10)
		} else {
			b = strconv.AppendInt(b, secs, 10)
		}
		b = appendFrac(b, int(nanos))
		b = append(b, 'S')
	}
	return string(b)
}

// Sub returns the field-wise difference of p and q. The result is not
// normalized.
func (p Period) Sub(q Period) Period {
	return Period{
		Years:       p.Years - q.Years,
		Months:      p.Months - q.Months,
		Days:        p.Days - q.Days,
		Hours:       p.Hours - q.Hours,
		Minutes:     p.Minutes - q.Minutes,
		Seconds:     p.Seconds - q.Seconds,
		Nanoseconds: p.Nanoseconds - q.Nanoseconds,
	}
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (p *Period) UnmarshalBinary(b []byte) error {
	var v [7]int64
	if err := decodeVarints("period", b, &v[0], &v[1], &v[2], &v[3], &v[4], &v[5], &v[6]); err != nil {
		return err
	}
	*p = Period{
		Years:       int(v[0]),
		Months:      int(v[1]),
		Days:        int(v[2]),
		Hours:       int(v[3]),
		Minutes:     int(v[4]),
		Seconds:     int(v[5]),
		Nanoseconds: v[6],
	}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. See
// ParsePeriod for the accepted format.
func (p *Period) UnmarshalText(b []byte) error {
	v, err := ParsePeriod(string(b))
	if err == nil {
		*p = v
	}
	return err
}

// With returns p with the field u set to v, normalized.
func (p Period) With(u Unit, v int64) Period {
	switch u {
	case Year:
		p.Years = int(v)
	case Month:
		p.Months = int(v)
	case Day:
		p.Days = int(v)
	case Hour:
		p.Hours = int(v)
	case Minute:
		p.Minutes = int(v)
	case Second:
		p.Seconds = int(v)
	case Nanosecond:
		p.Nanoseconds = v
	default:
		panic("invalid civil.Unit")
	}
	return p.Normalize()
}

// ParsePeriod parses an ISO 8601 duration of the form
//
//	[-]P[nY][nM][nW][nD][T[nH][nM][n[.f]S]]
//
// as produced by Period.String. Every number may carry its own sign, and a
// leading "-" negates all fields. Weeks are converted into seven days each.
// The result is not normalized.
func ParsePeriod(s string) (Period, error) {
	var (
		p     Period
		neg   bool
		v     = s
		found bool
	)
	fail := func(msg string) (Period, error) {
		return Period{}, fmt.Errorf("parsing period %q: %s", strings.Clone(s), msg)
	}
	if len(v) > 0 && (v[0] == '-' || v[0] == '+') {
		neg = v[0] == '-'
		v = v[1:]
	}
	if len(v) == 0 || (v[0] != 'P' && v[0] != 'p') {
		return fail(`missing "P"`)
	}
	v = v[1:]

	// Designators must appear in this order, upper case ones in the time
	// section are distinguished from date ones by a leading 'T'.
	const order = "YMWDTHmS"
	last := -1
	for len(v) > 0 {
		if v[0] == 'T' || v[0] == 't' {
			if last >= strings.IndexByte(order, 'T') {
				return fail(`duplicate "T"`)
			}
			last = strings.IndexByte(order, 'T')
			v = v[1:]
			if len(v) == 0 {
				return fail(`no time fields after "T"`)
			}
			continue
		}
		n, frac, rest, ok := scanDecimal(v)
		if !ok || len(rest) == 0 {
			return fail("invalid number")
		}
		des := rest[0] &^ ('a' - 'A')
		inTime := last >= strings.IndexByte(order, 'T')
		if des == 'M' && inTime {
			des = 'm'
		}
		idx := strings.IndexByte(order, des)
		if idx < 0 || des == 'T' || idx <= last || (idx > 4) != inTime {
			return fail("unexpected designator " + strconv.Quote(string(rest[0])))
		}
		if frac != 0 && des != 'S' {
			return fail("fraction only allowed for seconds")
		}
		switch des {
		case 'Y':
			p.Years = int(n)
		case 'M':
			p.Months = int(n)
		case 'W':
			p.Days += 7 * int(n)
		case 'D':
			p.Days += int(n)
		case 'H':
			p.Hours = int(n)
		case 'm':
			p.Minutes = int(n)
		case 'S':
			p.Seconds, p.Nanoseconds = int(n), frac
		}
		last = idx
		found = true
		v = rest[1:]
	}
	if !found {
		return fail("no fields")
	}
	if neg {
		p = p.Neg()
	}
	return p, nil
}

// scanDecimal scans a signed integer with an optional fraction of up to nine
// digits. The fraction is returned in nanoseconds, with the sign of the
// number.
func scanDecimal(s string) (n, frac int64, rest string, ok bool) {
	i := 0
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for isDigit(s, i) {
		i++
	}
	if i == start {
		return 0, 0, s, false
	}
	n, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		return 0, 0, s, false
	}
	if i < len(s) && (s[i] == '.' || s[i] == ',') {
		i++
		digits := 0
		for isDigit(s, i) {
			if digits == 9 {
				return 0, 0, s, false
			}
			frac = frac*10 + int64(s[i]-'0')
			digits++
			i++
		}
		if digits == 0 {
			return 0, 0, s, false
		}
		for ; digits < 9; digits++ {
			frac *= 10
		}
	}
	if neg {
		n, frac = -n, -frac
	}
	return n, frac, s[i:], true
}
