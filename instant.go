// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"cmp"
	"encoding/binary"
	"errors"
	"time"
)

// NowFunc returns the current time. It is used by Now, Today, NowIn and
// LocalOffset and can be replaced, for example by programs and tests that
// need to be deterministic.
var NowFunc = time.Now

// An Instant is a point on the linear time axis, independent of any calendar
// or offset. It is represented as seconds and nanoseconds since
// 1970-01-01T00:00:00Z. The nanosecond is always in [0, 999999999]; earlier
// instants have a negative second.
//
// Instants can be compared with == and ordered with Compare.
type Instant struct {
	sec  int64
	nsec int64
}

var (
	// MinInstant is the earliest supported Instant, -1000000000-01-01T00:00:00Z.
	MinInstant = Instant{sec: -31_557_014_167_219_200}
	// MaxInstant is the latest supported Instant,
	// 1000000000-12-31T23:59:59.999999999Z.
	MaxInstant = Instant{sec: 31_556_889_864_403_199, nsec: 999_999_999}
)

// Unix returns the Instant sec seconds and nsec nanoseconds after the Unix
// epoch. nsec may be outside of [0, 999999999] and is normalized, rounding
// towards the past: Unix(-100, -100) is Unix(-101, 999999900).
//
// Values outside of [MinInstant, MaxInstant] are representable, but
// conversions to civil values are implementation defined for them.
func Unix(sec, nsec int64) Instant {
	sec, nsec = norm(sec, nsec, nanosPerSecond)
	return Instant{sec: sec, nsec: nsec}
}

// UnixMilli returns the Instant ms milliseconds after the Unix epoch.
func UnixMilli(ms int64) Instant {
	sec, ms := norm(0, ms, 1000)
	return Instant{sec: sec, nsec: ms * 1e6}
}

// Now returns the current Instant.
func Now() Instant {
	return InstantOf(NowFunc())
}

// InstantOf returns the Instant of t.
func InstantOf(t time.Time) Instant {
	return Instant{sec: t.Unix(), nsec: int64(t.Nanosecond())}
}

// Add returns i+d.
func (i Instant) Add(d time.Duration) Instant {
	return Unix(i.sec, i.nsec+int64(d))
}

// After reports whether i is after u.
func (i Instant) After(u Instant) bool {
	return i.Compare(u) > 0
}

// Before reports whether i is before u.
func (i Instant) Before(u Instant) bool {
	return i.Compare(u) < 0
}

// Compare returns -1, 0 or +1 depending on whether i is before, equal to or
// after u.
func (i Instant) Compare(u Instant) int {
	if c := cmp.Compare(i.sec, u.sec); c != 0 {
		return c
	}
	return cmp.Compare(i.nsec, u.nsec)
}

// In returns the Zoned value of i at offset off.
func (i Instant) In(off Offset) Zoned {
	sec := i.sec + int64(off)
	// The remainder can be negative; EpochDateTime carries it.
	day, rem := sec/secondsPerDay, sec%secondsPerDay
	return Zoned{dt: EpochDateTime(day, rem*nanosPerSecond+i.nsec), off: off}
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// instant is represented as the varint encoded second, followed by the
// varint encoded nanosecond.
func (i Instant) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, 2*binary.MaxVarintLen64)
	b = binary.AppendVarint(b, i.sec)
	return binary.AppendVarint(b, i.nsec), nil
}

// MarshalText implements the encoding.TextMarshaler interface. The instant is
// formatted as RFC3339Zoned in UTC.
func (i Instant) MarshalText() ([]byte, error) {
	return i.In(UTC).AppendFormat(nil, RFC3339Zoned), nil
}

// Minus returns the component-wise difference of i and u, normalized.
func (i Instant) Minus(u Instant) Instant {
	return Unix(i.sec-u.sec, i.nsec-u.nsec)
}

// Nanosecond returns the nanosecond within the second of i.
func (i Instant) Nanosecond() int64 {
	return i.nsec
}

// Plus returns the component-wise sum of i and u, normalized. It treats u as
// a span since the Unix epoch.
func (i Instant) Plus(u Instant) Instant {
	return Unix(i.sec+u.sec, i.nsec+u.nsec)
}

// String returns i formatted as RFC3339Zoned in UTC.
func (i Instant) String() string {
	return i.In(UTC).String()
}

// Time returns i as a time.Time in the local location.
func (i Instant) Time() time.Time {
	return time.Unix(i.sec, i.nsec)
}

// Unix returns the seconds since the Unix epoch and the nanosecond within
// that second.
func (i Instant) Unix() (sec, nsec int64) {
	return i.sec, i.nsec
}

// UnixMilli returns the milliseconds since the Unix epoch, rounded towards
// the past.
func (i Instant) UnixMilli() int64 {
	return i.sec*1000 + i.nsec/1e6
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (i *Instant) UnmarshalBinary(b []byte) error {
	var sec, nsec int64
	if err := decodeVarints("instant", b, &sec, &nsec); err != nil {
		return err
	}
	if nsec < 0 || nsec >= nanosPerSecond {
		return errors.New("encoded nanosecond out of range")
	}
	*i = Instant{sec: sec, nsec: nsec}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// instant must be formatted as RFC3339Zoned, in any offset.
func (i *Instant) UnmarshalText(b []byte) error {
	z, err := ParseZoned(RFC3339Zoned, string(b))
	if err == nil {
		*i = z.Instant()
	}
	return err
}

// Until returns the number of whole units from i to end. It is negative if
// end is before i.
//
// A unit only counts once it has fully elapsed: from 10.7s to 12.2s is one
// second. Months and years are counted on the UTC calendar. Counting
// nanoseconds overflows for spans of more than ~292 years.
func (i Instant) Until(end Instant, u Unit) int64 {
	secs := end.sec - i.sec
	nanos := end.nsec - i.nsec
	switch u {
	case Nanosecond:
		return secs*nanosPerSecond + nanos
	case Second, Minute, Hour, Day:
		switch {
		case secs > 0 && nanos < 0:
			secs--
		case secs < 0 && nanos > 0:
			secs++
		}
		return secs / u.seconds()
	case Month, Year:
		return i.UTC().Until(end.UTC(), u)
	}
	panic("invalid civil.Unit")
}

// UTC returns the DateTime of i at UTC.
func (i Instant) UTC() DateTime {
	return i.In(UTC).dt
}
