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

// A Zoned is a DateTime at a fixed Offset. The offset is supplied by the
// caller and kept until it is explicitly replaced; it is never derived from
// the date and time.
//
// Zoned values can be compared with ==, which compares both the civil fields
// and the offset. Equal and Compare compare the represented instants.
type Zoned struct {
	dt  DateTime
	off Offset
}

// ZonedOf returns dt at offset off.
func ZonedOf(dt DateTime, off Offset) Zoned {
	return Zoned{dt: dt, off: off}
}

// NowIn returns the current time at the offset reported by c.
func NowIn(c Clock) Zoned {
	return Now().In(c.Offset())
}

// AddDate adds the given number of years, months and days, as
// DateTime.AddDate does. The offset is unchanged.
func (z Zoned) AddDate(years, months, days int) Zoned {
	z.dt = z.dt.AddDate(years, months, days)
	return z
}

// AddPeriod adds p to the civil fields of z, as DateTime.AddPeriod does. The
// offset is unchanged.
func (z Zoned) AddPeriod(p Period) Zoned {
	z.dt = z.dt.AddPeriod(p)
	return z
}

// After reports whether z is after u.
func (z Zoned) After(u Zoned) bool {
	return z.Compare(u) > 0
}

// Before reports whether z is before u.
func (z Zoned) Before(u Zoned) bool {
	return z.Compare(u) < 0
}

// Compare compares the instants represented by z and u. It returns -1, 0 or
// +1 depending on whether z is before, at the same instant as or after u.
func (z Zoned) Compare(u Zoned) int {
	return z.dt.Compare(u.sameInstant(z.off))
}

// Date returns the civil date of z.
func (z Zoned) Date() Date {
	return z.dt.date
}

// DateTime returns the civil date and time of z.
func (z Zoned) DateTime() DateTime {
	return z.dt
}

// Equal reports whether z and u represent the same instant.
func (z Zoned) Equal(u Zoned) bool {
	return z.Compare(u) == 0
}

// GoString implements fmt.GoStringer and formats z to be printed in Go source code.
func (z Zoned) GoString() string {
	return fmt.Sprintf("civil.ZonedOf(%#v, %d)", z.dt, z.off)
}

// Instant returns the instant represented by z.
func (z Zoned) Instant() Instant {
	sec, nsec := z.dt.EpochSecond()
	return Unix(sec-int64(z.off), nsec)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The value
// is represented as the binary form of its DateTime, followed by the varint
// encoded offset.
func (z Zoned) MarshalBinary() ([]byte, error) {
	b := z.dt.appendBinary(make([]byte, 0, 3*binary.MaxVarintLen64))
	return binary.AppendVarint(b, int64(z.off)), nil
}

// MarshalText implements the encoding.TextMarshaler interface. The value is
// formatted as RFC3339Zoned.
func (z Zoned) MarshalText() ([]byte, error) {
	return z.AppendFormat(nil, RFC3339Zoned), nil
}

// Minus is Plus(u, -v).
func (z Zoned) Minus(u Unit, v int64) Zoned {
	return z.Plus(u, -v)
}

// MinusZoned is the inverse of PlusZoned: the instant of the result is the
// instant of z minus the instant of u, expressed at the offset of z.
func (z Zoned) MinusZoned(u Zoned) Zoned {
	z.dt = z.dt.MinusDateTime(u.dt).Plus(Second, int64(u.off))
	return z
}

// Offset returns the offset of z.
func (z Zoned) Offset() Offset {
	return z.off
}

// PeriodUntil returns the period from z to end, after moving end to the
// offset of z.
func (z Zoned) PeriodUntil(end Zoned) Period {
	return z.dt.PeriodUntil(end.sameInstant(z.off))
}

// Plus returns z with v units added to its civil fields, as DateTime.Plus
// does. The offset is unchanged.
func (z Zoned) Plus(u Unit, v int64) Zoned {
	z.dt = z.dt.Plus(u, v)
	return z
}

// PlusZoned treats u as a span since the Unix epoch and adds it to z. The
// instant of the result is the sum of the instants of z and u, expressed at
// the offset of z: the civil fields are added and then shifted by the offset
// of u.
func (z Zoned) PlusZoned(u Zoned) Zoned {
	z.dt = z.dt.PlusDateTime(u.dt).Plus(Second, -int64(u.off))
	return z
}

// String returns z formatted as RFC3339Zoned.
func (z Zoned) String() string {
	return z.Format(RFC3339Zoned)
}

// Time returns z as a time.Time in a fixed location for its offset. See
// DateTime.In for the possible errors.
func (z Zoned) Time() (time.Time, error) {
	return z.dt.In(z.off.Location())
}

// TimeOfDay returns the civil time of day of z.
func (z Zoned) TimeOfDay() Time {
	return z.dt.time
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (z *Zoned) UnmarshalBinary(b []byte) error {
	var d, t, off int64
	if err := decodeVarints("zoned date-time", b, &d, &t, &off); err != nil {
		return err
	}
	if t < 0 || t >= nanosPerDay {
		return errors.New("encoded time out of range")
	}
	*z = Zoned{dt: DateTime{date: Date(d), time: Time(t)}, off: Offset(off)}
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The value
// must be formatted as RFC3339Zoned.
func (z *Zoned) UnmarshalText(b []byte) error {
	v, err := ParseZoned(RFC3339Zoned, string(b))
	if err == nil {
		*z = v
	}
	return err
}

// Until returns the number of whole units from z to end, after moving end to
// the offset of z.
func (z Zoned) Until(end Zoned, u Unit) int64 {
	return z.dt.Until(end.sameInstant(z.off), u)
}

// With returns z with the civil field u set to v, as DateTime.With does. The
// offset is unchanged.
func (z Zoned) With(u Unit, v int64) Zoned {
	z.dt = z.dt.With(u, v)
	return z
}

// WithOffsetSameInstant returns z at offset off, with the civil fields shifted
// by the difference of the offsets, so that the result represents the same
// instant as z.
func (z Zoned) WithOffsetSameInstant(off Offset) Zoned {
	return Zoned{dt: z.sameInstant(off), off: off}
}

// WithOffsetSameLocal returns z with its offset replaced by off. The civil
// fields are unchanged, so the result represents a different instant, unless
// the offsets are equal.
func (z Zoned) WithOffsetSameLocal(off Offset) Zoned {
	z.off = off
	return z
}

// sameInstant returns the civil fields of z at offset off.
func (z Zoned) sameInstant(off Offset) DateTime {
	if delta := off - z.off; delta != 0 {
		return z.dt.Plus(Second, int64(delta))
	}
	return z.dt
}
