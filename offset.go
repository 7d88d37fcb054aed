// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"cmp"
	"encoding/binary"
	"time"
)

// An Offset is a fixed offset from UTC, in seconds. Positive offsets are
// ahead of (east of) UTC.
//
// Offsets are never derived from a time zone database by this package. They
// are usually obtained from a time.Time, via LocalOffset or ZoneOffset.
type Offset int

// UTC is the zero Offset.
const UTC Offset = 0

// OffsetOf returns the Offset of the given number of hours, minutes and
// seconds. For negative offsets, all arguments should be negative.
func OffsetOf(hours, minutes, seconds int) Offset {
	return Offset(hours*3600 + minutes*60 + seconds)
}

// ZoneOffset returns the offset of t in its location.
func ZoneOffset(t time.Time) Offset {
	_, off := t.Zone()
	return Offset(off)
}

// LocalOffset returns the current offset of the host's local time zone.
func LocalOffset() Offset {
	return ZoneOffset(NowFunc().Local())
}

// Compare returns -1, 0 or +1 depending on whether o is less than, equal to
// or greater than p.
func (o Offset) Compare(p Offset) int {
	return cmp.Compare(o, p)
}

// Location returns a fixed time.Location for o, named after o.String.
func (o Offset) Location() *time.Location {
	if o == UTC {
		return time.UTC
	}
	return time.FixedZone(o.String(), int(o))
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The offset
// is represented as a [binary.Varint].
func (o Offset) MarshalBinary() ([]byte, error) {
	return binary.AppendVarint(nil, int64(o)), nil
}

// MarshalText implements the encoding.TextMarshaler interface. The offset is
// formatted as by String.
func (o Offset) MarshalText() ([]byte, error) {
	return appendOffset(nil, o, false), nil
}

// Offset returns o. It makes every Offset a Clock.
func (o Offset) Offset() Offset {
	return o
}

// Seconds returns o in seconds.
func (o Offset) Seconds() int {
	return int(o)
}

// String returns o as ±hh:mm, or ±hh:mm:ss if it has a seconds component.
func (o Offset) String() string {
	return string(appendOffset(nil, o, false))
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (o *Offset) UnmarshalBinary(b []byte) error {
	var v int64
	if err := decodeVarints("offset", b, &v); err != nil {
		return err
	}
	*o = Offset(v)
	return nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. See
// ParseOffset for the accepted format.
func (o *Offset) UnmarshalText(b []byte) error {
	v, err := ParseOffset(string(b))
	if err == nil {
		*o = v
	}
	return err
}

// A Clock supplies the offset to use for new Zoned values.
//
// Implementations may return a different offset on every call.
type Clock interface {
	Offset() Offset
}

// CurrentOffset returns the offset of an auto-updating clock: reference,
// shifted by the change of the host offset since it was captured.
func CurrentOffset(reference, captured, host Offset) Offset {
	return reference + host - captured
}

// An AutoClock is a Clock that follows changes of a host offset, for example
// across a daylight saving time transition.
//
// Every call to Offset reads the host offset again. Nothing is cached, so
// concurrent or repeated readers may observe different offsets.
//
// The zero AutoClock always returns UTC.
type AutoClock struct {
	reference Offset
	captured  Offset
	host      func() Offset
}

// NewAutoClock returns an AutoClock that reports reference for as long as
// host returns the value it returns now. host is called once by NewAutoClock
// and once per call to Offset.
func NewAutoClock(reference Offset, host func() Offset) AutoClock {
	return AutoClock{
		reference: reference,
		captured:  host(),
		host:      host,
	}
}

// Local returns an AutoClock reporting the offset of the host's local time
// zone.
func Local() AutoClock {
	return NewAutoClock(LocalOffset(), LocalOffset)
}

// Offset implements Clock.
func (c AutoClock) Offset() Offset {
	if c.host == nil {
		return c.reference
	}
	return CurrentOffset(c.reference, c.captured, c.host())
}

// Reference returns the offset c was created with.
func (c AutoClock) Reference() Offset {
	return c.reference
}
