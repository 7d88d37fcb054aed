// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	"gonih.org/civil"
)

type pointKind int

const (
	kindDate pointKind = iota
	kindDateTime
	kindZoned
)

// point is a civil value given on the command line: a date, a date-time or a
// date-time with an offset.
type point struct {
	dt   civil.DateTime
	off  civil.Offset
	kind pointKind
}

func parsePoint(s string) (point, error) {
	if z, err := civil.ParseZoned(civil.RFC3339Zoned, s); err == nil {
		return point{dt: z.DateTime(), off: z.Offset(), kind: kindZoned}, nil
	}
	if dt, err := civil.ParseDateTime(civil.RFC3339DateTime, s); err == nil {
		return point{dt: dt, kind: kindDateTime}, nil
	}
	d, err := civil.Parse(civil.RFC3339, s)
	if err != nil {
		return point{}, WrapExitError(ExitUsage, fmt.Sprintf("invalid date-time %q", s), err)
	}
	return point{dt: d.At(civil.Midnight), kind: kindDate}, nil
}

func (p point) zoned() civil.Zoned {
	return civil.ZonedOf(p.dt, p.off)
}

func (p point) addPeriod(per civil.Period) point {
	p.dt = p.dt.AddPeriod(per)
	return p
}

// String formats p the way it was given. A date that picked up a time of day
// is printed as a date-time.
func (p point) String() string {
	switch p.kind {
	case kindZoned:
		return p.zoned().String()
	case kindDate:
		if p.dt.Time() == civil.Midnight {
			return p.dt.Date().String()
		}
	}
	return p.dt.String()
}

func parseInt(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, WrapExitError(ExitUsage, fmt.Sprintf("invalid %s %q", name, s), err)
	}
	return v, nil
}

func parseInt64(name, s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitUsage, fmt.Sprintf("invalid %s %q", name, s), err)
	}
	return v, nil
}
