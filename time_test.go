// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"testing"
	"time"
)

func TestTimeOf(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		hour, min, sec, nsec int
		want                 Time
	}{
		{0, 0, 0, 0, Midnight},
		{13, 5, 7, 120_000_000, 13*Time(nanosPerHour) + 5*Time(nanosPerMinute) + 7*Time(nanosPerSecond) + 120_000_000},
		{10, 60, 0, 0, TimeOfNano(11 * nanosPerHour)},
		{24, 0, 0, 0, Midnight},
		{25, 0, 0, 0, TimeOfNano(nanosPerHour)},
		{-1, 0, 0, 0, TimeOfNano(23 * nanosPerHour)},
		{0, 0, -1, 0, TimeOfNano(nanosPerDay - nanosPerSecond)},
		{0, 0, 0, -1, TimeOfNano(nanosPerDay - 1)},
		{0, 0, 0, 1_000_000_000, TimeOfNano(nanosPerSecond)},
		{1, -61, 0, 0, TimeOfNano(23*nanosPerHour + 59*nanosPerMinute)},
	}
	for _, tc := range tcs {
		if got := TimeOf(tc.hour, tc.min, tc.sec, tc.nsec); got != tc.want {
			t.Errorf("TimeOf(%d, %d, %d, %d) = %v, want %v", tc.hour, tc.min, tc.sec, tc.nsec, got, tc.want)
		}
	}
}

func TestTimeAccessors(t *testing.T) {
	t.Parallel()
	tm := TimeOf(13, 5, 7, 120_000_000)
	if h, m, s := tm.Clock(); h != 13 || m != 5 || s != 7 {
		t.Errorf("%#v.Clock() = %d, %d, %d, want 13, 5, 7", tm, h, m, s)
	}
	if got := tm.Hour(); got != 13 {
		t.Errorf("%#v.Hour() = %d, want 13", tm, got)
	}
	if got := tm.Minute(); got != 5 {
		t.Errorf("%#v.Minute() = %d, want 5", tm, got)
	}
	if got := tm.Second(); got != 7 {
		t.Errorf("%#v.Second() = %d, want 7", tm, got)
	}
	if got := tm.Nanosecond(); got != 120_000_000 {
		t.Errorf("%#v.Nanosecond() = %d, want 120000000", tm, got)
	}
	if got, want := tm.SecondOfDay(), 13*3600+5*60+7; got != want {
		t.Errorf("%#v.SecondOfDay() = %d, want %d", tm, got, want)
	}
	if got, want := tm.NanoOfDay(), int64(tm.SecondOfDay())*nanosPerSecond+120_000_000; got != want {
		t.Errorf("%#v.NanoOfDay() = %d, want %d", tm, got, want)
	}
	if got, want := tm.GoString(), "civil.TimeOf(13, 5, 7, 120000000)"; got != want {
		t.Errorf("GoString() = %q, want %q", got, want)
	}
}

func TestTimePlus(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		t    Time
		u    Unit
		v    int64
		want Time
	}{
		{TimeOf(23, 0, 0, 0), Hour, 2, TimeOf(1, 0, 0, 0)},
		{TimeOf(0, 30, 0, 0), Minute, -61, TimeOf(23, 29, 0, 0)},
		{TimeOf(0, 0, 0, 0), Second, -1, TimeOf(23, 59, 59, 0)},
		{TimeOf(0, 0, 0, 0), Nanosecond, -1, TimeOf(23, 59, 59, 999_999_999)},
		{TimeOf(12, 0, 0, 0), Hour, 24 * 1_000_000, TimeOf(12, 0, 0, 0)},
		{TimeOf(12, 0, 0, 0), Nanosecond, 1<<63 - 1, TimeOfNano(12*nanosPerHour + (1<<63-1)%nanosPerDay)},
		{TimeOf(12, 0, 0, 0), Day, 5, TimeOf(12, 0, 0, 0)},
		{TimeOf(12, 0, 0, 0), Month, 5, TimeOf(12, 0, 0, 0)},
		{TimeOf(12, 0, 0, 0), Year, 5, TimeOf(12, 0, 0, 0)},
	}
	for _, tc := range tcs {
		if got := tc.t.Plus(tc.u, tc.v); got != tc.want {
			t.Errorf("%v.Plus(%v, %d) = %v, want %v", tc.t, tc.u, tc.v, got, tc.want)
		}
		if got := tc.want.Minus(tc.u, tc.v); tc.u.isClock() && got != tc.t {
			t.Errorf("%v.Minus(%v, %d) = %v, want %v", tc.want, tc.u, tc.v, got, tc.t)
		}
	}
}

func TestTimeWith(t *testing.T) {
	t.Parallel()
	tm := TimeOf(10, 20, 30, 40)
	tcs := []struct {
		u    Unit
		v    int64
		want Time
	}{
		{Hour, 5, TimeOf(5, 20, 30, 40)},
		{Hour, 24, TimeOf(0, 20, 30, 40)},
		{Minute, 60, TimeOf(11, 0, 30, 40)},
		{Second, 0, TimeOf(10, 20, 0, 40)},
		{Nanosecond, 999_999_999, TimeOf(10, 20, 30, 999_999_999)},
		{Day, 3, tm},
		{Month, 3, tm},
		{Year, 3, tm},
	}
	for _, tc := range tcs {
		if got := tm.With(tc.u, tc.v); got != tc.want {
			t.Errorf("%v.With(%v, %d) = %v, want %v", tm, tc.u, tc.v, got, tc.want)
		}
	}
}

func TestTimeUntil(t *testing.T) {
	t.Parallel()
	a, b := TimeOf(10, 0, 0, 0), TimeOf(12, 30, 0, 1)
	tcs := []struct {
		u    Unit
		want int64
	}{
		{Hour, 2},
		{Minute, 150},
		{Second, 9000},
		{Nanosecond, 9000*nanosPerSecond + 1},
		{Day, 0},
		{Month, 0},
		{Year, 0},
	}
	for _, tc := range tcs {
		if got := a.Until(b, tc.u); got != tc.want {
			t.Errorf("%v.Until(%v, %v) = %d, want %d", a, b, tc.u, got, tc.want)
		}
		if got := b.Until(a, tc.u); got != -tc.want {
			t.Errorf("%v.Until(%v, %v) = %d, want %d", b, a, tc.u, got, -tc.want)
		}
	}
}

func TestTimeRange(t *testing.T) {
	t.Parallel()
	tcs := []struct {
		u        Unit
		min, max int64
	}{
		{Hour, 0, 23},
		{Minute, 0, 59},
		{Second, 0, 59},
		{Nanosecond, 0, 999_999_999},
		{Day, 0, 0},
	}
	for _, tc := range tcs {
		if min, max := Midnight.Range(tc.u); min != tc.min || max != tc.max {
			t.Errorf("Range(%v) = %d, %d, want %d, %d", tc.u, min, max, tc.min, tc.max)
		}
	}
}

func TestTimeCompare(t *testing.T) {
	t.Parallel()
	a, b := TimeOf(9, 59, 59, 999_999_999), TimeOf(10, 0, 0, 0)
	if got := a.Compare(b); got != -1 {
		t.Errorf("%v.Compare(%v) = %d, want -1", a, b, got)
	}
	if got := b.Compare(a); got != 1 {
		t.Errorf("%v.Compare(%v) = %d, want 1", b, a, got)
	}
	if got := a.Compare(a); got != 0 {
		t.Errorf("%v.Compare(%v) = %d, want 0", a, a, got)
	}
}

// FuzzTimeOf checks that TimeOf normalizes the same way as time.Date.
func FuzzTimeOf(f *testing.F) {
	f.Add(13, 5, 7, 120_000_000)
	f.Add(-1, 0, 0, 0)
	f.Add(25, -61, 3601, -1)
	f.Fuzz(func(t *testing.T, hour, min, sec, nsec int) {
		const lim = 1 << 30
		if hour < -lim || hour > lim || min < -lim || min > lim || sec < -lim || sec > lim || nsec < -lim || nsec > lim {
			return
		}
		got := TimeOf(hour, min, sec, nsec)
		want := time.Date(2000, 1, 1, hour, min, sec, nsec, time.UTC)
		h, m, s := got.Clock()
		if wh, wm, ws := want.Clock(); h != wh || m != wm || s != ws || got.Nanosecond() != want.Nanosecond() {
			t.Errorf("TimeOf(%d, %d, %d, %d) = %v, want %v", hour, min, sec, nsec, got, want.Format(time.TimeOnly+".999999999"))
		}
	})
}
