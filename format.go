// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package civil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gonih.org/civil/internal/layout"
)

// These are predefined layouts for use in the Format methods and the Parse
// functions. The reference date used in these layouts is the specific time:
//
//	Mon Jan 2 15:04:05 MST 2006
//
// The date part of it is recorded as the constant named [Layout], listed
// below. The reference is chosen for compatibility with package [time].
//
// The layout syntax works the same as [time.Layout], but only a subset
// of its components is recognized. Everything else is treated as a literal.
// Specifically, the recognized components are
//
//	Year: "2006" "06"
//	Month: "Jan" "January" "01" "1"
//	Day of the week: "Mon" "Monday"
//	Day of the month: "2" "_2", "02"
//	Day of the year: "__2" "002"
//	Hour: "15"
//	Minute: "04"
//	Second: "05"
//	Fraction of a second: ".000000000" (fixed) ".999999999" (trailing zeros removed)
//	Offset: "Z07:00"
//
// Unlike package time, "2006" formats years beyond 9999 with a leading "+",
// as ISO 8601 requires for expanded years, and accepts a leading sign when
// parsing. Offsets with a non-zero seconds component are formatted with an
// additional ":05" suffix.
const (
	Layout          = "01/02 '06" // The reference date, in numerical order
	RFC822          = "02 Jan 06"
	RFC1123         = "02 Jan 2006"
	RFC3339         = "2006-01-02"
	RFC3339Time     = "15:04:05.999999999"
	RFC3339DateTime = RFC3339 + "T" + RFC3339Time
	RFC3339Zoned    = RFC3339DateTime + "Z07:00"
)

var longDayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

var shortDayNames = []string{
	"Sun",
	"Mon",
	"Tue",
	"Wed",
	"Thu",
	"Fri",
	"Sat",
}

var shortMonthNames = []string{
	"Jan",
	"Feb",
	"Mar",
	"Apr",
	"May",
	"Jun",
	"Jul",
	"Aug",
	"Sep",
	"Oct",
	"Nov",
	"Dec",
}

var longMonthNames = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// fields are the civil fields exchanged with the layout engine.
type fields struct {
	year    int
	month   time.Month
	day     int
	yday    int // 1-based
	weekday time.Weekday
	hour    int
	min     int
	sec     int
	nsec    int
	off     Offset
}

func (f *fields) setDate(d Date) {
	f.year, f.month, f.day = d.Date()
	f.yday = d.YearDay()
	f.weekday = d.Weekday()
}

func (f *fields) setTime(t Time) {
	f.hour, f.min, f.sec = t.Clock()
	f.nsec = t.Nanosecond()
}

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See the documentation for
// the constant called Layout to see how to represent the layout format.
//
// Clock components format as midnight and the offset as UTC.
func (d Date) Format(layout string) string {
	return formatString(layout, d.AppendFormat)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (d Date) AppendFormat(b []byte, layout string) []byte {
	var f fields
	f.setDate(d)
	return appendFormat(b, layout, &f)
}

// Format returns a textual representation of t formatted according to
// layout. Date components format as 0000-01-01 and the offset as UTC.
func (t Time) Format(layout string) string {
	return formatString(layout, t.AppendFormat)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (t Time) AppendFormat(b []byte, layout string) []byte {
	var f fields
	f.setDate(Of(0, time.January, 1))
	f.setTime(t)
	return appendFormat(b, layout, &f)
}

// Format returns a textual representation of dt formatted according to
// layout. The offset formats as UTC.
func (dt DateTime) Format(layout string) string {
	return formatString(layout, dt.AppendFormat)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (dt DateTime) AppendFormat(b []byte, layout string) []byte {
	var f fields
	f.setDate(dt.date)
	f.setTime(dt.time)
	return appendFormat(b, layout, &f)
}

// Format returns a textual representation of z formatted according to layout.
func (z Zoned) Format(layout string) string {
	return formatString(layout, z.AppendFormat)
}

// AppendFormat is like Format but appends the textual representation to b and
// returns the extended buffer.
func (z Zoned) AppendFormat(b []byte, layout string) []byte {
	f := fields{off: z.off}
	f.setDate(z.dt.date)
	f.setTime(z.dt.time)
	return appendFormat(b, layout, &f)
}

func formatString(layout string, appendFormat func([]byte, string) []byte) string {
	const bufSize = 64
	var b []byte
	max := len(layout) + 10
	if max < bufSize {
		var buf [bufSize]byte
		b = buf[:0]
	} else {
		b = make([]byte, 0, max)
	}
	return string(appendFormat(b, layout))
}

func appendFormat(b []byte, l string, f *fields) []byte {
	for _, i := range layout.Compile(l) {
		switch i.Op {
		case layout.Literal:
			b = append(b, i.Lit...)
		case layout.Year:
			y := int64(f.year) % 100
			if y < 0 {
				y = -y
			}
			b = appendInt(b, y, 2)
		case layout.UnderLongYear:
			b = append(b, '_')
			fallthrough
		case layout.LongYear:
			y := int64(f.year)
			if y < 0 {
				b = append(b, '-')
				y = -y
			} else if y > 9999 {
				b = append(b, '+')
			}
			b = appendInt(b, y, 4)
		case layout.Month:
			b = append(b, f.month.String()[:3]...)
		case layout.LongMonth:
			b = append(b, f.month.String()...)
		case layout.NumMonth:
			b = appendInt(b, int64(f.month), 0)
		case layout.ZeroMonth:
			b = appendInt(b, int64(f.month), 2)
		case layout.WeekDay:
			b = append(b, f.weekday.String()[:3]...)
		case layout.LongWeekDay:
			b = append(b, f.weekday.String()...)
		case layout.Day:
			b = appendInt(b, int64(f.day), 0)
		case layout.UnderDay:
			if f.day < 10 {
				b = append(b, ' ')
			}
			b = appendInt(b, int64(f.day), 0)
		case layout.ZeroDay:
			b = appendInt(b, int64(f.day), 2)
		case layout.UnderYearDay:
			if f.yday < 100 {
				b = append(b, ' ')
				if f.yday < 10 {
					b = append(b, ' ')
				}
			}
			b = appendInt(b, int64(f.yday), 0)
		case layout.ZeroYearDay:
			b = appendInt(b, int64(f.yday), 3)
		case layout.Hour:
			b = appendInt(b, int64(f.hour), 2)
		case layout.ZeroMinute:
			b = appendInt(b, int64(f.min), 2)
		case layout.ZeroSecond:
			b = appendInt(b, int64(f.sec), 2)
		case layout.Nano:
			b = append(b, '.')
			b = appendInt(b, int64(f.nsec), 9)
		case layout.Frac:
			b = appendFrac(b, f.nsec)
		case layout.ISOOffset:
			b = appendOffset(b, f.off, true)
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
	}
	return b
}

// appendInt appends the decimal form of v, zero-padded to width digits.
// v must not be negative.
func appendInt(b []byte, v int64, width int) []byte {
	for w, n := 1, v; w < width; w++ {
		if n /= 10; n == 0 {
			b = append(b, '0')
		}
	}
	return strconv.AppendInt(b, v, 10)
}

// appendFrac appends a fraction of a second with trailing zeros removed. It
// appends nothing for zero.
func appendFrac(b []byte, nsec int) []byte {
	if nsec == 0 {
		return b
	}
	digits := 9
	for nsec%10 == 0 {
		nsec /= 10
		digits--
	}
	b = append(b, '.')
	return appendInt(b, int64(nsec), digits)
}

// appendOffset appends o as ±hh:mm, or ±hh:mm:ss if it has a seconds
// component. If z is set, a zero offset is written as "Z".
func appendOffset(b []byte, o Offset, z bool) []byte {
	if o == 0 && z {
		return append(b, 'Z')
	}
	s := int64(o)
	if s < 0 {
		b = append(b, '-')
		s = -s
	} else {
		b = append(b, '+')
	}
	b = appendInt(b, s/3600, 2)
	b = append(b, ':')
	b = appendInt(b, s/60%60, 2)
	if s%60 != 0 {
		b = append(b, ':')
		b = appendInt(b, s%60, 2)
	}
	return b
}

// Parse parses a formatted string and returns the date value it represents.
// See the documentation for the constant called Layout to see how to represent
// the format. The second argument must be parseable using the format string
// (layout) provided as the first argument.
//
// Elements omitted from the layout are assumed to be zero or, when zero is
// impossible, one. Unsigned years must be in the range 0000…9999. The day of
// the week is checked for syntax but is otherwise ignored. Clock and offset
// components are validated, but ignored.
//
// For layouts specifying the two-digit year 06, a value NN >= 69 will be
// treated as 19NN and a value NN < 69 will be treated as 20NN.
func Parse(layout, value string) (Date, error) {
	f, err := parse(layout, value)
	if err != nil {
		return 0, err
	}
	return Of(f.year, f.month, f.day), nil
}

// ParseTime is like Parse, but returns the time of day.
func ParseTime(layout, value string) (Time, error) {
	f, err := parse(layout, value)
	if err != nil {
		return 0, err
	}
	return TimeOf(f.hour, f.min, f.sec, f.nsec), nil
}

// ParseDateTime is like Parse, but returns the date and time of day.
func ParseDateTime(layout, value string) (DateTime, error) {
	f, err := parse(layout, value)
	if err != nil {
		return DateTime{}, err
	}
	return DateTimeOf(f.year, f.month, f.day, f.hour, f.min, f.sec, f.nsec), nil
}

// ParseZoned is like ParseDateTime, but also returns the parsed offset. If
// the layout has no offset component, the offset is UTC.
func ParseZoned(layout, value string) (Zoned, error) {
	f, err := parse(layout, value)
	if err != nil {
		return Zoned{}, err
	}
	return ZonedOf(DateTimeOf(f.year, f.month, f.day, f.hour, f.min, f.sec, f.nsec), f.off), nil
}

// ParseOffset parses an offset in the form returned by Offset.String. "Z" is
// accepted for UTC.
func ParseOffset(value string) (Offset, error) {
	p := newParser(value)
	p.setInst(layout.Inst{Op: layout.ISOOffset})
	o := p.offset()
	if p.hasErr {
		return 0, p.err("Z07:00", value, "")
	}
	if len(p.value) > 0 {
		return 0, p.err("Z07:00", value, "extra text: "+strconv.Quote(p.value))
	}
	return o, nil
}

func parse(l, value string) (fields, error) {
	p := newParser(value)
	var (
		// kept around for error reporting
		alayout, avalue = l, value
		f               fields
		month           int = -1
		day             int = -1
		yday            int = -1
	)

	// Execute the parsing instructions
	for _, i := range layout.Compile(l) {
		p.setInst(i)
		switch i.Op {
		case layout.Literal:
			p.accept(i.Lit)
		case layout.Year:
			f.year = p.atoi(2)
			if f.year >= 69 { // Unix time starts Dec 31 1969 in some time zones
				f.year += 1900
			} else {
				f.year += 2000
			}
		case layout.UnderLongYear:
			p.accept("_")
			fallthrough
		case layout.LongYear:
			f.year = p.longYear()
		case layout.Month:
			month = p.lookup(shortMonthNames) + 1
		case layout.LongMonth:
			month = p.lookup(longMonthNames) + 1
		case layout.NumMonth, layout.ZeroMonth:
			month = p.num(i.Op == layout.ZeroMonth)
			if !p.hasErr && (month <= 0 || 12 < month) {
				return fields{}, p.err(alayout, avalue, "month out of range")
			}
		case layout.WeekDay:
			// ignore weekday, except for parsing
			p.lookup(shortDayNames)
		case layout.LongWeekDay:
			// ignore weekday, except for parsing
			p.lookup(longDayNames)
		case layout.UnderDay:
			p.skipByte(' ')
			fallthrough
		case layout.Day, layout.ZeroDay:
			day = p.num(i.Op == layout.ZeroDay)
		case layout.UnderYearDay:
			p.skipByte(' ')
			p.skipByte(' ')
			fallthrough
		case layout.ZeroYearDay:
			yday = p.num3(i.Op == layout.ZeroYearDay)
		case layout.Hour:
			f.hour = p.num(false)
			if !p.hasErr && f.hour >= 24 {
				return fields{}, p.err(alayout, avalue, "hour out of range")
			}
		case layout.ZeroMinute:
			f.min = p.num(true)
			if !p.hasErr && f.min >= 60 {
				return fields{}, p.err(alayout, avalue, "minute out of range")
			}
		case layout.ZeroSecond:
			f.sec = p.num(true)
			if !p.hasErr && f.sec >= 60 {
				return fields{}, p.err(alayout, avalue, "second out of range")
			}
		case layout.Nano:
			f.nsec = p.frac(true)
		case layout.Frac:
			f.nsec = p.frac(false)
		case layout.ISOOffset:
			f.off = p.offset()
		default:
			panic(errors.New("invalid inst " + i.String()))
		}
		if p.hasErr {
			return fields{}, p.err(alayout, avalue, "")
		}
	}
	if len(p.value) > 0 {
		return fields{}, p.err(alayout, avalue, "extra text: "+strconv.Quote(p.value))
	}
	p.finish()

	// Validate the parsed date
	if yday >= 0 {
		var (
			d int
			m int
		)
		if IsLeap(f.year) {
			if yday == 31+29 {
				m = int(time.February)
				d = 29
			} else if yday > 31+29 {
				yday--
			}
		}
		if yday < 1 || yday > 365 {
			return fields{}, p.err(alayout, avalue, "day-of-year out of range")
		}
		if m == 0 {
			m = (yday-1)/31 + 1
			if daysBefore[m] < yday {
				m++
			}
			d = yday - daysBefore[m-1]
		}
		// If month, day already seen, yday's m, d must match.
		// Otherwise, set them from m, d.
		if month >= 0 && month != m {
			return fields{}, p.err(alayout, avalue, "day-of-year does not match month")
		}
		month = m
		if day >= 0 && day != d {
			return fields{}, p.err(alayout, avalue, "day-of-year does not match day")
		}
		day = d
	} else {
		if month < 0 {
			month = int(time.January)
		}
		if day < 0 {
			day = 1
		}
	}
	// Validate the day of the month.
	if day < 1 || day > DaysIn(time.Month(month), f.year) {
		return fields{}, p.err(alayout, avalue, "day out of range")
	}
	f.month, f.day = time.Month(month), day
	return f, nil
}

// match reports whether s1 and s2 match ignoring case.
// It is assumed s1 and s2 are the same length.
func match(s1, s2 string) bool {
	for i := 0; i < len(s1); i++ {
		c1 := s1[i]
		c2 := s2[i]
		if c1 != c2 {
			// Switch to lower-case; 'a'-'A' is known to be a single bit.
			c1 |= 'a' - 'A'
			c2 |= 'a' - 'A'
			if c1 != c2 || c1 < 'a' || c1 > 'z' {
				return false
			}
		}
	}
	return true
}

func isDigit(s string, i int) bool {
	if len(s) <= i {
		return false
	}
	return '0' <= s[i] && s[i] <= '9'
}

type parser struct {
	inst   layout.Inst
	hasErr bool
	value  string
	valEl  string
}

func newParser(value string) *parser {
	return &parser{
		value: value,
	}
}

// setInst sets the current instruction and input offset for error reporting.
func (p *parser) setInst(i layout.Inst) {
	p.inst = i
	p.valEl = p.value
}

// finish signals that parsing is finished and the parser is only being kept
// around for error reporting.
func (p *parser) finish() {
	p.inst = layout.Inst{Op: layout.Invalid}
	p.valEl = ""
}

// parseFailed signals that the parse has failed at the current instruction.
func (p *parser) parseFailed() {
	p.hasErr = true
}

func (p *parser) err(layout, value, msg string) error {
	// We call strings.Clone in this function to prevent Parse from allocating
	// in the happy path. As parts of the input appear in the error message,
	// the compiler has to mark the value argument to Parse as potentially
	// escaping. Cloning them here means the input itself never escapes. This
	// means we save an allocation in the happy path, at the cost of an extra
	// allocation in the sad path.
	v := strings.Clone(value)
	if msg == "" {
		ve := strings.Clone(p.valEl)
		le := strings.Clone(p.inst.String())
		return &ParseError{
			Layout:     layout,
			Value:      v,
			LayoutElem: le,
			ValueElem:  ve,
		}
	}
	return &ParseError{
		Layout:  layout,
		Value:   v,
		Message: msg,
	}
}

// skipByte skips the given byte, if the input starts with it.
func (p *parser) skipByte(b byte) {
	if len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// trimByte skips a run of the given byte.
func (p *parser) trimByte(b byte) {
	for len(p.value) > 0 && p.value[0] == b {
		p.value = p.value[1:]
	}
}

// accept a literal string, treating runs of space characters as equivalent.
func (p *parser) accept(lit string) {
	for len(lit) > 0 {
		if lit[0] == ' ' {
			if p.value != "" && p.value[0] != ' ' {
				p.parseFailed()
				return
			}
			p.trimByte(' ')
			lit = strings.TrimLeft(lit, " ")
			continue
		}
		if p.value == "" || p.value[0] != lit[0] {
			p.parseFailed()
			return
		}
		lit, p.value = lit[1:], p.value[1:]
	}
}

// atoi accepts the next i bytes of input as an integer.
func (p *parser) atoi(i int) int {
	if len(p.value) < i {
		p.parseFailed()
		return 0
	}
	v, err := strconv.Atoi(p.value[:i])
	if err != nil {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return v
}

// longYear accepts a four digit year, or a signed year of at least four
// digits.
func (p *parser) longYear() int {
	if len(p.value) == 0 || (p.value[0] != '-' && p.value[0] != '+') {
		p.peekDigit()
		return p.atoi(4)
	}
	neg := p.value[0] == '-'
	p.value = p.value[1:]
	n := 0
	for isDigit(p.value, n) {
		n++
	}
	if n < 4 {
		p.parseFailed()
		return 0
	}
	y := p.atoi(n)
	if neg {
		y = -y
	}
	return y
}

// getnumN parses s[0:1], …, or s[0:N] (fixed forces s[0:N])
// as a decimal integer.
func (p *parser) getnumN(N int, fixed bool) int {
	var n, i int
	for i = 0; i < N && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i == 0 || (fixed && i != N) {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	return n
}

// num parses s[:1] or s[:2] (fixed forces s[:2]) as a decimal integer.
func (p *parser) num(fixed bool) int {
	return p.getnumN(2, fixed)
}

// num3 parses s[:1], s[:2] or s[:3] (fixed forces s[:3]) as a decimal integer.
func (p *parser) num3(fixed bool) int {
	return p.getnumN(3, fixed)
}

// frac parses a fraction of a second as nanoseconds. If fixed is set, the
// fraction must have exactly nine digits. Otherwise, it may have up to nine
// digits, or be omitted entirely.
func (p *parser) frac(fixed bool) int {
	if !fixed && (len(p.value) == 0 || p.value[0] != '.') {
		return 0
	}
	if len(p.value) < 2 || p.value[0] != '.' {
		p.parseFailed()
		return 0
	}
	p.value = p.value[1:]
	var n, i int
	for i = 0; i < 9 && isDigit(p.value, i); i++ {
		n = n*10 + int(p.value[i]-'0')
	}
	if i == 0 || (fixed && i != 9) {
		p.parseFailed()
		return 0
	}
	p.value = p.value[i:]
	for ; i < 9; i++ {
		n *= 10
	}
	return n
}

// offset parses "Z" or ±hh:mm with an optional :ss suffix.
func (p *parser) offset() Offset {
	if len(p.value) > 0 && p.value[0] == 'Z' {
		p.value = p.value[1:]
		return 0
	}
	if len(p.value) == 0 || (p.value[0] != '+' && p.value[0] != '-') {
		p.parseFailed()
		return 0
	}
	neg := p.value[0] == '-'
	p.value = p.value[1:]
	hh := p.num(true)
	p.accept(":")
	mm := p.num(true)
	var ss int
	if len(p.value) > 0 && p.value[0] == ':' {
		p.value = p.value[1:]
		ss = p.num(true)
	}
	if p.hasErr || hh >= 24 || mm >= 60 || ss >= 60 {
		p.parseFailed()
		return 0
	}
	o := OffsetOf(hh, mm, ss)
	if neg {
		o = -o
	}
	return o
}

// peekDigit ensures that the current value starts with a digit, without
// advancing the input.
func (p *parser) peekDigit() {
	if !isDigit(p.value, 0) {
		p.parseFailed()
	}
}

// lookup a value from a table and accept a case-insensitive match.
func (p *parser) lookup(table []string) int {
	for i, v := range table {
		if len(p.value) >= len(v) && match(p.value[0:len(v)], v) {
			p.value = p.value[len(v):]
			return i
		}
	}
	p.parseFailed()
	return 0
}

// ParseError describes a problem parsing a civil value.
type ParseError struct {
	Layout     string
	Value      string
	LayoutElem string
	ValueElem  string
	Message    string
}

// Error returns the string representation of a ParseError.
func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("parsing time %q as %q: cannot parse %q as %q", e.Value, e.Layout, e.ValueElem, e.LayoutElem)
	}
	return fmt.Sprintf("parsing time %q: %s", e.Value, e.Message)
}
