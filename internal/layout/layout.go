// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout compiles time-style layout strings into a sequence of
// formatting instructions.
//
// The reference values are the ones used by package time:
//
//	Year: "2006" "06" "_2006"
//	Month: "Jan" "January" "01" "1"
//	Day of the week: "Mon" "Monday"
//	Day of the month: "2" "_2", "02"
//	Day of the year: "__2" "002"
//	Hour: "15"
//	Minute: "04"
//	Second: "05"
//	Fraction of a second: ".000000000" ".999999999"
//	Offset: "Z07:00"
//
// Everything else is a literal.
package layout

import "strings"

// Op is a formatting operator.
type Op int

const (
	Literal Op = iota

	// Sorted by parsing preference, do not re-order!
	LongMonth
	Month
	LongWeekDay
	WeekDay
	ZeroYearDay
	ZeroMonth
	ZeroDay
	Year
	Hour
	NumMonth
	LongYear
	Day
	UnderLongYear // package time treats this as "_"+LongYear, but it is simpler to just handle it with an extra opcode
	UnderDay
	UnderYearDay
	ZeroMinute
	ZeroSecond
	Nano
	Frac
	ISOOffset

	Invalid
)

// String implements fmt.Stringer. Except for Literal, it returns the layout
// component of the operator.
func (op Op) String() string {
	switch op {
	case Literal:
		return "<literal>"
	case LongMonth:
		return "January"
	case Month:
		return "Jan"
	case LongWeekDay:
		return "Monday"
	case WeekDay:
		return "Mon"
	case ZeroYearDay:
		return "002"
	case ZeroMonth:
		return "01"
	case ZeroDay:
		return "02"
	case Year:
		return "06"
	case Hour:
		return "15"
	case NumMonth:
		return "1"
	case LongYear:
		return "2006"
	case Day:
		return "2"
	case UnderLongYear:
		return "_2006"
	case UnderDay:
		return "_2"
	case UnderYearDay:
		return "__2"
	case ZeroMinute:
		return "04"
	case ZeroSecond:
		return "05"
	case Nano:
		return ".000000000"
	case Frac:
		return ".999999999"
	case ISOOffset:
		return "Z07:00"
	}
	panic("invalid layout.Op")
}

// endsWord returns whether op must be a full word, that is must not be
// followed by a lower-case letter.
func (op Op) endsWord() bool {
	return op == Month || op == WeekDay
}

// Inst is a single component of a layout string, either a literal string, or
// a formatting operator.
type Inst struct {
	Op  Op
	Lit string
}

// String implements fmt.Stringer, for debugging
func (i Inst) String() string {
	if i.Op == Literal {
		return i.Lit
	}
	return i.Op.String()
}

// memo holds compiled layout strings.
var memo cache

// Compile returns the instructions to parse or format according to layout.
// Results are memoized and must not be modified.
func Compile(layout string) []Inst {
	return memo.get(layout, compile)
}

func compile(layout string) []Inst {
	var prog []Inst
	for len(layout) > 0 {
		prefix, op, suffix := nextOp(layout)
		if prefix != "" {
			prog = append(prog, Inst{Lit: prefix})
		}
		if op != Literal {
			prog = append(prog, Inst{Op: op})
		}
		layout = suffix
	}
	return prog
}

// nextOp decomposes layout into the next operator, a literal prefix and the
// rest of the layout.
func nextOp(layout string) (prefix string, op Op, suffix string) {
	for i := 0; i < len(layout); i++ {
		for op := LongMonth; op < Invalid; op++ {
			suffix, ok := strings.CutPrefix(layout[i:], op.String())
			if !ok {
				continue
			}
			if op.endsWord() && startsWithLowerCase(suffix) {
				continue
			}
			return layout[:i], op, suffix
		}
	}
	return layout, Literal, ""
}

// startsWithLowerCase reports whether the string has a lower-case letter at
// the beginning. Its purpose is to prevent matching strings like "Month" when
// looking for "Mon".
func startsWithLowerCase(s string) bool {
	return len(s) > 0 && 'a' <= s[0] && s[0] <= 'z'
}
