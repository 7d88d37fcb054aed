// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gonih.org/civil"
)

// periodUnit selects PeriodUntil instead of counting a single unit.
const periodUnit = "period"

// UntilOptions holds flags for the until command.
type UntilOptions struct {
	Unit string
}

// UntilResult is the output of the until command. Exactly one of Amount and
// Period is set.
type UntilResult struct {
	Start  string        `json:"start"`
	End    string        `json:"end"`
	Unit   string        `json:"unit"`
	Amount *int64        `json:"amount,omitempty"`
	Period *civil.Period `json:"period,omitempty"`
}

func (r UntilResult) String() string {
	if r.Period != nil {
		return fmt.Sprintf("from %s to %s: %v", r.Start, r.End, *r.Period)
	}
	unit := r.Unit
	if n := *r.Amount; n != 1 && n != -1 {
		unit += "s"
	}
	return fmt.Sprintf("from %s to %s: %d %s", r.Start, r.End, *r.Amount, unit)
}

func newUntilCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UntilOptions{}

	cmd := &cobra.Command{
		Use:   "until START END",
		Short: "Measure the time between two dates or date-times",
		Long: `Measure the time between two dates or date-times.

With --unit, only whole units are counted; the result is negative if END
is before START. "--unit period" shows the years, months, days and clock
fields between them instead. Values with an offset are compared as
instants and can not be mixed with values without one.`,
		Example: `  civil until 2024-01-01 2024-12-25
  civil until --unit hours 2024-01-01T10:00:00 2024-01-03T09:00:00
  civil until --unit period 2024-01-31 2024-03-01`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUntil(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Unit, "unit", "u", "day", `unit to count (nanosecond ... year), or "period"`)
	return cmd
}

func runUntil(rootOpts *RootOptions, opts *UntilOptions, args []string, cmd *cobra.Command) error {
	start, err := parsePoint(args[0])
	if err != nil {
		return err
	}
	end, err := parsePoint(args[1])
	if err != nil {
		return err
	}
	if (start.kind == kindZoned) != (end.kind == kindZoned) {
		return NewExitError(ExitUsage, fmt.Sprintf("can not compare %q and %q: only one has an offset", args[0], args[1]))
	}
	zoned := start.kind == kindZoned

	res := UntilResult{
		Start: start.String(),
		End:   end.String(),
	}
	if opts.Unit == periodUnit {
		var p civil.Period
		if zoned {
			p = start.zoned().PeriodUntil(end.zoned())
		} else {
			p = start.dt.PeriodUntil(end.dt)
		}
		res.Unit, res.Period = periodUnit, &p
	} else {
		u, ok := civil.ParseUnit(opts.Unit)
		if !ok {
			return NewExitError(ExitUsage, fmt.Sprintf("invalid unit %q", opts.Unit))
		}
		var n int64
		if zoned {
			n = start.zoned().Until(end.zoned(), u)
		} else {
			n = start.dt.Until(end.dt, u)
		}
		res.Unit, res.Amount = u.String(), &n
	}
	rootOpts.log.Debug("measured span", "start", start, "end", end, "unit", res.Unit, "zoned", zoned)

	return rootOpts.formatter(cmd).Success(res)
}
