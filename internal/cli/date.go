// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gonih.org/civil"
)

// DateResult is the output of the date command.
type DateResult struct {
	Date     civil.Date `json:"date"`
	EpochDay int64      `json:"epoch_day"`
	Weekday  string     `json:"weekday"`
	YearDay  int        `json:"year_day"`
	Leap     bool       `json:"leap"`
}

func (r DateResult) String() string {
	return fmt.Sprintf("%v %s (epoch day %d, day %d of the year)", r.Date, r.Weekday, r.EpochDay, r.YearDay)
}

func newDateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "date YEAR MONTH DAY",
		Short: "Normalize a date and show its epoch day",
		Long: `Normalize a date and show its epoch day and day of the week.

Out of range months and days carry into the next larger field, so
"2023 12 40" is 2024-01-09. Use -- before negative years.`,
		Example: `  civil date 2024 2 29
  civil date -- -44 3 15`,
		Args:          exactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDate(rootOpts, args, cmd)
		},
	}
}

func runDate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	year, err := parseInt("year", args[0])
	if err != nil {
		return err
	}
	month, err := parseInt("month", args[1])
	if err != nil {
		return err
	}
	day, err := parseInt("day", args[2])
	if err != nil {
		return err
	}
	d := civil.Of(year, time.Month(month), day)
	opts.log.Debug("normalized date", "year", year, "month", month, "day", day, "date", d)

	return opts.formatter(cmd).Success(DateResult{
		Date:     d,
		EpochDay: d.EpochDay(),
		Weekday:  d.Weekday().String(),
		YearDay:  d.YearDay(),
		Leap:     d.IsLeap(),
	})
}
