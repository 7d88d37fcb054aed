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

// AddResult is the output of the add command.
type AddResult struct {
	Start  string       `json:"start"`
	Period civil.Period `json:"period"`
	Result string       `json:"result"`
}

func (r AddResult) String() string {
	return fmt.Sprintf("%s + %v = %s", r.Start, r.Period, r.Result)
}

func newAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add DATETIME PERIOD",
		Short: "Add an ISO 8601 period to a date or date-time",
		Long: `Add an ISO 8601 period to a date, a date-time or a date-time with offset.

Every field of the period is added to the corresponding field and the
result is normalized, so 2024-01-31 plus P1M is 2024-03-02. The offset of
a zoned value is kept.`,
		Example: `  civil add 2024-01-31 P1M
  civil add 2024-01-31T12:00:00 P1MT13H
  civil add 2024-05-14T08:00:00+02:00 PT20H`,
		Args:          exactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args, cmd)
		},
	}
}

func runAdd(opts *RootOptions, args []string, cmd *cobra.Command) error {
	start, err := parsePoint(args[0])
	if err != nil {
		return err
	}
	p, err := civil.ParsePeriod(args[1])
	if err != nil {
		return WrapExitError(ExitUsage, "invalid period", err)
	}
	opts.log.Debug("adding period", "start", start, "period", p)

	return opts.formatter(cmd).Success(AddResult{
		Start:  start.String(),
		Period: p,
		Result: start.addPeriod(p).String(),
	})
}
