// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"github.com/spf13/cobra"

	"gonih.org/civil"
)

// NowResult is the output of the now command.
type NowResult struct {
	Zoned  civil.Zoned  `json:"zoned"`
	Offset civil.Offset `json:"offset"`
	Auto   bool         `json:"auto"`
}

func (r NowResult) String() string {
	return r.Zoned.String()
}

func newNowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "now",
		Short: "Show the current date-time",
		Long: `Show the current date-time at the offset selected by --offset.

Without --offset, the host's local offset is used and followed across
changes such as daylight saving time transitions.`,
		Args:          exactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNow(rootOpts, cmd)
		},
	}
}

func runNow(opts *RootOptions, cmd *cobra.Command) error {
	z := civil.NowIn(opts.clock)
	_, auto := opts.clock.(civil.AutoClock)
	opts.log.Debug("read clock", "now", z, "auto", auto)

	return opts.formatter(cmd).Success(NowResult{
		Zoned:  z,
		Offset: z.Offset(),
		Auto:   auto,
	})
}
