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

// InstantResult is the output of the instant command.
type InstantResult struct {
	Instant    civil.Instant `json:"instant"`
	Zoned      civil.Zoned   `json:"zoned"`
	EpochMilli int64         `json:"epoch_milli"`
}

func (r InstantResult) String() string {
	return fmt.Sprintf("%v (%v)", r.Zoned, r.Instant)
}

func newInstantCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "instant SECONDS [NANOS]",
		Short: "Show a Unix time as a date-time",
		Long: `Show a Unix time, given in seconds and optional nanoseconds, as a
date-time at the offset selected by --offset. Nanoseconds outside of
[0, 999999999] carry into the seconds.`,
		Example: `  civil instant 1700000000
  civil instant --offset +05:30 1700000000 500
  civil instant -- -1`,
		Args:          rangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstant(rootOpts, args, cmd)
		},
	}
}

func runInstant(opts *RootOptions, args []string, cmd *cobra.Command) error {
	sec, err := parseInt64("seconds", args[0])
	if err != nil {
		return err
	}
	var nsec int64
	if len(args) > 1 {
		if nsec, err = parseInt64("nanoseconds", args[1]); err != nil {
			return err
		}
	}
	i := civil.Unix(sec, nsec)
	off := opts.clock.Offset()
	opts.log.Debug("converting instant", "instant", i, "offset", off)

	return opts.formatter(cmd).Success(InstantResult{
		Instant:    i,
		Zoned:      i.In(off),
		EpochMilli: i.UnixMilli(),
	})
}
