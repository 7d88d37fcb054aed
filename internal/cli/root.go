// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli implements the civil command line tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"gonih.org/civil"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Offset  string // "+hh:mm", "Z" or "local"
	Config  string // explicit config file

	v     *viper.Viper
	log   *slog.Logger
	clock civil.Clock
}

// Config is the result of merging flags, CIVIL_* environment variables and
// the config file, in that order of precedence.
type Config struct {
	Verbose bool   `mapstructure:"verbose"`
	Format  string `mapstructure:"format"`
	Offset  string `mapstructure:"offset"`
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the civil CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	opts.v = viper.New()

	cmd := &cobra.Command{
		Use:   "civil",
		Short: "Calendar and wall clock arithmetic",
		Long: `civil does arithmetic on proleptic Gregorian dates, wall clock times and
fixed UTC offsets.

Defaults for the global flags are read from CIVIL_* environment variables
and from .civil.yaml in the working or home directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd.ErrOrStderr())
		},
	}
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid flags", err)
	})

	// Global flags
	flags := cmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	flags.StringVar(&opts.Offset, "offset", "", `UTC offset for zoned output, e.g. "+02:00" (default: follow the local offset)`)
	flags.StringVar(&opts.Config, "config", "", "config file (default .civil.yaml)")
	for _, name := range []string{"verbose", "format", "offset"} {
		bindFlag(opts.v, flags, name)
	}

	// Add subcommands
	cmd.AddCommand(newDateCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newUntilCommand(opts))
	cmd.AddCommand(newInstantCommand(opts))
	cmd.AddCommand(newNowCommand(opts))

	return cmd
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, name string) {
	if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
		panic(err)
	}
}

// load merges flags, environment and config file and sets up logging and
// the clock.
func (o *RootOptions) load(stderr io.Writer) error {
	v := o.v
	if o.Config != "" {
		v.SetConfigFile(o.Config)
	} else {
		v.SetConfigName(".civil")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix("CIVIL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing default config file is fine; we use defaults.
		var notFound viper.ConfigFileNotFoundError
		if o.Config != "" || !errors.As(err, &notFound) {
			return WrapExitError(ExitUsage, "reading config", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return WrapExitError(ExitUsage, "decoding config", err)
	}
	o.Verbose, o.Format, o.Offset = cfg.Verbose, cfg.Format, cfg.Offset

	if !slices.Contains(ValidFormats, o.Format) {
		return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if f := v.ConfigFileUsed(); f != "" {
		o.log.Debug("loaded config", "file", f)
	}

	clock, err := parseClock(o.Offset)
	if err != nil {
		return err
	}
	o.clock = clock
	o.log.Debug("using clock", "offset", clock.Offset(), "auto", o.Offset == "" || o.Offset == "local")
	return nil
}

// parseClock returns the clock for an --offset value. The empty string and
// "local" follow the host's local offset.
func parseClock(s string) (civil.Clock, error) {
	if s == "" || s == "local" {
		return civil.Local(), nil
	}
	off, err := civil.ParseOffset(s)
	if err != nil {
		return nil, WrapExitError(ExitUsage, "invalid offset", err)
	}
	return off, nil
}

// formatter returns the OutputFormatter for the options.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}
}

// Execute runs the civil command line with the given arguments and returns
// the exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &RootOptions{}
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}
	code := GetExitCode(err)
	if !slices.Contains(ValidFormats, opts.Format) {
		opts.Format = "text"
	}
	if ferr := opts.formatter(cmd).Error(code, err); ferr != nil {
		fmt.Fprintln(stderr, "civil:", ferr)
	}
	return code
}

// exactArgs is cobra.ExactArgs, reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return usageArgs(cobra.ExactArgs(n))
}

// rangeArgs is cobra.RangeArgs, reporting a usage error.
func rangeArgs(min, max int) cobra.PositionalArgs {
	return usageArgs(cobra.RangeArgs(min, max))
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return WrapExitError(ExitUsage, "invalid arguments", err)
		}
		return nil
	}
}
