package main

import (
	"os"
	"time"

	"github.com/kalam635/Hashassin-Rainbow-Table-Generator/rainbow"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Copyright © 2025 Kalam Uddin. Licensed under the Apache-2.0 license.
// This program is the command-line surface of the rainbow-table pipeline: It wires the
// generate, dump, and crack subcommands to the library packages, owns logging setup and exit
// codes, and validates arguments so the core only ever sees well-formed values.

const success, failure, invalid = 0, 1, 2

var (
	pThreads int
	pQuiet   bool
	pVerbose bool
)

var root = &cobra.Command{
	Use:           "hashassin",
	Short:         "Generate, hash, and crack passwords with rainbow tables.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		level := zerolog.InfoLevel
		if pQuiet {
			level = zerolog.ErrorLevel
		} else if pVerbose {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.TimeOnly,
			NoColor:    pNoCodes,
		}).Level(level).With().Timestamp().Logger()
		rainbow.SetLogger(logger)
		log = logger
	},
}

var log = zerolog.Nop()

// pNoCodes disables console formatting; init0.go flips it on windows terminals that cannot
// process VT sequences.
var pNoCodes bool

func main() { os.Exit(program()) }

func program() int {
	root.PersistentFlags().IntVar(&pThreads, "threads", 1, "worker thread count")
	root.PersistentFlags().BoolVarP(&pQuiet, "quiet", "q", false, "log errors only")
	root.PersistentFlags().BoolVarP(&pVerbose, "verbose", "v", false, "log per-target debug detail")

	if err := root.Execute(); err != nil {
		log.Error().Msg(err.Error())
		if isUsageError(err) {
			return invalid
		}
		return failure
	}
	return success
}
