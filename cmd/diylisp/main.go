package main

import (
	"os"

	"github.com/jpschroeder/diylisp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

type rootOptions struct {
	logLevel  string
	noPrelude bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "diylisp",
		Short: "A small lisp interpreter",
		Long: `diylisp evaluates a minimal lisp with integers, booleans, lists and closures.

Run without arguments to start an interactive session.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := opts.interpreter()
			if err != nil {
				return err
			}
			return runRepl(in, cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warning",
		"Logging level (debug, info, warning, error)")
	rootCmd.PersistentFlags().BoolVar(&opts.noPrelude, "no-prelude", false,
		"Do not load the standard library")

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newPreludeCmd())
	return rootCmd
}

func (opts *rootOptions) interpreter() (*diylisp.Interpreter, error) {
	iopts := []diylisp.Option{diylisp.WithLogger(log)}
	if opts.noPrelude {
		iopts = append(iopts, diylisp.WithoutPrelude())
	}
	return diylisp.New(iopts...)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
