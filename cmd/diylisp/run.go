package main

import (
	"fmt"
	"os"

	"github.com/jpschroeder/diylisp"
	"github.com/spf13/cobra"
)

type runOptions struct {
	*rootOptions
	expression bool
	print      bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	runCmd := &cobra.Command{
		Use:   "run [flags] file...",
		Short: "Run lisp code",
		Long:  `Run lisp code supplied via the command line or a file.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := runReadSources(args, opts.expression)
			if err != nil {
				return err
			}

			in, err := opts.interpreter()
			if err != nil {
				return err
			}

			for i := range sources {
				exprs, err := diylisp.ParseAll(sources[i])
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				for _, expr := range exprs {
					val, err := in.EvalExpr(expr)
					if err != nil {
						return err
					}
					if opts.print {
						fmt.Fprintln(cmd.OutOrStdout(), diylisp.Print(val))
					}
				}
			}
			return nil
		},
	}

	runCmd.Flags().BoolVarP(&opts.expression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&opts.print, "print", "p", false,
		"Print expression values to stdout")
	return runCmd
}

func runReadSources(args []string, expression bool) ([]string, error) {
	sources := make([]string, len(args))
	if expression {
		copy(sources, args)
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		log.WithField("path", path).Debug("read source file")
		sources[i] = string(b)
	}
	return sources, nil
}

func newPreludeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prelude",
		Short: "Print the standard library source",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), diylisp.PreludeSource())
		},
	}
}
