package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/born-ml/dlr/internal/diag"
	"github.com/born-ml/dlr/internal/parallel"
	"github.com/born-ml/dlr/internal/selfcheck"
)

func newCheckCmd() *cobra.Command {
	var (
		verbose bool
		par     bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the kernel self-checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbose, par)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log the parameters of every kernel call")
	cmd.Flags().BoolVar(&par, "parallel", false, "run the kernels in parallel")
	return cmd
}

func runCheck(out, logOut io.Writer, verbose, par bool) error {
	opts := []diag.Option{
		diag.WithRigor(),
		diag.WithVerboseIf(verbose),
		diag.WithLogger(slog.New(slog.NewTextHandler(logOut, nil))),
	}
	if par {
		opts = append(opts, diag.WithParallel(parallel.DefaultConfig()))
	}

	results := selfcheck.Run(opts...)
	for _, r := range results {
		status := "ok"
		if !r.Passed() {
			status = "FAIL"
		}
		fmt.Fprintf(out, "%-4s %-12s %s\n", status, r.Kernel, r.Name)
	}

	passed := lo.CountBy(results, selfcheck.Result.Passed)
	fmt.Fprintf(out, "%d/%d checks passed\n", passed, len(results))
	if err := selfcheck.Failed(results); err != nil {
		return fmt.Errorf("self-check failed:\n%w", err)
	}
	return nil
}
