package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/born-ml/dlr/backend/cpu"
)

func newKernelsCmd() *cobra.Command {
	var (
		family string
		checks bool
	)
	cmd := &cobra.Command{
		Use:   "kernels",
		Short: "List the kernels and their rigor-mode checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printKernels(cmd.OutOrStdout(), cpu.Kernels(), family, checks)
		},
	}
	cmd.Flags().StringVar(&family, "family", "", "only list kernels of this family")
	cmd.Flags().BoolVar(&checks, "checks", false, "print the rigor-mode checks of each kernel")
	return cmd
}

func printKernels(w io.Writer, kernels []cpu.Kernel, family string, checks bool) error {
	if family != "" {
		kernels = lo.Filter(kernels, func(k cpu.Kernel, _ int) bool {
			return k.Family == family
		})
		if len(kernels) == 0 {
			return fmt.Errorf("unknown kernel family %q", family)
		}
	}

	title := cases.Title(language.English)
	byFamily := lo.GroupBy(kernels, func(k cpu.Kernel) string { return k.Family })
	families := lo.Uniq(lo.Map(kernels, func(k cpu.Kernel, _ int) string { return k.Family }))

	for _, f := range families {
		names := lo.Map(byFamily[f], func(k cpu.Kernel, _ int) string {
			if k.Fused {
				return k.Name + "*"
			}
			return k.Name
		})
		fmt.Fprintf(w, "%s: %s\n", title.String(f), strings.Join(names, ", "))
		if !checks {
			continue
		}
		for _, k := range byFamily[f] {
			fmt.Fprintf(w, "  %s\n", k.Name)
			for _, c := range slices.Sorted(slices.Values(k.Checks)) {
				fmt.Fprintf(w, "    - %s\n", c)
			}
		}
	}
	fmt.Fprintln(w, "* accepts a fused post-activation")
	return nil
}
