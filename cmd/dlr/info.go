package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/born-ml/dlr/backend/webgpu"
)

// feature is one CPU capability reported by golang.org/x/sys/cpu.
type feature struct {
	name string
	has  bool
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print platform, CPU features and GPU availability",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printInfo(cmd.OutOrStdout(), runtime.GOARCH, webgpu.IsAvailable())
		},
	}
}

func printInfo(w io.Writer, arch string, gpu bool) {
	fmt.Fprintf(w, "GOOS:   %s\n", runtime.GOOS)
	fmt.Fprintf(w, "GOARCH: %s\n", runtime.GOARCH)
	fmt.Fprintf(w, "NumCPU: %d\n", runtime.NumCPU())
	fmt.Fprintln(w)

	if fs := cpuFeatures(arch); len(fs) > 0 {
		fmt.Fprintf(w, "=== golang.org/x/sys/cpu (%s) ===\n", arch)
		for _, f := range fs {
			fmt.Fprintf(w, "  %-12s %v\n", f.name+":", f.has)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "WebGPU: %v\n", gpu)
}

func cpuFeatures(arch string) []feature {
	switch arch {
	case "amd64":
		return []feature{
			{"HasSSE2", cpu.X86.HasSSE2},
			{"HasSSE41", cpu.X86.HasSSE41},
			{"HasSSE42", cpu.X86.HasSSE42},
			{"HasAVX", cpu.X86.HasAVX},
			{"HasAVX2", cpu.X86.HasAVX2},
			{"HasFMA", cpu.X86.HasFMA},
			{"HasAVX512F", cpu.X86.HasAVX512F},
			{"HasAVX512BW", cpu.X86.HasAVX512BW},
			{"HasAVX512VL", cpu.X86.HasAVX512VL},
		}
	case "arm64":
		return []feature{
			{"HasASIMD", cpu.ARM64.HasASIMD},
			{"HasFP", cpu.ARM64.HasFP},
			{"HasFPHP", cpu.ARM64.HasFPHP},
			{"HasASIMDHP", cpu.ARM64.HasASIMDHP},
			{"HasSVE", cpu.ARM64.HasSVE},
			{"HasSVE2", cpu.ARM64.HasSVE2},
		}
	}
	return nil
}
