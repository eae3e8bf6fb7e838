package app

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args request the version banner. It runs
// before flag parsing so -version works alongside otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the version, build and CPU information to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s (commit %s, built %s)\n", Version, Commit, BuildDate)
	fmt.Fprintf(out, "%s %s/%s, %d-bit limbs\n", runtime.Version(), runtime.GOOS, runtime.GOARCH, wordBits)
	features := CPUFeatures()
	if len(features) == 0 {
		features = []string{"none detected"}
	}
	fmt.Fprintf(out, "CPU features: %s\n", strings.Join(features, " "))
}

// wordBits is the width of a bigint limb on this platform.
const wordBits = 32 << (^uint(0) >> 63)

// CPUFeatures lists the detected instruction set extensions relevant to
// multi-word arithmetic.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasADX, "adx")
		add(cpu.X86.HasBMI2, "bmi2")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return features
}
