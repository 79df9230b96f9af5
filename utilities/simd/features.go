package simd

import (
	"strings"

	"github.com/klauspost/cpuid/v2"
)

// Features lists the vector instruction sets relevant to the filters and the
// half-float codec.
type Features struct {
	SSE2  bool
	SSSE3 bool
	SSE41 bool
	AVX2  bool
	F16C  bool
	NEON  bool
}

var host = Detect()

// Detect queries the CPU for its vector capabilities.
func Detect() Features {
	return Features{
		SSE2:  cpuid.CPU.Supports(cpuid.SSE2),
		SSSE3: cpuid.CPU.Supports(cpuid.SSSE3),
		SSE41: cpuid.CPU.Supports(cpuid.SSE4),
		AVX2:  cpuid.CPU.Supports(cpuid.AVX2),
		F16C:  cpuid.CPU.Supports(cpuid.F16C),
		NEON:  cpuid.CPU.Supports(cpuid.ASIMD),
	}
}

// Host returns the capabilities detected at startup.
func Host() Features {
	return host
}

// HalfBlockWidth gives the number of elements the batch half-float conversion
// handles per block: 8 with AVX2 and F16C, 4 otherwise.
func (f Features) HalfBlockWidth() int {
	if f.AVX2 && f.F16C {
		return 8
	}
	return 4
}

// String returns the names of the supported instruction sets, separated by
// spaces, or "scalar" if none are available.
func (f Features) String() string {
	var names []string
	for _, feature := range []struct {
		name    string
		present bool
	}{
		{"sse2", f.SSE2},
		{"ssse3", f.SSSE3},
		{"sse4.1", f.SSE41},
		{"avx2", f.AVX2},
		{"f16c", f.F16C},
		{"neon", f.NEON},
	} {
		if feature.present {
			names = append(names, feature.name)
		}
	}
	if len(names) == 0 {
		return "scalar"
	}
	return strings.Join(names, " ")
}

// CPUName returns the brand string of the host CPU.
func CPUName() string {
	return cpuid.CPU.BrandName
}
