//go:build amd64

// BMI2 PEXT extraction for AMD64.
// The instruction is only used after cpu.X86.HasBMI2 has been checked.

package attacks

import "golang.org/x/sys/cpu"

// Assembly function declaration (implemented in pext_amd64.s)
func pextq(src, mask uint64) uint64

type hardware struct{}

func (hardware) Name() string { return "hardware" }

func (hardware) Extract(src, mask uint64) uint64 {
	return pextq(src, mask)
}

// Hardware returns the PEXTQ extractor if the CPU has BMI2.
func Hardware() (Extractor, bool) {
	if !cpu.X86.HasBMI2 {
		return nil, false
	}
	return hardware{}, true
}
