package attacks

import (
	"errors"
	"fmt"
)

// Extractor compresses the bits of src selected by mask into the low bits of
// the result, preserving their order (parallel bit extraction).
type Extractor interface {
	Extract(src, mask uint64) uint64
	Name() string
}

// ErrNoHardware is returned when the hardware extractor is requested on a CPU
// without BMI2.
var ErrNoHardware = errors.New("hardware bit extraction not supported on this CPU")

// Software is the portable bit-by-bit extractor.
type Software struct{}

func (Software) Name() string { return "software" }

func (Software) Extract(src, mask uint64) uint64 {
	var res uint64
	for bit := uint64(1); mask != 0; bit <<= 1 {
		if src&mask&-mask != 0 {
			res |= bit
		}
		mask &= mask - 1
	}
	return res
}

// Deposit scatters the low bits of src onto the set bits of mask, lowest
// first. It is the inverse of Extract over mask.
func Deposit(src, mask uint64) uint64 {
	var res uint64
	for bit := uint64(1); mask != 0; bit <<= 1 {
		if src&bit != 0 {
			res |= mask & -mask
		}
		mask &= mask - 1
	}
	return res
}

// Best returns the hardware extractor when the CPU supports it, otherwise
// the software one.
func Best() Extractor {
	if hw, ok := Hardware(); ok {
		return hw
	}
	return Software{}
}

// ByName selects an extractor: "auto" (or empty), "hardware" or "software".
func ByName(name string) (Extractor, error) {
	switch name {
	case "", "auto":
		return Best(), nil
	case "software":
		return Software{}, nil
	case "hardware":
		hw, ok := Hardware()
		if !ok {
			return nil, ErrNoHardware
		}
		return hw, nil
	}
	return nil, fmt.Errorf("unknown extractor: %s", name)
}
