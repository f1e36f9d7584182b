//go:build !amd64

// Platforms without a PEXT instruction always use the software extractor.

package attacks

// Hardware reports that no hardware extractor exists on this platform.
func Hardware() (Extractor, bool) {
	return nil, false
}
