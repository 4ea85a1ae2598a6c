package stft

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-spectral/dsp/window"
)

// Overlap selects how far consecutive analysis frames overlap.
type Overlap int

const (
	// OverlapNone uses back-to-back frames (H = N).
	OverlapNone Overlap = iota
	// OverlapEconomy overlaps at most 50%.
	OverlapEconomy
	// OverlapDefault is the recommended overlap for each shape.
	OverlapDefault
	// OverlapFlatAmplitude overlaps enough for a flat amplitude sum.
	OverlapFlatAmplitude
	// OverlapFlatPower overlaps enough for a flat power sum.
	OverlapFlatPower

	numOverlaps
)

// poolSize bounds how many analysis buffers can be in flight.
const poolSize = 6

var overlapNames = [numOverlaps]string{"none", "economy", "default", "flat-amplitude", "flat-power"}

// ratioTable[policy][shape], columns in window.Shape order from Rectangular
// to FlatTop.
var ratioTable = [numOverlaps][window.FlatTop + 1]float64{
	OverlapNone:          {0, 0, 0, 0, 0, 0, 0, 0},
	OverlapEconomy:       {0, 0.5, 0.293, 0.5, 0.5, 0.5, 0.5, 0.5},
	OverlapDefault:       {0, 0.5, 0.293, 0.5, 0.661, 0.656, 0.619, 0.76},
	OverlapFlatAmplitude: {0, 0.5, 0.5, 0.5, 0.75, 0.75, 0.75, 0.8},
	OverlapFlatPower:     {0, 0.75, 0.75, 0.75, 0.8, 0.8, 0.8, 0.8},
}

// String returns the policy name as accepted by ParseOverlap.
func (o Overlap) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Overlap(%d)", int(o))
	}
	return overlapNames[o]
}

// Valid reports whether o is a defined policy.
func (o Overlap) Valid() bool { return o >= 0 && o < numOverlaps }

// Overlaps returns every policy in declaration order.
func Overlaps() []Overlap {
	out := make([]Overlap, numOverlaps)
	for i := range out {
		out[i] = Overlap(i)
	}
	return out
}

// ParseOverlap looks up a policy by name, ignoring case.
func ParseOverlap(name string) (Overlap, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	for i, n := range overlapNames {
		if key == n || key == strings.ReplaceAll(n, "-", "") {
			return Overlap(i), nil
		}
	}
	return 0, fmt.Errorf("stft: %q: %w", name, ErrOverlap)
}

// OverlapRatio returns the overlap fraction for a policy and window shape.
// Undefined combinations return 0.
func OverlapRatio(policy Overlap, shape window.Shape) float64 {
	if !policy.Valid() || !shape.Valid() {
		return 0
	}
	return ratioTable[policy][shape]
}

// HopSize returns the hop for an n-point frame: n - floor(ratio·n), raised to
// ceil(n/6) when more buffers than the pool holds would be needed.
func HopSize(n int, policy Overlap, shape window.Shape) int {
	if n <= 0 {
		return 0
	}
	hop := n - int(math.Floor(OverlapRatio(policy, shape)*float64(n)))
	return max(hop, ceilDiv(n, poolSize), 1)
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
