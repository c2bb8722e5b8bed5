/*
NAME
  chroma.go

DESCRIPTION
  chroma.go implements a small nonlinear quantizer for the Pb/Pr chroma
  range [-0.5, 0.5], providing the Index/Value pair spec.md §6 requires of
  the chroma codec collaborator. This replaces the original C
  implementation's arith40 library (spec.md §6 permits substituting an
  equivalent) with a monotonic lookup table searched for the nearest entry,
  the same table-plus-nearest-search idiom the teacher uses for ADPCM step
  quantization.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package chroma implements a nonlinear quantizer for chroma (Pb/Pr)
// values in the range [-0.5, 0.5].
package chroma

import "math"

// NLevels is the number of representable chroma bins. Index values from
// Index are in [0, NLevels-1].
const NLevels = 17

// table holds NLevels representative chroma values, spaced more finely
// near zero than at the extremes (photographic chroma energy concentrates
// near the achromatic point), in increasing order.
var table = buildTable()

// buildTable derives a perceptually-weighted, monotonically increasing
// table of chroma representative values spanning [-0.5, 0.5] using a
// cubic curve (the inverse of a cube-root compressor), then clamps the
// endpoints exactly onto the chroma range's bounds.
func buildTable() [NLevels]float64 {
	var t [NLevels]float64
	const n = NLevels - 1
	for i := 0; i <= n; i++ {
		// u ranges linearly over [-1, 1]; cubing it concentrates levels
		// near u == 0 and spreads them out near the extremes.
		u := 2*float64(i)/float64(n) - 1
		sign := 1.0
		if u < 0 {
			sign = -1.0
			u = -u
		}
		t[i] = sign * 0.5 * u * u * u
	}
	t[0] = -0.5
	t[n] = 0.5
	return t
}

// Index returns the index of the table entry nearest to pb, the bin
// boundary contract spec.md §6 requires of the chroma codec collaborator.
// pb outside [-0.5, 0.5] is treated as saturated to the nearest bound.
func Index(pb float64) int {
	switch {
	case pb <= table[0]:
		return 0
	case pb >= table[NLevels-1]:
		return NLevels - 1
	}
	// Linear scan: NLevels is small (17) and this runs once per block.
	best := 0
	bestDist := math.Abs(pb - table[0])
	for i := 1; i < NLevels; i++ {
		d := math.Abs(pb - table[i])
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Value returns the representative chroma value for index i, clamped to a
// valid table index.
func Value(i int) float64 {
	switch {
	case i < 0:
		i = 0
	case i >= NLevels:
		i = NLevels - 1
	}
	return table[i]
}
