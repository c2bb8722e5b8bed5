/*
NAME
  quantize.go

DESCRIPTION
  quantize.go converts a block average (spec.md §3's BA) to and from a
  quantized block (QB) of fixed-width integer fields, and packs/unpacks a
  quantized block to/from the 32-bit code word described in spec.md §3 and
  §4.5, using codec/bitpack for the field layout.

  Resolves spec.md §9's Open Questions 1 and 2: qa is quantized directly
  to the 6-bit field the Code Word layout actually has room for (factor
  63, not the source's factor-511-then-truncate), and the differential
  factor is 50 (the natural scale for [-0.3,0.3] -> [-15,15]), not the
  source's 64. See SPEC_FULL.md §4.4 and §9, and DESIGN.md.

AUTHOR
  Katie Kurtz <katie@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package quantize converts block averages to and from fixed-width
// integer fields, and packs/unpacks those fields to/from a 32-bit code
// word.
package quantize

import (
	"github.com/ausocean/imgcomp/codec/bitpack"
	"github.com/ausocean/imgcomp/codec/blockavg"
	"github.com/ausocean/imgcomp/codec/chroma"
)

// Bit-field widths and least-significant-bit offsets within the 32-bit
// code word, per spec.md §3.
const (
	abcdWidth = 6
	prpbWidth = 4

	lsbA  = 26
	lsbB  = 20
	lsbC  = 14
	lsbD  = 8
	lsbPb = 4
	lsbPr = 0
)

// aFactor and diffFactor are the quantization scales resolved for spec.md
// §9's Open Questions 1 and 2 respectively.
const (
	aFactor    = 63 // a in [0,1] -> qa in [0,63] (6-bit field).
	diffFactor = 50 // b,c,d in [-0.3,0.3] -> q in [-15,15] (6-bit signed field).
)

// Block holds the six quantized fields of a code word.
type Block struct {
	QA         int64 // Unsigned, [0,63].
	QB, QC, QD int64 // Signed, [-15,15].
	QPb, QPr   int64 // Unsigned, [0,8].
}

func clampI(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(f float64) int64 {
	if f >= 0 {
		return int64(f + 0.5)
	}
	return int64(f - 0.5)
}

// Quantize converts a block average to its quantized fields, saturating
// every field to its declared range.
func Quantize(avg blockavg.Avg) Block {
	return Block{
		QA:  clampI(round(avg.A*aFactor), 0, aFactor),
		QB:  clampI(round(avg.B*diffFactor), -15, 15),
		QC:  clampI(round(avg.C*diffFactor), -15, 15),
		QD:  clampI(round(avg.D*diffFactor), -15, 15),
		QPb: clampI(int64(chroma.Index(avg.Pb)/2), 0, 8),
		QPr: clampI(int64(chroma.Index(avg.Pr)/2), 0, 8),
	}
}

// Dequantize recovers an (approximate) block average from quantized
// fields.
func Dequantize(b Block) blockavg.Avg {
	return blockavg.Avg{
		A:  float64(b.QA) / aFactor,
		B:  float64(b.QB) / diffFactor,
		C:  float64(b.QC) / diffFactor,
		D:  float64(b.QD) / diffFactor,
		Pb: chroma.Value(int(b.QPb) * 2),
		Pr: chroma.Value(int(b.QPr) * 2),
	}
}

// Pack lays a quantized block's fields out in a 32-bit code word, MSB to
// LSB as qa|qb|qc|qd|qpb|qpr.
func Pack(b Block) uint32 {
	var word uint64
	word = bitpack.NewU(word, abcdWidth, lsbA, uint64(b.QA))
	word = bitpack.NewS(word, abcdWidth, lsbB, b.QB)
	word = bitpack.NewS(word, abcdWidth, lsbC, b.QC)
	word = bitpack.NewS(word, abcdWidth, lsbD, b.QD)
	word = bitpack.NewU(word, prpbWidth, lsbPb, uint64(b.QPb))
	word = bitpack.NewU(word, prpbWidth, lsbPr, uint64(b.QPr))
	return uint32(word)
}

// Unpack extracts a quantized block's fields from a 32-bit code word.
func Unpack(word uint32) Block {
	w := uint64(word)
	return Block{
		QA:  int64(bitpack.GetU(w, abcdWidth, lsbA)),
		QB:  bitpack.GetS(w, abcdWidth, lsbB),
		QC:  bitpack.GetS(w, abcdWidth, lsbC),
		QD:  bitpack.GetS(w, abcdWidth, lsbD),
		QPb: int64(bitpack.GetU(w, prpbWidth, lsbPb)),
		QPr: int64(bitpack.GetU(w, prpbWidth, lsbPr)),
	}
}
