/*
NAME
  quantize_test.go

AUTHOR
  Katie Kurtz <katie@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package quantize

import (
	"testing"

	"github.com/ausocean/imgcomp/codec/blockavg"
)

// TestSolidBlack reproduces spec.md §8's boundary scenario 1.
func TestSolidBlack(t *testing.T) {
	b := Quantize(blockavg.Avg{A: 0, B: 0, C: 0, D: 0, Pb: 0, Pr: 0})
	want := Block{QA: 0, QB: 0, QC: 0, QD: 0, QPb: 4, QPr: 4}
	if b != want {
		t.Errorf("Quantize(black) = %+v, want %+v", b, want)
	}
	word := Pack(b)
	if got := word >> 26; got != 0 {
		t.Errorf("solid black qa field = %d, want 0", got)
	}
}

// TestSolidWhite reproduces spec.md §8's boundary scenario 2.
func TestSolidWhite(t *testing.T) {
	b := Quantize(blockavg.Avg{A: 1, B: 0, C: 0, D: 0, Pb: 0, Pr: 0})
	if b.QA != aFactor {
		t.Errorf("Quantize(white).QA = %d, want %d (saturated)", b.QA, aFactor)
	}
	if b.QPb != 4 || b.QPr != 4 {
		t.Errorf("Quantize(white) chroma = (%d, %d), want (4, 4)", b.QPb, b.QPr)
	}
	avg := Dequantize(b)
	if avg.A < 0.99 {
		t.Errorf("Dequantize(white).A = %v, want near 1", avg.A)
	}
}

func TestQuantizeSaturates(t *testing.T) {
	b := Quantize(blockavg.Avg{A: 0, B: 0.3, C: -0.3, D: 0.3, Pb: 0, Pr: 0})
	if b.QB != 15 {
		t.Errorf("QB = %d, want 15 (saturated)", b.QB)
	}
	if b.QC != -15 {
		t.Errorf("QC = %d, want -15 (saturated)", b.QC)
	}
}

func TestPackUnpackRoundTrip(t *testing.T) {
	cases := []Block{
		{QA: 0, QB: 0, QC: 0, QD: 0, QPb: 4, QPr: 4},
		{QA: 63, QB: -15, QC: 15, QD: -15, QPb: 0, QPr: 8},
		{QA: 32, QB: 7, QC: -7, QD: 3, QPb: 5, QPr: 2},
	}
	for _, b := range cases {
		word := Pack(b)
		got := Unpack(word)
		if got != b {
			t.Errorf("Pack/Unpack round trip: got %+v, want %+v", got, b)
		}
	}
}

// TestBitLevelLayout checks that Pack places qa, qb, qc, qd, qpb, qpr at
// the exact offsets spec.md §3 mandates, with no upper bits set above bit
// 31.
func TestBitLevelLayout(t *testing.T) {
	b := Block{QA: 0b101010, QB: -1, QC: 0, QD: 0, QPb: 0, QPr: 0}
	word := Pack(b)
	if word>>31 != 0 {
		t.Errorf("code word has bits set above bit 31: %032b", word)
	}
	if got := (word >> 26) & 0x3F; got != 0b101010 {
		t.Errorf("qa field = %06b, want 101010", got)
	}
	if got := (word >> 20) & 0x3F; got != 0b111111 {
		t.Errorf("qb field for -1 = %06b, want two's-complement 111111", got)
	}
}

func TestRoundTripPreservesQuantizedAverage(t *testing.T) {
	avg := blockavg.Avg{A: 0.42, B: -0.1, C: 0.2, D: 0.05, Pb: 0.15, Pr: -0.3}
	word := Pack(Quantize(avg))
	got := Dequantize(Unpack(word))
	if abs(got.A-avg.A) > 1.0/aFactor {
		t.Errorf("A round trip diff %v exceeds one quantization step", abs(got.A-avg.A))
	}
	if abs(got.B-avg.B) > 1.0/diffFactor {
		t.Errorf("B round trip diff %v exceeds one quantization step", abs(got.B-avg.B))
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
