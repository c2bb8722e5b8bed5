/*
NAME
  blockavg_test.go

AUTHOR
  Katie Kurtz <katie@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package blockavg

import (
	"math"
	"testing"

	"github.com/ausocean/imgcomp/codec/rgbconvert"
)

func TestAnalyzeSolidBlock(t *testing.T) {
	px := rgbconvert.CV{Y: 0.5, Pb: 0.1, Pr: -0.2}
	block := [4]rgbconvert.CV{px, px, px, px}
	avg := Analyze(block)
	if avg.A != 0.5 || avg.B != 0 || avg.C != 0 || avg.D != 0 {
		t.Errorf("Analyze(solid) = %+v, want a=0.5, b=c=d=0", avg)
	}
	if math.Abs(avg.Pb-0.1) > 1e-9 || math.Abs(avg.Pr+0.2) > 1e-9 {
		t.Errorf("Analyze(solid) chroma = (%v, %v), want (0.1, -0.2)", avg.Pb, avg.Pr)
	}
}

func TestAnalyzeClampsDifferentials(t *testing.T) {
	block := [4]rgbconvert.CV{
		{Y: 0, Pb: 0, Pr: 0},
		{Y: 1, Pb: 0, Pr: 0},
		{Y: 1, Pb: 0, Pr: 0},
		{Y: 0, Pb: 0, Pr: 0},
	}
	avg := Analyze(block)
	if avg.B > 0.3 || avg.B < -0.3 {
		t.Errorf("B not clamped: %v", avg.B)
	}
	if avg.C > 0.3 || avg.C < -0.3 {
		t.Errorf("C not clamped: %v", avg.C)
	}
	if avg.D > 0.3 || avg.D < -0.3 {
		t.Errorf("D not clamped: %v", avg.D)
	}
}

func TestRoundTripIdentity(t *testing.T) {
	block := [4]rgbconvert.CV{
		{Y: 0.1, Pb: -0.1, Pr: 0.05},
		{Y: 0.2, Pb: -0.1, Pr: 0.05},
		{Y: 0.3, Pb: -0.1, Pr: 0.05},
		{Y: 0.4, Pb: -0.1, Pr: 0.05},
	}
	avg := Analyze(block)
	got := avg.Synthesize()
	for i := range block {
		if math.Abs(got[i].Y-block[i].Y) > 1e-9 {
			t.Errorf("pixel %d: Y round trip = %v, want %v", i, got[i].Y, block[i].Y)
		}
		if math.Abs(got[i].Pb-block[i].Pb) > 1e-9 || math.Abs(got[i].Pr-block[i].Pr) > 1e-9 {
			t.Errorf("pixel %d: chroma round trip = (%v, %v), want (%v, %v)", i, got[i].Pb, got[i].Pr, block[i].Pb, block[i].Pr)
		}
	}
}

func TestSynthesizeSaturatesLuminance(t *testing.T) {
	avg := Avg{A: 1, B: 0.3, C: 0.3, D: 0.3, Pb: 0, Pr: 0}
	got := avg.Synthesize()
	for i, px := range got {
		if px.Y < 0 || px.Y > 1 {
			t.Errorf("pixel %d: Y = %v out of [0,1]", i, px.Y)
		}
	}
}
