/*
NAME
  blockavg.go

DESCRIPTION
  blockavg.go implements the block luminance transform (an orthogonal 2x2
  Hadamard transform over Y) and per-block chroma averaging described in
  spec.md §4.3, converting a 2x2 block of component-video pixels to a
  block-average (a, b, c, d, Pb̄, Pr̄) tuple and back.

AUTHOR
  Katie Kurtz <katie@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package blockavg implements the forward and inverse block luminance
// transform between a 2x2 block of component-video pixels and a
// block-average tuple.
package blockavg

import "github.com/ausocean/imgcomp/codec/rgbconvert"

// Avg is a block average: a is the mean luminance in [0,1]; b, c, d are
// the vertical, horizontal, and diagonal luminance differentials, clamped
// to [-0.3, 0.3]; Pb and Pr are the per-block mean chroma, clamped to
// [-0.5, 0.5].
type Avg struct {
	A, B, C, D float64
	Pb, Pr     float64
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Analyze computes the block average of a 2x2 block of component-video
// pixels, indexed (col, row) within the block as 0:(0,0), 1:(1,0),
// 2:(0,1), 3:(1,1).
func Analyze(block [4]rgbconvert.CV) Avg {
	y0, y1, y2, y3 := block[0].Y, block[1].Y, block[2].Y, block[3].Y

	avg := Avg{
		A: (y3 + y2 + y1 + y0) / 4,
		B: clamp((y3+y2-y1-y0)/4, -0.3, 0.3),
		C: clamp((y3-y2+y1-y0)/4, -0.3, 0.3),
		D: clamp((y3-y2-y1+y0)/4, -0.3, 0.3),
	}

	var totalPb, totalPr float64
	for _, px := range block {
		totalPb += px.Pb
		totalPr += px.Pr
	}
	avg.Pb = clamp(totalPb/4, -0.5, 0.5)
	avg.Pr = clamp(totalPr/4, -0.5, 0.5)

	return avg
}

// Synthesize recovers the four component-video pixels of a block from its
// block average, applying the inverse Hadamard transform to luminance and
// setting every pixel's chroma to the block's mean (Pb, Pr). Each
// resulting pixel is saturated to the component-video bounds.
func (avg Avg) Synthesize() [4]rgbconvert.CV {
	a, b, c, d := avg.A, avg.B, avg.C, avg.D

	y := [4]float64{
		a - b - c + d, // Y0
		a - b + c - d, // Y1
		a + b - c - d, // Y2
		a + b + c + d, // Y3
	}

	var block [4]rgbconvert.CV
	for i, yi := range y {
		block[i] = rgbconvert.CV{
			Y:  clamp(yi, 0, 1),
			Pb: clamp(avg.Pb, -0.5, 0.5),
			Pr: clamp(avg.Pr, -0.5, 0.5),
		}
	}
	return block
}
