/*
NAME
  rgbconvert.go

DESCRIPTION
  rgbconvert.go converts between 8-bit RGB pixels and component-video
  (Y, Pb, Pr) pixels, per spec.md §4.2.

AUTHOR
  Noah Epstein <noah@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package rgbconvert converts between 8-bit RGB pixels and component-video
// (Y, Pb, Pr) pixels.
package rgbconvert

// OutDenom is the denominator used for RGB pixels produced by ToRGB,
// fixed regardless of the input pixmap's original denominator.
const OutDenom = 255

// RGB is an 8-bit RGB pixel.
type RGB struct {
	R, G, B uint8
}

// CV is a component-video pixel: luminance Y in [0,1], chroma Pb and Pr
// each in [-0.5, 0.5].
type CV struct {
	Y, Pb, Pr float64
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

// ToCV converts an RGB pixel, normalized against denom (the PPM maxval),
// to a saturated component-video pixel.
func ToCV(px RGB, denom uint16) CV {
	r, g, b := float64(px.R), float64(px.G), float64(px.B)
	d := float64(denom)

	y := (0.299000*r + 0.587000*g + 0.114000*b) / d
	pb := (-0.168736*r - 0.331264*g + 0.500000*b) / d
	pr := (0.500000*r - 0.418688*g - 0.081312*b) / d

	return CV{
		Y:  clamp(y, 0, 1),
		Pb: clamp(pb, -0.5, 0.5),
		Pr: clamp(pr, -0.5, 0.5),
	}
}

// ToRGB converts a component-video pixel back to an 8-bit RGB pixel with
// denominator OutDenom. Each component is clamped below at zero in a
// signed intermediate (to avoid an unsigned wraparound on negative
// results) before being clamped above at 255.
func (cv CV) ToRGB() RGB {
	y := cv.Y * OutDenom

	r := y + OutDenom*1.402000*cv.Pr
	g := y - OutDenom*0.344136*cv.Pb - OutDenom*0.714136*cv.Pr
	b := y + OutDenom*1.772000*cv.Pb

	return RGB{
		R: clampByte(r),
		G: clampByte(g),
		B: clampByte(b),
	}
}

// clampByte clamps a float64 below at 0 (in a signed intermediate, so a
// negative result doesn't wrap) and above at 255 before casting to uint8.
func clampByte(v float64) uint8 {
	iv := int32(v)
	if iv < 0 {
		iv = 0
	}
	if iv > 255 {
		iv = 255
	}
	return uint8(iv)
}
