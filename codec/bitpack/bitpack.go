/*
NAME
  bitpack.go

DESCRIPTION
  bitpack.go provides functions for checking whether signed and unsigned
  integers fit within a given number of bits, and for extracting and
  inserting bit-fields of arbitrary width and offset within a 64-bit
  register.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitpack provides functions for reading and writing bit-fields of
// arbitrary width and offset within a 64-bit register.
package bitpack

// FitsU reports whether the unsigned value n is representable in width
// bits, i.e. n < 2^width. width must be in [0, 64].
func FitsU(n uint64, width uint) bool {
	if width >= 64 {
		return true
	}
	return n < uint64(1)<<width
}

// FitsS reports whether the signed value n is representable in width bits'
// two's-complement range, i.e. -2^(width-1) <= n <= 2^(width-1)-1.
// width must be in [1, 64].
func FitsS(n int64, width uint) bool {
	if width >= 64 {
		return true
	}
	hi := int64(1)<<(width-1) - 1
	lo := -(int64(1) << (width - 1))
	return lo <= n && n <= hi
}

// GetU extracts width bits of word starting at least-significant-bit l,
// zero-extended. GetU returns 0 if width is 0. Precondition: width+l <= 64.
func GetU(word uint64, width, l uint) uint64 {
	if width == 0 {
		return 0
	}
	return (word >> l) & mask(width)
}

// GetS extracts width bits of word starting at least-significant-bit l,
// sign-extended from bit (l+width-1). GetS returns 0 if width is 0.
// Precondition: width+l <= 64.
func GetS(word uint64, width, l uint) int64 {
	if width == 0 {
		return 0
	}
	u := GetU(word, width, l)
	signBit := uint64(1) << (width - 1)
	if u&signBit != 0 {
		// Sign-extend by filling the bits above width with ones.
		u |= ^mask(width)
	}
	return int64(u)
}

// NewU returns a new word identical to word outside the field [l, l+width),
// with that field set to the low width bits of value. NewU panics if value
// does not fit in width bits (checked with FitsU) — this indicates a
// quantization bug upstream, not a recoverable condition.
func NewU(word uint64, width, l uint, value uint64) uint64 {
	if !FitsU(value, width) {
		panic("bitpack: value does not fit in field width")
	}
	cleared := word &^ (mask(width) << l)
	return cleared | ((value & mask(width)) << l)
}

// NewS returns a new word identical to word outside the field [l, l+width),
// with that field set to the two's-complement bit pattern of value. NewS
// panics if value does not fit in width bits (checked with FitsS).
func NewS(word uint64, width, l uint, value int64) uint64 {
	if !FitsS(value, width) {
		panic("bitpack: value does not fit in field width")
	}
	return NewU(word, width, l, uint64(value)&mask(width))
}

// mask returns a width-bit mask of ones in the low bits, guarding the
// shift-by-64 case that would otherwise be required for width == 64.
func mask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}
