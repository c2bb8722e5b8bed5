/*
NAME
  ppm.go

DESCRIPTION
  ppm.go implements a minimal reader and writer for binary (P6) portable
  pixmaps, the PPM collaborator spec.md §6 specifies by interface. Header
  tokenization is built on codec/codecutil's ByteScanner, the same tool
  the teacher uses for other ASCII/binary hybrid formats.

AUTHOR
  Alan Noble <alan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ppm reads and writes binary (P6) portable pixmaps.
package ppm

import (
	"fmt"
	"io"

	"github.com/ausocean/imgcomp/codec/codecutil"
	"github.com/ausocean/imgcomp/codec/rgbconvert"
)

// Image is a decoded PPM pixmap: width x height RGB pixels, row-major,
// normalized against Denom (the PPM maxval).
type Image struct {
	Width, Height int
	Denom         uint16
	Pixels        []rgbconvert.RGB // len == Width*Height, row-major.
}

// At returns the pixel at (x, y).
func (img *Image) At(x, y int) rgbconvert.RGB {
	return img.Pixels[y*img.Width+x]
}

// Set sets the pixel at (x, y).
func (img *Image) Set(x, y int, px rgbconvert.RGB) {
	img.Pixels[y*img.Width+x] = px
}

// ErrMalformed indicates the input is not a well-formed binary PPM, or the
// stream ended before the declared pixel data was fully read.
type ErrMalformed struct {
	Reason string
}

func (e *ErrMalformed) Error() string { return "ppm: malformed input: " + e.Reason }

// Decode reads a binary (P6) PPM from r.
func Decode(r io.Reader) (*Image, error) {
	sc := codecutil.NewByteScanner(r, make([]byte, 4096))

	magic, err := readToken(sc)
	if err != nil {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("reading magic: %v", err)}
	}
	if magic != "P6" {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("unsupported magic %q, want P6", magic)}
	}

	w, err := readUintToken(sc)
	if err != nil {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("reading width: %v", err)}
	}
	h, err := readUintToken(sc)
	if err != nil {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("reading height: %v", err)}
	}
	maxval, err := readUintToken(sc)
	if err != nil {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("reading maxval: %v", err)}
	}
	if maxval == 0 || maxval > 65535 {
		return nil, &ErrMalformed{Reason: fmt.Sprintf("invalid maxval %d", maxval)}
	}

	// Exactly one whitespace byte separates the header from the binary
	// payload; readUintToken has already consumed it along with the
	// maxval token's trailing whitespace.

	bytesPerSample := 1
	denom := uint16(maxval)
	if maxval > 255 {
		// Each sample is two big-endian bytes but only the high byte is
		// kept, matching the codec's 8-bit-per-channel data model; the
		// effective denominator for the retained byte is therefore 255,
		// not the original (up to 16-bit) maxval.
		bytesPerSample = 2
		denom = 255
	}
	img := &Image{Width: int(w), Height: int(h), Denom: denom, Pixels: make([]rgbconvert.RGB, int(w)*int(h))}

	buf := make([]byte, 3*bytesPerSample)
	for i := range img.Pixels {
		for k := 0; k < len(buf); k++ {
			b, err := sc.ReadByte()
			if err != nil {
				return nil, &ErrMalformed{Reason: fmt.Sprintf("truncated pixel data at sample %d: %v", i, err)}
			}
			buf[k] = b
		}
		if bytesPerSample == 1 {
			img.Pixels[i] = rgbconvert.RGB{R: buf[0], G: buf[1], B: buf[2]}
		} else {
			// PPM 16-bit samples are big-endian; keep only the high byte,
			// matching the codec's 8-bit-per-channel data model.
			img.Pixels[i] = rgbconvert.RGB{R: buf[0], G: buf[2], B: buf[4]}
		}
	}
	return img, nil
}

// Encode writes img as a binary (P6) PPM with maxval 255 to w, regardless
// of the Denom the Image was decoded with (matching spec.md §6: the codec
// always emits denominator 255 on decode).
func Encode(w io.Writer, img *Image) error {
	_, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", img.Width, img.Height)
	if err != nil {
		return err
	}
	buf := make([]byte, 0, 3*img.Width)
	for y := 0; y < img.Height; y++ {
		buf = buf[:0]
		for x := 0; x < img.Width; x++ {
			px := img.At(x, y)
			buf = append(buf, px.R, px.G, px.B)
		}
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

// readToken reads a whitespace-delimited token, skipping leading
// whitespace and '#' comment lines (to end of line), as PPM headers
// allow.
func readToken(sc *codecutil.ByteScanner) (string, error) {
	var b byte
	var err error

	// Skip leading whitespace and comments.
	for {
		b, err = sc.ReadByte()
		if err != nil {
			return "", err
		}
		if b == '#' {
			for b != '\n' {
				b, err = sc.ReadByte()
				if err != nil {
					return "", err
				}
			}
			continue
		}
		if !isSpace(b) {
			break
		}
	}

	tok := []byte{b}
	for {
		b, err = sc.ReadByte()
		if err != nil {
			// EOF right after the final header token is fine; the
			// caller distinguishes via context (pixel reads will fail
			// on true truncation).
			return string(tok), nil
		}
		if isSpace(b) {
			return string(tok), nil
		}
		tok = append(tok, b)
	}
}

// readUintToken reads a decimal token and parses it as a non-negative
// integer.
func readUintToken(sc *codecutil.ByteScanner) (uint, error) {
	tok, err := readToken(sc)
	if err != nil {
		return 0, err
	}
	if tok == "" {
		return 0, fmt.Errorf("empty numeric field")
	}
	var v uint
	for _, c := range []byte(tok) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid digit %q in %q", c, tok)
		}
		v = v*10 + uint(c-'0')
	}
	return v, nil
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
