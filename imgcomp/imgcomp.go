/*
NAME
  imgcomp.go

DESCRIPTION
  imgcomp.go implements the compression and decompression pipeline glue:
  trimming an image to even dimensions, iterating 2x2 blocks in row-major
  order through rgbconvert/blockavg/quantize, and framing the compressed
  byte stream described in spec.md §6.

AUTHOR
  Saxon Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package imgcomp implements the compress/decompress pipeline for the
// block image codec: PPM in, compressed byte stream out, and back.
package imgcomp

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ausocean/imgcomp/codec/blockavg"
	"github.com/ausocean/imgcomp/codec/quantize"
	"github.com/ausocean/imgcomp/codec/rgbconvert"
	"github.com/ausocean/imgcomp/grid"
	"github.com/ausocean/imgcomp/ppm"
)

// Header is the fixed magic line that precedes every compressed stream.
const Header = "COMP40 Compressed image format 2\n"

// ErrTruncatedStream indicates the compressed byte stream ended before the
// header's declared payload length was fully read.
type ErrTruncatedStream struct {
	Want, Got int
}

func (e *ErrTruncatedStream) Error() string {
	return fmt.Sprintf("imgcomp: truncated stream: read %d of %d expected payload bytes", e.Got, e.Want)
}

// ErrInputMalformed indicates a compressed stream's header does not match
// the expected format, or its declared dimensions are inconsistent.
type ErrInputMalformed struct {
	Reason string
}

func (e *ErrInputMalformed) Error() string { return "imgcomp: malformed input: " + e.Reason }

// Trim returns img with any odd trailing row/column dropped, so that both
// dimensions are even. Trim is a no-op (returns img unchanged) when both
// dimensions are already even; otherwise it allocates a new image and
// copies the retained pixels, leaving the original unchanged.
func Trim(img *ppm.Image) *ppm.Image {
	w, h := img.Width, img.Height
	newW, newH := w, h
	if newW%2 != 0 {
		newW--
	}
	if newH%2 != 0 {
		newH--
	}
	if newW == w && newH == h {
		return img
	}

	out := &ppm.Image{Width: newW, Height: newH, Denom: img.Denom, Pixels: make([]rgbconvert.RGB, newW*newH)}
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

// Compress reads a PPM from r, trims it to even dimensions, runs it
// through the block codec pipeline, and writes the compressed stream to
// w.
func Compress(w io.Writer, r io.Reader) error {
	img, err := ppm.Decode(r)
	if err != nil {
		return fmt.Errorf("decoding ppm: %w", err)
	}
	img = Trim(img)

	words := compressToWords(img)

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%d %d\n", Header, img.Width, img.Height); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	buf := make([]byte, 4)
	for by := 0; by < words.Height(); by++ {
		for bx := 0; bx < words.Width(); bx++ {
			binary.BigEndian.PutUint32(buf, *words.At(bx, by))
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("writing payload: %w", err)
			}
		}
	}
	return bw.Flush()
}

// compressToWords runs the block codec pipeline (ColorConvert,
// BlockTransform, Quantize, BitPack) over every 2x2 block of img, in
// row-major block order, returning a dense grid of code words sized
// (width/2, height/2). img's dimensions must already be even.
func compressToWords(img *ppm.Image) *grid.Plain[uint32] {
	pixels := grid.NewBlocked[rgbconvert.RGB](img.Width, img.Height, 2)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			*pixels.At(x, y) = img.At(x, y)
		}
	}

	words := grid.NewPlain[uint32](img.Width/2, img.Height/2)
	pixels.ForEachBlock(func(bx, by, x0, y0 int) {
		var cv [4]rgbconvert.CV
		cv[0] = rgbconvert.ToCV(*pixels.At(x0, y0), img.Denom)
		cv[1] = rgbconvert.ToCV(*pixels.At(x0+1, y0), img.Denom)
		cv[2] = rgbconvert.ToCV(*pixels.At(x0, y0+1), img.Denom)
		cv[3] = rgbconvert.ToCV(*pixels.At(x0+1, y0+1), img.Denom)

		avg := blockavg.Analyze(cv)
		*words.At(bx, by) = quantize.Pack(quantize.Quantize(avg))
	})
	return words
}

// Decompress reads a compressed stream from r, reconstructs the pixmap,
// and writes it as a binary PPM to w.
func Decompress(w io.Writer, r io.Reader) error {
	words, blockW, blockH, err := readCompressed(r)
	if err != nil {
		return err
	}

	img := decompressFromWords(words, blockW, blockH)

	if err := ppm.Encode(w, img); err != nil {
		return fmt.Errorf("encoding ppm: %w", err)
	}
	return nil
}

// decompressFromWords runs the inverse block codec pipeline (BitPack,
// Quantize, BlockTransform, ColorConvert) over a dense grid of code words
// sized (blockW, blockH), in row-major block order, producing a pixmap of
// size (blockW*2, blockH*2) with denominator 255.
func decompressFromWords(words *grid.Plain[uint32], blockW, blockH int) *ppm.Image {
	img := &ppm.Image{Width: blockW * 2, Height: blockH * 2, Denom: 255, Pixels: make([]rgbconvert.RGB, blockW*2*blockH*2)}

	pixels := grid.NewBlocked[rgbconvert.RGB](img.Width, img.Height, 2)
	pixels.ForEachBlock(func(bx, by, x0, y0 int) {
		avg := quantize.Dequantize(quantize.Unpack(*words.At(bx, by)))
		cv := avg.Synthesize()
		*pixels.At(x0, y0) = cv[0].ToRGB()
		*pixels.At(x0+1, y0) = cv[1].ToRGB()
		*pixels.At(x0, y0+1) = cv[2].ToRGB()
		*pixels.At(x0+1, y0+1) = cv[3].ToRGB()
	})

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.Set(x, y, *pixels.At(x, y))
		}
	}
	return img
}

// readCompressed parses the compressed stream's header and reads its
// payload into a dense grid of 32-bit code words in row-major block
// order.
func readCompressed(r io.Reader) (words *grid.Plain[uint32], blockW, blockH int, err error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(Header))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, 0, 0, &ErrInputMalformed{Reason: fmt.Sprintf("reading magic: %v", err)}
	}
	if string(magic) != Header {
		return nil, 0, 0, &ErrInputMalformed{Reason: fmt.Sprintf("magic line %q does not match %q", magic, Header)}
	}

	var w, h int
	if _, err := fmt.Fscanf(br, "%d %d\n", &w, &h); err != nil {
		return nil, 0, 0, &ErrInputMalformed{Reason: fmt.Sprintf("reading dimensions: %v", err)}
	}
	if w < 0 || h < 0 || w%2 != 0 || h%2 != 0 {
		return nil, 0, 0, &ErrInputMalformed{Reason: fmt.Sprintf("dimensions %dx%d are not even and non-negative", w, h)}
	}
	blockW, blockH = w/2, h/2

	n := blockW * blockH
	words = grid.NewPlain[uint32](blockW, blockH)
	buf := make([]byte, 4)
	i := 0
	for by := 0; by < blockH; by++ {
		for bx := 0; bx < blockW; bx++ {
			if _, err := io.ReadFull(br, buf); err != nil {
				return nil, 0, 0, &ErrTruncatedStream{Want: n * 4, Got: i * 4}
			}
			*words.At(bx, by) = binary.BigEndian.Uint32(buf)
			i++
		}
	}

	if _, err := br.ReadByte(); err != io.EOF {
		return nil, 0, 0, &ErrInputMalformed{Reason: "payload longer than declared dimensions"}
	}

	return words, blockW, blockH, nil
}
