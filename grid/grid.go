/*
NAME
  grid.go

DESCRIPTION
  grid.go provides a generic 2-D array abstraction with two storage
  layouts: Plain (dense row-major) and Blocked (storage grouped into
  fixed-size square tiles). This is the Go-idiomatic replacement for the
  source's A2Methods virtual method table (spec.md §9): rather than a
  table of function pointers selected at construction time, callers choose
  a concrete type and every caller sees the same Grid interface.

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package grid provides a generic 2-D array abstraction with plain and
// blocked storage layouts.
package grid

// Grid is satisfied by both Plain and Blocked, letting pipeline code
// iterate without caring which layout backs a given stage's input.
type Grid[T any] interface {
	Width() int
	Height() int
	At(x, y int) *T
}

// Plain is a dense row-major 2-D array.
type Plain[T any] struct {
	w, h int
	data []T
}

// NewPlain returns a new Plain grid of the given dimensions, zero-valued.
func NewPlain[T any](w, h int) *Plain[T] {
	return &Plain[T]{w: w, h: h, data: make([]T, w*h)}
}

func (g *Plain[T]) Width() int  { return g.w }
func (g *Plain[T]) Height() int { return g.h }

// At returns a pointer to the element at (x, y). At panics if (x, y) is
// out of bounds, matching the source's CRE (checked run-time error)
// convention for programmer errors.
func (g *Plain[T]) At(x, y int) *T {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		panic("grid: index out of bounds")
	}
	return &g.data[y*g.w+x]
}

// Blocked is a 2-D array whose backing storage is grouped into block x
// block square tiles, so that all elements of one tile are contiguous.
// Width and height need not be multiples of block; the final row/column
// of tiles may be partial.
type Blocked[T any] struct {
	w, h, block int
	tilesX      int
	data        []T
}

// NewBlocked returns a new Blocked grid of the given dimensions and tile
// size, zero-valued. block must be positive.
func NewBlocked[T any](w, h, block int) *Blocked[T] {
	if block <= 0 {
		panic("grid: block size must be positive")
	}
	tilesX := (w + block - 1) / block
	tilesY := (h + block - 1) / block
	return &Blocked[T]{
		w: w, h: h, block: block,
		tilesX: tilesX,
		data:   make([]T, tilesX*tilesY*block*block),
	}
}

func (g *Blocked[T]) Width() int  { return g.w }
func (g *Blocked[T]) Height() int { return g.h }

// At returns a pointer to the element at (x, y).
func (g *Blocked[T]) At(x, y int) *T {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		panic("grid: index out of bounds")
	}
	tx, ty := x/g.block, y/g.block
	ix, iy := x%g.block, y%g.block
	tileIdx := ty*g.tilesX + tx
	offset := tileIdx*g.block*g.block + iy*g.block + ix
	return &g.data[offset]
}

// BlockSize returns the tile's side length (the grid's block size).
func (g *Blocked[T]) BlockSize() int { return g.block }

// NumBlocksX and NumBlocksY give the number of block columns and rows,
// including any partial final column/row.
func (g *Blocked[T]) NumBlocksX() int { return g.tilesX }
func (g *Blocked[T]) NumBlocksY() int { return (g.h + g.block - 1) / g.block }

// ForEachBlock calls fn once per block, in row-major block order (left to
// right, top to bottom), passing the block's (column, row) indices in
// block units and the top-left pixel coordinates of that block. This is
// the iteration order spec.md §5 requires for bit-exact output.
func (g *Blocked[T]) ForEachBlock(fn func(bx, by, x0, y0 int)) {
	for by := 0; by < g.NumBlocksY(); by++ {
		for bx := 0; bx < g.tilesX; bx++ {
			fn(bx, by, bx*g.block, by*g.block)
		}
	}
}
