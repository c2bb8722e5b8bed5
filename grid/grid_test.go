/*
NAME
  grid_test.go

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package grid

import "testing"

func TestPlainAtIdentity(t *testing.T) {
	g := NewPlain[int](4, 3)
	*g.At(2, 1) = 42
	if got := *g.At(2, 1); got != 42 {
		t.Errorf("At(2,1) = %d, want 42", got)
	}
	if g.Width() != 4 || g.Height() != 3 {
		t.Errorf("dims = (%d,%d), want (4,3)", g.Width(), g.Height())
	}
}

func TestPlainSatisfiesGrid(t *testing.T) {
	var _ Grid[int] = NewPlain[int](1, 1)
}

func TestBlockedSatisfiesGrid(t *testing.T) {
	var _ Grid[int] = NewBlocked[int](2, 2, 2)
}

func TestBlockedEveryCellDistinctAddress(t *testing.T) {
	g := NewBlocked[int](6, 4, 2)
	seen := make(map[*int]bool)
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			p := g.At(x, y)
			if seen[p] {
				t.Fatalf("address for (%d,%d) collides with another cell", x, y)
			}
			seen[p] = true
			*p = y*6 + x
		}
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if got := *g.At(x, y); got != y*6+x {
				t.Errorf("At(%d,%d) = %d, want %d", x, y, got, y*6+x)
			}
		}
	}
}

func TestForEachBlockRowMajorOrder(t *testing.T) {
	g := NewBlocked[int](4, 4, 2)
	var order [][2]int
	g.ForEachBlock(func(bx, by, x0, y0 int) {
		order = append(order, [2]int{bx, by})
		if x0 != bx*2 || y0 != by*2 {
			t.Errorf("block (%d,%d) origin = (%d,%d), want (%d,%d)", bx, by, x0, y0, bx*2, by*2)
		}
	})
	want := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(order) != len(want) {
		t.Fatalf("visited %d blocks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("block visit %d = %v, want %v", i, order[i], want[i])
		}
	}
}

func TestAtPanicsOutOfBounds(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic for out-of-bounds At")
		}
	}()
	g := NewPlain[int](2, 2)
	g.At(2, 0)
}
