package engine

import (
	"testing"
)

func TestArenaAllocAndReset(t *testing.T) {
	a := NewArenaBytes(16 * nodeSize)

	idx, ok := a.Alloc()
	if !ok {
		t.Fatalf("fresh arena refused an allocation")
	}
	if idx != 0 {
		t.Fatalf("first allocation at index %d, want 0", idx)
	}
	first := a.node(idx)

	for i := 1; i < 16; i++ {
		if _, ok := a.Alloc(); !ok {
			t.Fatalf("allocation %d failed below capacity", i)
		}
	}
	if a.Len() != 16 {
		t.Fatalf("arena holds %d nodes, want 16", a.Len())
	}
	if a.HasSpace(1) {
		t.Fatalf("full arena claims to have space")
	}
	if _, ok := a.Alloc(); ok {
		t.Fatalf("full arena handed out a node")
	}

	a.Reset()
	if a.Len() != 0 || a.SizeBytes() != 0 {
		t.Fatalf("reset arena reports len %d size %d", a.Len(), a.SizeBytes())
	}

	idx, ok = a.Alloc()
	if !ok || idx != 0 {
		t.Fatalf("post-reset allocation got (%d, %v), want (0, true)", idx, ok)
	}
	// Same slab, same address: reset reuses the reservation.
	if a.node(idx) != first {
		t.Fatalf("post-reset allocation moved to a different address")
	}
}

func TestArenaAllocZeroesNodes(t *testing.T) {
	a := NewArenaBytes(4 * nodeSize)
	idx, _ := a.Alloc()
	n := a.node(idx)
	n.visits = 7
	n.reward = 3.5
	n.children = append(n.children, 1)

	a.Reset()
	idx, _ = a.Alloc()
	n = a.node(idx)
	if n.visits != 0 || n.reward != 0 || n.children != nil {
		t.Fatalf("recycled node not zeroed: %+v", n)
	}
}

func TestArenaTinyCapacity(t *testing.T) {
	// Sub-node sizes round up to one slot instead of a zero-capacity slab.
	a := NewArenaBytes(1)
	if !a.HasSpace(1) {
		t.Fatalf("minimum arena has no space at all")
	}
	if _, ok := a.Alloc(); !ok {
		t.Fatalf("minimum arena refused its single slot")
	}
	if a.HasSpace(1) {
		t.Fatalf("minimum arena should be full after one node")
	}
}

func TestArenaHasSpaceMatchesAlloc(t *testing.T) {
	a := NewArenaBytes(8 * nodeSize)
	for a.HasSpace(1) {
		if _, ok := a.Alloc(); !ok {
			t.Fatalf("HasSpace said yes but Alloc failed at %d nodes", a.Len())
		}
	}
	if _, ok := a.Alloc(); ok {
		t.Fatalf("HasSpace said no but Alloc succeeded")
	}
	if a.SizeBytes() != a.CapacityBytes() {
		t.Fatalf("size %d != capacity %d at saturation", a.SizeBytes(), a.CapacityBytes())
	}
}
