package connectivity

import "testing"

func TestUnionFindLazyCreation(t *testing.T) {
	uf := newUnionFind()

	k := nodeKey{X: 1, Y: 2}
	if root := uf.find(k); root != k {
		t.Errorf("find on unseen key = %v, want %v (own root)", root, k)
	}
	// A second find must return the same root, not re-create
	if root := uf.find(k); root != k {
		t.Errorf("repeated find = %v, want %v", root, k)
	}
	if len(uf.parent) != 1 {
		t.Errorf("expected 1 node, got %d", len(uf.parent))
	}
}

func TestUnionFindTransitivity(t *testing.T) {
	uf := newUnionFind()

	a := nodeKey{X: 1}
	b := nodeKey{X: 2}
	c := nodeKey{X: 3}
	d := nodeKey{X: 4}

	uf.union(a, b)
	uf.union(c, d)
	if uf.find(a) == uf.find(c) {
		t.Fatal("disjoint sets should have distinct roots")
	}

	uf.union(b, c)
	root := uf.find(a)
	for _, k := range []nodeKey{b, c, d} {
		if uf.find(k) != root {
			t.Errorf("find(%v) = %v, want %v after merge", k, uf.find(k), root)
		}
	}
}

func TestUnionFindSelfUnion(t *testing.T) {
	uf := newUnionFind()

	a := nodeKey{X: 1}
	b := nodeKey{X: 2}
	uf.union(a, b)
	uf.union(a, b)
	uf.union(b, a)

	if uf.find(a) != uf.find(b) {
		t.Error("repeated unions must not split the set")
	}
	if len(uf.parent) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(uf.parent))
	}
}

func TestUnionFindPathCompression(t *testing.T) {
	uf := newUnionFind()

	// Build a chain 0 <- 1 <- 2 <- ... <- 99
	keys := make([]nodeKey, 100)
	for i := range keys {
		keys[i] = nodeKey{X: int64(i)}
	}
	for i := 1; i < len(keys); i++ {
		uf.union(keys[i], keys[i-1])
	}

	root := uf.find(keys[len(keys)-1])
	for _, k := range keys {
		if uf.find(k) != root {
			t.Fatalf("find(%v) != chain root", k)
		}
	}
	// After compression every node points straight at the root
	for _, k := range keys {
		if uf.parent[k] != root {
			t.Errorf("parent[%v] = %v, not compressed to root", k, uf.parent[k])
		}
	}
}
