package connectivity

// unionFind is a disjoint-set over node keys. Nodes are created lazily: the
// first find of an unseen key inserts it as its own root, so any point that
// is ever queried becomes part of the partition even if nothing connects to
// it. Keys are never removed.
type unionFind struct {
	parent map[nodeKey]nodeKey
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[nodeKey]nodeKey)}
}

// find returns the root of k's equivalence class, inserting k as a new
// singleton if it has never been seen. The walk is iterative with full path
// compression, so deep chains stay cheap on large schematics.
func (u *unionFind) find(k nodeKey) nodeKey {
	if _, ok := u.parent[k]; !ok {
		u.parent[k] = k
		return k
	}

	root := k
	for u.parent[root] != root {
		root = u.parent[root]
	}

	for u.parent[k] != root {
		k, u.parent[k] = u.parent[k], root
	}

	return root
}

// union merges the classes containing a and b. Merging a class with itself
// is a no-op.
func (u *unionFind) union(a, b nodeKey) {
	ra := u.find(a)
	rb := u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
