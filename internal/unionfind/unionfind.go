package unionfind

// UnionFind is a disjoint-set forest over arbitrary comparable keys.
type UnionFind[K comparable] struct {
	parent map[K]K
	size   map[K]int
}

func New[K comparable]() *UnionFind[K] {
	return &UnionFind[K]{
		parent: map[K]K{},
		size:   map[K]int{},
	}
}

// NewWithCapacity preallocates room for n keys.
func NewWithCapacity[K comparable](n int) *UnionFind[K] {
	return &UnionFind[K]{
		parent: make(map[K]K, n),
		size:   make(map[K]int, n),
	}
}

// Add registers key as its own singleton set. Adding a known key is a no-op.
func (u *UnionFind[K]) Add(key K) {
	if _, ok := u.parent[key]; ok {
		return
	}
	u.parent[key] = key
	u.size[key] = 1
}

// Has reports whether key was added.
func (u *UnionFind[K]) Has(key K) bool {
	_, ok := u.parent[key]
	return ok
}

// Len is the number of registered keys.
func (u *UnionFind[K]) Len() int { return len(u.parent) }

// Find returns the representative of key's set. Unknown keys are their own
// representative and are not registered.
func (u *UnionFind[K]) Find(key K) K {
	root := key
	for {
		p, ok := u.parent[root]
		if !ok || p == root {
			break
		}
		root = p
	}
	// path compression
	for key != root {
		next := u.parent[key]
		u.parent[key] = root
		key = next
	}
	return root
}

// Union merges the sets containing a and b, registering either key if needed.
func (u *UnionFind[K]) Union(a, b K) {
	u.Add(a)
	u.Add(b)
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
	delete(u.size, rb)
}

// Connected reports whether a and b are in the same set.
func (u *UnionFind[K]) Connected(a, b K) bool {
	if !u.Has(a) || !u.Has(b) {
		return false
	}
	return u.Find(a) == u.Find(b)
}

// Components returns the current partition. Every added key appears in
// exactly one component; the order of components and of keys is unspecified.
func (u *UnionFind[K]) Components() [][]K {
	byRoot := make(map[K][]K, len(u.size))
	for key := range u.parent {
		root := u.Find(key)
		byRoot[root] = append(byRoot[root], key)
	}
	out := make([][]K, 0, len(byRoot))
	for _, members := range byRoot {
		out = append(out, members)
	}
	return out
}
