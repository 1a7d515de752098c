package graph

// clusters tracks which nodes of one graph are connected through edges.
// Union by size with path halving; indices are graph node indices.
type clusters struct {
	parent []int
	size   []int
}

func newClusters(n int) *clusters {
	c := &clusters{parent: make([]int, n), size: make([]int, n)}
	for i := range c.parent {
		c.parent[i] = i
		c.size[i] = 1
	}
	return c
}

func (c *clusters) find(i int) int {
	for c.parent[i] != i {
		c.parent[i] = c.parent[c.parent[i]]
		i = c.parent[i]
	}
	return i
}

// union merges the clusters of a and b, reporting whether they were separate
func (c *clusters) union(a, b int) bool {
	ra, rb := c.find(a), c.find(b)
	if ra == rb {
		return false
	}
	if c.size[ra] < c.size[rb] {
		ra, rb = rb, ra
	}
	c.parent[rb] = ra
	c.size[ra] += c.size[rb]
	return true
}

// sizes returns the size of every cluster, largest first
func (c *clusters) sizes() []int {
	var out []int
	for i := range c.parent {
		if c.find(i) == i {
			out = append(out, c.size[i])
		}
	}
	sortDesc(out)
	return out
}

// ClusterSizes returns the node count of each connected cluster of g,
// largest first. Isolated nodes count as clusters of one.
func ClusterSizes(g *Graph) []int {
	c := newClusters(len(g.Nodes))
	for _, e := range g.Edges {
		c.union(e.Source, e.Target)
	}
	return c.sizes()
}
