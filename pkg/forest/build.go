package forest

// Edge places Child under Parent.
type Edge struct {
	Parent string
	Child  string
}

// Build makes a forest from root names and edges, keeping their order.
//
// A name can be placed more than once.
func Build(roots []string, edges []Edge) []Item {
	forest := make([]Item, 0, len(roots)+len(edges))
	for _, r := range roots {
		forest = append(forest, Item{Name: r})
	}
	for _, e := range edges {
		forest = append(forest, Item{Name: e.Child, ParentName: e.Parent})
	}
	return forest
}
