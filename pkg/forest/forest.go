// Package forest renders parent-referenced lists of named items as trees.
//
// A forest is a flat list of Items. Each Item refers its parent by name,
// and roots have empty ParentName. The same name can appear more than once
// (for example, a job group shared by some hierarchies), so references may
// form cycles. Rendering detects them and reports a dead loop in place of
// the level where the cycle closes.
package forest

import "fmt"

// EmptyMessage is shown for a forest without items.
const EmptyMessage = "There are no hierarchies to show."

type Item struct {
	Name       string `json:"name"`
	ParentName string `json:"parentName,omitempty"`

	// Children is an alternate form of hierarchy: items nested in this item.
	Children []Item `json:"children,omitempty"`
}

// SubItems returns items placed directly under rootName, in order of forest.
//
// For empty rootName, it returns roots.
func SubItems(forest []Item, rootName string) []Item {
	ret := []Item{}
	for _, item := range forest {
		if item.ParentName == rootName {
			ret = append(ret, item)
		}
	}
	return ret
}

// ChildCount returns the number of items whose parent is name.
func ChildCount(forest []Item, name string) int {
	if name == "" {
		return 0
	}
	return len(SubItems(forest, name))
}

// AllNames lists distinct names in forest, including names in nested Children.
//
// It walks depth-first, in the order names are found.
// Each nested item is visited once, so cyclic Children terminate.
func AllNames(forest []Item) []string {
	names := []string{}
	seen := map[string]struct{}{}
	visited := map[string]struct{}{}

	note := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	var walk func(items []Item)
	walk = func(items []Item) {
		for _, item := range items {
			note(item.Name)
		}
		for _, item := range items {
			if len(item.Children) == 0 {
				continue
			}
			if _, ok := visited[item.Name]; ok {
				continue
			}
			visited[item.Name] = struct{}{}
			walk(item.Children)
		}
	}
	walk(forest)
	return names
}

// Node is an item in rendered tree.
type Node struct {
	Name string

	// ChildCount is the number of items whose parent is this node.
	ChildCount int

	Expanded bool

	// Bold is true for the last toggled item.
	Bold bool

	// Sub is the level under this node. It is nil unless Expanded.
	Sub *Level
}

// Level is a list of sibling nodes.
//
// When a cycle closes at this level, DeadLoop holds the name found again
// and Nodes is empty.
type Level struct {
	Nodes    []Node
	DeadLoop string
}

func (l *Level) HasDeadLoop() bool {
	return l != nil && l.DeadLoop != ""
}

func (l *Level) DeadLoopMessage() string {
	if !l.HasDeadLoop() {
		return ""
	}
	return DeadLoopMessage(l.DeadLoop)
}

func DeadLoopMessage(name string) string {
	return fmt.Sprintf("DeadLoop encountered, check %s", name)
}

// Render builds the tree of forest from its roots.
func Render(forest []Item, exp *Expansion) *Level {
	return RenderFrom(forest, "", exp)
}

// RenderFrom builds the tree of items under rootName.
//
// Only expanded items have their sub levels.
// If a sub item is found again on the path from rootName to it,
// the level is replaced with a dead loop.
func RenderFrom(forest []Item, rootName string, exp *Expansion) *Level {
	if exp == nil {
		exp = NewExpansion()
	}
	path := []string{}
	if rootName != "" {
		path = append(path, rootName)
	}
	return render(forest, rootName, path, exp)
}

func render(forest []Item, rootName string, path []string, exp *Expansion) *Level {
	level := &Level{Nodes: []Node{}}

	for _, item := range SubItems(forest, rootName) {
		if contains(path, item.Name) {
			return &Level{DeadLoop: item.Name}
		}

		node := Node{
			Name:       item.Name,
			ChildCount: ChildCount(forest, item.Name),
			Expanded:   exp.IsExpanded(item.Name),
			Bold:       exp.Last() != "" && exp.Last() == item.Name,
		}
		if node.Expanded {
			sub := make([]string, len(path), len(path)+1)
			copy(sub, path)
			node.Sub = render(forest, item.Name, append(sub, item.Name), exp)
		}
		level.Nodes = append(level.Nodes, node)
	}
	return level
}

func contains(path []string, name string) bool {
	for _, p := range path {
		if p == name {
			return true
		}
	}
	return false
}
