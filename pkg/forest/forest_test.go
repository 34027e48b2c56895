package forest_test

import (
	"bytes"
	"testing"

	"github.com/opst/scorch-console/pkg/forest"
	"github.com/opst/scorch-console/pkg/utils/cmp"
)

// names collects names of nodes in level depth-first, and dead loops found.
func names(level *forest.Level) (nodes []string, deadloops []string) {
	var walk func(l *forest.Level)
	walk = func(l *forest.Level) {
		if l == nil {
			return
		}
		if l.HasDeadLoop() {
			deadloops = append(deadloops, l.DeadLoop)
			return
		}
		for _, n := range l.Nodes {
			nodes = append(nodes, n.Name)
			walk(n.Sub)
		}
	}
	walk(level)
	return
}

func TestSubItems(t *testing.T) {
	f := []forest.Item{
		{Name: "root-1"},
		{Name: "a", ParentName: "root-1"},
		{Name: "root-2"},
		{Name: "b", ParentName: "root-1"},
	}

	roots := forest.SubItems(f, "")
	if !cmp.SliceEqWith(roots, []string{"root-1", "root-2"}, func(i forest.Item, n string) bool { return i.Name == n }) {
		t.Errorf("unexpected roots: %+v", roots)
	}

	children := forest.SubItems(f, "root-1")
	if !cmp.SliceEqWith(children, []string{"a", "b"}, func(i forest.Item, n string) bool { return i.Name == n }) {
		t.Errorf("unexpected children: %+v", children)
	}

	if n := forest.ChildCount(f, "root-1"); n != 2 {
		t.Errorf("unexpected child count: %d", n)
	}
}

func TestRender(t *testing.T) {
	t.Run("after expanding all, acyclic forest renders each name once", func(t *testing.T) {
		f := []forest.Item{
			{Name: "root"},
			{Name: "a", ParentName: "root"},
			{Name: "b", ParentName: "root"},
			{Name: "a-1", ParentName: "a"},
			{Name: "a-1-x", ParentName: "a-1"},
			{Name: "other-root"},
		}
		exp := forest.NewExpansion()
		exp.ExpandAll(f)

		nodes, deadloops := names(forest.Render(f, exp))
		expected := []string{"root", "a", "a-1", "a-1-x", "b", "other-root"}
		if !cmp.SliceEq(nodes, expected) {
			t.Errorf("unexpected nodes. (actual, expected) = (%v, %v)", nodes, expected)
		}
		if len(deadloops) != 0 {
			t.Errorf("unexpected dead loops: %v", deadloops)
		}
	})

	t.Run("collapsed items are rendered without sub level", func(t *testing.T) {
		f := []forest.Item{
			{Name: "root"},
			{Name: "a", ParentName: "root"},
		}
		level := forest.Render(f, forest.NewExpansion())
		if len(level.Nodes) != 1 {
			t.Fatalf("unexpected level: %+v", level)
		}
		root := level.Nodes[0]
		if root.Expanded || root.Sub != nil || root.ChildCount != 1 {
			t.Errorf("unexpected node: %+v", root)
		}
	})

	t.Run("cycle through shared names is reported as dead loop", func(t *testing.T) {
		f := []forest.Item{
			{Name: "R"},
			{Name: "A", ParentName: "R"},
			{Name: "B", ParentName: "A"},
			{Name: "R", ParentName: "B"},
		}
		exp := forest.NewExpansion()
		exp.ExpandAll(f)

		nodes, deadloops := names(forest.Render(f, exp))
		if !cmp.SliceEq(nodes, []string{"R", "A", "B"}) {
			t.Errorf("unexpected nodes: %v", nodes)
		}
		if !cmp.SliceEq(deadloops, []string{"R"}) {
			t.Errorf("unexpected dead loops: %v", deadloops)
		}
	})

	t.Run("rendering from a node on A->B->A terminates with dead loop", func(t *testing.T) {
		f := []forest.Item{
			{Name: "A", ParentName: "B"},
			{Name: "B", ParentName: "A"},
		}
		exp := forest.NewExpansion()
		exp.ExpandAll(f)

		level := forest.RenderFrom(f, "A", exp)
		nodes, deadloops := names(level)
		if !cmp.SliceEq(nodes, []string{"B"}) {
			t.Errorf("unexpected nodes: %v", nodes)
		}
		if !cmp.SliceEq(deadloops, []string{"A"}) {
			t.Errorf("unexpected dead loops: %v", deadloops)
		}
		if msg := level.Nodes[0].Sub.DeadLoopMessage(); msg != "DeadLoop encountered, check A" {
			t.Errorf("unexpected message: %s", msg)
		}
	})

	t.Run("dead loop replaces whole level", func(t *testing.T) {
		f := []forest.Item{
			{Name: "R"},
			{Name: "A", ParentName: "R"},
			{Name: "R", ParentName: "A"},
			{Name: "C", ParentName: "A"},
		}
		exp := forest.NewExpansion("R", "A")

		level := forest.Render(f, exp)
		a := level.Nodes[0].Sub.Nodes[0]
		if !a.Sub.HasDeadLoop() || len(a.Sub.Nodes) != 0 {
			t.Errorf("unexpected level under A: %+v", a.Sub)
		}
	})
}

func TestExpansion(t *testing.T) {
	t.Run("toggle expands and collapses, and marks the item bold", func(t *testing.T) {
		f := []forest.Item{
			{Name: "root"},
			{Name: "a", ParentName: "root"},
		}
		exp := forest.NewExpansion()

		exp.Toggle("root")
		level := forest.Render(f, exp)
		if root := level.Nodes[0]; !root.Expanded || !root.Bold || root.Sub == nil {
			t.Errorf("unexpected node: %+v", root)
		}

		exp.Toggle("root")
		level = forest.Render(f, exp)
		if root := level.Nodes[0]; root.Expanded || !root.Bold {
			t.Errorf("unexpected node: %+v", root)
		}
	})

	t.Run("collapse all empties the set", func(t *testing.T) {
		f := []forest.Item{{Name: "a"}, {Name: "b", ParentName: "a"}}
		exp := forest.NewExpansion()
		exp.ExpandAll(f)
		if !cmp.SliceEq(exp.Names(), []string{"a", "b"}) {
			t.Errorf("unexpected names: %v", exp.Names())
		}
		exp.CollapseAll()
		if len(exp.Names()) != 0 || exp.IsExpanded("a") {
			t.Errorf("not collapsed: %v", exp.Names())
		}
	})
}

func TestAllNames(t *testing.T) {
	t.Run("it includes names in nested children, without duplicates", func(t *testing.T) {
		f := []forest.Item{
			{Name: "a", Children: []forest.Item{
				{Name: "a-1", Children: []forest.Item{{Name: "a-1-x"}}},
				{Name: "b"},
			}},
			{Name: "b"},
		}
		expected := []string{"a", "b", "a-1", "a-1-x"}
		if actual := forest.AllNames(f); !cmp.SliceEq(actual, expected) {
			t.Errorf("unexpected names. (actual, expected) = (%v, %v)", actual, expected)
		}
	})

	t.Run("it terminates on cyclic children", func(t *testing.T) {
		cyclic := make([]forest.Item, 2)
		cyclic[0] = forest.Item{Name: "A"}
		cyclic[1] = forest.Item{Name: "B"}
		cyclic[0].Children = cyclic[1:]
		cyclic[1].Children = cyclic[:1]

		actual := forest.AllNames(cyclic[:1])
		if !cmp.SliceEq(actual, []string{"A", "B"}) {
			t.Errorf("unexpected names: %v", actual)
		}
	})
}

func TestBuild(t *testing.T) {
	f := forest.Build(
		[]string{"p1"},
		[]forest.Edge{{Parent: "p1", Child: "p2"}, {Parent: "p2", Child: "p1"}},
	)
	expected := []forest.Item{
		{Name: "p1"},
		{Name: "p2", ParentName: "p1"},
		{Name: "p1", ParentName: "p2"},
	}
	if !cmp.SliceEqWith(f, expected, func(a, b forest.Item) bool {
		return a.Name == b.Name && a.ParentName == b.ParentName
	}) {
		t.Errorf("unexpected forest: %+v", f)
	}
}

func TestFprint(t *testing.T) {
	t.Run("empty forest", func(t *testing.T) {
		buf := new(bytes.Buffer)
		if err := forest.Fprint(buf, nil, forest.Render(nil, nil)); err != nil {
			t.Fatal(err)
		}
		if buf.String() != "There are no hierarchies to show.\n" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})

	t.Run("tree with dead loop", func(t *testing.T) {
		f := []forest.Item{
			{Name: "R"},
			{Name: "A", ParentName: "R"},
			{Name: "R", ParentName: "A"},
			{Name: "S"},
		}
		exp := forest.NewExpansion("R", "A")
		exp.Toggle("S")

		buf := new(bytes.Buffer)
		if err := forest.Fprint(buf, f, forest.Render(f, exp)); err != nil {
			t.Fatal(err)
		}
		expected := "" +
			"[-] R (1)\n" +
			"    [-] A (1)\n" +
			"        ! DeadLoop encountered, check R\n" +
			"[ ] *S* (0)\n"
		if buf.String() != expected {
			t.Errorf("unexpected output. (actual, expected) = \n%s\n%s", buf.String(), expected)
		}
	})
}
