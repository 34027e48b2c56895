package forest

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the tree as indented text.
//
// Expanded items are marked with "-", collapsed items with "+" and
// items without children with " ". The bold item is wrapped with "*".
func Fprint(w io.Writer, forest []Item, level *Level) error {
	if len(forest) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	return fprintLevel(w, level, 0)
}

func fprintLevel(w io.Writer, level *Level, depth int) error {
	if level == nil {
		return nil
	}
	indent := strings.Repeat("    ", depth)
	if level.HasDeadLoop() {
		_, err := fmt.Fprintf(w, "%s! %s\n", indent, level.DeadLoopMessage())
		return err
	}
	for _, n := range level.Nodes {
		mark := " "
		switch {
		case n.ChildCount == 0:
		case n.Expanded:
			mark = "-"
		default:
			mark = "+"
		}
		name := n.Name
		if n.Bold {
			name = "*" + name + "*"
		}
		if _, err := fmt.Fprintf(w, "%s[%s] %s (%d)\n", indent, mark, name, n.ChildCount); err != nil {
			return err
		}
		if err := fprintLevel(w, n.Sub, depth+1); err != nil {
			return err
		}
	}
	return nil
}
