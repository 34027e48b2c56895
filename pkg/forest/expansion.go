package forest

// Expansion is a set of expanded item names.
type Expansion struct {
	names map[string]struct{}
	order []string
	last  string
}

func NewExpansion(names ...string) *Expansion {
	e := &Expansion{names: map[string]struct{}{}}
	for _, n := range names {
		e.add(n)
	}
	return e
}

func (e *Expansion) add(name string) {
	if _, ok := e.names[name]; ok {
		return
	}
	e.names[name] = struct{}{}
	e.order = append(e.order, name)
}

func (e *Expansion) IsExpanded(name string) bool {
	_, ok := e.names[name]
	return ok
}

// Toggle expands name if it is collapsed, or collapses it if expanded.
//
// name becomes the last toggled item.
func (e *Expansion) Toggle(name string) {
	e.last = name
	if !e.IsExpanded(name) {
		e.add(name)
		return
	}
	delete(e.names, name)
	order := make([]string, 0, len(e.order))
	for _, n := range e.order {
		if n != name {
			order = append(order, n)
		}
	}
	e.order = order
}

// Mark makes name the last toggled item, without changing expansion.
func (e *Expansion) Mark(name string) {
	e.last = name
}

// ExpandAll expands all names in forest.
func (e *Expansion) ExpandAll(forest []Item) {
	for _, n := range AllNames(forest) {
		e.add(n)
	}
}

// CollapseAll collapses everything.
func (e *Expansion) CollapseAll() {
	e.names = map[string]struct{}{}
	e.order = nil
}

// Last returns the last toggled item name.
func (e *Expansion) Last() string {
	return e.last
}

// Names returns expanded names in order they are expanded.
func (e *Expansion) Names() []string {
	ret := make([]string, len(e.order))
	copy(ret, e.order)
	return ret
}
