// Package parameters edits and compares Parameters, the flat name-value
// mapping attached to batches, pipelines, pipeline nodes and schedules.
package parameters

import (
	"strings"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/utils"
	kstrings "github.com/opst/scorch-console/pkg/utils/strings"
)

type Row struct {
	Name  string
	Value string
}

// Table is an editor of Parameters.
//
// Table without onChange callback is read-only: it ignores mutations.
// Otherwise, each mutation calls onChange once with a copy of the latest parameters.
type Table struct {
	params   types.Parameters
	pending  Row
	onChange func(types.Parameters)
}

// NewTable creates a table editing a copy of params.
func NewTable(params types.Parameters, onChange func(types.Parameters)) *Table {
	return &Table{params: params.Clone(), onChange: onChange}
}

func (t *Table) ReadOnly() bool {
	return t.onChange == nil
}

// Rows returns parameters sorted by name, ignoring letter case.
func (t *Table) Rows() []Row {
	names := utils.SortedCaseInsensitive(utils.KeysOf(t.params.Entries))
	return utils.Map(names, func(n string) Row {
		return Row{Name: n, Value: t.params.Entries[n]}
	})
}

// Parameters returns a copy of the current parameters.
func (t *Table) Parameters() types.Parameters {
	return t.params.Clone()
}

// Pending returns the row being typed, not added yet.
func (t *Table) Pending() Row {
	return t.pending
}

func (t *Table) changed() {
	t.onChange(t.params.Clone())
}

// Set updates the value of the parameter.
//
// Line breaks in value are replaced with spaces.
func (t *Table) Set(name string, value string) {
	if t.ReadOnly() {
		return
	}
	t.params.Entries[name] = kstrings.ReplaceLineBreaks(value)
	t.changed()
}

func (t *Table) Delete(name string) {
	if t.ReadOnly() {
		return
	}
	delete(t.params.Entries, name)
	t.changed()
}

// SetPending updates the row being typed. It does not change parameters.
//
// Line breaks are replaced with spaces.
func (t *Table) SetPending(name string, value string) {
	if t.ReadOnly() {
		return
	}
	t.pending = Row{
		Name:  kstrings.ReplaceLineBreaks(name),
		Value: kstrings.ReplaceLineBreaks(value),
	}
}

// AddPending adds the pending row as a parameter with trimmed name and value,
// then clears the pending row.
//
// A row with blank name is not added.
//
// # Returns
//
// - bool: true if the row is added.
func (t *Table) AddPending() bool {
	if t.ReadOnly() {
		return false
	}
	name := strings.TrimSpace(t.pending.Name)
	if name == "" {
		return false
	}
	t.params.Entries[name] = strings.TrimSpace(t.pending.Value)
	t.pending = Row{}
	t.changed()
	return true
}
