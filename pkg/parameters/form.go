package parameters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/opst/scorch-console/pkg/api/types"
	kstrings "github.com/opst/scorch-console/pkg/utils/strings"
)

// form field names of parameter tables.
const (
	// FieldPrefix + name holds the value of the parameter.
	FieldPrefix       = "param."
	FieldPendingName  = "pending.name"
	FieldPendingValue = "pending.value"

	// FieldDelete holds the name of the parameter to be deleted.
	FieldDelete = "param-delete"

	// FieldAdd is present when the pending row is to be added.
	FieldAdd = "param-add"

	// FieldAddAll is present when pending rows of all tables in the form are to be added.
	// It is not scoped. The default button of a form sends it on Enter.
	FieldAddAll = "param-add-all"
)

// Scope distinguishes tables in the same form. Field names of a table are prefixed with its scope.
//
// The zero Scope is the table alone in a form.
type Scope string

// ScopeOf is the scope of the i-th table in a form.
func ScopeOf(i int) Scope {
	return Scope(fmt.Sprintf("t%d.", i))
}

// Field returns the name of the field in the scope.
func (s Scope) Field(name string) string {
	return string(s) + name
}

// FromForm rebuilds parameters edited in a form, applying the requested deletion and addition.
//
// # Returns
//
// - types.Parameters: edited parameters.
//
// - Row: pending row left in the form. It is empty if the row is added.
func FromForm(form url.Values) (types.Parameters, Row) {
	return Scope("").FromForm(form)
}

// FromForm rebuilds parameters of the table in the scope.
func (s Scope) FromForm(form url.Values) (types.Parameters, Row) {
	prefix := s.Field(FieldPrefix)
	base := types.NewParameters()
	for key, values := range form {
		name, ok := strings.CutPrefix(key, prefix)
		if !ok || name == "" || len(values) == 0 {
			continue
		}
		base.Entries[name] = kstrings.ReplaceLineBreaks(values[0])
	}

	edited := base
	table := NewTable(base, func(p types.Parameters) { edited = p })

	if name := form.Get(s.Field(FieldDelete)); name != "" {
		table.Delete(name)
	}

	table.SetPending(form.Get(s.Field(FieldPendingName)), form.Get(s.Field(FieldPendingValue)))
	if form.Has(s.Field(FieldAdd)) || form.Has(FieldAddAll) {
		table.AddPending()
	}
	return edited, table.Pending()
}

// ParseAssignments parses "NAME=VALUE" into parameters.
//
// Names and values are trimmed, and line breaks in values are replaced with spaces.
// The later assignment wins for the same name.
func ParseAssignments(assignments []string) (types.Parameters, error) {
	ret := types.NewParameters()
	for _, a := range assignments {
		name, value, ok := strings.Cut(a, "=")
		if !ok {
			return types.Parameters{}, fmt.Errorf("%q is not in form NAME=VALUE", a)
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return types.Parameters{}, fmt.Errorf("%q has no name", a)
		}
		ret.Entries[name] = strings.TrimSpace(kstrings.ReplaceLineBreaks(value))
	}
	return ret, nil
}
