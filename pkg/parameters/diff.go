package parameters

import (
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/utils"
)

// NotAvailable is shown in place of missing or empty values.
const NotAvailable = "(N/A)"

type DiffRow struct {
	Name string

	Left  string
	Right string

	// Differs is true if values are different, or present only in one side.
	Differs bool
}

func orNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

func (r DiffRow) LeftLabel() string {
	return orNotAvailable(r.Left)
}

func (r DiffRow) RightLabel() string {
	return orNotAvailable(r.Right)
}

type Comparison struct {
	Rows  []DiffRow
	Equal bool
}

// Diff compares parameters on names in either side.
//
// Rows are sorted by name, ignoring letter case.
func Diff(left types.Parameters, right types.Parameters) Comparison {
	union := map[string]struct{}{}
	for k := range left.Entries {
		union[k] = struct{}{}
	}
	for k := range right.Entries {
		union[k] = struct{}{}
	}

	rows := utils.Map(
		utils.SortedCaseInsensitive(utils.KeysOf(union)),
		func(name string) DiffRow {
			l, lok := left.Entries[name]
			r, rok := right.Entries[name]
			return DiffRow{
				Name:    name,
				Left:    l,
				Right:   r,
				Differs: lok != rok || l != r,
			}
		},
	)

	return Comparison{Rows: rows, Equal: left.Equal(right)}
}
