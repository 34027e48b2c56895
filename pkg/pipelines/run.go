package pipelines

import (
	"github.com/opst/scorch-console/pkg/api/types"
)

// PipelineOverrides is the run group of parameters overriding the pipeline itself.
const PipelineOverrides = "pipelineOverrides"

// RunGroup is parameters of a run, overriding those of a node or the pipeline.
type RunGroup struct {
	// Name is the node name, or PipelineOverrides.
	Name string

	Parameters types.Parameters
}

// RunDefaults lists parameters of a pipeline run before customization.
//
// A node without its own overridden parameters inherits those of its batch or pipeline.
// The group PipelineOverrides comes last.
func RunDefaults(pipeline types.Record) []RunGroup {
	groups := []RunGroup{}
	for _, r := range pipeline.Records(keyNodes) {
		n := nodeOf(r)
		params := n.OverriddenParameters
		if len(params.Entries) == 0 {
			params = types.ParametersOf(r.Record(summaryKey(n.Type)), "overriddenParameters")
		}
		groups = append(groups, RunGroup{Name: n.Name, Parameters: params.Clone()})
	}
	groups = append(groups, RunGroup{
		Name:       PipelineOverrides,
		Parameters: types.ParametersOf(pipeline, "overriddenParameters"),
	})
	return groups
}

// Customized picks parameters changed from defaults, per group.
//
// Node groups without changes are omitted. PipelineOverrides is always present.
func Customized(defaults []RunGroup, edited map[string]types.Parameters) map[string]types.Parameters {
	ret := map[string]types.Parameters{}
	for _, g := range defaults {
		changed := types.NewParameters()
		for name, value := range edited[g.Name].Entries {
			if d, ok := g.Parameters.Entries[name]; ok && d == value {
				continue
			}
			changed.Entries[name] = value
		}
		if g.Name != PipelineOverrides && len(changed.Entries) == 0 {
			continue
		}
		ret[g.Name] = changed
	}
	if _, ok := ret[PipelineOverrides]; !ok {
		ret[PipelineOverrides] = types.NewParameters()
	}
	return ret
}
