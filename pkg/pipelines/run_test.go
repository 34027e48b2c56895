package pipelines_test

import (
	"testing"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/pipelines"
)

func TestRun(t *testing.T) {
	pipeline := decode(t, `{
		"id": 10, "name": "parent",
		"overriddenParameters": {"entries": {"REGION": "EU"}},
		"pipelineNodeSummaries": [
			{
				"sequence": 1, "nodeType": "BATCH",
				"overriddenParameters": {"entries": {"DATE": "T-1"}},
				"batchSummary": {"id": 1, "name": "batch-a", "overriddenParameters": {"entries": {"DATE": "T"}}}
			},
			{
				"sequence": 2, "nodeType": "BATCH",
				"batchSummary": {"id": 2, "name": "batch-b", "overriddenParameters": {"entries": {"MODE": "full"}}}
			}
		]
	}`)

	defaults := pipelines.RunDefaults(pipeline)

	t.Run("defaults prefer node parameters, then summary's", func(t *testing.T) {
		if len(defaults) != 3 {
			t.Fatalf("len(defaults) = %d", len(defaults))
		}
		for i, want := range []pipelines.RunGroup{
			{Name: "batch-a", Parameters: types.Parameters{Entries: map[string]string{"DATE": "T-1"}}},
			{Name: "batch-b", Parameters: types.Parameters{Entries: map[string]string{"MODE": "full"}}},
			{Name: pipelines.PipelineOverrides, Parameters: types.Parameters{Entries: map[string]string{"REGION": "EU"}}},
		} {
			got := defaults[i]
			if got.Name != want.Name || !got.Parameters.Equal(want.Parameters) {
				t.Errorf("defaults[%d] = %+v, want %+v", i, got, want)
			}
		}
	})

	t.Run("customized keeps only changed parameters", func(t *testing.T) {
		edited := map[string]types.Parameters{
			"batch-a": {Entries: map[string]string{"DATE": "T-2"}},
			"batch-b": {Entries: map[string]string{"MODE": "full"}},
			pipelines.PipelineOverrides: {Entries: map[string]string{"REGION": "EU"}},
		}
		got := pipelines.Customized(defaults, edited)

		if len(got) != 2 {
			t.Fatalf("groups: %v", got)
		}
		if !got["batch-a"].Equal(types.Parameters{Entries: map[string]string{"DATE": "T-2"}}) {
			t.Errorf("batch-a = %v", got["batch-a"])
		}
		if _, ok := got["batch-b"]; ok {
			t.Errorf("unchanged group is present: %v", got["batch-b"])
		}
		if p, ok := got[pipelines.PipelineOverrides]; !ok || len(p.Entries) != 0 {
			t.Errorf("pipelineOverrides = %v (present: %v)", p, ok)
		}
	})

	t.Run("added parameters are customized", func(t *testing.T) {
		edited := map[string]types.Parameters{
			pipelines.PipelineOverrides: {Entries: map[string]string{"REGION": "EU", "EXTRA": "1"}},
		}
		got := pipelines.Customized(defaults, edited)
		if !got[pipelines.PipelineOverrides].Equal(types.Parameters{Entries: map[string]string{"EXTRA": "1"}}) {
			t.Errorf("pipelineOverrides = %v", got[pipelines.PipelineOverrides])
		}
	})
}
