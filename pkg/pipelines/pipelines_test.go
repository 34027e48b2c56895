package pipelines_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/forest"
	"github.com/opst/scorch-console/pkg/pipelines"
	"github.com/opst/scorch-console/pkg/utils"
	"github.com/opst/scorch-console/pkg/utils/cmp"
	"github.com/opst/scorch-console/pkg/utils/try"
)

type checkerFunc func(ctx context.Context, parentId, childId string) (bool, error)

func (f checkerFunc) CheckPipelineDeadLoop(ctx context.Context, parentId, childId string) (bool, error) {
	return f(ctx, parentId, childId)
}

// decode reads JSON as the REST client does.
func decode(t *testing.T, s string) types.Record {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var r types.Record
	if err := dec.Decode(&r); err != nil {
		t.Fatal(err)
	}
	return r
}

func keys(p types.Record) []string {
	return utils.Map(pipelines.Nodes(p), func(n pipelines.Node) string { return n.Key() })
}

func TestAttachNode(t *testing.T) {
	saved := `{
		"id": 10, "name": "parent",
		"pipelineNodeSummaries": [
			{"id": 100, "sequence": 1, "nodeType": "BATCH", "batchSummary": {"id": 1, "name": "batch-a"}},
			{"id": 101, "sequence": 2, "nodeType": "PIPELINE", "pipeline": {"id": 20, "name": "child"}}
		]
	}`

	t.Run("pipeline itself is rejected without asking", func(t *testing.T) {
		checker := checkerFunc(func(context.Context, string, string) (bool, error) {
			t.Error("checker is called")
			return false, nil
		})
		pipeline := decode(t, saved)
		_, err := pipelines.AttachNode(
			context.Background(), checker, pipeline,
			3, pipelines.NodeTypePipeline, types.Record{"id": json.Number("10"), "name": "parent"},
		)

		var rej *pipelines.Rejection
		if !errors.As(err, &rej) {
			t.Fatalf("unexpected error: %+v", err)
		}
		if rej.Level != pipelines.LevelWarning || rej.Message != "You can not add a pipeline itself as its node." {
			t.Errorf("unexpected rejection: %+v", rej)
		}
	})

	t.Run("pipeline node without id is rejected without asking", func(t *testing.T) {
		checker := checkerFunc(func(context.Context, string, string) (bool, error) {
			t.Error("checker is called")
			return false, nil
		})
		pipeline := decode(t, saved)
		_, err := pipelines.AttachNode(
			context.Background(), checker, pipeline,
			3, pipelines.NodeTypePipeline, types.Record{"name": "unsaved"},
		)

		var rej *pipelines.Rejection
		if !errors.As(err, &rej) {
			t.Fatalf("unexpected error: %+v", err)
		}
		if rej.Level != pipelines.LevelWarning || rej.Message != pipelines.MessageUnsavedNode {
			t.Errorf("unexpected rejection: %+v", rej)
		}
		if len(pipelines.Nodes(pipeline)) != 2 {
			t.Error("given pipeline is modified")
		}
	})

	t.Run("detected cycle is rejected", func(t *testing.T) {
		var asked []string
		checker := checkerFunc(func(_ context.Context, parentId, childId string) (bool, error) {
			asked = append(asked, parentId, childId)
			return true, nil
		})
		pipeline := decode(t, saved)
		_, err := pipelines.AttachNode(
			context.Background(), checker, pipeline,
			3, pipelines.NodeTypePipeline, types.Record{"id": json.Number("30"), "name": "looping"},
		)

		var rej *pipelines.Rejection
		if !errors.As(err, &rej) || rej.Message != "Reference cycle detected, please choose another pipeline" {
			t.Fatalf("unexpected error: %+v", err)
		}
		if !cmp.SliceEq(asked, []string{"10", "30"}) {
			t.Errorf("unexpected check: %v", asked)
		}
		if len(pipelines.Nodes(pipeline)) != 2 {
			t.Error("given pipeline is modified")
		}
	})

	t.Run("failed check is rejected with its reason", func(t *testing.T) {
		cause := errors.New("scorch is down")
		checker := checkerFunc(func(context.Context, string, string) (bool, error) {
			return false, cause
		})
		_, err := pipelines.AttachNode(
			context.Background(), checker, decode(t, saved),
			3, pipelines.NodeTypePipeline, types.Record{"id": json.Number("30"), "name": "other"},
		)
		if !errors.Is(err, cause) {
			t.Fatalf("unexpected error: %+v", err)
		}
		if err.Error() != "Failed to check loop: scorch is down" {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})

	t.Run("pipeline without id is attached without asking", func(t *testing.T) {
		checker := checkerFunc(func(context.Context, string, string) (bool, error) {
			t.Error("checker is called")
			return false, nil
		})
		draft := decode(t, `{"name": "draft", "pipelineNodeSummaries": []}`)
		updated := try.To(pipelines.AttachNode(
			context.Background(), checker, draft,
			1, pipelines.NodeTypePipeline, types.Record{"id": json.Number("30"), "name": "other"},
		)).OrFatal(t)
		if !cmp.SliceEq(keys(updated), []string{"1@PIPELINE@other"}) {
			t.Errorf("unexpected nodes: %v", keys(updated))
		}
	})

	t.Run("node with same sequence, type and name is replaced", func(t *testing.T) {
		checker := checkerFunc(func(context.Context, string, string) (bool, error) {
			t.Error("checker is called for batch")
			return false, nil
		})
		pipeline := decode(t, saved)
		updated := try.To(pipelines.AttachNode(
			context.Background(), checker, pipeline,
			1, pipelines.NodeTypeBatch, types.Record{"id": json.Number("1"), "name": "batch-a"},
		)).OrFatal(t)

		if !cmp.SliceEq(keys(updated), []string{"2@PIPELINE@child", "1@BATCH@batch-a"}) {
			t.Errorf("unexpected nodes: %v", keys(updated))
		}
		added := pipelines.Nodes(updated)[1]
		if len(added.OverriddenParameters.Entries) != 0 || len(added.TestScope.Entries) != 0 {
			t.Errorf("unexpected new node: %+v", added)
		}

		ids := pipelines.NodeIds(updated)
		if len(ids) != 1 || ids[0] != json.Number("101") {
			t.Errorf("unexpected node ids: %v", ids)
		}
	})

	t.Run("checked pipeline is appended", func(t *testing.T) {
		checker := checkerFunc(func(context.Context, string, string) (bool, error) {
			return false, nil
		})
		updated := try.To(pipelines.AttachNode(
			context.Background(), checker, decode(t, saved),
			2, pipelines.NodeTypePipeline, types.Record{"id": json.Number("30"), "name": "other"},
		)).OrFatal(t)
		expected := []string{"1@BATCH@batch-a", "2@PIPELINE@child", "2@PIPELINE@other"}
		if !cmp.SliceEq(keys(updated), expected) {
			t.Errorf("unexpected nodes: %v", keys(updated))
		}
	})
}

func TestEditNodes(t *testing.T) {
	pipeline := decode(t, `{
		"id": 10, "name": "parent",
		"pipelineNodeSummaries": [
			{"sequence": 1, "nodeType": "BATCH", "batchSummary": {"id": 1, "name": "batch-a"}, "status": "INACTIVE"},
			{"sequence": 2, "nodeType": "BATCH", "batchSummary": {"id": 2, "name": "batch-b"}}
		]
	}`)

	t.Run("DetachNode", func(t *testing.T) {
		updated := pipelines.DetachNode(pipeline, "1@BATCH@batch-a")
		if !cmp.SliceEq(keys(updated), []string{"2@BATCH@batch-b"}) {
			t.Errorf("unexpected nodes: %v", keys(updated))
		}
		if len(pipelines.Nodes(pipeline)) != 2 {
			t.Error("given pipeline is modified")
		}
	})

	t.Run("SetOverriddenParameters and SetStatus", func(t *testing.T) {
		params := types.NewParameters()
		params.Entries["REGION"] = "EMEA"

		updated := pipelines.SetOverriddenParameters(pipeline, "2@BATCH@batch-b", params)
		updated = pipelines.SetStatus(updated, "1@BATCH@batch-a", "ACTIVE")

		nodes := pipelines.Nodes(updated)
		if !nodes[0].Active() {
			t.Errorf("node is not activated: %+v", nodes[0])
		}
		if nodes[1].OverriddenParameters.Entries["REGION"] != "EMEA" {
			t.Errorf("parameters are not set: %+v", nodes[1])
		}
		if pipelines.Nodes(pipeline)[0].Active() {
			t.Error("given pipeline is modified")
		}
	})
}

func TestForSave(t *testing.T) {
	t.Run("name is required", func(t *testing.T) {
		_, err := pipelines.ForSave(types.Record{"name": ""})
		var rej *pipelines.Rejection
		if !errors.As(err, &rej) || rej.Message != "Please input a name." || rej.Level != pipelines.LevelWarning {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("name longer than 110 is rejected", func(t *testing.T) {
		_, err := pipelines.ForSave(types.Record{"name": strings.Repeat("n", 111)})
		if err == nil || err.Error() != "Pipeline name too long, please use shorter one" {
			t.Errorf("unexpected error: %+v", err)
		}

		if _, err := pipelines.ForSave(types.Record{"name": strings.Repeat("n", 110)}); err != nil {
			t.Errorf("110 letters is rejected: %+v", err)
		}
	})

	t.Run("node ids are stripped", func(t *testing.T) {
		pipeline := types.Record{"name": "p", "pipelineNodeIds": []any{1}}
		saved := try.To(pipelines.ForSave(pipeline)).OrFatal(t)
		if _, ok := saved["pipelineNodeIds"]; ok {
			t.Error("pipelineNodeIds is left")
		}
		if _, ok := pipeline["pipelineNodeIds"]; !ok {
			t.Error("given pipeline is modified")
		}
	})
}

type getterFunc func(ctx context.Context, id string) (types.Record, error)

func (f getterFunc) GetPipelineDetail(ctx context.Context, id string) (types.Record, error) {
	return f(ctx, id)
}

func TestHierarchy(t *testing.T) {
	details := map[string]string{
		"2": `{"id": 2, "name": "p2", "pipelineNodeSummaries": [
			{"sequence": 1, "nodeType": "BATCH", "batchSummary": {"id": 7, "name": "b2"}},
			{"sequence": 2, "nodeType": "PIPELINE", "pipeline": {"id": 1, "name": "p1"}}
		]}`,
	}
	root := decode(t, `{"id": 1, "name": "p1", "pipelineNodeSummaries": [
		{"sequence": 1, "nodeType": "BATCH", "batchSummary": {"id": 5, "name": "b1"}},
		{"sequence": 2, "nodeType": "PIPELINE", "pipeline": {"id": 2, "name": "p2"}}
	]}`)

	fetched := []string{}
	getter := getterFunc(func(_ context.Context, id string) (types.Record, error) {
		fetched = append(fetched, id)
		d, ok := details[id]
		if !ok {
			t.Fatalf("unexpected fetch: %s", id)
		}
		return decode(t, d), nil
	})

	items := try.To(pipelines.Hierarchy(context.Background(), getter, root)).OrFatal(t)
	if !cmp.SliceEq(fetched, []string{"2"}) {
		t.Errorf("unexpected fetches: %v", fetched)
	}

	expected := []forest.Item{
		{Name: "p1"},
		{Name: "b1", ParentName: "p1"},
		{Name: "p2", ParentName: "p1"},
		{Name: "b2", ParentName: "p2"},
		{Name: "p1", ParentName: "p2"},
	}
	if !cmp.SliceEqWith(items, expected, func(a, b forest.Item) bool {
		return a.Name == b.Name && a.ParentName == b.ParentName
	}) {
		t.Errorf("unexpected forest. (actual, expected) = (%+v, %+v)", items, expected)
	}

	exp := forest.NewExpansion()
	exp.ExpandAll(items)
	level := forest.Render(items, exp)
	if !level.Nodes[0].Sub.Nodes[1].Sub.HasDeadLoop() {
		t.Errorf("cycle is not detected: %+v", level.Nodes[0].Sub.Nodes[1].Sub)
	}
}

func TestHierarchy_BatchNamedAsPipeline(t *testing.T) {
	details := map[string]string{
		"2": `{"id": 2, "name": "p2", "pipelineNodeSummaries": [
			{"sequence": 1, "nodeType": "BATCH", "batchSummary": {"id": 7, "name": "p2"}}
		]}`,
	}
	root := decode(t, `{"id": 1, "name": "p1", "pipelineNodeSummaries": [
		{"sequence": 1, "nodeType": "BATCH", "batchSummary": {"id": 5, "name": "p1"}},
		{"sequence": 2, "nodeType": "PIPELINE", "pipeline": {"id": 2, "name": "p2"}}
	]}`)
	getter := getterFunc(func(_ context.Context, id string) (types.Record, error) {
		return decode(t, details[id]), nil
	})

	items := try.To(pipelines.Hierarchy(context.Background(), getter, root)).OrFatal(t)

	expected := []forest.Item{
		{Name: "p1"},
		{Name: pipelines.BatchItemName("p1"), ParentName: "p1"},
		{Name: "p2", ParentName: "p1"},
		{Name: pipelines.BatchItemName("p2"), ParentName: "p2"},
	}
	if !cmp.SliceEqWith(items, expected, func(a, b forest.Item) bool {
		return a.Name == b.Name && a.ParentName == b.ParentName
	}) {
		t.Errorf("unexpected forest. (actual, expected) = (%+v, %+v)", items, expected)
	}

	exp := forest.NewExpansion()
	exp.ExpandAll(items)
	var hasDeadLoop func(l *forest.Level) bool
	hasDeadLoop = func(l *forest.Level) bool {
		if l == nil {
			return false
		}
		if l.HasDeadLoop() {
			return true
		}
		for _, n := range l.Nodes {
			if hasDeadLoop(n.Sub) {
				return true
			}
		}
		return false
	}
	if level := forest.Render(items, exp); hasDeadLoop(level) {
		t.Errorf("batch is taken for a pipeline: %+v", level)
	}
}
