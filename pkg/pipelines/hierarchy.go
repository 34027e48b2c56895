package pipelines

import (
	"context"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/forest"
	"github.com/opst/scorch-console/pkg/utils"
)

type DetailGetter interface {
	GetPipelineDetail(ctx context.Context, pipelineId string) (types.Record, error)
}

// BatchItemName is the forest item name of a batch named the same as a pipeline in the hierarchy.
func BatchItemName(name string) string {
	return name + " (batch)"
}

// Hierarchy builds a forest of nodes contained in the pipeline, fetching nested pipelines.
//
// Items are named after pipelines and batches. Each pipeline is fetched at most once.
// A pipeline found again is placed without its nodes, so a reference cycle shows up
// as a dead loop when rendered. A batch named the same as a pipeline is placed as
// BatchItemName, so that it is not taken for the pipeline.
func Hierarchy(ctx context.Context, getter DetailGetter, root types.Record) ([]forest.Item, error) {
	type edge struct {
		forest.Edge
		batch bool
	}
	edges := []edge{}
	pipelineNames := map[string]struct{}{root.Name(): {}}
	visited := map[string]struct{}{}

	var walk func(p types.Record) error
	walk = func(p types.Record) error {
		if id := p.ID(); id != "" {
			visited[id] = struct{}{}
		}
		for _, n := range Nodes(p) {
			edges = append(edges, edge{
				Edge:  forest.Edge{Parent: p.Name(), Child: n.Name},
				batch: n.Type != NodeTypePipeline,
			})
			if n.Type != NodeTypePipeline {
				continue
			}
			pipelineNames[n.Name] = struct{}{}
			if n.ID == "" {
				continue
			}
			if _, ok := visited[n.ID]; ok {
				continue
			}
			child, err := getter.GetPipelineDetail(ctx, n.ID)
			if err != nil {
				return err
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(root); err != nil {
		return nil, err
	}

	return forest.Build([]string{root.Name()}, utils.Map(edges, func(e edge) forest.Edge {
		if _, ok := pipelineNames[e.Child]; e.batch && ok {
			e.Child = BatchItemName(e.Child)
		}
		return e.Edge
	})), nil
}
