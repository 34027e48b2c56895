package pipeline

import (
	"context"
	"log"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/forest"
	"github.com/opst/scorch-console/pkg/pipelines"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

type TreeFlags struct {
	Collapse bool `flag:"collapse" alias:"c" help:"show only Pipelines directly under the Pipeline"`
}

func TreeTask() common.Task[TreeFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[TreeFlags],
		params []any,
	) error {
		root, err := client.GetPipelineDetail(ctx, cl.Args()[ARG_PIPELINE_ID][0])
		if err != nil {
			return err
		}
		items, err := pipelines.Hierarchy(ctx, client, root)
		if err != nil {
			return err
		}

		exp := forest.NewExpansion()
		if cl.Flags().Collapse {
			exp.Toggle(root.Name())
		} else {
			exp.ExpandAll(items)
		}
		return forest.Fprint(cl.Stdout(), items, forest.Render(items, exp))
	}
}
