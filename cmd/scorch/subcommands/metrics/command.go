package metrics

import (
	"context"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

const ARG_SEARCH_ID = "SEARCH_ID"

type lister func(ctx context.Context, client rest.ScorchClient, q rest.Query) (any, error)

func listCommand(synopsis string, list lister) (flarc.Command, error) {
	return flarc.NewCommand(
		synopsis,
		common.ListFlags{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[common.ListFlags]) (any, error) {
			q, err := cl.Flags().Query()
			if err != nil {
				return nil, err
			}
			return list(ctx, client, q)
		})),
	)
}

func New() (flarc.Command, error) {
	show, err := flarc.NewCommand(
		"Show metrics of a search.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_SEARCH_ID, Required: true,
				Help: "search id of metrics",
			},
		},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.GetMetricBySearchID(ctx, cl.Args()[ARG_SEARCH_ID][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	qtf, err := listCommand("List metrics of QTF pipelines.", func(ctx context.Context, c rest.ScorchClient, q rest.Query) (any, error) {
		return c.GetMetricQtfPipelinesList(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	bubble, err := listCommand("List metrics of bubble pipelines.", func(ctx context.Context, c rest.ScorchClient, q rest.Query) (any, error) {
		return c.GetMetricBubblePipelinesList(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	rerun, err := listCommand("List reruns of jobs.", func(ctx context.Context, c rest.ScorchClient, q rest.Query) (any, error) {
		return c.GetMetricRerun(ctx, q)
	})
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Show metrics of Scorch jobs.",
		struct{}{},
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("qtf", qtf),
		flarc.WithSubcommand("bubble", bubble),
		flarc.WithSubcommand("rerun", rerun),
	)
}
