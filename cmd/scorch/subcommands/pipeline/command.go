package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/pipelines"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

const (
	ARG_PIPELINE_ID = "PIPELINE_ID"
	ARG_KEYWORD     = "KEYWORD"
	ARG_FILE        = "FILE"
	ARG_PARENT_ID   = "PARENT_ID"
	ARG_CHILD_ID    = "CHILD_ID"
)

var argsPipelineId = flarc.Args{
	{
		Name: ARG_PIPELINE_ID, Required: true,
		Help: "Id of the Pipeline",
	},
}

var argsFile = flarc.Args{
	{
		Name: ARG_FILE, Required: true,
		Help: `JSON file of the Pipeline. "-" reads stdin.`,
	},
}

func New() (flarc.Command, error) {
	list, err := flarc.NewCommand(
		"List Pipelines.",
		common.ListFlags{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[common.ListFlags]) (any, error) {
			q, err := cl.Flags().Query()
			if err != nil {
				return nil, err
			}
			return client.GetPipelineList(ctx, q)
		})),
	)
	if err != nil {
		return nil, err
	}

	show, err := flarc.NewCommand(
		"Show a Pipeline with its nodes.",
		struct{}{},
		argsPipelineId,
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.GetPipelineDetail(ctx, cl.Args()[ARG_PIPELINE_ID][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	find, err := flarc.NewCommand(
		"Find Pipelines whose name contains the keyword.",
		struct{}{},
		flarc.Args{{Name: ARG_KEYWORD, Required: true, Help: "part of Pipeline names"}},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.FindPipelineList(ctx, cl.Args()[ARG_KEYWORD][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	create, err := flarc.NewCommand(
		"Register a new Pipeline.",
		struct{}{},
		argsFile,
		common.NewTask(SaveTask(false)),
	)
	if err != nil {
		return nil, err
	}

	update, err := flarc.NewCommand(
		"Update a Pipeline.",
		struct{}{},
		argsFile,
		common.NewTask(SaveTask(true)),
	)
	if err != nil {
		return nil, err
	}

	del, err := flarc.NewCommand(
		"Delete a Pipeline.",
		struct{}{},
		argsPipelineId,
		common.NewTask(func(
			ctx context.Context,
			logger *log.Logger,
			client rest.ScorchClient,
			cl flarc.Commandline[struct{}],
			params []any,
		) error {
			id := cl.Args()[ARG_PIPELINE_ID][0]
			if err := client.DeletePipeline(ctx, id); err != nil {
				return err
			}
			logger.Printf("Pipeline:%s is deleted.", id)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	tree, err := flarc.NewCommand(
		"Show Pipelines nested in a Pipeline, as a tree.",
		TreeFlags{},
		argsPipelineId,
		common.NewTask(TreeTask()),
		flarc.WithDescription(`
Show Pipelines nested in a Pipeline, as a tree.

Nodes of nested Pipelines are fetched from Scorch, each Pipeline once.
If Pipelines refer to each other, "DeadLoop encountered, check NAME" is shown in place of the nodes.
`),
	)
	if err != nil {
		return nil, err
	}

	deadloop, err := flarc.NewCommand(
		"Check whether adding a Pipeline to another makes a reference cycle.",
		struct{}{},
		flarc.Args{
			{Name: ARG_PARENT_ID, Required: true, Help: "Id of the Pipeline to be edited"},
			{Name: ARG_CHILD_ID, Required: true, Help: "Id of the Pipeline to be added as a node"},
		},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			args := cl.Args()
			isLoop, err := client.CheckPipelineDeadLoop(ctx, args[ARG_PARENT_ID][0], args[ARG_CHILD_ID][0])
			if err != nil {
				return nil, fmt.Errorf("failed to check loop: %w", err)
			}
			return map[string]bool{"isLoop": isLoop}, nil
		})),
	)
	if err != nil {
		return nil, err
	}

	run, err := flarc.NewCommand(
		"Run a Pipeline.",
		RunFlags{},
		argsPipelineId,
		common.NewTask(RunTask()),
		flarc.WithDescription(`
Run a Pipeline.

Parameters of nodes can be customized for this run with "--param NODE:NAME=VALUE".
Parameters overriding the Pipeline itself are given with "--param `+pipelines.PipelineOverrides+`:NAME=VALUE".
Only parameters differing from the Pipeline are sent.
`),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Scorch Pipelines.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("delete", del),
		flarc.WithSubcommand("tree", tree),
		flarc.WithSubcommand("deadloop", deadloop),
		flarc.WithSubcommand("run", run),
	)
}

// SaveTask creates or updates the Pipeline read from a file.
func SaveTask(update bool) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		draft, err := common.ReadRecord(cl.Stdin(), cl.Args()[ARG_FILE][0])
		if err != nil {
			return err
		}
		pipeline, err := pipelines.ForSave(draft)
		if err != nil {
			return err
		}

		save := client.CreatePipeline
		if update {
			save = client.UpdatePipeline
		}
		saved, err := save(ctx, pipeline)
		if err != nil {
			return err
		}
		logger.Printf("Pipeline:%s is saved.", saved.Name())
		return common.PrintJSON(cl.Stdout(), saved)
	}
}
