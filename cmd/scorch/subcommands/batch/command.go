package batch

import (
	"context"
	"errors"
	"log"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/parameters"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

const ARG_BATCH_ID = "BATCH_ID"

var argsBatchId = flarc.Args{
	{
		Name: ARG_BATCH_ID, Required: true,
		Help: "Id of the Batch",
	},
}

type RunFlags struct {
	Param []string `flag:"param" alias:"p" metavar:"NAME=VALUE" help:"Override a parameter of the Batch for this run. Repeatable."`
}

func New() (flarc.Command, error) {
	find, err := flarc.NewCommand(
		"Find Batches.",
		common.ListFlags{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[common.ListFlags]) (any, error) {
			q, err := cl.Flags().Query()
			if err != nil {
				return nil, err
			}
			return client.FindBatchesByKeywords(ctx, q)
		})),
		flarc.WithDescription(`
Find Batches.

Conditions are passed with "--where", like

    {{ .Command }} --where keyword=daily
`),
	)
	if err != nil {
		return nil, err
	}

	show, err := flarc.NewCommand(
		"Show a Batch.",
		struct{}{},
		argsBatchId,
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.GetBatchDetail(ctx, cl.Args()[ARG_BATCH_ID][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	run, err := flarc.NewCommand(
		"Run a Batch.",
		RunFlags{},
		argsBatchId,
		common.NewTask(RunTask()),
	)
	if err != nil {
		return nil, err
	}

	del, err := flarc.NewCommand(
		"Delete a Batch.",
		struct{}{},
		argsBatchId,
		common.NewTask(func(
			ctx context.Context,
			logger *log.Logger,
			client rest.ScorchClient,
			cl flarc.Commandline[struct{}],
			params []any,
		) error {
			id := cl.Args()[ARG_BATCH_ID][0]
			if err := client.DeleteBatch(ctx, id); err != nil {
				return err
			}
			logger.Printf("Batch:%s is deleted.", id)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Scorch Batches.",
		struct{}{},
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("run", run),
		flarc.WithSubcommand("delete", del),
	)
}

// RunTask submits the Batch with its parameters overridden by flags.
//
// The whole parameters are sent, not only overridden ones.
func RunTask() common.Task[RunFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[RunFlags],
		params []any,
	) error {
		override, err := parameters.ParseAssignments(cl.Flags().Param)
		if err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		id := cl.Args()[ARG_BATCH_ID][0]
		batch, err := client.GetBatchDetail(ctx, id)
		if err != nil {
			return err
		}

		table := types.ParametersOf(batch, "overriddenParameters").Clone()
		for name, value := range override.Entries {
			table.Entries[name] = value
		}

		result, err := client.SubmitBatch(ctx, id, &table)
		if err != nil {
			return err
		}
		logger.Printf("Batch:%s is submitted.", batch.Name())
		return common.PrintJSON(cl.Stdout(), result)
	}
}
