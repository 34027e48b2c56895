package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/parameters"
	"github.com/opst/scorch-console/pkg/pipelines"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

type RunFlags struct {
	Param []string `flag:"param" alias:"p" metavar:"NODE:NAME=VALUE" help:"Customize a parameter of the node for this run. Repeatable."`
}

func RunTask() common.Task[RunFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[RunFlags],
		params []any,
	) error {
		id := cl.Args()[ARG_PIPELINE_ID][0]
		pipeline, err := client.GetPipelineDetail(ctx, id)
		if err != nil {
			return err
		}

		defaults := pipelines.RunDefaults(pipeline)
		edited, err := Customize(defaults, cl.Flags().Param)
		if err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		result, err := client.SubmitPipeline(ctx, id, pipelines.Customized(defaults, edited))
		if err != nil {
			return err
		}
		logger.Printf("Pipeline:%s is submitted.", id)
		return common.PrintJSON(cl.Stdout(), result)
	}
}

// Customize applies "NODE:NAME=VALUE" assignments to parameters of run groups.
func Customize(defaults []pipelines.RunGroup, assignments []string) (map[string]types.Parameters, error) {
	edited := map[string]types.Parameters{}
	for _, g := range defaults {
		edited[g.Name] = g.Parameters.Clone()
	}

	for _, a := range assignments {
		group, assignment, ok := strings.Cut(a, ":")
		if !ok {
			return nil, fmt.Errorf("%q is not in form NODE:NAME=VALUE", a)
		}
		params, ok := edited[group]
		if !ok {
			return nil, fmt.Errorf("%q: no such node in the pipeline: %s", a, group)
		}
		p, err := parameters.ParseAssignments([]string{assignment})
		if err != nil {
			return nil, err
		}
		for name, value := range p.Entries {
			params.Entries[name] = value
		}
	}
	return edited, nil
}
