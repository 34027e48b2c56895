package schedule

import (
	"context"
	"errors"
	"log"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/schedules"
	"github.com/youta-t/flarc"
)

const (
	ARG_JOB     = "JOB_NAME"
	ARG_TRIGGER = "TRIGGER_KEY_NAME"
	ARG_FILE    = "FILE"
	ARG_CRON    = "CRON_EXPRESSION"
)

var argsTrigger = flarc.Args{
	{
		Name: ARG_JOB, Required: true,
		Help: "name of the scheduled job",
	},
	{
		Name: ARG_TRIGGER, Required: true,
		Help: "key name of the trigger of the job",
	},
}

var argsFile = flarc.Args{
	{
		Name: ARG_FILE, Required: true,
		Help: `JSON file of the schedule. "-" reads stdin.`,
	},
}

type NextFireFlags struct {
	TimeZone string `flag:"timezone" alias:"z" help:"time zone id evaluating the expression"`
}

// triggerOp is an operation on a job trigger.
type triggerOp func(ctx context.Context, jobName string, triggerKeyName string) (any, error)

func New() (flarc.Command, error) {
	list, err := flarc.NewCommand(
		"List schedules.",
		common.ListFlags{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[common.ListFlags]) (any, error) {
			q, err := cl.Flags().Query()
			if err != nil {
				return nil, err
			}
			return client.GetScheduleList(ctx, q)
		})),
	)
	if err != nil {
		return nil, err
	}

	show, err := flarc.NewCommand(
		"Show a trigger of a scheduled job.",
		struct{}{},
		argsTrigger,
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			args := cl.Args()
			return client.GetScheduleDetail(ctx, args[ARG_JOB][0], args[ARG_TRIGGER][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	create, err := flarc.NewCommand(
		"Create a schedule.",
		struct{}{},
		argsFile,
		common.NewTask(SaveTask(false)),
	)
	if err != nil {
		return nil, err
	}

	update, err := flarc.NewCommand(
		"Update a schedule.",
		struct{}{},
		argsFile,
		common.NewTask(SaveTask(true)),
	)
	if err != nil {
		return nil, err
	}

	del, err := flarc.NewCommand(
		"Delete a trigger of a scheduled job.",
		struct{}{},
		argsTrigger,
		common.NewTask(func(
			ctx context.Context,
			logger *log.Logger,
			client rest.ScorchClient,
			cl flarc.Commandline[struct{}],
			params []any,
		) error {
			args := cl.Args()
			job, trigger := args[ARG_JOB][0], args[ARG_TRIGGER][0]
			if err := client.DeleteSchedule(ctx, job, trigger); err != nil {
				return err
			}
			logger.Printf("Schedule:%s/%s is deleted.", job, trigger)
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	triggerCommand := func(synopsis string, op func(rest.ScorchClient) triggerOp) (flarc.Command, error) {
		return flarc.NewCommand(
			synopsis,
			struct{}{},
			argsTrigger,
			common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
				args := cl.Args()
				return op(client)(ctx, args[ARG_JOB][0], args[ARG_TRIGGER][0])
			})),
		)
	}
	pause, err := triggerCommand("Pause a trigger.", func(c rest.ScorchClient) triggerOp { return c.PauseJobTrigger })
	if err != nil {
		return nil, err
	}
	resume, err := triggerCommand("Resume a trigger.", func(c rest.ScorchClient) triggerOp { return c.ResumeJobTrigger })
	if err != nil {
		return nil, err
	}
	submit, err := triggerCommand("Run the job of a trigger once, now.", func(c rest.ScorchClient) triggerOp { return c.SubmitJob })
	if err != nil {
		return nil, err
	}

	nextFire, err := flarc.NewCommand(
		"Show the next fire time of a cron expression.",
		NextFireFlags{TimeZone: "UTC"},
		flarc.Args{
			{
				Name: ARG_CRON, Required: true,
				Help: `cron expression, like "0 0 12 * * ?"`,
			},
		},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[NextFireFlags]) (any, error) {
			return client.GetNextFireTime(ctx, cl.Args()[ARG_CRON][0], cl.Flags().TimeZone)
		})),
	)
	if err != nil {
		return nil, err
	}

	timezones, err := flarc.NewCommand(
		"List time zones available for schedules.",
		struct{}{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.GetTimezoneList(ctx)
		})),
	)
	if err != nil {
		return nil, err
	}

	history, err := flarc.NewCommand(
		"List histories of scheduled jobs.",
		common.ListFlags{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[common.ListFlags]) (any, error) {
			q, err := cl.Flags().Query()
			if err != nil {
				return nil, err
			}
			return client.GetScheduleHistories(ctx, q)
		})),
	)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Scorch schedules.",
		struct{}{},
		flarc.WithSubcommand("list", list),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("update", update),
		flarc.WithSubcommand("delete", del),
		flarc.WithSubcommand("pause", pause),
		flarc.WithSubcommand("resume", resume),
		flarc.WithSubcommand("submit", submit),
		flarc.WithSubcommand("next-fire", nextFire),
		flarc.WithSubcommand("timezones", timezones),
		flarc.WithSubcommand("history", history),
	)
}

// SaveTask creates or updates the schedule read from a file.
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
		if err := schedules.Validate(draft); err != nil {
			return errors.Join(flarc.ErrUsage, err)
		}

		save := client.CreateSchedule
		if update {
			save = client.UpdateSchedule
		}
		saved, err := save(ctx, draft)
		if err != nil {
			return err
		}
		logger.Printf("Schedule:%s is saved.", draft.String("jobName"))
		return common.PrintJSON(cl.Stdout(), saved)
	}
}
