package release

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

const (
	ARG_RELEASE_ID   = "RELEASE_ID"
	ARG_PACKAGE_NAME = "PACKAGE_NAME"
	ARG_JIRA_KEY     = "JIRA_KEY"
	ARG_FILE         = "FILE"
)

// DateFormat is the format of --date.
const DateFormat = "2006-01-02"

var argsPackageName = flarc.Args{
	{
		Name: ARG_PACKAGE_NAME, Required: true,
		Help: "name of the release package",
	},
}

type PackagesFlags struct {
	Date string `flag:"date" alias:"d" metavar:"YYYY-MM-DD" help:"creation date of packages. Default: today"`
}

type PublishFlags struct {
	CRNumber string `flag:"cr" help:"change request number approving the release. Required."`
}

type CompareFlags struct {
	Env     string `flag:"env" alias:"e" help:"environment to be compared with. Required."`
	Analyze bool   `flag:"analyze" help:"verify items to be released, instead of comparing versions"`
}

func New(options ...ExportOption) (flarc.Command, error) {
	packages, err := flarc.NewCommand(
		"List release packages created on a date.",
		PackagesFlags{},
		flarc.Args{},
		common.NewTask(PackagesTask(time.Now)),
	)
	if err != nil {
		return nil, err
	}

	show, err := flarc.NewCommand(
		"Show a release.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_RELEASE_ID, Required: true,
				Help: "Id of the release",
			},
		},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.GetRelease(ctx, cl.Args()[ARG_RELEASE_ID][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	create, err := flarc.NewCommand(
		"Create a release package.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_JIRA_KEY, Required: true,
				Help: "Jira issue key tracking the release",
			},
			{
				Name: ARG_FILE, Required: true,
				Help: `JSON file of items in the package. "-" reads stdin.`,
			},
		},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			args := cl.Args()
			input, err := common.ReadRecord(cl.Stdin(), args[ARG_FILE][0])
			if err != nil {
				return nil, err
			}
			return client.CreateReleasePackage(ctx, args[ARG_JIRA_KEY][0], input)
		})),
	)
	if err != nil {
		return nil, err
	}

	publish, err := flarc.NewCommand(
		"Release a package under a change request.",
		PublishFlags{},
		argsPackageName,
		common.NewTask(PublishTask()),
	)
	if err != nil {
		return nil, err
	}

	compare, err := flarc.NewCommand(
		"Compare items of a package with an environment.",
		CompareFlags{},
		argsPackageName,
		common.NewTask(CompareTask()),
	)
	if err != nil {
		return nil, err
	}

	rollback, err := flarc.NewCommand(
		"Revert the release of a package.",
		struct{}{},
		argsPackageName,
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.RollbackPackage(ctx, cl.Args()[ARG_PACKAGE_NAME][0])
		})),
	)
	if err != nil {
		return nil, err
	}

	backup, err := flarc.NewCommand(
		"List backups of release packages.",
		struct{}{},
		flarc.Args{},
		common.NewTask(common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[struct{}]) (any, error) {
			return client.ListBackupPackages(ctx)
		})),
	)
	if err != nil {
		return nil, err
	}

	export, err := NewExport(options...)
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate Scorch releases and release packages.",
		struct{}{},
		flarc.WithSubcommand("packages", packages),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("publish", publish),
		flarc.WithSubcommand("compare", compare),
		flarc.WithSubcommand("rollback", rollback),
		flarc.WithSubcommand("backup", backup),
		flarc.WithSubcommand("export", export),
	)
}

func PackagesTask(now func() time.Time) common.Task[PackagesFlags] {
	return common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[PackagesFlags]) (any, error) {
		date := now()
		if d := cl.Flags().Date; d != "" {
			parsed, err := time.Parse(DateFormat, d)
			if err != nil {
				return nil, errors.Join(flarc.ErrUsage, fmt.Errorf("--date should be in form of YYYY-MM-DD: %w", err))
			}
			date = parsed
		}
		return client.ListPackage(ctx, date)
	})
}

func PublishTask() common.Task[PublishFlags] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[PublishFlags],
		params []any,
	) error {
		cr := cl.Flags().CRNumber
		if cr == "" {
			return fmt.Errorf("%w: --cr is required", flarc.ErrUsage)
		}
		name := cl.Args()[ARG_PACKAGE_NAME][0]
		result, err := client.ReleasePackage(ctx, name, cr)
		if err != nil {
			return err
		}
		logger.Printf("Package:%s is released under %s.", name, cr)
		return common.PrintJSON(cl.Stdout(), result)
	}
}

func CompareTask() common.Task[CompareFlags] {
	return common.PrintTask(func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[CompareFlags]) (any, error) {
		flags := cl.Flags()
		if flags.Env == "" {
			return nil, fmt.Errorf("%w: --env is required", flarc.ErrUsage)
		}
		name := cl.Args()[ARG_PACKAGE_NAME][0]
		detail, err := client.PackageDetail(ctx, name)
		if err != nil {
			return nil, err
		}
		if flags.Analyze {
			return client.AnalyzePackage(ctx, flags.Env, detail, name)
		}
		return client.CompareVersions(ctx, flags.Env, detail, name)
	})
}
