package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/batch"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	subinit "github.com/opst/scorch-console/cmd/scorch/subcommands/init"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/logger"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/metrics"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/pipeline"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/release"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/schedule"
	subver "github.com/opst/scorch-console/cmd/scorch/subcommands/version"
	"github.com/opst/scorch-console/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	pipeline := try.To(pipeline.New()).OrFatal(logger)
	batch := try.To(batch.New()).OrFatal(logger)
	schedule := try.To(schedule.New()).OrFatal(logger)
	release := try.To(release.New()).OrFatal(logger)
	metrics := try.To(metrics.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	scorch := try.To(
		flarc.NewCommandGroup(
			"Scorch Commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("pipeline", pipeline),
			flarc.WithSubcommand("batch", batch),
			flarc.WithSubcommand("schedule", schedule),
			flarc.WithSubcommand("release", release),
			flarc.WithSubcommand("metrics", metrics),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, scorch, flarc.WithHelp(true)))
}
