package release

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cheggaaa/pb/v3"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	"github.com/opst/scorch-console/pkg/rest"
	kstrings "github.com/opst/scorch-console/pkg/utils/strings"
	"github.com/youta-t/flarc"
)

const (
	ARG_JOB_GROUP_ID = "JOB_GROUP_ID"
	ARG_DEST         = "DEST"
)

type exportOption struct {
	progressOutput io.Writer
}

type ExportOption func(*exportOption) *exportOption

// WithProgressOutput makes export write its progress bar to w.
func WithProgressOutput(w io.Writer) ExportOption {
	return func(o *exportOption) *exportOption {
		o.progressOutput = w
		return o
	}
}

func NewExport(options ...ExportOption) (flarc.Command, error) {
	option := &exportOption{progressOutput: os.Stderr}
	for _, o := range options {
		option = o(option)
	}

	return flarc.NewCommand(
		"Download the bundle of a job group.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_JOB_GROUP_ID, Required: true,
				Help: "Id of the job group",
			},
			{
				Name: ARG_DEST, Required: false,
				Help: `
file where the bundle is written.
If you set "-", the bundle is written to stdout.
Default: "job-group-JOB_GROUP_ID.json" in the current directory.
`,
			},
		},
		common.NewTask(ExportTask(option.progressOutput)),
	)
}

const noBar pb.ProgressBarTemplate = `{{with string . "prefix"}}{{.}} {{end}}{{counters . }} {{with string . "suffix"}} {{.}}{{end}}`

func ExportTask(progressOutput io.Writer) common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		args := cl.Args()
		id := args[ARG_JOB_GROUP_ID][0]
		dest := fmt.Sprintf("job-group-%s.json", id)
		if 0 < len(args[ARG_DEST]) {
			dest = args[ARG_DEST][0]
		}

		return client.ExportJobGroupBundle(ctx, id, func(body io.Reader, size int64) error {
			if dest == "-" {
				_, err := io.Copy(cl.Stdout(), body)
				return err
			}

			if err := os.MkdirAll(filepath.Dir(dest), os.FileMode(0777)); err != nil {
				return err
			}
			f, err := os.OpenFile(dest, os.O_CREATE|os.O_RDWR|os.O_TRUNC, os.FileMode(0666))
			if err != nil {
				return err
			}
			defer f.Close()

			var bar *pb.ProgressBar
			if size < 0 {
				bar = noBar.New(-1)
			} else {
				bar = pb.Full.New(int(size))
			}
			bar.Set(pb.Bytes, true)
			bar.SetWriter(progressOutput)
			bar.Set("prefix", fmt.Sprintf("Downloading to %s:", kstrings.Ellipsis(dest, 60)))
			bar.Start()
			defer bar.Finish()

			w := bar.NewProxyWriter(f)
			if _, err := io.Copy(w, body); err != nil {
				return err
			}
			logger.Printf("job group %s is exported to %s", id, dest)
			return nil
		})
	}
}
