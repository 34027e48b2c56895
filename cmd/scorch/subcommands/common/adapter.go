package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/configs/profiles"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/youta-t/flarc"
)

type TaskWithCommonFlag[T any] func(
	ctx context.Context,
	logger *log.Logger,
	commonFlag CommonFlags,
	cl flarc.Commandline[T],
	params []any,
) error

func NewTaskWithCommonFlag[T any](task TaskWithCommonFlag[T]) flarc.Task[T] {
	return func(ctx context.Context, cl flarc.Commandline[T], pos []any) error {
		var commonFlag CommonFlags
		found := false
		newpos := make([]any, 0, len(pos))
		for _, p := range pos {
			switch v := p.(type) {
			case CommonFlags:
				found = true
				commonFlag = v
			default:
				newpos = append(newpos, p)
			}
		}
		if !found {
			return errors.New("programming error: common flags not found")
		}

		logger := log.New(cl.Stderr(), "", log.LstdFlags)
		logger.SetPrefix(fmt.Sprintf("[%s] ", cl.Fullname()))

		return task(ctx, logger, commonFlag, cl, newpos)
	}
}

type Task[T any] func(
	ctx context.Context,
	logger *log.Logger,
	client rest.ScorchClient,
	cl flarc.Commandline[T],
	params []any,
) error

// NewTask makes a task which talks to Scorch with the profile selected by common flags.
func NewTask[T any](task Task[T]) flarc.Task[T] {
	return NewTaskWithCommonFlag(func(
		ctx context.Context,
		logger *log.Logger,
		commonFlag CommonFlags,
		cl flarc.Commandline[T],
		params []any,
	) error {
		store, err := profiles.LoadProfileStore(commonFlag.ProfileStore)
		if err != nil {
			if errors.Is(err, profiles.ErrProfileStoreNotFound) {
				return fmt.Errorf(
					"%w: scorchprofile store (%s) is not found. Please try `scorch init` first. Ask your admin to get scorchprofile",
					err, commonFlag.ProfileStore,
				)
			}
			return fmt.Errorf(
				"%w: failed to load scorchprofile store (%s)",
				err, commonFlag.ProfileStore,
			)
		}
		prof, ok := store[commonFlag.Profile]
		if !ok {
			return fmt.Errorf(
				"profile '%s' not found in the profile store (%s)",
				commonFlag.Profile, commonFlag.ProfileStore,
			)
		}

		client, err := rest.NewClient(prof)
		if err != nil {
			return fmt.Errorf(
				"%w: failed to create scorch client. Your scorchprofile (%s in %s) can be broken.\n\nRemove it and try `scorch init` again. Ask your admin to get scorchprofile",
				err, commonFlag.Profile, commonFlag.ProfileStore,
			)
		}
		return task(ctx, logger, client, cl, params)
	})
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(v)
}

// ReadRecord reads a JSON object from the file. "-" means stdin.
func ReadRecord(stdin io.Reader, filepath string) (types.Record, error) {
	var r io.Reader = stdin
	if filepath != "-" {
		f, err := os.Open(filepath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	ret := types.Record{}
	if err := json.NewDecoder(r).Decode(&ret); err != nil {
		return nil, fmt.Errorf("%s is not a JSON object: %w", filepath, err)
	}
	return ret, nil
}

type ListFlags struct {
	Page  int      `flag:"page" help:"page number, from 0"`
	Size  int      `flag:"size" help:"number of items in a page"`
	Where []string `flag:"where" alias:"w" metavar:"KEY=VALUE" help:"Query passed to Scorch. Repeatable."`
}

// Query builds a query for list APIs.
//
// Page and size are sent only when they are positive.
func (f ListFlags) Query() (rest.Query, error) {
	q := rest.Query{}
	for _, w := range f.Where {
		k, v, ok := strings.Cut(w, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: --where should be in form KEY=VALUE: %s", flarc.ErrUsage, w)
		}
		q[strings.TrimSpace(k)] = v
	}
	if 0 < f.Page {
		q["page"] = f.Page
	}
	if 0 < f.Size {
		q["size"] = f.Size
	}
	return q, nil
}

// PrintTask makes a task which prints what get returns, as JSON.
func PrintTask[T any](
	get func(ctx context.Context, client rest.ScorchClient, cl flarc.Commandline[T]) (any, error),
) Task[T] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		client rest.ScorchClient,
		cl flarc.Commandline[T],
		params []any,
	) error {
		v, err := get(ctx, client, cl)
		if err != nil {
			return err
		}
		return PrintJSON(cl.Stdout(), v)
	}
}
