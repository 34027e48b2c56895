package init_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opst/scorch-console/cmd/scorch/subcommands/common"
	subinit "github.com/opst/scorch-console/cmd/scorch/subcommands/init"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/internal/commandline"
	"github.com/opst/scorch-console/cmd/scorch/subcommands/logger"
	"github.com/opst/scorch-console/pkg/configs/profiles"
	"github.com/opst/scorch-console/pkg/utils/try"
)

func TestTask(t *testing.T) {
	type when struct {
		profile string
	}
	type then struct {
		err   error
		saved *profiles.Profile
	}

	theory := func(when when, then then) func(*testing.T) {
		return func(t *testing.T) {
			root := t.TempDir()
			profFile := filepath.Join(root, "received.yaml")
			if err := os.WriteFile(profFile, []byte(when.profile), os.FileMode(0600)); err != nil {
				t.Fatal(err)
			}
			store := filepath.Join(root, "home", ".scorch", "profile")
			workdir := filepath.Join(root, "work")
			if err := os.MkdirAll(workdir, os.FileMode(0700)); err != nil {
				t.Fatal(err)
			}

			err := subinit.Task(workdir)(
				context.Background(),
				logger.Null(),
				common.CommonFlags{Profile: "team", ProfileStore: store},
				commandline.MockCommandline[struct{}]{
					Fullname_: "scorch init",
					Stdout_:   new(strings.Builder),
					Stderr_:   new(strings.Builder),
					Args_: map[string][]string{
						subinit.ARG_PROFILE_FILE: {profFile},
					},
				},
				[]any{},
			)

			if then.err != nil {
				if !errors.Is(err, then.err) {
					t.Errorf("unexpected error: %v", err)
				}
				if _, err := os.Stat(filepath.Join(workdir, common.ProfileFile)); !os.IsNotExist(err) {
					t.Errorf("%s is written: %v", common.ProfileFile, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}

			saved := try.To(profiles.LoadProfileStore(store)).OrFatal(t)
			if p, ok := saved["team"]; !ok || *p != *then.saved {
				t.Errorf("unexpected profile store: %+v", saved)
			}
			name := try.To(os.ReadFile(filepath.Join(workdir, common.ProfileFile))).OrFatal(t)
			if string(name) != "team" {
				t.Errorf("unexpected %s: %s", common.ProfileFile, name)
			}
		}
	}

	t.Run("when the profile is valid, it is saved and used in the directory", theory(
		when{profile: "apiRoot: https://scorch.example.com\n"},
		then{saved: &profiles.Profile{ApiRoot: "https://scorch.example.com"}},
	))

	t.Run("when the profile is invalid, it is rejected", theory(
		when{profile: "apiRoot: not a url\n"},
		then{err: profiles.ErrProfileInvalid},
	))
}
