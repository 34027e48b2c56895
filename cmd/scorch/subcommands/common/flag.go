package common

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/opst/scorch-console/pkg/utils"
)

// ProfileFile is the name of the file telling which profile is used in the directory and its descendants.
const ProfileFile = ".scorchprofile"

type CommonFlags struct {
	Profile      string `flag:"profile" help:"scorchprofile name to use"`
	ProfileStore string `flag:"profile-store" help:"path to scorchprofile store file"`
}

type commonFlagDetection struct {
	home string
}

type CommonFlagDetectionOption func(*commonFlagDetection) *commonFlagDetection

func WithHome(home string) CommonFlagDetectionOption {
	return func(opt *commonFlagDetection) *commonFlagDetection {
		opt.home = home
		return opt
	}
}

// Flags detects default values of CommonFlags.
//
// The profile name is the first line of the nearest .scorchprofile in from or its ancestors.
// If there are none, it is the absolute path of from.
//
// The profile store is ~/.scorch/profile .
func Flags(from string, opt ...CommonFlagDetectionOption) (CommonFlags, error) {
	detparam := commonFlagDetection{
		home: "",
	}
	for _, o := range opt {
		detparam = *o(&detparam)
	}

	home := detparam.home
	if home == "" {
		_home, err := os.UserHomeDir()
		if err != nil {
			_home = ""
		}
		home = _home
	}

	if _from, err := filepath.Abs(from); err == nil {
		from = _from
	}

	profile := from
	found, err := utils.SearchFilePathtoUpward(from, ProfileFile)
	switch {
	case errors.Is(err, utils.ErrSearchFile):
	case err != nil:
		return CommonFlags{}, err
	default:
		content, err := os.ReadFile(found)
		if err != nil {
			return CommonFlags{}, err
		}
		if p := strings.Split(string(content), "\n"); 0 < len(p) {
			profile = strings.TrimSpace(p[0])
		}
	}

	return CommonFlags{
		Profile:      profile,
		ProfileStore: path.Join(home, ".scorch", "profile"),
	}, nil
}
