package utils_test

import (
	"testing"

	"github.com/opst/scorch-console/pkg/utils"
)

func TestDefault(t *testing.T) {
	ref := func(v string) *string {
		return &v
	}
	for name, testcase := range map[string]struct {
		when *string
		then string
	}{
		"when it is passed a non-nil, it returns the value of it passed": {
			when: ref("value"),
			then: "value",
		},
		"when it is passed a pointer to zero value, it returns the zero value": {
			when: ref(""),
			then: "",
		},
		"when it is passed nil, it returns the default": {
			when: nil,
			then: "default",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := utils.Default(testcase.when, "default"); actual != testcase.then {
				t.Errorf("not match: (actual, expected) = (%q, %q)", actual, testcase.then)
			}
		})
	}
}
