package schedules

import (
	"errors"

	"github.com/opst/scorch-console/pkg/api/types"
)

const keyTriggers = "triggerDetails"

// NewDraft is a schedule not saved yet.
func NewDraft() types.Record {
	return types.Record{
		"jobName":            "",
		"jobNameDescription": "",
		"applicationName":    "SCORCH",
		"cronExpression":     "",
		"method":             "submitBatch",
		"timeZone":           "",
		"skipConcurrentRun":  false,
		"overrideParameters": types.NewParameters().AsValue(),
	}
}

// Trigger returns the first trigger of the schedule detail, or nil.
func Trigger(detail types.Record) types.Record {
	triggers := detail.Records(keyTriggers)
	if len(triggers) == 0 {
		return nil
	}
	return triggers[0]
}

// DraftOf flattens the schedule detail and its first trigger into an editable schedule.
//
// It returns false when the detail has no triggers.
func DraftOf(detail types.Record) (types.Record, bool) {
	trigger := Trigger(detail)
	if trigger == nil {
		return nil, false
	}
	draft := detail.Clone()
	delete(draft, keyTriggers)
	for k, v := range trigger.Clone() {
		draft[k] = v
	}
	return draft, true
}

// ReleaseItem is the schedule as an item of a schedule release with the action.
func ReleaseItem(detail types.Record, action string) (types.Record, bool) {
	draft, ok := DraftOf(detail)
	if !ok {
		return nil, false
	}
	draft["action"] = action
	return draft, true
}

var ErrReleasePackage = errors.New("release package is not available")

// ReleaseItemsOf reads items of a schedule release package.
//
// A response with status other than SUCCESS is an error with its message.
func ReleaseItemsOf(response any) ([]types.Record, error) {
	resp := types.Record{}
	if m, ok := response.(map[string]any); ok {
		resp = types.Record(m)
	}
	if resp.String("status") != types.StatusSuccess {
		if msg := resp.String("message"); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, ErrReleasePackage
	}
	return resp.Record("data").Record("packageDetail").Records("scheduleReleaseDetails"), nil
}
