package schedules_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/forest"
	"github.com/opst/scorch-console/pkg/schedules"
	"github.com/opst/scorch-console/pkg/utils"
	"github.com/opst/scorch-console/pkg/utils/cmp"
)

func record(t *testing.T, s string) types.Record {
	t.Helper()
	var r types.Record
	if err := json.Unmarshal([]byte(s), &r); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestValidate(t *testing.T) {
	for name, testcase := range map[string]struct {
		when types.Record
		then error
	}{
		"complete schedule": {
			when: types.Record{"jobName": "J", "method": "submitJob", "cronExpression": "0 0 3 * * ?", "timeZone": "UTC"},
			then: nil,
		},
		"no job": {
			when: types.Record{"method": "submitJob", "cronExpression": "0 0 3 * * ?", "timeZone": "UTC"},
			then: schedules.ErrJobMissing,
		},
		"no method": {
			when: types.Record{"jobName": "J", "cronExpression": "0 0 3 * * ?", "timeZone": "UTC"},
			then: schedules.ErrScheduleMissing,
		},
		"no cron": {
			when: types.Record{"jobName": "J", "method": "submitJob", "timeZone": "UTC"},
			then: schedules.ErrScheduleMissing,
		},
		"no time zone": {
			when: types.Record{"jobName": "J", "method": "submitJob", "cronExpression": "0 0 3 * * ?"},
			then: schedules.ErrTimeZoneMissing,
		},
	} {
		t.Run(name, func(t *testing.T) {
			if err := schedules.Validate(testcase.when); !errors.Is(err, testcase.then) {
				t.Errorf("unexpected error. (actual, expected) = (%v, %v)", err, testcase.then)
			}
		})
	}

	if l := schedules.MethodLabel("submitBatch"); l != "Submit Batch With Hierarchy" {
		t.Errorf("unexpected label: %s", l)
	}
	if l := schedules.MethodLabel("other"); l != "other" {
		t.Errorf("unexpected label: %s", l)
	}
}

func TestComparison(t *testing.T) {
	comparison := record(t, `{"compareEntities": [
		{"jobName": "J1", "schedule": "daily", "action": "create", "existsRef": false},
		{"jobName": "J2", "schedule": "hourly", "action": "update", "existsRef": true,
		 "compareItems": [
			{"itemName": "timeZone", "tar": "UTC", "ref": "Asia/Tokyo", "diff": true},
			{"itemName": "cronExpression", "tar": "0 0 * * * ?", "ref": "0 0 * * * ?", "diff": false}
		 ]},
		{"jobName": "J3", "schedule": "weekly", "action": "delete", "existsRef": true}
	]}`)

	t.Run("ComparisonForest places entities under actions", func(t *testing.T) {
		items := schedules.ComparisonForest(comparison)
		expected := []forest.Item{
			{Name: "create"}, {Name: "update"}, {Name: "delete"},
			{Name: "J1@daily", ParentName: "create"},
			{Name: "J2@hourly", ParentName: "update"},
			{Name: "J3@weekly", ParentName: "delete"},
		}
		if !cmp.SliceEqWith(items, expected, func(a, b forest.Item) bool {
			return a.Name == b.Name && a.ParentName == b.ParentName
		}) {
			t.Errorf("unexpected forest: %+v", items)
		}

		if len(schedules.ComparisonForest(types.Record{})) != 0 {
			t.Error("empty comparison makes a forest")
		}
	})

	t.Run("Find looks up entity by item name, falling back to the first", func(t *testing.T) {
		e, ok := schedules.Find(comparison, "J2@hourly")
		if !ok || e.JobName() != "J2" {
			t.Errorf("unexpected entity: %+v", e)
		}

		e, ok = schedules.Find(comparison, "")
		if !ok || e.JobName() != "J1" {
			t.Errorf("unexpected entity: %+v", e)
		}

		if _, ok := schedules.Find(types.Record{}, "J1@daily"); ok {
			t.Error("found in empty comparison")
		}
	})

	t.Run("CompareItems are sorted by name", func(t *testing.T) {
		e, _ := schedules.Find(comparison, "J2@hourly")
		names := utils.Map(e.CompareItems(), func(c schedules.CompareItem) string { return c.Name })
		if !cmp.SliceEq(names, []string{"cronExpression", "timeZone"}) {
			t.Errorf("unexpected items: %v", names)
		}
	})

	t.Run("CanCreatePackage", func(t *testing.T) {
		if !schedules.CanCreatePackage(comparison) {
			t.Error("releasable comparison is rejected")
		}

		broken := record(t, `{"compareEntities": [
			{"jobName": "J1", "schedule": "daily", "action": "create", "existsRef": true}
		]}`)
		if schedules.CanCreatePackage(broken) {
			t.Error("creating existing schedule is accepted")
		}
		e, _ := schedules.Find(broken, "")
		if e.Warning() != "Existing data in target environment, cannot create!" {
			t.Errorf("unexpected warning: %s", e.Warning())
		}
	})
}
