// Package schedules validates schedule drafts and lays out release comparisons of schedules.
package schedules

import (
	"errors"
	"sort"
	"strings"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/forest"
	"github.com/opst/scorch-console/pkg/utils"
)

// Method is a way to run the scheduled job.
type Method struct {
	Name  string
	Label string
}

var Methods = []Method{
	{Name: "submitJob", Label: "Submit Job"},
	{Name: "submitBatchWithBatchName", Label: "Submit Batch"},
	{Name: "submitBatch", Label: "Submit Batch With Hierarchy"},
	{Name: "submitBatchWithLabel", Label: "Submit Batch With Label"},
	{Name: "submitPipeline", Label: "Submit Pipeline"},
}

// MethodLabel returns the label of the method, or name itself if unknown.
func MethodLabel(name string) string {
	if m, ok := utils.First(Methods, func(m Method) bool { return m.Name == name }); ok {
		return m.Label
	}
	return name
}

var (
	ErrJobMissing      = errors.New("Please input a job to run.")
	ErrScheduleMissing = errors.New("Please choose method and fulfill schedule.")
	ErrTimeZoneMissing = errors.New("Please choose timezone.")
)

// Validate checks fields required to save the schedule.
func Validate(schedule types.Record) error {
	if schedule.String("jobName") == "" {
		return ErrJobMissing
	}
	if schedule.String("method") == "" || schedule.String("cronExpression") == "" {
		return ErrScheduleMissing
	}
	if schedule.String("timeZone") == "" {
		return ErrTimeZoneMissing
	}
	return nil
}

// actions of compared schedules, in display order.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Entity is a schedule in a release comparison.
type Entity struct {
	types.Record
}

func (e Entity) JobName() string  { return e.String("jobName") }
func (e Entity) Schedule() string { return e.String("schedule") }
func (e Entity) Action() string   { return e.String("action") }

// ExistsRef is true when the schedule exists in the target environment.
func (e Entity) ExistsRef() bool { return e.Bool("existsRef") }

// ItemName identifies the entity in the comparison forest, as "JOB@SCHEDULE".
func (e Entity) ItemName() string {
	return e.JobName() + "@" + e.Schedule()
}

// Warning tells why the entity cannot be released. It is empty when it can.
func (e Entity) Warning() string {
	switch {
	case e.Action() == ActionCreate && e.ExistsRef():
		return "Existing data in target environment, cannot create!"
	case e.Action() == ActionDelete && !e.ExistsRef():
		return "Not exists data in target environment, cannot delete!"
	case e.Action() == ActionUpdate && !e.ExistsRef():
		return "Not exist in target environment, can not update!"
	}
	return ""
}

// CompareItem is a field compared between the release and the environment.
type CompareItem struct {
	Name string

	// Release and Ref are values in the release and in the target environment.
	Release any
	Ref     any

	Diff bool
}

// IsParameters is true for the field holding overridden parameters.
func (c CompareItem) IsParameters() bool {
	return c.Name == "overrideParameters"
}

// CompareItems returns fields compared for update, sorted by name ignoring case.
func (e Entity) CompareItems() []CompareItem {
	if e.Action() != ActionUpdate {
		return nil
	}
	items := utils.Map(e.Records("compareItems"), func(r types.Record) CompareItem {
		return CompareItem{Name: r.String("itemName"), Release: r["tar"], Ref: r["ref"], Diff: r.Bool("diff")}
	})
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items
}

// Entities lists compared schedules in the comparison.
func Entities(comparison types.Record) []Entity {
	return utils.Map(comparison.Records("compareEntities"), func(r types.Record) Entity {
		return Entity{Record: r}
	})
}

// ComparisonForest places compared schedules under their actions.
//
// It is empty when nothing is compared.
func ComparisonForest(comparison types.Record) []forest.Item {
	entities := Entities(comparison)
	if len(entities) == 0 {
		return []forest.Item{}
	}
	items := []forest.Item{
		{Name: ActionCreate},
		{Name: ActionUpdate},
		{Name: ActionDelete},
	}
	for _, e := range entities {
		items = append(items, forest.Item{Name: e.ItemName(), ParentName: e.Action()})
	}
	return items
}

// Find returns the entity with the item name in the comparison forest.
//
// For an empty or unknown name, it returns the first entity.
func Find(comparison types.Record, itemName string) (Entity, bool) {
	entities := Entities(comparison)
	if len(entities) == 0 {
		return Entity{}, false
	}
	jobName, schedule, _ := strings.Cut(itemName, "@")
	if e, ok := utils.First(entities, func(e Entity) bool {
		return e.JobName() == jobName && e.Schedule() == schedule
	}); ok {
		return e, true
	}
	return entities[0], true
}

// CanCreatePackage is true when every compared schedule can be released.
func CanCreatePackage(comparison types.Record) bool {
	for _, e := range Entities(comparison) {
		if e.Warning() != "" {
			return false
		}
	}
	return true
}
