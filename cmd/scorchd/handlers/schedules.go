package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	apierr "github.com/opst/scorch-console/pkg/api/types/errors"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/parameters"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/schedules"
	"github.com/opst/scorch-console/pkg/utils"
	"github.com/opst/scorch-console/pkg/views"
	"golang.org/x/sync/errgroup"
)

// query parameters and form fields of schedule pages
const (
	QueryReleaseItem    = "item"
	QueryReleasePackage = "package"
	QueryEntity         = "entity"
	QueryHistoryDate    = "date"

	// HistoryDateFormat is the format of QueryHistoryDate.
	HistoryDateFormat = "2006-01-02"

	// HistoryPageSize is the number of histories in a page.
	HistoryPageSize = 1000
)

// envelopeError is the error told by a response with status other than SUCCESS.
func envelopeError(r types.Record) error {
	status := r.String("status")
	if status == "" || status == types.StatusSuccess {
		return nil
	}
	if msg := r.String("message"); msg != "" {
		return errors.New(msg)
	}
	return fmt.Errorf("Scorch answered %s", status)
}

// dataOf unwraps "data" of the response, if any.
func dataOf(r types.Record) types.Record {
	if d := r.Record("data"); d != nil {
		return d
	}
	return r
}

func ScheduleListHandler(cs *Console, client rest.ScheduleClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := client.GetScheduleList(c.Request().Context(), listQuery(c))
		if err != nil {
			return cs.fail(c, "schedules", "Schedules", err)
		}
		return cs.render(c, "schedules", "Schedules", newListing(c, page))
	}
}

type ScheduleDetail struct {
	Schedule types.Record
	Trigger  types.Record
	Method   string
	Params   views.ParamTable
}

func ScheduleDetailHandler(cs *Console, client rest.ScheduleClient, jobParam string, triggerParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, trigger := c.Param(jobParam), c.Param(triggerParam)
		detail, err := client.GetScheduleDetail(c.Request().Context(), job, trigger)
		if err != nil {
			return cs.fail(c, "schedule", "Schedule", err)
		}
		if detail.String("jobName") == "" {
			return cs.fail(c, "schedule", "Schedule", echo.NewHTTPError(
				http.StatusNotFound, fmt.Sprintf("Scheduler %s - %s Not Found", job, trigger),
			))
		}

		t := schedules.Trigger(detail)
		return cs.render(c, "schedule", detail.String("jobName"), ScheduleDetail{
			Schedule: detail,
			Trigger:  t,
			Method:   schedules.MethodLabel(t.String("method")),
			Params:   readOnly(types.ParametersOf(t, "overrideParameters")),
		})
	}
}

type TimeZone struct {
	ID    string
	Label string
}

// ScheduleEdit is data of the schedule editor.
type ScheduleEdit struct {
	// Draft is the schedule being edited, in JSON.
	Draft    string
	Schedule types.Record
	Update   bool

	Methods   []schedules.Method
	TimeZones []TimeZone
	Params    views.ParamTable

	// NextFireTime is the next fire time, or why the schedule is invalid.
	NextFireTime  string
	ScheduleValid bool
}

type scheduleEditor struct {
	cs     *Console
	client rest.ScheduleClient
	update bool
}

func (se scheduleEditor) title(draft types.Record) string {
	if se.update {
		return "Update: " + draft.String("jobName")
	}
	return "New Schedule"
}

// editor lays out the draft. Time zones and the next fire time are fetched concurrently.
func (se scheduleEditor) editor(c echo.Context, draft types.Record, row parameters.Row) (ScheduleEdit, error) {
	ctx := c.Request().Context()
	b, err := json.Marshal(draft)
	if err != nil {
		return ScheduleEdit{}, err
	}
	e := ScheduleEdit{
		Draft:    string(b),
		Schedule: draft,
		Update:   se.update,
		Methods:  schedules.Methods,
		Params:   editable("", types.ParametersOf(draft, "overrideParameters"), row),
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		zones, err := se.client.GetTimezoneList(gctx)
		if err != nil {
			return err
		}
		e.TimeZones = make([]TimeZone, 0, len(zones))
		for id, label := range zones {
			e.TimeZones = append(e.TimeZones, TimeZone{ID: id, Label: label})
		}
		sort.Slice(e.TimeZones, func(i, j int) bool { return e.TimeZones[i].ID < e.TimeZones[j].ID })
		return nil
	})
	cron, tz := draft.String("cronExpression"), draft.String("timeZone")
	if cron != "" && tz != "" {
		eg.Go(func() error {
			next, err := se.client.GetNextFireTime(gctx, cron, tz)
			if err != nil {
				c.Logger().Warnf("can not evaluate schedule %q in %s: %s", cron, tz, err)
				return nil
			}
			e.NextFireTime = fmt.Sprint(next.Message)
			e.ScheduleValid = next.Succeeded()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return ScheduleEdit{}, err
	}
	return e, nil
}

func (se scheduleEditor) render(c echo.Context, draft types.Record, row parameters.Row, toast *flash.Toast) error {
	e, err := se.editor(c, draft, row)
	if err != nil {
		return se.cs.fail(c, "schedule_edit", se.title(draft), err)
	}
	if toast != nil {
		return se.cs.notify(c, "schedule_edit", se.title(draft), toast.Level, toast.Message, e)
	}
	return se.cs.render(c, "schedule_edit", se.title(draft), e)
}

// scheduleFromForm applies fields posted from the editor to the draft.
func scheduleFromForm(form url.Values) (types.Record, parameters.Row, error) {
	dec := json.NewDecoder(bytes.NewBufferString(form.Get(fieldDraft)))
	dec.UseNumber()
	draft := types.Record{}
	if err := dec.Decode(&draft); err != nil {
		return nil, parameters.Row{}, err
	}
	if draft == nil {
		draft = schedules.NewDraft()
	}
	for _, key := range []string{"jobName", "jobNameDescription", "cronExpression", "method", "timeZone"} {
		if form.Has(key) {
			draft[key] = strings.TrimSpace(form.Get(key))
		}
	}
	for _, key := range []string{"skipConcurrentRun", "priorityRun"} {
		draft[key] = form.Has(key)
	}
	params, row := parameters.FromForm(form)
	draft["overrideParameters"] = params.AsValue()
	return draft, row, nil
}

// NewScheduleHandler shows the editor of a new schedule.
//
// With route params of a schedule, it is a clone of the schedule, without its name.
func NewScheduleHandler(cs *Console, client rest.ScheduleClient, jobParam string, triggerParam string) echo.HandlerFunc {
	se := scheduleEditor{cs: cs, client: client}
	return func(c echo.Context) error {
		job, trigger := c.Param(jobParam), c.Param(triggerParam)
		if job == "" || trigger == "" {
			return se.render(c, schedules.NewDraft(), parameters.Row{}, nil)
		}

		detail, err := client.GetScheduleDetail(c.Request().Context(), job, trigger)
		if err != nil {
			return cs.fail(c, "schedule_edit", "New Schedule", err)
		}
		draft, ok := schedules.DraftOf(detail)
		if !ok {
			return cs.fail(c, "schedule_edit", "New Schedule", echo.NewHTTPError(
				http.StatusNotFound, fmt.Sprintf("Scheduler %s - %s has no triggers", job, trigger),
			))
		}
		for _, key := range []string{"jobName", "jobNameDescription", "triggerKeyName", "id"} {
			delete(draft, key)
		}
		draft["jobName"] = ""
		return se.render(c, draft, parameters.Row{}, nil)
	}
}

func EditScheduleHandler(cs *Console, client rest.ScheduleClient, jobParam string, triggerParam string) echo.HandlerFunc {
	se := scheduleEditor{cs: cs, client: client, update: true}
	return func(c echo.Context) error {
		job, trigger := c.Param(jobParam), c.Param(triggerParam)
		detail, err := client.GetScheduleDetail(c.Request().Context(), job, trigger)
		if err != nil {
			return cs.fail(c, "schedule_edit", "Update Schedule", err)
		}
		draft, ok := schedules.DraftOf(detail)
		if !ok {
			return cs.fail(c, "schedule_edit", "Update Schedule", echo.NewHTTPError(
				http.StatusNotFound, fmt.Sprintf("Scheduler %s - %s has no triggers", job, trigger),
			))
		}
		return se.render(c, draft, parameters.Row{}, nil)
	}
}

// SaveScheduleHandler applies an edit posted from the schedule editor, and saves it on request.
func SaveScheduleHandler(cs *Console, client rest.ScheduleClient, update bool) echo.HandlerFunc {
	se := scheduleEditor{cs: cs, client: client, update: update}
	return func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return apierr.BadRequest("can not read the form", err)
		}
		draft, row, err := scheduleFromForm(form)
		if err != nil {
			return apierr.BadRequest("draft schedule is broken. reload the editor.", err)
		}
		if form.Get(fieldOp) != opSave {
			return se.render(c, draft, row, nil)
		}
		if err := schedules.Validate(draft); err != nil {
			return se.render(c, draft, row, &flash.Toast{Level: flash.Warning, Message: err.Error()})
		}

		action, save := "create schedule", client.CreateSchedule
		if update {
			action, save = "update schedule", client.UpdateSchedule
		}
		result, err := save(c.Request().Context(), draft)
		if err == nil {
			err = envelopeError(result)
		}
		if err != nil {
			cs.Audit.Record(c.RealIP(), action, draft.String("jobName"), err)
			return se.render(c, draft, row, toastOf(err))
		}

		saved := dataOf(result)
		job := utils.Default(nonEmpty(saved.String("jobName")), draft.String("jobName"))
		trigger := utils.Default(nonEmpty(saved.String("triggerKeyName")), draft.String("triggerKeyName"))
		next := "/schedules/"
		if trigger != "" {
			next = link("schedules", job, trigger)
		}
		return cs.done(c, action, job, nil, "Schedule saved: "+job, next)
	}
}

// nonEmpty points s, or is nil for "".
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func DeleteScheduleHandler(cs *Console, client rest.ScheduleClient, jobParam string, triggerParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		job, trigger := c.Param(jobParam), c.Param(triggerParam)
		err := client.DeleteSchedule(c.Request().Context(), job, trigger)
		next := "/schedules/"
		if err != nil {
			next = link("schedules", job, trigger)
		}
		return cs.done(c, "delete schedule", job+"@"+trigger, err, "Schedule deleted.", next)
	}
}

// trigger operations
const (
	TriggerPause  = "pause"
	TriggerResume = "resume"
	TriggerSubmit = "submit"
)

// TriggerHandler pauses, resumes or submits the job trigger, and goes back to the referer.
func TriggerHandler(cs *Console, client rest.ScheduleClient, op string, jobParam string, triggerParam string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		job, trigger := c.Param(jobParam), c.Param(triggerParam)

		var err error
		var message string
		switch op {
		case TriggerPause:
			_, err = client.PauseJobTrigger(ctx, job, trigger)
			message = "Paused: " + job
		case TriggerResume:
			_, err = client.ResumeJobTrigger(ctx, job, trigger)
			message = "Resumed: " + job
		case TriggerSubmit:
			var resp any
			resp, err = client.SubmitJob(ctx, job, trigger)
			if err != nil {
				err = fmt.Errorf("Failed to submit job: %w", err)
				break
			}
			message = submitMessage(job, resp)
			err = submitError(resp)
		default:
			return apierr.NotFound()
		}

		next := c.Request().Referer()
		if next == "" {
			next = link("schedules", job, trigger)
		}
		return cs.done(c, op+" schedule", job+"@"+trigger, err, message, next)
	}
}

// scorchRequest reads the submitted request from the response of submission.
func scorchRequest(resp any) types.Record {
	m, ok := resp.(map[string]any)
	if !ok {
		return types.Record{}
	}
	return dataOf(types.Record(m))
}

func submitMessage(job string, resp any) string {
	req := scorchRequest(resp)
	name := utils.Default(nonEmpty(req.Name()), job)
	return fmt.Sprintf("%s submit successfully, status: %s", name, req.String("status"))
}

// submitError tells a submission Scorch failed to accept.
func submitError(resp any) error {
	req := scorchRequest(resp)
	if s := req.String("status"); strings.Contains(strings.ToUpper(s), "FAIL") {
		return fmt.Errorf("%s submit failed, status: %s", req.Name(), s)
	}
	return nil
}

// ScheduleHistoryHandler lists histories of schedules, updated at the date if requested.
func ScheduleHistoryHandler(cs *Console, client rest.ScheduleClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		q := rest.Query{"size": HistoryPageSize, views.QueryPage: views.PageOf(c.QueryParams())}
		if d := c.QueryParam(QueryHistoryDate); d != "" {
			date, err := time.Parse(HistoryDateFormat, d)
			if err != nil {
				return apierr.BadRequest("date should be in form of YYYY-MM-DD", err)
			}
			q["updatedAt"] = date.UTC().Format("2006-01-02T15:04:05")
		}
		page, err := client.GetScheduleHistories(c.Request().Context(), q)
		if err != nil {
			return cs.fail(c, "schedule_history", "Schedule History", err)
		}
		return cs.render(c, "schedule_history", "Schedule History", newListing(c, page))
	}
}

// NextFireTimeHandler evaluates a schedule, for the editor.
//
// It responds the envelope of Scorch as is.
func NextFireTimeHandler(client rest.ScheduleClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		cron, tz := c.QueryParam("cronExpression"), c.QueryParam("timeZone")
		if cron == "" || tz == "" {
			return apierr.BadRequest("cronExpression and timeZone are required", nil)
		}
		next, err := client.GetNextFireTime(c.Request().Context(), cron, tz)
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(http.StatusOK, next)
	}
}

// ScheduleRelease is data of the schedule release page.
type ScheduleRelease struct {
	Items []types.Record

	// Query carries items to be released.
	Query url.Values

	Tree      views.Tree
	Entity    *EntityView
	CanCreate bool
}

// EntityView is a compared schedule with its compared fields.
type EntityView struct {
	schedules.Entity
	Items []CompareItemView
}

type CompareItemView struct {
	schedules.CompareItem

	// Params compares parameters, for the field of parameters.
	Params *parameters.Comparison
}

func entityView(e schedules.Entity) *EntityView {
	return &EntityView{
		Entity: e,
		Items: utils.Map(e.CompareItems(), func(item schedules.CompareItem) CompareItemView {
			v := CompareItemView{CompareItem: item}
			if item.IsParameters() {
				values := types.Record{"release": item.Release, "ref": item.Ref}
				diff := parameters.Diff(
					types.ParametersOf(values, "release"), types.ParametersOf(values, "ref"),
				)
				v.Params = &diff
			}
			return v
		}),
	}
}

// releaseItems reads items to be released from the query.
//
// Items are "ACTION|JOB|TRIGGER", or a package version to be loaded.
func releaseItems(c echo.Context, client rest.ScheduleClient) ([]types.Record, error) {
	ctx := c.Request().Context()
	form, err := c.FormParams()
	if err != nil {
		return nil, apierr.BadRequest("can not read the form", err)
	}
	if v := form.Get(QueryReleasePackage); v != "" {
		resp, err := client.GetScheduleReleasePackage(ctx, v)
		if err != nil {
			return nil, err
		}
		return schedules.ReleaseItemsOf(resp)
	}

	type target struct{ action, job, trigger string }
	targets := []target{}
	for _, spec := range form[QueryReleaseItem] {
		if spec == "" {
			continue
		}
		parts := strings.SplitN(spec, "|", 3)
		if len(parts) != 3 {
			return nil, apierr.BadRequest(`item should be "ACTION|JOB|TRIGGER"`, nil)
		}
		targets = append(targets, target{action: parts[0], job: parts[1], trigger: parts[2]})
	}

	items := make([]types.Record, len(targets))
	eg, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		eg.Go(func() error {
			detail, err := client.GetScheduleDetail(gctx, t.job, t.trigger)
			if err != nil {
				return err
			}
			item, ok := schedules.ReleaseItem(detail, t.action)
			if !ok {
				return fmt.Errorf("Scheduler %s - %s has no triggers", t.job, t.trigger)
			}
			items[i] = item
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// ScheduleReleaseHandler compares schedules to be released with the target environment.
//
// Compared schedules are placed in a tree under their actions, and the chosen one is shown in detail.
func ScheduleReleaseHandler(cs *Console, client rest.ScheduleClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := releaseItems(c, client)
		if he := new(echo.HTTPError); errors.As(err, &he) {
			return he
		}
		if err != nil {
			return cs.fail(c, "schedule_release", "Schedule Release", err)
		}

		data := ScheduleRelease{Items: items, Query: c.QueryParams()}
		if len(items) == 0 {
			return cs.render(c, "schedule_release", "Schedule Release", data)
		}

		result, err := client.CompareSchedule(c.Request().Context(), items)
		if err != nil {
			return cs.fail(c, "schedule_release", "Schedule Release", err)
		}
		comparison := dataOf(result)

		page := pageURL(c)
		forest := schedules.ComparisonForest(comparison)
		data.Tree = views.NewTree(
			"Comparison", forest, views.ExpansionOf(c.QueryParams(), forest), page,
			func(name string) string {
				if _, _, ok := strings.Cut(name, "@"); !ok {
					return ""
				}
				u := *page
				q := u.Query()
				q.Set(QueryEntity, name)
				u.RawQuery = q.Encode()
				return u.String()
			},
		)
		if e, ok := schedules.Find(comparison, c.QueryParam(QueryEntity)); ok {
			data.Entity = entityView(e)
		}
		data.CanCreate = schedules.CanCreatePackage(comparison)
		return cs.render(c, "schedule_release", "Schedule Release", data)
	}
}

// CreateScheduleReleaseHandler creates a release package of schedules posted.
func CreateScheduleReleaseHandler(cs *Console, client rest.ScheduleClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := releaseItems(c, client)
		if he := new(echo.HTTPError); errors.As(err, &he) {
			return he
		}
		back := "/schedules/release/?" + c.Request().Form.Encode()
		if err != nil {
			return cs.done(c, "create schedule release", "", err, "", back)
		}
		if len(items) == 0 {
			return cs.done(c, "create schedule release", "", errors.New("Nothing to release."), "", back)
		}

		resp, err := client.CreateScheduleReleasePackage(c.Request().Context(), items)
		message := "Release package created."
		if err == nil {
			if m, ok := resp.(map[string]any); ok {
				r := types.Record(m)
				err = envelopeError(r)
				message = utils.Default(nonEmpty(r.String("message")), message)
			}
		}
		return cs.done(c, "create schedule release", fmt.Sprintf("%d schedules", len(items)), err, message, back)
	}
}
