package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/opst/scorch-console/cmd/scorchd/handlers"
	httptestutil "github.com/opst/scorch-console/internal/testutils/http"
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/rest/mock"
	"github.com/opst/scorch-console/pkg/schedules"
)

func scheduleDetail(job string, trigger string) types.Record {
	return types.Record{
		"jobName":            job,
		"jobNameDescription": "nightly " + job,
		"triggerDetails": []any{
			map[string]any{
				"triggerKeyName": trigger,
				"cronExpression": "0 0 12 * * ?",
				"timeZone":       "Asia/Tokyo",
				"method":         "submitBatch",
				"overrideParameters": map[string]any{
					"entries": map[string]any{"REGION": "EU"},
				},
			},
		},
	}
}

func TestScheduleDetailHandler(t *testing.T) {
	t.Run("schedule with its trigger is shown", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetScheduleDetail = func(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error) {
			return scheduleDetail(jobName, triggerKeyName), nil
		}

		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/schedules/job-a/t1/")
		httptestutil.SetParams(c, "job", "job-a", "trigger", "t1")
		if err := handlers.ScheduleDetailHandler(newConsole(), client, "job", "trigger")(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Fatalf("unexpected status code: %d", resp.Code)
		}
		body := resp.Body.String()
		for _, want := range []string{"job-a", "REGION", schedules.MethodLabel("submitBatch")} {
			if !strings.Contains(body, want) {
				t.Errorf("%q is not shown:\n%s", want, body)
			}
		}
		if calls := client.Calls.GetScheduleDetail; len(calls) != 1 || calls[0] != (mock.GetScheduleDetailArgs{JobName: "job-a", TriggerKeyName: "t1"}) {
			t.Errorf("unexpected calls: %+v", calls)
		}
	})

	t.Run("schedule without job name is not found", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetScheduleDetail = func(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error) {
			return types.Record{}, nil
		}

		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/schedules/job-a/t1/")
		httptestutil.SetParams(c, "job", "job-a", "trigger", "t1")
		if err := handlers.ScheduleDetailHandler(newConsole(), client, "job", "trigger")(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusNotFound {
			t.Errorf("unexpected status code: %d", resp.Code)
		}
		if body := resp.Body.String(); !strings.Contains(body, "Scheduler job-a - t1 Not Found") {
			t.Errorf("error is not shown:\n%s", body)
		}
	})
}

func TestTriggerHandler(t *testing.T) {
	for name, testcase := range map[string]struct {
		when func(ctx context.Context, jobName string, triggerKeyName string) (any, error)
		then flash.Toast
	}{
		"submitted": {
			when: func(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
				return map[string]any{
					"status": types.StatusSuccess,
					"data":   map[string]any{"name": "job-a#42", "status": "QUEUED"},
				}, nil
			},
			then: flash.Toast{Level: flash.Success, Message: "job-a#42 submit successfully, status: QUEUED"},
		},
		"submission failed in Scorch": {
			when: func(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
				return map[string]any{
					"data": map[string]any{"name": "job-a#42", "status": "FAILED"},
				}, nil
			},
			then: flash.Toast{Level: flash.Error, Message: "job-a#42 submit failed, status: FAILED"},
		},
		"request failed": {
			when: func(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
				return nil, &rest.Error{Status: http.StatusInternalServerError, Message: "queue is full"}
			},
			then: flash.Toast{Level: flash.Error, Message: "Failed to submit job: queue is full"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := mock.New(t)
			client.Impl.SubmitJob = testcase.when

			e := newEcho(t)
			c, resp := httptestutil.Post(
				e, "/schedules/job-a/t1/submit/", nil,
				httptestutil.WithHeader("Referer", "/schedules/?page=2"),
			)
			httptestutil.SetParams(c, "job", "job-a", "trigger", "t1")
			if err := handlers.TriggerHandler(newConsole(), client, handlers.TriggerSubmit, "job", "trigger")(c); err != nil {
				t.Fatal(err)
			}

			expectRedirect(t, resp, "/schedules/?page=2")
			if toast := toastOf(t, resp); toast != testcase.then {
				t.Errorf("unexpected toast: (actual, expected) = (%+v, %+v)", toast, testcase.then)
			}
		})
	}

	t.Run("without referer, it goes to the schedule", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.PauseJobTrigger = func(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
			return map[string]any{"status": types.StatusSuccess}, nil
		}

		e := newEcho(t)
		c, resp := httptestutil.Post(e, "/schedules/job-a/t1/pause/", nil)
		httptestutil.SetParams(c, "job", "job-a", "trigger", "t1")
		if err := handlers.TriggerHandler(newConsole(), client, handlers.TriggerPause, "job", "trigger")(c); err != nil {
			t.Fatal(err)
		}
		expectRedirect(t, resp, "/schedules/job-a/t1/")
		if len(client.Calls.PauseJobTrigger) != 1 {
			t.Errorf("unexpected calls: %+v", client.Calls.PauseJobTrigger)
		}
	})
}

func TestSaveScheduleHandler(t *testing.T) {
	timezones := func(ctx context.Context) (map[string]string, error) {
		return map[string]string{"Asia/Tokyo": "(UTC+09:00) Tokyo", "UTC": "(UTC) UTC"}, nil
	}

	t.Run("incomplete schedule is warned, without saving", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetTimezoneList = timezones

		form := url.Values{
			"draft":   {draftOf(t, schedules.NewDraft())},
			"jobName": {"job-a"},
			"op":      {"save"},
		}
		e := newEcho(t)
		c, resp := httptestutil.PostForm(e, "/schedules/editor/", form)
		if err := handlers.SaveScheduleHandler(newConsole(), client, false)(c); err != nil {
			t.Fatal(err)
		}

		body := resp.Body.String()
		if !strings.Contains(body, "toast-"+flash.Warning) || !strings.Contains(body, schedules.ErrScheduleMissing.Error()) {
			t.Errorf("no warning:\n%s", body)
		}
		if len(client.Calls.CreateSchedule) != 0 {
			t.Errorf("schedule is saved: %+v", client.Calls.CreateSchedule)
		}
	})

	t.Run("complete schedule is saved", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.CreateSchedule = func(ctx context.Context, schedule types.Record) (types.Record, error) {
			return types.Record{
				"status": types.StatusSuccess,
				"data":   map[string]any{"jobName": "job-a", "triggerKeyName": "t9"},
			}, nil
		}

		form := url.Values{
			"draft":             {draftOf(t, schedules.NewDraft())},
			"jobName":           {" job-a "},
			"cronExpression":    {"0 0 12 * * ?"},
			"method":            {"submitPipeline"},
			"timeZone":          {"UTC"},
			"skipConcurrentRun": {"on"},
			"op":                {"save"},
		}
		form.Set("param.REGION", "EU")

		e := newEcho(t)
		c, resp := httptestutil.PostForm(e, "/schedules/editor/", form)
		if err := handlers.SaveScheduleHandler(newConsole(), client, false)(c); err != nil {
			t.Fatal(err)
		}

		expectRedirect(t, resp, "/schedules/job-a/t9/")
		if len(client.Calls.CreateSchedule) != 1 {
			t.Fatalf("unexpected calls: %+v", client.Calls.CreateSchedule)
		}
		saved := client.Calls.CreateSchedule[0]
		if saved.String("jobName") != "job-a" || saved.String("method") != "submitPipeline" {
			t.Errorf("unexpected schedule: %+v", saved)
		}
		if !saved.Bool("skipConcurrentRun") || saved.Bool("priorityRun") {
			t.Errorf("unexpected flags: %+v", saved)
		}
		if p := types.ParametersOf(saved, "overrideParameters"); p.Entries["REGION"] != "EU" {
			t.Errorf("unexpected parameters: %+v", p)
		}
	})

	t.Run("rejected schedule is told, staying in the editor", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetTimezoneList = timezones
		client.Impl.GetNextFireTime = func(ctx context.Context, cron string, timeZone string) (types.Envelope[any], error) {
			return types.Envelope[any]{Status: types.StatusSuccess, Message: "2024-05-01 12:00:00"}, nil
		}
		client.Impl.UpdateSchedule = func(ctx context.Context, schedule types.Record) (types.Record, error) {
			return types.Record{"status": "FAIL", "message": "job is running"}, nil
		}

		draft := schedules.NewDraft()
		draft["triggerKeyName"] = "t1"
		form := url.Values{
			"draft":          {draftOf(t, draft)},
			"jobName":        {"job-a"},
			"cronExpression": {"0 0 12 * * ?"},
			"method":         {"submitBatch"},
			"timeZone":       {"UTC"},
			"op":             {"save"},
		}
		e := newEcho(t)
		c, resp := httptestutil.PostForm(e, "/schedules/editor/update/", form)
		if err := handlers.SaveScheduleHandler(newConsole(), client, true)(c); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusOK {
			t.Fatalf("unexpected status code: %d", resp.Code)
		}
		body := resp.Body.String()
		if !strings.Contains(body, "toast-"+flash.Error) || !strings.Contains(body, "job is running") {
			t.Errorf("rejection is not told:\n%s", body)
		}
		if !strings.Contains(body, "2024-05-01 12:00:00") {
			t.Errorf("next fire time is not shown:\n%s", body)
		}
	})
}

func TestScheduleReleaseHandler(t *testing.T) {
	comparison := types.Record{
		"status": types.StatusSuccess,
		"data": map[string]any{
			"compareEntities": []any{
				map[string]any{
					"jobName":   "job-a",
					"schedule":  "t1",
					"action":    "update",
					"existsRef": true,
					"compareItems": []any{
						map[string]any{
							"itemName": "overrideParameters",
							"tar":      map[string]any{"entries": map[string]any{"REGION": "EU"}},
							"ref":      map[string]any{"entries": map[string]any{"REGION": "US"}},
							"diff":     true,
						},
					},
				},
			},
		},
	}

	t.Run("chosen schedules are compared", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetScheduleDetail = func(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error) {
			return scheduleDetail(jobName, triggerKeyName), nil
		}
		client.Impl.CompareSchedule = func(ctx context.Context, details []types.Record) (types.Record, error) {
			return comparison, nil
		}

		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/schedules/release/?item=update%7Cjob-a%7Ct1&item=&xall=")
		if err := handlers.ScheduleReleaseHandler(newConsole(), client)(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Fatalf("unexpected status code: %d", resp.Code)
		}

		if calls := client.Calls.CompareSchedule; len(calls) != 1 || len(calls[0]) != 1 {
			t.Fatalf("unexpected calls: %+v", calls)
		}
		item := client.Calls.CompareSchedule[0][0]
		if item.String("action") != "update" || item.String("jobName") != "job-a" || item.String("triggerKeyName") != "t1" {
			t.Errorf("unexpected item: %+v", item)
		}

		body := resp.Body.String()
		for _, want := range []string{"job-a@t1", `class="diff-table"`, "REGION", "US"} {
			if !strings.Contains(body, want) {
				t.Errorf("%q is not shown:\n%s", want, body)
			}
		}
		if strings.Contains(body, "disabled") {
			t.Errorf("release package can not be created:\n%s", body)
		}
	})

	t.Run("malformed item is bad request", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, _ := httptestutil.Get(e, "/schedules/release/?item=job-a")
		err := handlers.ScheduleReleaseHandler(newConsole(), client)(c)
		if err == nil {
			t.Fatal("no error")
		}
		if len(client.Calls.GetScheduleDetail) != 0 {
			t.Errorf("schedules are fetched: %+v", client.Calls.GetScheduleDetail)
		}
	})

	t.Run("failure of a schedule is shown as an error panel", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.GetScheduleDetail = func(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error) {
			return nil, errors.New("connection reset")
		}
		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/schedules/release/?item=create%7Cjob-a%7Ct1")
		if err := handlers.ScheduleReleaseHandler(newConsole(), client)(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusBadGateway {
			t.Errorf("unexpected status code: %d", resp.Code)
		}
		if body := resp.Body.String(); !strings.Contains(body, "connection reset") {
			t.Errorf("error is not shown:\n%s", body)
		}
	})
}
