package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/opst/scorch-console/pkg/api/types"
)

func (c *client) GetScheduleList(ctx context.Context, query Query) (types.Page[types.Record], error) {
	return get[types.Page[types.Record]](
		ctx, c, "GetScheduleList",
		withQuery(c.apipath("scheduling", "schedules"), query),
	)
}

func (c *client) GetScheduleDetail(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error) {
	return get[types.Record](
		ctx, c, "GetScheduleDetail",
		c.apipath("scheduling", "detail", url.PathEscape(jobName), url.PathEscape(triggerKeyName)),
	)
}

func (c *client) GetSchedule(ctx context.Context, jobName string) (types.Record, error) {
	return get[types.Record](
		ctx, c, "GetSchedule",
		c.apipath("scheduling", "detail", url.PathEscape(jobName)),
	)
}

func (c *client) UpdateSchedule(ctx context.Context, schedule types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "UpdateSchedule",
		http.MethodPut, c.apipath("scheduling", "update-schedule"), schedule,
	)
}

func (c *client) DeleteSchedule(ctx context.Context, jobName string, triggerKeyName string) error {
	return discard(
		ctx, c, "DeleteSchedule",
		http.MethodDelete,
		c.apipath("scheduling", "deleteSchedule", url.PathEscape(jobName), url.PathEscape(triggerKeyName)),
		nil,
	)
}

func (c *client) CreateSchedule(ctx context.Context, schedule types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "CreateSchedule",
		http.MethodPost, c.apipath("scheduling", "create-schedule"), schedule,
	)
}

func (c *client) GetNextFireTime(ctx context.Context, cron string, timeZone string) (types.Envelope[any], error) {
	u := withQuery(
		c.apipath("scheduling", "nextFireTime"),
		Query{"scheduleTime": cron, "timeZone": timeZone},
	)
	return get[types.Envelope[any]](ctx, c, "GetNextFireTime", u)
}

func (c *client) GetTimezoneList(ctx context.Context) (map[string]string, error) {
	return get[map[string]string](ctx, c, "GetTimezoneList", c.apipath("scheduling", "listTimezones"))
}

func (c *client) PauseJobTrigger(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
	return get[any](
		ctx, c, "PauseJobTrigger",
		c.apipath("scheduling", "pauseJobTrigger", url.PathEscape(jobName), url.PathEscape(triggerKeyName)),
	)
}

func (c *client) ResumeJobTrigger(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
	return get[any](
		ctx, c, "ResumeJobTrigger",
		c.apipath("scheduling", "resumeJobTrigger", url.PathEscape(jobName), url.PathEscape(triggerKeyName)),
	)
}

func (c *client) SubmitJob(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
	return call[any](
		ctx, c, "SubmitJob",
		http.MethodPost,
		c.apipath("scheduling", "submit", url.PathEscape(jobName), url.PathEscape(triggerKeyName)),
		c.submission(nil),
	)
}

func (c *client) GetScheduleHistories(ctx context.Context, query Query) (types.Page[types.Record], error) {
	return get[types.Page[types.Record]](
		ctx, c, "GetScheduleHistories",
		withQuery(c.apipath("scheduling", "schedule-history", "list"), query),
	)
}

func (c *client) CompareSchedule(ctx context.Context, details []types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "CompareSchedule",
		http.MethodPost, c.apipath("scheduling", "compare-release-schedule"), details,
	)
}

func (c *client) CreateScheduleReleasePackage(ctx context.Context, details []types.Record) (any, error) {
	return call[any](
		ctx, c, "CreateScheduleReleasePackage",
		http.MethodPost, c.apipath("scheduling", "create-release-package"), details,
	)
}

func (c *client) GetScheduleReleasePackage(ctx context.Context, packageVersion string) (any, error) {
	return get[any](
		ctx, c, "GetScheduleReleasePackage",
		c.apipath("scheduling", "get-release-package", url.PathEscape(packageVersion)),
	)
}
