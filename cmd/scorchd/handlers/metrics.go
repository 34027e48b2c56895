package handlers

import (
	"context"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	apierr "github.com/opst/scorch-console/pkg/api/types/errors"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/utils"
)

// MetricKind is a listing of execution metrics.
type MetricKind struct {
	Name  string
	Label string
	get   func(ctx context.Context, client rest.MetricsClient, q rest.Query) (any, error)
}

var MetricKinds = []MetricKind{
	{Name: "qtf", Label: "QTF Pipelines", get: func(ctx context.Context, m rest.MetricsClient, q rest.Query) (any, error) {
		return m.GetMetricQtfPipelinesList(ctx, q)
	}},
	{Name: "bubble", Label: "Bubble Pipelines", get: func(ctx context.Context, m rest.MetricsClient, q rest.Query) (any, error) {
		return m.GetMetricBubblePipelinesList(ctx, q)
	}},
	{Name: "notes", Label: "Pipeline Notes", get: func(ctx context.Context, m rest.MetricsClient, q rest.Query) (any, error) {
		return m.GetMetricPipelineNotes(ctx, q)
	}},
	{Name: "rerun-jobs", Label: "Rerun Jobs", get: func(ctx context.Context, m rest.MetricsClient, q rest.Query) (any, error) {
		return m.GetMetricRerunListJobs(ctx, q)
	}},
	{Name: "rerun", Label: "Rerun", get: func(ctx context.Context, m rest.MetricsClient, q rest.Query) (any, error) {
		return m.GetMetricRerun(ctx, q)
	}},
	{Name: "handover", Label: "QTF Handover", get: func(ctx context.Context, m rest.MetricsClient, q rest.Query) (any, error) {
		return m.GetQtfHandoverResult(ctx, q)
	}},
}

type MetricsPage struct {
	Kinds []MetricKind
	Kind  string
	Query url.Values

	// Result is nil until searched.
	Result any
}

// MetricsSearchHandler finds metrics by search id, job ref, build key or trade error query.
func MetricsSearchHandler(cs *Console, client rest.MetricsClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		q := c.QueryParams()
		data := MetricsPage{Kinds: MetricKinds, Query: q}
		testType := q.Get("testType")

		var err error
		switch {
		case q.Get("searchId") != "":
			data.Result, err = client.GetMetricBySearchID(ctx, q.Get("searchId"))
		case q.Get("jobRef") != "":
			data.Result, err = client.GetMetricByJobRef(ctx, q.Get("jobRef"))
		case q.Get("buildKey") != "":
			data.Result, err = client.GetMetricByPandoraBuildKeyRef(ctx, q.Get("buildKey"), testType)
		case q.Get("tradeErrors") != "":
			data.Result, err = client.GetTradeErrorMetrics(ctx, q.Get("tradeErrors"), testType)
		}
		if err != nil {
			return cs.fail(c, "metrics", "Metrics", err)
		}
		return cs.render(c, "metrics", "Metrics", data)
	}
}

func MetricsListHandler(cs *Console, client rest.MetricsClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind, ok := utils.First(MetricKinds, func(k MetricKind) bool { return k.Name == c.Param(param) })
		if !ok {
			return apierr.NotFound()
		}
		result, err := kind.get(c.Request().Context(), client, listQuery(c))
		if err != nil {
			return cs.fail(c, "metrics", kind.Label, err)
		}
		return cs.render(c, "metrics", kind.Label, MetricsPage{
			Kinds: MetricKinds, Kind: kind.Name, Query: c.QueryParams(), Result: result,
		})
	}
}

// HandoverNotifyHandler notifies the QTF handover posted.
func HandoverNotifyHandler(cs *Console, client rest.MetricsClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return apierr.BadRequest("can not read the form", err)
		}
		req := types.Record{}
		for k := range form {
			req[k] = form.Get(k)
		}
		_, err = client.HandoverNotify(c.Request().Context(), req)
		return cs.done(c, "notify handover", form.Get("pipelineName"), err, "Handover notified.", "/metrics/handover/")
	}
}
