package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/opst/scorch-console/pkg/api/types"
)

func (c *client) GetMetricBySearchID(ctx context.Context, id string) (any, error) {
	return get[any](ctx, c, "GetMetricBySearchID", c.apipath("metrics", "list-by-id", url.PathEscape(id)))
}

func (c *client) GetMetricByJobRef(ctx context.Context, jobRef string) (any, error) {
	return get[any](ctx, c, "GetMetricByJobRef", c.apipath("metrics", "list-by-jobid", url.PathEscape(jobRef)))
}

func (c *client) GetMetricByPandoraBuildKeyRef(ctx context.Context, buildKey string, testType string) (any, error) {
	return get[any](
		ctx, c, "GetMetricByPandoraBuildKeyRef",
		c.apipath("metrics", "list-by-pandora-b-k", url.PathEscape(buildKey), url.PathEscape(testType)),
	)
}

func (c *client) GetTradeErrorMetrics(ctx context.Context, query string, testType string) (any, error) {
	return get[any](
		ctx, c, "GetTradeErrorMetrics",
		c.apipath("metrics", "tradeerrormetrics", url.PathEscape(query), url.PathEscape(testType)),
	)
}

func (c *client) GetMetricQtfPipelinesList(ctx context.Context, query Query) (any, error) {
	return get[any](ctx, c, "GetMetricQtfPipelinesList", withQuery(c.apipath("metrics", "qtf-list"), query))
}

func (c *client) GetMetricBubblePipelinesList(ctx context.Context, query Query) (any, error) {
	return get[any](ctx, c, "GetMetricBubblePipelinesList", withQuery(c.apipath("metrics", "bubble"), query))
}

func (c *client) GetMetricPipelineNotes(ctx context.Context, query Query) (any, error) {
	return get[any](ctx, c, "GetMetricPipelineNotes", withQuery(c.apipath("metrics", "qtf-list-notes"), query))
}

func (c *client) GetMetricRerunListJobs(ctx context.Context, query Query) (any, error) {
	return get[any](ctx, c, "GetMetricRerunListJobs", withQuery(c.apipath("metrics", "rerun-list-jobs"), query))
}

func (c *client) GetMetricRerun(ctx context.Context, query Query) (any, error) {
	return get[any](ctx, c, "GetMetricRerun", withQuery(c.apipath("metrics", "rerun"), query))
}

func (c *client) GetQtfHandoverResult(ctx context.Context, query Query) (any, error) {
	return get[any](ctx, c, "GetQtfHandoverResult", withQuery(c.apipath("metrics", "qtfhandover"), query))
}

func (c *client) HandoverNotify(ctx context.Context, request types.Record) (any, error) {
	return call[any](
		ctx, c, "HandoverNotify",
		http.MethodPost, c.apipath("metrics", "qtf-handover-notify"), request,
	)
}
