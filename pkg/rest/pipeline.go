package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/opst/scorch-console/pkg/api/types"
)

func (c *client) FindBatchList(ctx context.Context, keyword string) ([]types.Record, error) {
	u := withQuery(c.apipath("batch", "findByKeyword"), Query{"keyword": keyword})
	return get[[]types.Record](ctx, c, "FindBatchList", u)
}

func (c *client) CreatePipeline(ctx context.Context, pipeline types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "CreatePipeline",
		http.MethodPost, c.apipath("pipeline", "create-pipeline"), pipeline,
	)
}

func (c *client) GetPipelineDetail(ctx context.Context, pipelineId string) (types.Record, error) {
	return get[types.Record](
		ctx, c, "GetPipelineDetail",
		c.apipath("pipeline", "summary", url.PathEscape(pipelineId)),
	)
}

func (c *client) GetPipelineList(ctx context.Context, query Query) (types.Page[types.Record], error) {
	return get[types.Page[types.Record]](
		ctx, c, "GetPipelineList",
		withQuery(c.apipath("pipeline", "list"), query),
	)
}

func (c *client) UpdatePipeline(ctx context.Context, pipeline types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "UpdatePipeline",
		http.MethodPut, c.apipath("pipeline", "update-pipeline"), pipeline,
	)
}

func (c *client) DeletePipeline(ctx context.Context, pipelineId string) error {
	return discard(
		ctx, c, "DeletePipeline",
		http.MethodDelete, c.apipath("pipeline", "delete-pipeline", url.PathEscape(pipelineId)), nil,
	)
}

func (c *client) FindPipelineList(ctx context.Context, keyword string) ([]types.Record, error) {
	u := withQuery(c.apipath("pipeline", "findByKeyword"), Query{"keyword": keyword})
	return get[[]types.Record](ctx, c, "FindPipelineList", u)
}

func (c *client) GetNoticeDetail(ctx context.Context, pipelineId string) (types.Record, error) {
	return get[types.Record](
		ctx, c, "GetNoticeDetail",
		c.apipath("notice", "summary-by-type-id", url.PathEscape(pipelineId)),
	)
}

func (c *client) EditNotice(ctx context.Context, notice types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "EditNotice",
		http.MethodPut, c.apipath("notice", "update-notice"), notice,
	)
}

func (c *client) DeleteNotice(ctx context.Context, noticeId string) error {
	return discard(
		ctx, c, "DeleteNotice",
		http.MethodDelete, c.apipath("notice", "delete-notice", url.PathEscape(noticeId)), nil,
	)
}

func (c *client) CheckPipelineDeadLoop(ctx context.Context, parentId string, childId string) (bool, error) {
	resp, err := get[*types.Envelope[*types.DeadLoop]](
		ctx, c, "CheckPipelineDeadLoop",
		c.apipath("pipeline", "checkDeadLoop", url.PathEscape(parentId), url.PathEscape(childId)),
	)
	if err != nil {
		return false, err
	}
	if resp == nil || resp.Data == nil {
		return false, nil
	}
	return resp.Data.IsLoop, nil
}

// CobDateGroup is the group name carrying the close-of-business date in pipeline submissions.
const CobDateGroup = "cobDateParam"

func (c *client) SubmitPipeline(ctx context.Context, pipelineId string, customized map[string]types.Parameters) (types.Record, error) {
	groups := map[string]types.Parameters{}
	for k, v := range customized {
		groups[k] = v.Clone()
	}
	groups[CobDateGroup] = c.submission(nil)

	return call[types.Record](
		ctx, c, "SubmitPipeline",
		http.MethodPost, c.apipath("pipeline-requests", "submit-pipeline", url.PathEscape(pipelineId)),
		map[string]any{"groups": groups},
	)
}
