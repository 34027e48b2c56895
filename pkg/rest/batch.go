package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/opst/scorch-console/pkg/api/types"
)

// CobDateKey is the parameter name of the close-of-business date in job submissions.
const CobDateKey = "scorch.ui.cobdate"

// submission builds parameters of a job submission from customized.
//
// customized is not modified.
func (c *client) submission(customized *types.Parameters) types.Parameters {
	params := types.NewParameters()
	if customized != nil {
		params = customized.Clone()
	}
	if cob := c.cobDate(); cob != "" {
		params.Entries[CobDateKey] = cob
	}
	return params
}

func (c *client) CreateBatch(ctx context.Context, batch types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "CreateBatch",
		http.MethodPost, c.apipath("batch", "create-batch"), batch,
	)
}

func (c *client) FindJobGroupList(ctx context.Context, groupType string, keyword string) ([]types.Record, error) {
	u := withQuery(c.apipath("batch", "find", url.PathEscape(groupType)), Query{"keyword": keyword})
	return get[[]types.Record](ctx, c, "FindJobGroupList", u)
}

func (c *client) FindBatchesByKeywords(ctx context.Context, query Query) (types.Page[types.Record], error) {
	return get[types.Page[types.Record]](
		ctx, c, "FindBatchesByKeywords",
		withQuery(c.apipath("batch", "list"), query),
	)
}

func (c *client) GetBatchDetail(ctx context.Context, batchId string) (types.Record, error) {
	return get[types.Record](
		ctx, c, "GetBatchDetail",
		c.apipath("batch", "summary", url.PathEscape(batchId)),
	)
}

func (c *client) UpdateBatch(ctx context.Context, batch types.Record) (types.Record, error) {
	return call[types.Record](
		ctx, c, "UpdateBatch",
		http.MethodPost, c.apipath("batch", "update-batch"), batch,
	)
}

func (c *client) DeleteBatch(ctx context.Context, batchId string) error {
	return discard(
		ctx, c, "DeleteBatch",
		http.MethodDelete, c.apipath("batch", "delete", url.PathEscape(batchId)), nil,
	)
}

func (c *client) SubmitBatch(ctx context.Context, batchId string, customized *types.Parameters) (types.Record, error) {
	return call[types.Record](
		ctx, c, "SubmitBatch",
		http.MethodPost, c.apipath("batch", "submit-batch", url.PathEscape(batchId)),
		c.submission(customized),
	)
}

func (c *client) FindJobsByScope(ctx context.Context, query Query) (types.Page[types.Record], error) {
	return get[types.Page[types.Record]](
		ctx, c, "FindJobsByScope",
		withQuery(c.apipath("jobs", "order-list"), query),
	)
}
