package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	apierr "github.com/opst/scorch-console/pkg/api/types/errors"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/utils"
	"golang.org/x/sync/singleflight"
)

// upstreamError is the response for a failure of Scorch.
func upstreamError(err error) *echo.HTTPError {
	if rest.StatusOf(err) == http.StatusServiceUnavailable {
		return apierr.ServiceUnavailable("retry later", err)
	}
	return apierr.BadGateway("", err)
}

// kinds of suggestions
const (
	SuggestBatches   = "batches"
	SuggestPipelines = "pipelines"
)

// SuggestHandler responds names of batches or pipelines containing the keyword, in JSON.
//
// Concurrent requests for the same kind and keyword share one call to Scorch.
func SuggestHandler(client rest.PipelineClient, group *singleflight.Group, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		kind := c.Param(param)
		var find func(ctx context.Context, keyword string) ([]types.Record, error)
		switch kind {
		case SuggestBatches:
			find = client.FindBatchList
		case SuggestPipelines:
			find = client.FindPipelineList
		default:
			return apierr.NotFound()
		}

		keyword := strings.TrimSpace(c.QueryParam("keyword"))
		if keyword == "" {
			return c.JSON(http.StatusOK, []string{})
		}

		// the shared call is not bound to the request which starts it
		ctx := context.WithoutCancel(c.Request().Context())
		names, err, _ := group.Do(kind+"\x00"+keyword, func() (any, error) {
			found, err := find(ctx, keyword)
			if err != nil {
				return nil, err
			}
			return utils.Map(found, func(r types.Record) string { return r.Name() }), nil
		})
		if err != nil {
			return upstreamError(err)
		}
		return c.JSON(http.StatusOK, names)
	}
}

func HomeHandler(cs *Console) echo.HandlerFunc {
	return func(c echo.Context) error {
		return cs.render(c, "home", "Scorch Console", nil)
	}
}
