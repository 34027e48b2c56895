package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	apierr "github.com/opst/scorch-console/pkg/api/types/errors"
	"github.com/opst/scorch-console/pkg/parameters"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/views"
)

func BatchListHandler(cs *Console, client rest.BatchClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := client.FindBatchesByKeywords(c.Request().Context(), listQuery(c))
		if err != nil {
			return cs.fail(c, "batches", "Batches", err)
		}
		return cs.render(c, "batches", "Batches", newListing(c, page))
	}
}

type BatchDetail struct {
	Batch  types.Record
	Params views.ParamTable
}

func BatchDetailHandler(cs *Console, client rest.BatchClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		batch, err := client.GetBatchDetail(c.Request().Context(), c.Param(param))
		if err != nil {
			return cs.fail(c, "batch", "Batch", err)
		}
		return cs.render(c, "batch", batch.Name(), BatchDetail{
			Batch:  batch,
			Params: readOnly(types.ParametersOf(batch, "overriddenParameters")),
		})
	}
}

func DeleteBatchHandler(cs *Console, client rest.BatchClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		err := client.DeleteBatch(c.Request().Context(), id)
		next := "/batches/"
		if err != nil {
			next = link("batches", id)
		}
		return cs.done(c, "delete batch", id, err, "Batch deleted.", next)
	}
}

// BatchRunHandler shows parameters of a batch run, and submits the run with edited parameters.
func BatchRunHandler(cs *Console, client rest.BatchClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(param)

		batch, err := client.GetBatchDetail(ctx, id)
		if err != nil {
			return cs.fail(c, "batch_run", "Run Batch", err)
		}
		title := "Run: " + batch.Name()

		if c.Request().Method != http.MethodPost {
			return cs.render(c, "batch_run", title, BatchDetail{
				Batch: batch,
				Params: editable(
					"", types.ParametersOf(batch, "overriddenParameters"), parameters.Row{},
				),
			})
		}

		form, err := c.FormParams()
		if err != nil {
			return apierr.BadRequest("can not read the form", err)
		}
		params, row := parameters.FromForm(form)
		if form.Get(fieldOp) != opRun {
			return cs.render(c, "batch_run", title, BatchDetail{
				Batch: batch, Params: editable("", params, row),
			})
		}

		_, err = client.SubmitBatch(ctx, id, &params)
		return cs.done(c, "run batch", batch.Name(), err, "Batch submitted: "+batch.Name(), link("batches", id))
	}
}
