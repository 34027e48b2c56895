package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/cmd/scorchd/handlers"
	httptestutil "github.com/opst/scorch-console/internal/testutils/http"
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/rest/mock"
	"github.com/opst/scorch-console/pkg/utils/cmp"
	"golang.org/x/sync/singleflight"
)

func TestSuggestHandler(t *testing.T) {
	found := []types.Record{{"id": "1", "name": "daily-load"}, {"id": "2", "name": "daily-report"}}

	t.Run("names of batches containing the keyword", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.FindBatchList = func(ctx context.Context, keyword string) ([]types.Record, error) {
			return found, nil
		}

		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/api/suggest/batches/?keyword=+daily+")
		httptestutil.SetParams(c, "kind", handlers.SuggestBatches)
		if err := handlers.SuggestHandler(client, new(singleflight.Group), "kind")(c); err != nil {
			t.Fatal(err)
		}

		if resp.Code != http.StatusOK {
			t.Fatalf("unexpected status code: %d", resp.Code)
		}
		var names []string
		if err := json.Unmarshal(resp.Body.Bytes(), &names); err != nil {
			t.Fatal(err)
		}
		if !cmp.SliceEq(names, []string{"daily-load", "daily-report"}) {
			t.Errorf("unexpected names: %v", names)
		}
		if !cmp.SliceEq(client.Calls.FindBatchList, []string{"daily"}) {
			t.Errorf("unexpected calls: %v", client.Calls.FindBatchList)
		}
	})

	t.Run("empty keyword suggests nothing without asking Scorch", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/api/suggest/pipelines/?keyword=")
		httptestutil.SetParams(c, "kind", handlers.SuggestPipelines)
		if err := handlers.SuggestHandler(client, new(singleflight.Group), "kind")(c); err != nil {
			t.Fatal(err)
		}

		var names []string
		if err := json.Unmarshal(resp.Body.Bytes(), &names); err != nil {
			t.Fatal(err)
		}
		if names == nil || len(names) != 0 {
			t.Errorf("unexpected names: %v", names)
		}
	})

	for name, testcase := range map[string]struct {
		when string
		err  error
		then int
	}{
		"unknown kind is not found": {
			when: "jobs", then: http.StatusNotFound,
		},
		"open breaker is service unavailable": {
			when: handlers.SuggestPipelines, err: fmt.Errorf("find: %w", rest.ErrUnavailable),
			then: http.StatusServiceUnavailable,
		},
		"other failures are bad gateway": {
			when: handlers.SuggestPipelines, err: errors.New("connection refused"),
			then: http.StatusBadGateway,
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := mock.New(t)
			client.Impl.FindPipelineList = func(ctx context.Context, keyword string) ([]types.Record, error) {
				return nil, testcase.err
			}

			e := newEcho(t)
			c, _ := httptestutil.Get(e, "/api/suggest/"+testcase.when+"/?keyword=daily")
			httptestutil.SetParams(c, "kind", testcase.when)
			err := handlers.SuggestHandler(client, new(singleflight.Group), "kind")(c)

			if he := new(echo.HTTPError); !errors.As(err, &he) || he.Code != testcase.then {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
