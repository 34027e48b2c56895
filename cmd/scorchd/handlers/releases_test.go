package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/cmd/scorchd/handlers"
	httptestutil "github.com/opst/scorch-console/internal/testutils/http"
	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/rest/mock"
)

func TestPackageListHandler(t *testing.T) {
	today := time.Date(2024, time.May, 1, 9, 30, 0, 0, time.UTC)
	now := func() time.Time { return today }

	type when struct {
		query    string
		packages []types.Package
		err      error
	}
	type then struct {
		status      int
		date        time.Time
		contains    []string
		notContains []string
	}

	for name, testcase := range map[string]struct {
		when when
		then then
	}{
		"packages of today are listed without date": {
			when: when{
				packages: []types.Package{{Name: "pkg-a", Version: "1.0.0", CreateTime: "2024-05-01 08:00:00"}},
			},
			then: then{
				status:      http.StatusOK,
				date:        today,
				contains:    []string{"pkg-a", "1.0.0", `value="2024-05-01"`},
				notContains: []string{`class="error-panel"`, handlers.MessageNoPackages},
			},
		},
		"packages of the date are listed": {
			when: when{query: "date=2024-04-02", packages: []types.Package{}},
			then: then{
				status:   http.StatusOK,
				date:     time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC),
				contains: []string{handlers.MessageNoPackages, `value="2024-04-02"`},
			},
		},
		"failure of Scorch is shown as an error panel": {
			when: when{err: &rest.Error{Status: http.StatusInternalServerError, Message: "database is down"}},
			then: then{
				status:      http.StatusBadGateway,
				date:        today,
				contains:    []string{`class="error-panel"`, "database is down"},
				notContains: []string{handlers.MessageNoPackages},
			},
		},
		"open breaker is shown as an error panel": {
			when: when{err: fmt.Errorf("list package: %w", rest.ErrUnavailable)},
			then: then{
				status:   http.StatusServiceUnavailable,
				date:     today,
				contains: []string{`class="error-panel"`},
			},
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := mock.New(t)
			client.Impl.ListPackage = func(ctx context.Context, createDate time.Time) ([]types.Package, error) {
				return testcase.when.packages, testcase.when.err
			}

			e := newEcho(t)
			c, resp := httptestutil.Get(e, "/releases/packages/?"+testcase.when.query)
			if err := handlers.PackageListHandler(newConsole(), client, now)(c); err != nil {
				t.Fatal(err)
			}

			if resp.Code != testcase.then.status {
				t.Errorf("unexpected status code: (actual, expected) = (%d, %d)", resp.Code, testcase.then.status)
			}
			if len(client.Calls.ListPackage) != 1 || !client.Calls.ListPackage[0].Equal(testcase.then.date) {
				t.Errorf("unexpected calls: %v", client.Calls.ListPackage)
			}
			body := resp.Body.String()
			for _, want := range testcase.then.contains {
				if !strings.Contains(body, want) {
					t.Errorf("%q is not in the page:\n%s", want, body)
				}
			}
			for _, unwanted := range testcase.then.notContains {
				if strings.Contains(body, unwanted) {
					t.Errorf("%q is in the page:\n%s", unwanted, body)
				}
			}
		})
	}

	t.Run("malformed date is bad request", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, _ := httptestutil.Get(e, "/releases/packages/?date=May-1")

		err := handlers.PackageListHandler(newConsole(), client, now)(c)
		if he := new(echo.HTTPError); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("unexpected error: %v", err)
		}
		if len(client.Calls.ListPackage) != 0 {
			t.Errorf("packages are listed: %v", client.Calls.ListPackage)
		}
	})
}

func TestPackagePublishHandler(t *testing.T) {
	t.Run("release without CR number is warned", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, resp := httptestutil.PostForm(e, "/releases/packages/pkg-a/publish/", url.Values{"op": {"publish"}})
		httptestutil.SetParams(c, "name", "pkg-a")

		if err := handlers.PackagePublishHandler(newConsole(), client, "name")(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Errorf("unexpected status code: %d", resp.Code)
		}
		if body := resp.Body.String(); !strings.Contains(body, "toast-"+flash.Warning) {
			t.Errorf("no warning:\n%s", body)
		}
		if len(client.Calls.ReleasePackage) != 0 {
			t.Errorf("package is released: %v", client.Calls.ReleasePackage)
		}
	})

	for name, testcase := range map[string]struct {
		when map[string]any
		then flash.Toast
	}{
		"success": {
			when: map[string]any{"status": types.StatusSuccess},
			then: flash.Toast{Level: flash.Success, Message: "Package released: pkg-a"},
		},
		"error with release info": {
			when: map[string]any{"status": "ERROR", "data": map[string]any{"releaseInfo": "locked by another release"}},
			then: flash.Toast{Level: flash.Error, Message: "locked by another release"},
		},
		"other failures": {
			when: map[string]any{"status": "FAIL"},
			then: flash.Toast{Level: flash.Error, Message: "Release package pkg-a fail !"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			client := mock.New(t)
			client.Impl.ReleasePackage = func(ctx context.Context, packageName string, crNumber string) (any, error) {
				return testcase.when, nil
			}

			e := newEcho(t)
			c, resp := httptestutil.PostForm(
				e, "/releases/packages/pkg-a/publish/",
				url.Values{"op": {"publish"}, "crNumber": {"CR-1"}},
			)
			httptestutil.SetParams(c, "name", "pkg-a")

			if err := handlers.PackagePublishHandler(newConsole(), client, "name")(c); err != nil {
				t.Fatal(err)
			}
			expectRedirect(t, resp, "/releases/packages/pkg-a/")
			if toast := toastOf(t, resp); toast != testcase.then {
				t.Errorf("unexpected toast: (actual, expected) = (%+v, %+v)", toast, testcase.then)
			}
			if calls := client.Calls.ReleasePackage; len(calls) != 1 || calls[0].CrNumber != "CR-1" {
				t.Errorf("unexpected calls: %+v", calls)
			}
		})
	}
}

func TestPackageCompareHandler(t *testing.T) {
	t.Run("reports are shown in order of kinds", func(t *testing.T) {
		client := mock.New(t)
		client.Impl.PackageDetail = func(ctx context.Context, packageName string) (types.Record, error) {
			return types.Record{"name": packageName}, nil
		}
		client.Impl.CompareVersions = func(ctx context.Context, env string, input types.Record, packageName string) (types.CompareReports, error) {
			reports := types.CompareReports{}
			for _, k := range types.CompareReportKinds {
				reports[k.Key] = types.CompareReport{AddNewItems: 1, NewItemNames: []string{"new-" + k.Key}}
			}
			return reports, nil
		}

		e := newEcho(t)
		c, resp := httptestutil.Get(e, "/releases/packages/pkg-a/compare/?env=QTF")
		httptestutil.SetParams(c, "name", "pkg-a")
		if err := handlers.PackageCompareHandler(newConsole(), client, "name", false)(c); err != nil {
			t.Fatal(err)
		}
		if resp.Code != http.StatusOK {
			t.Fatalf("unexpected status code: %d", resp.Code)
		}

		body := resp.Body.String()
		last := -1
		for _, k := range types.CompareReportKinds {
			i := strings.Index(body, "new-"+k.Key)
			if i < 0 {
				t.Errorf("report of %s is missing", k.Key)
				continue
			}
			if i < last {
				t.Errorf("report of %s is out of order", k.Key)
			}
			last = i
		}
		if calls := client.Calls.CompareVersions; len(calls) != 1 || calls[0].Env != "QTF" {
			t.Errorf("unexpected calls: %+v", calls)
		}
	})

	t.Run("unknown environment is bad request", func(t *testing.T) {
		client := mock.New(t)
		e := newEcho(t)
		c, _ := httptestutil.Get(e, "/releases/packages/pkg-a/compare/?env=Moon")
		httptestutil.SetParams(c, "name", "pkg-a")

		err := handlers.PackageCompareHandler(newConsole(), client, "name", false)(c)
		if he := new(echo.HTTPError); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
