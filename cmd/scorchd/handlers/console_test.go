package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/cmd/scorchd/handlers"
	"github.com/opst/scorch-console/pkg/audit"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/utils/try"
	"github.com/opst/scorch-console/pkg/views"
)

const flashSecret = "test-secret"

func newConsole() *handlers.Console {
	return &handlers.Console{
		Flash: flash.New(flashSecret),
		Audit: audit.NewWithWriter(io.Discard),
	}
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Renderer = try.To(views.New()).OrFatal(t)
	return e
}

// toastOf reads the toast pushed with the response.
func toastOf(t *testing.T, resp *httptest.ResponseRecorder) flash.Toast {
	t.Helper()
	for _, c := range resp.Result().Cookies() {
		if c.Name != flash.CookieName {
			continue
		}
		return try.To(flash.New(flashSecret).Parse(c.Value)).OrFatal(t)
	}
	t.Fatal("no toast is pushed")
	return flash.Toast{}
}

// expectRedirect checks that the response is a redirect to location.
func expectRedirect(t *testing.T, resp *httptest.ResponseRecorder, location string) {
	t.Helper()
	if resp.Code != http.StatusSeeOther {
		t.Fatalf("unexpected status code: %d", resp.Code)
	}
	if actual := resp.Header().Get(echo.HeaderLocation); actual != location {
		t.Errorf("unexpected location. (actual, expected) = (%s, %s)", actual, location)
	}
}
