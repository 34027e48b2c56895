package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	apierr "github.com/opst/scorch-console/pkg/api/types/errors"
	"github.com/opst/scorch-console/pkg/echoutil"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/utils"
	"github.com/opst/scorch-console/pkg/views"
)

// environments where packages are released
var Environments = []Environment{
	{Name: "Prod", Label: "Production"},
	{Name: "PreProd", Label: "Pre production"},
	{Name: "PreProdBlack", Label: "Pre prod black"},
	{Name: "QTF", Label: "QTF"},
	{Name: "Uat", Label: "UAT"},
}

type Environment struct {
	Name  string
	Label string
}

const (
	// QueryDate is the query parameter of the package creation date, in DateFormat.
	QueryDate  = "date"
	DateFormat = "2006-01-02"

	QueryEnv = "env"

	MessageNoPackages = "No packages found for the selected date."
)

// recordOf reads a JSON object returned as any. Others are an empty Record.
func recordOf(v any) types.Record {
	if m, ok := v.(map[string]any); ok {
		return types.Record(m)
	}
	return types.Record{}
}

func ReleaseListHandler(cs *Console, client rest.ReleaseClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := client.GetReleaseList(c.Request().Context(), listQuery(c))
		if err != nil {
			return cs.fail(c, "releases", "Releases", err)
		}
		return cs.render(c, "releases", "Releases", newListing(c, page))
	}
}

func ReleaseDetailHandler(cs *Console, client rest.ReleaseClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		release, err := client.GetRelease(c.Request().Context(), c.Param(param))
		if err != nil {
			return cs.fail(c, "release", "Release", err)
		}
		return cs.render(c, "release", release.Name(), release)
	}
}

// ExportBundleHandler downloads the bundle of the job group, as a file.
func ExportBundleHandler(cs *Console, client rest.ReleaseClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		err := client.ExportJobGroupBundle(
			c.Request().Context(), id,
			func(body io.Reader, size int64) error {
				return echoutil.Attachment(c, fmt.Sprintf("job-group-%s.json", id), "application/json", body, size)
			},
		)
		if err != nil && !c.Response().Committed {
			return cs.fail(c, "release", "Export Bundle", err)
		}
		return err
	}
}

// bundle operations
const (
	BundleVerify  = "verify"
	BundleRelease = "release"
)

// BundleHandler verifies or releases a job group bundle uploaded as a file.
func BundleHandler(cs *Console, client rest.ReleaseClient, op string, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(param)
		fh, err := c.FormFile("bundle")
		if err != nil {
			return apierr.BadRequest("upload a bundle file as \"bundle\"", err)
		}
		f, err := fh.Open()
		if err != nil {
			return apierr.BadRequest("can not read the bundle", err)
		}
		defer f.Close()

		var bundle any
		if err := json.NewDecoder(f).Decode(&bundle); err != nil {
			return apierr.BadRequest("bundle should be a JSON file", err)
		}

		var result any
		switch op {
		case BundleVerify:
			result, err = client.VerifyJobGroupBundle(c.Request().Context(), name, bundle)
		case BundleRelease:
			result, err = client.ReleaseJobGroupBundle(c.Request().Context(), name, bundle)
		default:
			return apierr.NotFound()
		}
		cs.Audit.Record(c.RealIP(), op+" bundle", name, err)
		if err != nil {
			return cs.fail(c, "release_result", "Bundle", err)
		}
		return cs.render(c, "release_result", fmt.Sprintf("Bundle %s: %s", op, name), result)
	}
}

func AddTagHandler(cs *Console, client rest.ReleaseClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		_, err := client.AddTagToConfigGroups(c.Request().Context(), id)
		return cs.done(c, "tag config groups", id, err, "Tagged config groups of the job group.", "/releases/")
	}
}

type PackageList struct {
	Date     string
	Packages []types.Package

	// Error is shown in place of packages.
	Error *views.ErrorPanel
}

// PackageListHandler lists packages created on the date, or today.
//
// When listing fails, the page shows an error panel in place of packages.
func PackageListHandler(cs *Console, client rest.ReleaseClient, now func() time.Time) echo.HandlerFunc {
	return func(c echo.Context) error {
		date := now()
		if d := c.QueryParam(QueryDate); d != "" {
			t, err := time.Parse(DateFormat, d)
			if err != nil {
				return apierr.BadRequest("date should be in form of YYYY-MM-DD", err)
			}
			date = t
		}
		data := PackageList{Date: date.Format(DateFormat)}

		pkgs, err := client.ListPackage(c.Request().Context(), date)
		if err != nil {
			data.Error = views.NewErrorPanel(err)
			cs.Audit.Failure(data.Error.ID, c.Path(), err)
			return c.Render(data.Error.Status, "packages", cs.page(c, "Package List", data))
		}
		data.Packages = pkgs
		return cs.render(c, "packages", "Package List", data)
	}
}

func PackageDetailHandler(cs *Console, client rest.ReleaseClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(param)
		detail, err := client.PackageDetail(c.Request().Context(), name)
		if err != nil {
			return cs.fail(c, "package", name, err)
		}
		return cs.render(c, "package", name, map[string]any{"Name": name, "Detail": detail})
	}
}

// ReportView is a comparison report of a kind of items.
type ReportView struct {
	ItemName string
	types.CompareReport
}

type PackageCompare struct {
	Name         string
	Env          string
	Environments []Environment

	// Reports are empty until an environment is chosen.
	Reports []ReportView

	// Analysis is the result of verification in the environment, or nil.
	Analysis any
}

// PackageCompareHandler compares items of the package with an environment.
//
// With analyze, it verifies items to be released there.
func PackageCompareHandler(cs *Console, client rest.ReleaseClient, param string, analyze bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		name := c.Param(param)
		env := c.QueryParam(QueryEnv)
		data := PackageCompare{Name: name, Env: env, Environments: Environments}
		if env == "" {
			return cs.render(c, "package_compare", "Compare: "+name, data)
		}
		if _, ok := utils.First(Environments, func(e Environment) bool { return e.Name == env }); !ok {
			return apierr.BadRequest("unknown environment: "+env, nil)
		}

		detail, err := client.PackageDetail(ctx, name)
		if err != nil {
			return cs.fail(c, "package_compare", "Compare: "+name, err)
		}

		if analyze {
			data.Analysis, err = client.AnalyzePackage(ctx, env, detail, name)
		} else {
			var reports types.CompareReports
			reports, err = client.CompareVersions(ctx, env, detail, name)
			for _, kind := range types.CompareReportKinds {
				if r, ok := reports[kind.Key]; ok {
					data.Reports = append(data.Reports, ReportView{ItemName: kind.ItemName, CompareReport: r})
				}
			}
		}
		if err != nil {
			return cs.fail(c, "package_compare", "Compare: "+name, err)
		}
		return cs.render(c, "package_compare", "Compare: "+name, data)
	}
}

type PackagePublish struct {
	Name     string
	CRNumber string

	// Check is the result of verification before release, or nil.
	Check any
}

// PackagePublishHandler verifies and releases the package under a change request.
func PackagePublishHandler(cs *Console, client rest.ReleaseClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		name := c.Param(param)
		title := "Release: " + name
		data := PackagePublish{Name: name, CRNumber: c.FormValue("crNumber")}

		if c.Request().Method != http.MethodPost {
			return cs.render(c, "package_publish", title, data)
		}

		switch c.FormValue(fieldOp) {
		case "check":
			check, err := client.CheckPackageSensitive(ctx, name)
			if err != nil {
				return cs.fail(c, "package_publish", title, err)
			}
			data.Check = check
			return cs.render(c, "package_publish", title, data)
		case "publish":
			if data.CRNumber == "" {
				return cs.notify(c, "package_publish", title, flash.Warning, "Please input a CR number.", data)
			}
			resp, err := client.ReleasePackage(ctx, name, data.CRNumber)
			if err == nil {
				err = publishError(name, recordOf(resp))
			}
			return cs.done(c, "release package", name, err, "Package released: "+name, link("releases", "packages", name))
		}
		return apierr.BadRequest("unknown operation", nil)
	}
}

func publishError(name string, resp types.Record) error {
	switch resp.String("status") {
	case types.StatusSuccess:
		return nil
	case "ERROR":
		if info := resp.Record("data").String("releaseInfo"); info != "" {
			return errors.New(info)
		}
	}
	return fmt.Errorf("Release package %s fail !", name)
}

type PackageRollback struct {
	Name string
	Logs []types.LogEntry
	Done bool
}

// PackageRollbackHandler reverts the release of the package, showing its logs.
func PackageRollbackHandler(cs *Console, client rest.ReleaseClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(param)
		title := "Rollback: " + name
		if c.Request().Method != http.MethodPost {
			return cs.render(c, "package_rollback", title, PackageRollback{Name: name})
		}

		logs, err := client.RollbackPackage(c.Request().Context(), name)
		cs.Audit.Record(c.RealIP(), "rollback package", name, err)
		data := PackageRollback{Name: name, Logs: logs, Done: true}
		if err != nil {
			if len(logs) == 0 {
				return cs.fail(c, "package_rollback", title, err)
			}
			return cs.notify(c, "package_rollback", title, flash.Error, err.Error(), data)
		}
		return cs.notify(c, "package_rollback", title, flash.Success, "Package rolled back: "+name, data)
	}
}

type NewPackage struct {
	JiraKey string
	Items   string
}

// NewPackageHandler creates a release package of items posted in JSON.
func NewPackageHandler(cs *Console, client rest.ReleaseClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := NewPackage{JiraKey: c.FormValue("jiraKey"), Items: c.FormValue("items")}
		if c.Request().Method != http.MethodPost {
			return cs.render(c, "package_new", "New Package", data)
		}

		input, err := decodeDraft(data.Items)
		if err != nil {
			return cs.notify(c, "package_new", "New Package", flash.Warning, "Items should be a JSON object.", data)
		}
		resp, err := client.CreateReleasePackage(c.Request().Context(), data.JiraKey, input)
		if err != nil {
			cs.Audit.Record(c.RealIP(), "create package", data.JiraKey, err)
			return cs.notify(c, "package_new", "New Package", flash.Error, err.Error(), data)
		}

		r := recordOf(resp)
		if r.String("status") != types.StatusSuccess {
			err := fmt.Errorf("Create package fail ! Result message is %s.", r.String("message"))
			cs.Audit.Record(c.RealIP(), "create package", data.JiraKey, err)
			return cs.notify(c, "package_new", "New Package", flash.Error, err.Error(), data)
		}
		result := r.Record("data").Record("result")
		message := fmt.Sprintf(
			"Create package successfully ! Package version is %s. Jira %s created/updated.",
			result.String("maven2.version"), result.String("jiraKey"),
		)
		next := "/releases/packages/"
		if v := result.String("version"); v != "" {
			next = link("releases", "packages", v)
		}
		return cs.done(c, "create package", data.JiraKey, nil, message, next)
	}
}

func BackupListHandler(cs *Console, client rest.ReleaseClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		backups, err := client.ListBackupPackages(c.Request().Context())
		if err != nil {
			return cs.fail(c, "backups", "Backup Packages", err)
		}
		return cs.render(c, "backups", "Backup Packages", backups)
	}
}

// BackupHandler adds, updates or deletes a backup package.
func BackupHandler(cs *Console, client rest.ReleaseClient, remove bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		backup := types.Record{
			"seq":            c.FormValue("seq"),
			"packageVersion": c.FormValue("packageVersion"),
			"description":    c.FormValue("description"),
		}
		target := backup.String("packageVersion")
		if target == "" {
			return apierr.BadRequest("packageVersion is required", nil)
		}

		var err error
		action, message := "backup package", "Backup saved: "+target
		if remove {
			action, message = "delete backup package", "Backup deleted: "+target
			_, err = client.DeleteBackupPackage(c.Request().Context(), backup)
		} else {
			_, err = client.BackupPackage(c.Request().Context(), backup)
		}
		return cs.done(c, action, target, err, message, "/releases/backups/")
	}
}
