package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/opst/scorch-console/pkg/api/types"
	cerr "github.com/opst/scorch-console/pkg/errors"
)

// ErrNotSucceeded is the cause of errors for enveloped responses
// whose status is not SUCCESS.
var ErrNotSucceeded = errors.New("scorch reported failure")

// notSucceeded builds an error for a enveloped response which is not SUCCESS.
func notSucceeded[T any](summary string, env *types.Envelope[T]) error {
	verbose := "(no envelope)"
	if env != nil {
		verbose = fmt.Sprintf("status = %s, message = %s", env.Status, env.Message)
	}
	return cerr.NewCuiError(
		summary,
		cerr.WithVerbose(verbose),
		cerr.WithCause(ErrNotSucceeded),
	)
}

func (c *client) GetReleaseList(ctx context.Context, query Query) (types.Page[types.Record], error) {
	return get[types.Page[types.Record]](
		ctx, c, "GetReleaseList",
		withQuery(c.apipath("releases", "list"), query),
	)
}

func (c *client) GetRelease(ctx context.Context, releaseId string) (types.Record, error) {
	return get[types.Record](
		ctx, c, "GetRelease",
		c.apipath("releases", "detail", url.PathEscape(releaseId)),
	)
}

func (c *client) ExportJobGroupBundle(
	ctx context.Context, jobGroupId string, handler func(body io.Reader, size int64) error,
) error {
	start := time.Now()
	resp, err := c.send(
		ctx, http.MethodGet,
		c.apipath("releases", "export-job-group-bundle", url.PathEscape(jobGroupId)),
		nil,
	)
	if err != nil {
		c.observe("ExportJobGroupBundle", 0, err, time.Since(start))
		return err
	}
	defer resp.Body.Close()

	body, err := unmarshalStreamResponse(resp)
	if err != nil {
		c.observe("ExportJobGroupBundle", resp.StatusCode, err, time.Since(start))
		return err
	}

	err = handler(body, resp.ContentLength)
	c.observe("ExportJobGroupBundle", resp.StatusCode, err, time.Since(start))
	return err
}

func (c *client) VerifyJobGroupBundle(ctx context.Context, releaseName string, bundle any) (any, error) {
	return call[any](
		ctx, c, "VerifyJobGroupBundle",
		http.MethodPost, c.apipath("releases", "verify-job-group-bundle", url.PathEscape(releaseName)), bundle,
	)
}

func (c *client) ReleaseJobGroupBundle(ctx context.Context, releaseName string, bundle any) (any, error) {
	return call[any](
		ctx, c, "ReleaseJobGroupBundle",
		http.MethodPost, c.apipath("releases", "release-job-group-bundle", url.PathEscape(releaseName)), bundle,
	)
}

func (c *client) AddTagToConfigGroups(ctx context.Context, jobGroupId string) (any, error) {
	return get[any](
		ctx, c, "AddTagToConfigGroups",
		c.apipath("releases", "add-prod-tag-to-config-groups", url.PathEscape(jobGroupId)),
	)
}

func (c *client) CreateReleasePackage(ctx context.Context, jiraKey string, input types.Record) (any, error) {
	return call[any](
		ctx, c, "CreateReleasePackage",
		http.MethodPost, c.apipath("releases", "create-package", url.PathEscape(jiraKey)), input,
	)
}

func (c *client) ReleasePackage(ctx context.Context, packageName string, crNumber string) (any, error) {
	return call[any](
		ctx, c, "ReleasePackage",
		http.MethodPost,
		c.apipath("releases", "publish-package", url.PathEscape(packageName), url.PathEscape(crNumber)),
		nil,
	)
}

func (c *client) CheckPackageSensitive(ctx context.Context, packageName string) (any, error) {
	return call[any](
		ctx, c, "CheckPackageSensitive",
		http.MethodPost,
		c.apipath("releases", "verify-release-items-before-release", url.PathEscape(packageName)),
		nil,
	)
}

func (c *client) CheckPackageDetailSensitive(ctx context.Context, env string, input types.Record) (any, error) {
	return call[any](
		ctx, c, "CheckPackageDetailSensitive",
		http.MethodPost,
		c.apipath("releases", "verify-release-items-before-create", url.PathEscape(env)),
		input,
	)
}

func (c *client) AnalyzePackage(ctx context.Context, env string, input types.Record, packageName string) (any, error) {
	path := []string{"releases", "verify-release-items", url.PathEscape(env)}
	if packageName != "" {
		path = append(path, url.PathEscape(packageName))
	}
	return call[any](ctx, c, "AnalyzePackage", http.MethodPost, c.apipath(path...), input)
}

// PackageListDateFormat is the format of dates in package listing paths.
const PackageListDateFormat = "20060102"

func (c *client) ListPackage(ctx context.Context, createDate time.Time) ([]types.Package, error) {
	env, err := get[*types.Envelope[*types.PackageList]](
		ctx, c, "ListPackage",
		c.apipath("releases", "list-package", createDate.Format(PackageListDateFormat)),
	)
	if err != nil {
		return nil, err
	}
	if env == nil || !env.Succeeded() {
		return nil, notSucceeded("Fail to get package list !", env)
	}
	if env.Data == nil || env.Data.PackageList == nil {
		return []types.Package{}, nil
	}
	return env.Data.PackageList, nil
}

func (c *client) PackageDetail(ctx context.Context, packageName string) (types.Record, error) {
	env, err := get[*types.Envelope[types.Record]](
		ctx, c, "PackageDetail",
		c.apipath("releases", "package-detail", url.PathEscape(packageName)),
	)
	if err != nil {
		return nil, err
	}
	if env == nil || !env.Succeeded() {
		return nil, notSucceeded(fmt.Sprintf("Fail to get package %s !", packageName), env)
	}
	return env.Data.Record("packageDetail"), nil
}

func (c *client) CompareVersions(ctx context.Context, env string, input types.Record, packageName string) (types.CompareReports, error) {
	path := []string{"releases", "get-packages-for-comparison", url.PathEscape(env)}
	if packageName != "" {
		path = append(path, url.PathEscape(packageName))
	}
	ret, err := call[types.CompareReports](ctx, c, "CompareVersions", http.MethodPost, c.apipath(path...), input)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		ret = types.CompareReports{}
	}
	return ret, nil
}

// RollbackPackage reverts the release of the package.
//
// When Scorch reports failure, it returns logs of the rollback with an error.
func (c *client) RollbackPackage(ctx context.Context, packageName string) ([]types.LogEntry, error) {
	env, err := call[*types.Envelope[*types.ReleaseLog]](
		ctx, c, "RollbackPackage",
		http.MethodPost, c.apipath("releases", "rollback", url.PathEscape(packageName)), nil,
	)
	if err != nil {
		return nil, err
	}

	var logs []types.LogEntry
	if env != nil && env.Data != nil {
		logs = env.Data.LogEntryList
	}
	if env == nil || !env.Succeeded() {
		return logs, notSucceeded(fmt.Sprintf("Rollback package %s fail !", packageName), env)
	}
	return logs, nil
}

func (c *client) BackupPackage(ctx context.Context, backup types.Record) (any, error) {
	return call[any](
		ctx, c, "BackupPackage",
		http.MethodPost, c.apipath("releases", "backup-package"), backup,
	)
}

func (c *client) DeleteBackupPackage(ctx context.Context, backup types.Record) (any, error) {
	return call[any](
		ctx, c, "DeleteBackupPackage",
		http.MethodDelete, c.apipath("releases", "del-backup-package"), backup,
	)
}

func (c *client) ListBackupPackages(ctx context.Context) ([]types.Record, error) {
	return get[[]types.Record](ctx, c, "ListBackupPackages", c.apipath("releases", "list-backup-packages"))
}
