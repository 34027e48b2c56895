// Package rest is a client of the Scorch REST API (/api/v2/...).
//
// Records exchanged with Scorch are opaque JSON objects (types.Record).
// The client passes them through as is, except for fields it has to edit.
package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/configs/profiles"
	"github.com/opst/scorch-console/pkg/utils"
	"github.com/sony/gobreaker"
)

type PipelineClient interface {
	// FindBatchList finds batches whose name contains keyword.
	FindBatchList(ctx context.Context, keyword string) ([]types.Record, error)

	// CreatePipeline registers a new pipeline and returns the created one.
	CreatePipeline(ctx context.Context, pipeline types.Record) (types.Record, error)

	// GetPipelineDetail returns the pipeline with its node summaries.
	GetPipelineDetail(ctx context.Context, pipelineId string) (types.Record, error)

	// GetPipelineList returns a page of pipelines.
	GetPipelineList(ctx context.Context, query Query) (types.Page[types.Record], error)

	UpdatePipeline(ctx context.Context, pipeline types.Record) (types.Record, error)

	DeletePipeline(ctx context.Context, pipelineId string) error

	// FindPipelineList finds pipelines whose name contains keyword.
	FindPipelineList(ctx context.Context, keyword string) ([]types.Record, error)

	// GetNoticeDetail returns the run notice bound to the pipeline.
	GetNoticeDetail(ctx context.Context, pipelineId string) (types.Record, error)

	EditNotice(ctx context.Context, notice types.Record) (types.Record, error)

	DeleteNotice(ctx context.Context, noticeId string) error

	// CheckPipelineDeadLoop asks Scorch whether adding the pipeline childId
	// as a node of the pipeline parentId makes a reference cycle.
	//
	// # Returns
	//
	// - bool: true if it makes a cycle.
	//
	// - error
	CheckPipelineDeadLoop(ctx context.Context, parentId string, childId string) (bool, error)

	// SubmitPipeline runs the pipeline.
	//
	// customized maps group names to parameters overriding those of the pipeline for this run.
	// It can be nil.
	SubmitPipeline(ctx context.Context, pipelineId string, customized map[string]types.Parameters) (types.Record, error)
}

type BatchClient interface {
	CreateBatch(ctx context.Context, batch types.Record) (types.Record, error)

	// FindJobGroupList finds job groups of the type whose name contains keyword.
	FindJobGroupList(ctx context.Context, groupType string, keyword string) ([]types.Record, error)

	// FindBatchesByKeywords returns a page of batches.
	FindBatchesByKeywords(ctx context.Context, query Query) (types.Page[types.Record], error)

	GetBatchDetail(ctx context.Context, batchId string) (types.Record, error)

	UpdateBatch(ctx context.Context, batch types.Record) (types.Record, error)

	DeleteBatch(ctx context.Context, batchId string) error

	// SubmitBatch runs the batch.
	//
	// customized overrides parameters of the batch for this run. It can be nil.
	SubmitBatch(ctx context.Context, batchId string, customized *types.Parameters) (types.Record, error)

	// FindJobsByScope returns a page of jobs in the scope.
	FindJobsByScope(ctx context.Context, query Query) (types.Page[types.Record], error)
}

type ScheduleClient interface {
	GetScheduleList(ctx context.Context, query Query) (types.Page[types.Record], error)

	GetScheduleDetail(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error)

	// GetSchedule returns all triggers of the job.
	GetSchedule(ctx context.Context, jobName string) (types.Record, error)

	UpdateSchedule(ctx context.Context, schedule types.Record) (types.Record, error)

	DeleteSchedule(ctx context.Context, jobName string, triggerKeyName string) error

	CreateSchedule(ctx context.Context, schedule types.Record) (types.Record, error)

	// GetNextFireTime evaluates the cron expression in the time zone.
	//
	// Scorch answers an invalid expression with a status other than SUCCESS,
	// and describes the reason in Message. Otherwise Message is the next fire time.
	GetNextFireTime(ctx context.Context, cron string, timeZone string) (types.Envelope[any], error)

	// GetTimezoneList returns time zone ids mapped to their labels.
	GetTimezoneList(ctx context.Context) (map[string]string, error)

	PauseJobTrigger(ctx context.Context, jobName string, triggerKeyName string) (any, error)

	ResumeJobTrigger(ctx context.Context, jobName string, triggerKeyName string) (any, error)

	// SubmitJob runs the scheduled job once, now.
	SubmitJob(ctx context.Context, jobName string, triggerKeyName string) (any, error)

	GetScheduleHistories(ctx context.Context, query Query) (types.Page[types.Record], error)

	CompareSchedule(ctx context.Context, details []types.Record) (types.Record, error)

	CreateScheduleReleasePackage(ctx context.Context, details []types.Record) (any, error)

	GetScheduleReleasePackage(ctx context.Context, packageVersion string) (any, error)
}

type ReleaseClient interface {
	GetReleaseList(ctx context.Context, query Query) (types.Page[types.Record], error)

	GetRelease(ctx context.Context, releaseId string) (types.Record, error)

	// ExportJobGroupBundle downloads the bundle of the job group.
	//
	// handler is called with the response body and its size (-1 when unknown).
	ExportJobGroupBundle(ctx context.Context, jobGroupId string, handler func(body io.Reader, size int64) error) error

	VerifyJobGroupBundle(ctx context.Context, releaseName string, bundle any) (any, error)

	ReleaseJobGroupBundle(ctx context.Context, releaseName string, bundle any) (any, error)

	AddTagToConfigGroups(ctx context.Context, jobGroupId string) (any, error)

	CreateReleasePackage(ctx context.Context, jiraKey string, input types.Record) (any, error)

	// ReleasePackage publishes the package under the change request.
	ReleasePackage(ctx context.Context, packageName string, crNumber string) (any, error)

	// CheckPackageSensitive verifies items of the package before release.
	CheckPackageSensitive(ctx context.Context, packageName string) (any, error)

	// CheckPackageDetailSensitive verifies items of the package input before creation.
	CheckPackageDetailSensitive(ctx context.Context, env string, input types.Record) (any, error)

	// AnalyzePackage verifies items to be released in the environment.
	//
	// packageName is empty when the package is not created yet.
	AnalyzePackage(ctx context.Context, env string, input types.Record, packageName string) (any, error)

	// ListPackage lists packages created on the date.
	//
	// A response with a status other than SUCCESS is an error.
	ListPackage(ctx context.Context, createDate time.Time) ([]types.Package, error)

	PackageDetail(ctx context.Context, packageName string) (types.Record, error)

	// CompareVersions compares items of the package input with the environment.
	//
	// packageName is empty when the package is not created yet.
	CompareVersions(ctx context.Context, env string, input types.Record, packageName string) (types.CompareReports, error)

	// RollbackPackage reverts the release of the package.
	RollbackPackage(ctx context.Context, packageName string) ([]types.LogEntry, error)

	BackupPackage(ctx context.Context, backup types.Record) (any, error)

	DeleteBackupPackage(ctx context.Context, backup types.Record) (any, error)

	ListBackupPackages(ctx context.Context) ([]types.Record, error)
}

type MetricsClient interface {
	GetMetricBySearchID(ctx context.Context, id string) (any, error)

	GetMetricByJobRef(ctx context.Context, jobRef string) (any, error)

	GetMetricByPandoraBuildKeyRef(ctx context.Context, buildKey string, testType string) (any, error)

	GetTradeErrorMetrics(ctx context.Context, query string, testType string) (any, error)

	GetMetricQtfPipelinesList(ctx context.Context, query Query) (any, error)

	GetMetricBubblePipelinesList(ctx context.Context, query Query) (any, error)

	GetMetricPipelineNotes(ctx context.Context, query Query) (any, error)

	GetMetricRerunListJobs(ctx context.Context, query Query) (any, error)

	GetMetricRerun(ctx context.Context, query Query) (any, error)

	GetQtfHandoverResult(ctx context.Context, query Query) (any, error)

	HandoverNotify(ctx context.Context, request types.Record) (any, error)
}

// ScorchClient is a client for all of Scorch REST API.
type ScorchClient interface {
	PipelineClient
	BatchClient
	ScheduleClient
	ReleaseClient
	MetricsClient
}

// Observer is notified of each request to Scorch.
//
// status is 0 when no response is received.
type Observer func(op string, status int, err error, elapsed time.Duration)

type client struct {
	httpclient *http.Client
	api        string
	breaker    *gobreaker.CircuitBreaker
	cobDate    func() string
	observe    Observer
}

type Option func(*client) *client

// WithHTTPClient makes the client send requests with hc.
//
// CA certificates in the profile are added to a clone of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) *client {
		c.httpclient = hc
		return c
	}
}

// WithBreaker makes requests pass through the circuit breaker.
func WithBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *client) *client {
		c.breaker = cb
		return c
	}
}

// WithCobDate sets the provider of the close-of-business date
// sent with job submissions as "scorch.ui.cobdate".
func WithCobDate(cobDate func() string) Option {
	return func(c *client) *client {
		c.cobDate = cobDate
		return c
	}
}

func WithObserver(o Observer) Option {
	return func(c *client) *client {
		c.observe = o
		return c
	}
}

// create new Scorch client for Profile
//
// # Args
//
// - *profiles.Profile
//
// - ...Option
//
// # Return
//
// - ScorchClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *profiles.Profile, options ...Option) (ScorchClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	c := &client{
		httpclient: new(http.Client),
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
		cobDate:    func() string { return "" },
		observe:    func(string, int, error, time.Duration) {},
	}
	for _, opt := range options {
		c = opt(c)
	}

	if prof.Cert.CA != "" {
		hc, err := trustCa(c.httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		c.httpclient = hc
	}

	return c, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api, "api", "v2"}, path...), "/")
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	tran := http.DefaultTransport
	if hc.Transport != nil {
		tran = hc.Transport
	}

	t, ok := tran.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	t = t.Clone()

	tcc := t.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	t.TLSClientConfig = tcc
	ret := *hc
	ret.Transport = t
	return &ret, nil
}
