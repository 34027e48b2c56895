// Package mock provides a mock of rest.ScorchClient for tests.
package mock

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/rest"
)

// New creates a mock client.
//
// Calling a method without its Impl fails the test.
func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

type CheckPipelineDeadLoopArgs struct {
	ParentId string
	ChildId  string
}

type SubmitPipelineArgs struct {
	PipelineId string
	Customized map[string]types.Parameters
}

type FindJobGroupListArgs struct {
	GroupType string
	Keyword   string
}

type SubmitBatchArgs struct {
	BatchId    string
	Customized *types.Parameters
}

type GetScheduleDetailArgs struct {
	JobName        string
	TriggerKeyName string
}

type DeleteScheduleArgs struct {
	JobName        string
	TriggerKeyName string
}

type GetNextFireTimeArgs struct {
	Cron     string
	TimeZone string
}

type PauseJobTriggerArgs struct {
	JobName        string
	TriggerKeyName string
}

type ResumeJobTriggerArgs struct {
	JobName        string
	TriggerKeyName string
}

type SubmitJobArgs struct {
	JobName        string
	TriggerKeyName string
}

type VerifyJobGroupBundleArgs struct {
	ReleaseName string
	Bundle      any
}

type ReleaseJobGroupBundleArgs struct {
	ReleaseName string
	Bundle      any
}

type CreateReleasePackageArgs struct {
	JiraKey string
	Input   types.Record
}

type ReleasePackageArgs struct {
	PackageName string
	CrNumber    string
}

type CheckPackageDetailSensitiveArgs struct {
	Env   string
	Input types.Record
}

type AnalyzePackageArgs struct {
	Env         string
	Input       types.Record
	PackageName string
}

type CompareVersionsArgs struct {
	Env         string
	Input       types.Record
	PackageName string
}

type GetMetricByPandoraBuildKeyRefArgs struct {
	BuildKey string
	TestType string
}

type GetTradeErrorMetricsArgs struct {
	Query    string
	TestType string
}

type MockClient struct {
	t *testing.T

	Impl struct {
		FindBatchList                 func(ctx context.Context, keyword string) ([]types.Record, error)
		CreatePipeline                func(ctx context.Context, pipeline types.Record) (types.Record, error)
		GetPipelineDetail             func(ctx context.Context, pipelineId string) (types.Record, error)
		GetPipelineList               func(ctx context.Context, query rest.Query) (types.Page[types.Record], error)
		UpdatePipeline                func(ctx context.Context, pipeline types.Record) (types.Record, error)
		DeletePipeline                func(ctx context.Context, pipelineId string) error
		FindPipelineList              func(ctx context.Context, keyword string) ([]types.Record, error)
		GetNoticeDetail               func(ctx context.Context, pipelineId string) (types.Record, error)
		EditNotice                    func(ctx context.Context, notice types.Record) (types.Record, error)
		DeleteNotice                  func(ctx context.Context, noticeId string) error
		CheckPipelineDeadLoop         func(ctx context.Context, parentId string, childId string) (bool, error)
		SubmitPipeline                func(ctx context.Context, pipelineId string, customized map[string]types.Parameters) (types.Record, error)
		CreateBatch                   func(ctx context.Context, batch types.Record) (types.Record, error)
		FindJobGroupList              func(ctx context.Context, groupType string, keyword string) ([]types.Record, error)
		FindBatchesByKeywords         func(ctx context.Context, query rest.Query) (types.Page[types.Record], error)
		GetBatchDetail                func(ctx context.Context, batchId string) (types.Record, error)
		UpdateBatch                   func(ctx context.Context, batch types.Record) (types.Record, error)
		DeleteBatch                   func(ctx context.Context, batchId string) error
		SubmitBatch                   func(ctx context.Context, batchId string, customized *types.Parameters) (types.Record, error)
		FindJobsByScope               func(ctx context.Context, query rest.Query) (types.Page[types.Record], error)
		GetScheduleList               func(ctx context.Context, query rest.Query) (types.Page[types.Record], error)
		GetScheduleDetail             func(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error)
		GetSchedule                   func(ctx context.Context, jobName string) (types.Record, error)
		UpdateSchedule                func(ctx context.Context, schedule types.Record) (types.Record, error)
		DeleteSchedule                func(ctx context.Context, jobName string, triggerKeyName string) error
		CreateSchedule                func(ctx context.Context, schedule types.Record) (types.Record, error)
		GetNextFireTime               func(ctx context.Context, cron string, timeZone string) (types.Envelope[any], error)
		GetTimezoneList               func(ctx context.Context) (map[string]string, error)
		PauseJobTrigger               func(ctx context.Context, jobName string, triggerKeyName string) (any, error)
		ResumeJobTrigger              func(ctx context.Context, jobName string, triggerKeyName string) (any, error)
		SubmitJob                     func(ctx context.Context, jobName string, triggerKeyName string) (any, error)
		GetScheduleHistories          func(ctx context.Context, query rest.Query) (types.Page[types.Record], error)
		CompareSchedule               func(ctx context.Context, details []types.Record) (types.Record, error)
		CreateScheduleReleasePackage  func(ctx context.Context, details []types.Record) (any, error)
		GetScheduleReleasePackage     func(ctx context.Context, packageVersion string) (any, error)
		GetReleaseList                func(ctx context.Context, query rest.Query) (types.Page[types.Record], error)
		GetRelease                    func(ctx context.Context, releaseId string) (types.Record, error)
		ExportJobGroupBundle          func(ctx context.Context, jobGroupId string, handler func(body io.Reader, size int64) error) error
		VerifyJobGroupBundle          func(ctx context.Context, releaseName string, bundle any) (any, error)
		ReleaseJobGroupBundle         func(ctx context.Context, releaseName string, bundle any) (any, error)
		AddTagToConfigGroups          func(ctx context.Context, jobGroupId string) (any, error)
		CreateReleasePackage          func(ctx context.Context, jiraKey string, input types.Record) (any, error)
		ReleasePackage                func(ctx context.Context, packageName string, crNumber string) (any, error)
		CheckPackageSensitive         func(ctx context.Context, packageName string) (any, error)
		CheckPackageDetailSensitive   func(ctx context.Context, env string, input types.Record) (any, error)
		AnalyzePackage                func(ctx context.Context, env string, input types.Record, packageName string) (any, error)
		ListPackage                   func(ctx context.Context, createDate time.Time) ([]types.Package, error)
		PackageDetail                 func(ctx context.Context, packageName string) (types.Record, error)
		CompareVersions               func(ctx context.Context, env string, input types.Record, packageName string) (types.CompareReports, error)
		RollbackPackage               func(ctx context.Context, packageName string) ([]types.LogEntry, error)
		BackupPackage                 func(ctx context.Context, backup types.Record) (any, error)
		DeleteBackupPackage           func(ctx context.Context, backup types.Record) (any, error)
		ListBackupPackages            func(ctx context.Context) ([]types.Record, error)
		GetMetricBySearchID           func(ctx context.Context, id string) (any, error)
		GetMetricByJobRef             func(ctx context.Context, jobRef string) (any, error)
		GetMetricByPandoraBuildKeyRef func(ctx context.Context, buildKey string, testType string) (any, error)
		GetTradeErrorMetrics          func(ctx context.Context, query string, testType string) (any, error)
		GetMetricQtfPipelinesList     func(ctx context.Context, query rest.Query) (any, error)
		GetMetricBubblePipelinesList  func(ctx context.Context, query rest.Query) (any, error)
		GetMetricPipelineNotes        func(ctx context.Context, query rest.Query) (any, error)
		GetMetricRerunListJobs        func(ctx context.Context, query rest.Query) (any, error)
		GetMetricRerun                func(ctx context.Context, query rest.Query) (any, error)
		GetQtfHandoverResult          func(ctx context.Context, query rest.Query) (any, error)
		HandoverNotify                func(ctx context.Context, request types.Record) (any, error)
	}

	Calls struct {
		FindBatchList                 []string
		CreatePipeline                []types.Record
		GetPipelineDetail             []string
		GetPipelineList               []rest.Query
		UpdatePipeline                []types.Record
		DeletePipeline                []string
		FindPipelineList              []string
		GetNoticeDetail               []string
		EditNotice                    []types.Record
		DeleteNotice                  []string
		CheckPipelineDeadLoop         []CheckPipelineDeadLoopArgs
		SubmitPipeline                []SubmitPipelineArgs
		CreateBatch                   []types.Record
		FindJobGroupList              []FindJobGroupListArgs
		FindBatchesByKeywords         []rest.Query
		GetBatchDetail                []string
		UpdateBatch                   []types.Record
		DeleteBatch                   []string
		SubmitBatch                   []SubmitBatchArgs
		FindJobsByScope               []rest.Query
		GetScheduleList               []rest.Query
		GetScheduleDetail             []GetScheduleDetailArgs
		GetSchedule                   []string
		UpdateSchedule                []types.Record
		DeleteSchedule                []DeleteScheduleArgs
		CreateSchedule                []types.Record
		GetNextFireTime               []GetNextFireTimeArgs
		GetTimezoneList               int
		PauseJobTrigger               []PauseJobTriggerArgs
		ResumeJobTrigger              []ResumeJobTriggerArgs
		SubmitJob                     []SubmitJobArgs
		GetScheduleHistories          []rest.Query
		CompareSchedule               [][]types.Record
		CreateScheduleReleasePackage  [][]types.Record
		GetScheduleReleasePackage     []string
		GetReleaseList                []rest.Query
		GetRelease                    []string
		ExportJobGroupBundle          []string
		VerifyJobGroupBundle          []VerifyJobGroupBundleArgs
		ReleaseJobGroupBundle         []ReleaseJobGroupBundleArgs
		AddTagToConfigGroups          []string
		CreateReleasePackage          []CreateReleasePackageArgs
		ReleasePackage                []ReleasePackageArgs
		CheckPackageSensitive         []string
		CheckPackageDetailSensitive   []CheckPackageDetailSensitiveArgs
		AnalyzePackage                []AnalyzePackageArgs
		ListPackage                   []time.Time
		PackageDetail                 []string
		CompareVersions               []CompareVersionsArgs
		RollbackPackage               []string
		BackupPackage                 []types.Record
		DeleteBackupPackage           []types.Record
		ListBackupPackages            int
		GetMetricBySearchID           []string
		GetMetricByJobRef             []string
		GetMetricByPandoraBuildKeyRef []GetMetricByPandoraBuildKeyRefArgs
		GetTradeErrorMetrics          []GetTradeErrorMetricsArgs
		GetMetricQtfPipelinesList     []rest.Query
		GetMetricBubblePipelinesList  []rest.Query
		GetMetricPipelineNotes        []rest.Query
		GetMetricRerunListJobs        []rest.Query
		GetMetricRerun                []rest.Query
		GetQtfHandoverResult          []rest.Query
		HandoverNotify                []types.Record
	}
}

var _ rest.ScorchClient = &MockClient{}

func (m *MockClient) FindBatchList(ctx context.Context, keyword string) ([]types.Record, error) {
	m.t.Helper()

	m.Calls.FindBatchList = append(m.Calls.FindBatchList, keyword)
	if m.Impl.FindBatchList == nil {
		m.t.Fatal("FindBatchList is not ready to be called")
	}
	return m.Impl.FindBatchList(ctx, keyword)
}

func (m *MockClient) CreatePipeline(ctx context.Context, pipeline types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.CreatePipeline = append(m.Calls.CreatePipeline, pipeline)
	if m.Impl.CreatePipeline == nil {
		m.t.Fatal("CreatePipeline is not ready to be called")
	}
	return m.Impl.CreatePipeline(ctx, pipeline)
}

func (m *MockClient) GetPipelineDetail(ctx context.Context, pipelineId string) (types.Record, error) {
	m.t.Helper()

	m.Calls.GetPipelineDetail = append(m.Calls.GetPipelineDetail, pipelineId)
	if m.Impl.GetPipelineDetail == nil {
		m.t.Fatal("GetPipelineDetail is not ready to be called")
	}
	return m.Impl.GetPipelineDetail(ctx, pipelineId)
}

func (m *MockClient) GetPipelineList(ctx context.Context, query rest.Query) (types.Page[types.Record], error) {
	m.t.Helper()

	m.Calls.GetPipelineList = append(m.Calls.GetPipelineList, query)
	if m.Impl.GetPipelineList == nil {
		m.t.Fatal("GetPipelineList is not ready to be called")
	}
	return m.Impl.GetPipelineList(ctx, query)
}

func (m *MockClient) UpdatePipeline(ctx context.Context, pipeline types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.UpdatePipeline = append(m.Calls.UpdatePipeline, pipeline)
	if m.Impl.UpdatePipeline == nil {
		m.t.Fatal("UpdatePipeline is not ready to be called")
	}
	return m.Impl.UpdatePipeline(ctx, pipeline)
}

func (m *MockClient) DeletePipeline(ctx context.Context, pipelineId string) error {
	m.t.Helper()

	m.Calls.DeletePipeline = append(m.Calls.DeletePipeline, pipelineId)
	if m.Impl.DeletePipeline == nil {
		m.t.Fatal("DeletePipeline is not ready to be called")
	}
	return m.Impl.DeletePipeline(ctx, pipelineId)
}

func (m *MockClient) FindPipelineList(ctx context.Context, keyword string) ([]types.Record, error) {
	m.t.Helper()

	m.Calls.FindPipelineList = append(m.Calls.FindPipelineList, keyword)
	if m.Impl.FindPipelineList == nil {
		m.t.Fatal("FindPipelineList is not ready to be called")
	}
	return m.Impl.FindPipelineList(ctx, keyword)
}

func (m *MockClient) GetNoticeDetail(ctx context.Context, pipelineId string) (types.Record, error) {
	m.t.Helper()

	m.Calls.GetNoticeDetail = append(m.Calls.GetNoticeDetail, pipelineId)
	if m.Impl.GetNoticeDetail == nil {
		m.t.Fatal("GetNoticeDetail is not ready to be called")
	}
	return m.Impl.GetNoticeDetail(ctx, pipelineId)
}

func (m *MockClient) EditNotice(ctx context.Context, notice types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.EditNotice = append(m.Calls.EditNotice, notice)
	if m.Impl.EditNotice == nil {
		m.t.Fatal("EditNotice is not ready to be called")
	}
	return m.Impl.EditNotice(ctx, notice)
}

func (m *MockClient) DeleteNotice(ctx context.Context, noticeId string) error {
	m.t.Helper()

	m.Calls.DeleteNotice = append(m.Calls.DeleteNotice, noticeId)
	if m.Impl.DeleteNotice == nil {
		m.t.Fatal("DeleteNotice is not ready to be called")
	}
	return m.Impl.DeleteNotice(ctx, noticeId)
}

func (m *MockClient) CheckPipelineDeadLoop(ctx context.Context, parentId string, childId string) (bool, error) {
	m.t.Helper()

	m.Calls.CheckPipelineDeadLoop = append(m.Calls.CheckPipelineDeadLoop, CheckPipelineDeadLoopArgs{ParentId: parentId, ChildId: childId})
	if m.Impl.CheckPipelineDeadLoop == nil {
		m.t.Fatal("CheckPipelineDeadLoop is not ready to be called")
	}
	return m.Impl.CheckPipelineDeadLoop(ctx, parentId, childId)
}

func (m *MockClient) SubmitPipeline(ctx context.Context, pipelineId string, customized map[string]types.Parameters) (types.Record, error) {
	m.t.Helper()

	m.Calls.SubmitPipeline = append(m.Calls.SubmitPipeline, SubmitPipelineArgs{PipelineId: pipelineId, Customized: customized})
	if m.Impl.SubmitPipeline == nil {
		m.t.Fatal("SubmitPipeline is not ready to be called")
	}
	return m.Impl.SubmitPipeline(ctx, pipelineId, customized)
}

func (m *MockClient) CreateBatch(ctx context.Context, batch types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.CreateBatch = append(m.Calls.CreateBatch, batch)
	if m.Impl.CreateBatch == nil {
		m.t.Fatal("CreateBatch is not ready to be called")
	}
	return m.Impl.CreateBatch(ctx, batch)
}

func (m *MockClient) FindJobGroupList(ctx context.Context, groupType string, keyword string) ([]types.Record, error) {
	m.t.Helper()

	m.Calls.FindJobGroupList = append(m.Calls.FindJobGroupList, FindJobGroupListArgs{GroupType: groupType, Keyword: keyword})
	if m.Impl.FindJobGroupList == nil {
		m.t.Fatal("FindJobGroupList is not ready to be called")
	}
	return m.Impl.FindJobGroupList(ctx, groupType, keyword)
}

func (m *MockClient) FindBatchesByKeywords(ctx context.Context, query rest.Query) (types.Page[types.Record], error) {
	m.t.Helper()

	m.Calls.FindBatchesByKeywords = append(m.Calls.FindBatchesByKeywords, query)
	if m.Impl.FindBatchesByKeywords == nil {
		m.t.Fatal("FindBatchesByKeywords is not ready to be called")
	}
	return m.Impl.FindBatchesByKeywords(ctx, query)
}

func (m *MockClient) GetBatchDetail(ctx context.Context, batchId string) (types.Record, error) {
	m.t.Helper()

	m.Calls.GetBatchDetail = append(m.Calls.GetBatchDetail, batchId)
	if m.Impl.GetBatchDetail == nil {
		m.t.Fatal("GetBatchDetail is not ready to be called")
	}
	return m.Impl.GetBatchDetail(ctx, batchId)
}

func (m *MockClient) UpdateBatch(ctx context.Context, batch types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.UpdateBatch = append(m.Calls.UpdateBatch, batch)
	if m.Impl.UpdateBatch == nil {
		m.t.Fatal("UpdateBatch is not ready to be called")
	}
	return m.Impl.UpdateBatch(ctx, batch)
}

func (m *MockClient) DeleteBatch(ctx context.Context, batchId string) error {
	m.t.Helper()

	m.Calls.DeleteBatch = append(m.Calls.DeleteBatch, batchId)
	if m.Impl.DeleteBatch == nil {
		m.t.Fatal("DeleteBatch is not ready to be called")
	}
	return m.Impl.DeleteBatch(ctx, batchId)
}

func (m *MockClient) SubmitBatch(ctx context.Context, batchId string, customized *types.Parameters) (types.Record, error) {
	m.t.Helper()

	m.Calls.SubmitBatch = append(m.Calls.SubmitBatch, SubmitBatchArgs{BatchId: batchId, Customized: customized})
	if m.Impl.SubmitBatch == nil {
		m.t.Fatal("SubmitBatch is not ready to be called")
	}
	return m.Impl.SubmitBatch(ctx, batchId, customized)
}

func (m *MockClient) FindJobsByScope(ctx context.Context, query rest.Query) (types.Page[types.Record], error) {
	m.t.Helper()

	m.Calls.FindJobsByScope = append(m.Calls.FindJobsByScope, query)
	if m.Impl.FindJobsByScope == nil {
		m.t.Fatal("FindJobsByScope is not ready to be called")
	}
	return m.Impl.FindJobsByScope(ctx, query)
}

func (m *MockClient) GetScheduleList(ctx context.Context, query rest.Query) (types.Page[types.Record], error) {
	m.t.Helper()

	m.Calls.GetScheduleList = append(m.Calls.GetScheduleList, query)
	if m.Impl.GetScheduleList == nil {
		m.t.Fatal("GetScheduleList is not ready to be called")
	}
	return m.Impl.GetScheduleList(ctx, query)
}

func (m *MockClient) GetScheduleDetail(ctx context.Context, jobName string, triggerKeyName string) (types.Record, error) {
	m.t.Helper()

	m.Calls.GetScheduleDetail = append(m.Calls.GetScheduleDetail, GetScheduleDetailArgs{JobName: jobName, TriggerKeyName: triggerKeyName})
	if m.Impl.GetScheduleDetail == nil {
		m.t.Fatal("GetScheduleDetail is not ready to be called")
	}
	return m.Impl.GetScheduleDetail(ctx, jobName, triggerKeyName)
}

func (m *MockClient) GetSchedule(ctx context.Context, jobName string) (types.Record, error) {
	m.t.Helper()

	m.Calls.GetSchedule = append(m.Calls.GetSchedule, jobName)
	if m.Impl.GetSchedule == nil {
		m.t.Fatal("GetSchedule is not ready to be called")
	}
	return m.Impl.GetSchedule(ctx, jobName)
}

func (m *MockClient) UpdateSchedule(ctx context.Context, schedule types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.UpdateSchedule = append(m.Calls.UpdateSchedule, schedule)
	if m.Impl.UpdateSchedule == nil {
		m.t.Fatal("UpdateSchedule is not ready to be called")
	}
	return m.Impl.UpdateSchedule(ctx, schedule)
}

func (m *MockClient) DeleteSchedule(ctx context.Context, jobName string, triggerKeyName string) error {
	m.t.Helper()

	m.Calls.DeleteSchedule = append(m.Calls.DeleteSchedule, DeleteScheduleArgs{JobName: jobName, TriggerKeyName: triggerKeyName})
	if m.Impl.DeleteSchedule == nil {
		m.t.Fatal("DeleteSchedule is not ready to be called")
	}
	return m.Impl.DeleteSchedule(ctx, jobName, triggerKeyName)
}

func (m *MockClient) CreateSchedule(ctx context.Context, schedule types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.CreateSchedule = append(m.Calls.CreateSchedule, schedule)
	if m.Impl.CreateSchedule == nil {
		m.t.Fatal("CreateSchedule is not ready to be called")
	}
	return m.Impl.CreateSchedule(ctx, schedule)
}

func (m *MockClient) GetNextFireTime(ctx context.Context, cron string, timeZone string) (types.Envelope[any], error) {
	m.t.Helper()

	m.Calls.GetNextFireTime = append(m.Calls.GetNextFireTime, GetNextFireTimeArgs{Cron: cron, TimeZone: timeZone})
	if m.Impl.GetNextFireTime == nil {
		m.t.Fatal("GetNextFireTime is not ready to be called")
	}
	return m.Impl.GetNextFireTime(ctx, cron, timeZone)
}

func (m *MockClient) GetTimezoneList(ctx context.Context) (map[string]string, error) {
	m.t.Helper()

	m.Calls.GetTimezoneList += 1
	if m.Impl.GetTimezoneList == nil {
		m.t.Fatal("GetTimezoneList is not ready to be called")
	}
	return m.Impl.GetTimezoneList(ctx)
}

func (m *MockClient) PauseJobTrigger(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
	m.t.Helper()

	m.Calls.PauseJobTrigger = append(m.Calls.PauseJobTrigger, PauseJobTriggerArgs{JobName: jobName, TriggerKeyName: triggerKeyName})
	if m.Impl.PauseJobTrigger == nil {
		m.t.Fatal("PauseJobTrigger is not ready to be called")
	}
	return m.Impl.PauseJobTrigger(ctx, jobName, triggerKeyName)
}

func (m *MockClient) ResumeJobTrigger(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
	m.t.Helper()

	m.Calls.ResumeJobTrigger = append(m.Calls.ResumeJobTrigger, ResumeJobTriggerArgs{JobName: jobName, TriggerKeyName: triggerKeyName})
	if m.Impl.ResumeJobTrigger == nil {
		m.t.Fatal("ResumeJobTrigger is not ready to be called")
	}
	return m.Impl.ResumeJobTrigger(ctx, jobName, triggerKeyName)
}

func (m *MockClient) SubmitJob(ctx context.Context, jobName string, triggerKeyName string) (any, error) {
	m.t.Helper()

	m.Calls.SubmitJob = append(m.Calls.SubmitJob, SubmitJobArgs{JobName: jobName, TriggerKeyName: triggerKeyName})
	if m.Impl.SubmitJob == nil {
		m.t.Fatal("SubmitJob is not ready to be called")
	}
	return m.Impl.SubmitJob(ctx, jobName, triggerKeyName)
}

func (m *MockClient) GetScheduleHistories(ctx context.Context, query rest.Query) (types.Page[types.Record], error) {
	m.t.Helper()

	m.Calls.GetScheduleHistories = append(m.Calls.GetScheduleHistories, query)
	if m.Impl.GetScheduleHistories == nil {
		m.t.Fatal("GetScheduleHistories is not ready to be called")
	}
	return m.Impl.GetScheduleHistories(ctx, query)
}

func (m *MockClient) CompareSchedule(ctx context.Context, details []types.Record) (types.Record, error) {
	m.t.Helper()

	m.Calls.CompareSchedule = append(m.Calls.CompareSchedule, details)
	if m.Impl.CompareSchedule == nil {
		m.t.Fatal("CompareSchedule is not ready to be called")
	}
	return m.Impl.CompareSchedule(ctx, details)
}

func (m *MockClient) CreateScheduleReleasePackage(ctx context.Context, details []types.Record) (any, error) {
	m.t.Helper()

	m.Calls.CreateScheduleReleasePackage = append(m.Calls.CreateScheduleReleasePackage, details)
	if m.Impl.CreateScheduleReleasePackage == nil {
		m.t.Fatal("CreateScheduleReleasePackage is not ready to be called")
	}
	return m.Impl.CreateScheduleReleasePackage(ctx, details)
}

func (m *MockClient) GetScheduleReleasePackage(ctx context.Context, packageVersion string) (any, error) {
	m.t.Helper()

	m.Calls.GetScheduleReleasePackage = append(m.Calls.GetScheduleReleasePackage, packageVersion)
	if m.Impl.GetScheduleReleasePackage == nil {
		m.t.Fatal("GetScheduleReleasePackage is not ready to be called")
	}
	return m.Impl.GetScheduleReleasePackage(ctx, packageVersion)
}

func (m *MockClient) GetReleaseList(ctx context.Context, query rest.Query) (types.Page[types.Record], error) {
	m.t.Helper()

	m.Calls.GetReleaseList = append(m.Calls.GetReleaseList, query)
	if m.Impl.GetReleaseList == nil {
		m.t.Fatal("GetReleaseList is not ready to be called")
	}
	return m.Impl.GetReleaseList(ctx, query)
}

func (m *MockClient) GetRelease(ctx context.Context, releaseId string) (types.Record, error) {
	m.t.Helper()

	m.Calls.GetRelease = append(m.Calls.GetRelease, releaseId)
	if m.Impl.GetRelease == nil {
		m.t.Fatal("GetRelease is not ready to be called")
	}
	return m.Impl.GetRelease(ctx, releaseId)
}

func (m *MockClient) ExportJobGroupBundle(ctx context.Context, jobGroupId string, handler func(body io.Reader, size int64) error) error {
	m.t.Helper()

	m.Calls.ExportJobGroupBundle = append(m.Calls.ExportJobGroupBundle, jobGroupId)
	if m.Impl.ExportJobGroupBundle == nil {
		m.t.Fatal("ExportJobGroupBundle is not ready to be called")
	}
	return m.Impl.ExportJobGroupBundle(ctx, jobGroupId, handler)
}

func (m *MockClient) VerifyJobGroupBundle(ctx context.Context, releaseName string, bundle any) (any, error) {
	m.t.Helper()

	m.Calls.VerifyJobGroupBundle = append(m.Calls.VerifyJobGroupBundle, VerifyJobGroupBundleArgs{ReleaseName: releaseName, Bundle: bundle})
	if m.Impl.VerifyJobGroupBundle == nil {
		m.t.Fatal("VerifyJobGroupBundle is not ready to be called")
	}
	return m.Impl.VerifyJobGroupBundle(ctx, releaseName, bundle)
}

func (m *MockClient) ReleaseJobGroupBundle(ctx context.Context, releaseName string, bundle any) (any, error) {
	m.t.Helper()

	m.Calls.ReleaseJobGroupBundle = append(m.Calls.ReleaseJobGroupBundle, ReleaseJobGroupBundleArgs{ReleaseName: releaseName, Bundle: bundle})
	if m.Impl.ReleaseJobGroupBundle == nil {
		m.t.Fatal("ReleaseJobGroupBundle is not ready to be called")
	}
	return m.Impl.ReleaseJobGroupBundle(ctx, releaseName, bundle)
}

func (m *MockClient) AddTagToConfigGroups(ctx context.Context, jobGroupId string) (any, error) {
	m.t.Helper()

	m.Calls.AddTagToConfigGroups = append(m.Calls.AddTagToConfigGroups, jobGroupId)
	if m.Impl.AddTagToConfigGroups == nil {
		m.t.Fatal("AddTagToConfigGroups is not ready to be called")
	}
	return m.Impl.AddTagToConfigGroups(ctx, jobGroupId)
}

func (m *MockClient) CreateReleasePackage(ctx context.Context, jiraKey string, input types.Record) (any, error) {
	m.t.Helper()

	m.Calls.CreateReleasePackage = append(m.Calls.CreateReleasePackage, CreateReleasePackageArgs{JiraKey: jiraKey, Input: input})
	if m.Impl.CreateReleasePackage == nil {
		m.t.Fatal("CreateReleasePackage is not ready to be called")
	}
	return m.Impl.CreateReleasePackage(ctx, jiraKey, input)
}

func (m *MockClient) ReleasePackage(ctx context.Context, packageName string, crNumber string) (any, error) {
	m.t.Helper()

	m.Calls.ReleasePackage = append(m.Calls.ReleasePackage, ReleasePackageArgs{PackageName: packageName, CrNumber: crNumber})
	if m.Impl.ReleasePackage == nil {
		m.t.Fatal("ReleasePackage is not ready to be called")
	}
	return m.Impl.ReleasePackage(ctx, packageName, crNumber)
}

func (m *MockClient) CheckPackageSensitive(ctx context.Context, packageName string) (any, error) {
	m.t.Helper()

	m.Calls.CheckPackageSensitive = append(m.Calls.CheckPackageSensitive, packageName)
	if m.Impl.CheckPackageSensitive == nil {
		m.t.Fatal("CheckPackageSensitive is not ready to be called")
	}
	return m.Impl.CheckPackageSensitive(ctx, packageName)
}

func (m *MockClient) CheckPackageDetailSensitive(ctx context.Context, env string, input types.Record) (any, error) {
	m.t.Helper()

	m.Calls.CheckPackageDetailSensitive = append(m.Calls.CheckPackageDetailSensitive, CheckPackageDetailSensitiveArgs{Env: env, Input: input})
	if m.Impl.CheckPackageDetailSensitive == nil {
		m.t.Fatal("CheckPackageDetailSensitive is not ready to be called")
	}
	return m.Impl.CheckPackageDetailSensitive(ctx, env, input)
}

func (m *MockClient) AnalyzePackage(ctx context.Context, env string, input types.Record, packageName string) (any, error) {
	m.t.Helper()

	m.Calls.AnalyzePackage = append(m.Calls.AnalyzePackage, AnalyzePackageArgs{Env: env, Input: input, PackageName: packageName})
	if m.Impl.AnalyzePackage == nil {
		m.t.Fatal("AnalyzePackage is not ready to be called")
	}
	return m.Impl.AnalyzePackage(ctx, env, input, packageName)
}

func (m *MockClient) ListPackage(ctx context.Context, createDate time.Time) ([]types.Package, error) {
	m.t.Helper()

	m.Calls.ListPackage = append(m.Calls.ListPackage, createDate)
	if m.Impl.ListPackage == nil {
		m.t.Fatal("ListPackage is not ready to be called")
	}
	return m.Impl.ListPackage(ctx, createDate)
}

func (m *MockClient) PackageDetail(ctx context.Context, packageName string) (types.Record, error) {
	m.t.Helper()

	m.Calls.PackageDetail = append(m.Calls.PackageDetail, packageName)
	if m.Impl.PackageDetail == nil {
		m.t.Fatal("PackageDetail is not ready to be called")
	}
	return m.Impl.PackageDetail(ctx, packageName)
}

func (m *MockClient) CompareVersions(ctx context.Context, env string, input types.Record, packageName string) (types.CompareReports, error) {
	m.t.Helper()

	m.Calls.CompareVersions = append(m.Calls.CompareVersions, CompareVersionsArgs{Env: env, Input: input, PackageName: packageName})
	if m.Impl.CompareVersions == nil {
		m.t.Fatal("CompareVersions is not ready to be called")
	}
	return m.Impl.CompareVersions(ctx, env, input, packageName)
}

func (m *MockClient) RollbackPackage(ctx context.Context, packageName string) ([]types.LogEntry, error) {
	m.t.Helper()

	m.Calls.RollbackPackage = append(m.Calls.RollbackPackage, packageName)
	if m.Impl.RollbackPackage == nil {
		m.t.Fatal("RollbackPackage is not ready to be called")
	}
	return m.Impl.RollbackPackage(ctx, packageName)
}

func (m *MockClient) BackupPackage(ctx context.Context, backup types.Record) (any, error) {
	m.t.Helper()

	m.Calls.BackupPackage = append(m.Calls.BackupPackage, backup)
	if m.Impl.BackupPackage == nil {
		m.t.Fatal("BackupPackage is not ready to be called")
	}
	return m.Impl.BackupPackage(ctx, backup)
}

func (m *MockClient) DeleteBackupPackage(ctx context.Context, backup types.Record) (any, error) {
	m.t.Helper()

	m.Calls.DeleteBackupPackage = append(m.Calls.DeleteBackupPackage, backup)
	if m.Impl.DeleteBackupPackage == nil {
		m.t.Fatal("DeleteBackupPackage is not ready to be called")
	}
	return m.Impl.DeleteBackupPackage(ctx, backup)
}

func (m *MockClient) ListBackupPackages(ctx context.Context) ([]types.Record, error) {
	m.t.Helper()

	m.Calls.ListBackupPackages += 1
	if m.Impl.ListBackupPackages == nil {
		m.t.Fatal("ListBackupPackages is not ready to be called")
	}
	return m.Impl.ListBackupPackages(ctx)
}

func (m *MockClient) GetMetricBySearchID(ctx context.Context, id string) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricBySearchID = append(m.Calls.GetMetricBySearchID, id)
	if m.Impl.GetMetricBySearchID == nil {
		m.t.Fatal("GetMetricBySearchID is not ready to be called")
	}
	return m.Impl.GetMetricBySearchID(ctx, id)
}

func (m *MockClient) GetMetricByJobRef(ctx context.Context, jobRef string) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricByJobRef = append(m.Calls.GetMetricByJobRef, jobRef)
	if m.Impl.GetMetricByJobRef == nil {
		m.t.Fatal("GetMetricByJobRef is not ready to be called")
	}
	return m.Impl.GetMetricByJobRef(ctx, jobRef)
}

func (m *MockClient) GetMetricByPandoraBuildKeyRef(ctx context.Context, buildKey string, testType string) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricByPandoraBuildKeyRef = append(m.Calls.GetMetricByPandoraBuildKeyRef, GetMetricByPandoraBuildKeyRefArgs{BuildKey: buildKey, TestType: testType})
	if m.Impl.GetMetricByPandoraBuildKeyRef == nil {
		m.t.Fatal("GetMetricByPandoraBuildKeyRef is not ready to be called")
	}
	return m.Impl.GetMetricByPandoraBuildKeyRef(ctx, buildKey, testType)
}

func (m *MockClient) GetTradeErrorMetrics(ctx context.Context, query string, testType string) (any, error) {
	m.t.Helper()

	m.Calls.GetTradeErrorMetrics = append(m.Calls.GetTradeErrorMetrics, GetTradeErrorMetricsArgs{Query: query, TestType: testType})
	if m.Impl.GetTradeErrorMetrics == nil {
		m.t.Fatal("GetTradeErrorMetrics is not ready to be called")
	}
	return m.Impl.GetTradeErrorMetrics(ctx, query, testType)
}

func (m *MockClient) GetMetricQtfPipelinesList(ctx context.Context, query rest.Query) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricQtfPipelinesList = append(m.Calls.GetMetricQtfPipelinesList, query)
	if m.Impl.GetMetricQtfPipelinesList == nil {
		m.t.Fatal("GetMetricQtfPipelinesList is not ready to be called")
	}
	return m.Impl.GetMetricQtfPipelinesList(ctx, query)
}

func (m *MockClient) GetMetricBubblePipelinesList(ctx context.Context, query rest.Query) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricBubblePipelinesList = append(m.Calls.GetMetricBubblePipelinesList, query)
	if m.Impl.GetMetricBubblePipelinesList == nil {
		m.t.Fatal("GetMetricBubblePipelinesList is not ready to be called")
	}
	return m.Impl.GetMetricBubblePipelinesList(ctx, query)
}

func (m *MockClient) GetMetricPipelineNotes(ctx context.Context, query rest.Query) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricPipelineNotes = append(m.Calls.GetMetricPipelineNotes, query)
	if m.Impl.GetMetricPipelineNotes == nil {
		m.t.Fatal("GetMetricPipelineNotes is not ready to be called")
	}
	return m.Impl.GetMetricPipelineNotes(ctx, query)
}

func (m *MockClient) GetMetricRerunListJobs(ctx context.Context, query rest.Query) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricRerunListJobs = append(m.Calls.GetMetricRerunListJobs, query)
	if m.Impl.GetMetricRerunListJobs == nil {
		m.t.Fatal("GetMetricRerunListJobs is not ready to be called")
	}
	return m.Impl.GetMetricRerunListJobs(ctx, query)
}

func (m *MockClient) GetMetricRerun(ctx context.Context, query rest.Query) (any, error) {
	m.t.Helper()

	m.Calls.GetMetricRerun = append(m.Calls.GetMetricRerun, query)
	if m.Impl.GetMetricRerun == nil {
		m.t.Fatal("GetMetricRerun is not ready to be called")
	}
	return m.Impl.GetMetricRerun(ctx, query)
}

func (m *MockClient) GetQtfHandoverResult(ctx context.Context, query rest.Query) (any, error) {
	m.t.Helper()

	m.Calls.GetQtfHandoverResult = append(m.Calls.GetQtfHandoverResult, query)
	if m.Impl.GetQtfHandoverResult == nil {
		m.t.Fatal("GetQtfHandoverResult is not ready to be called")
	}
	return m.Impl.GetQtfHandoverResult(ctx, query)
}

func (m *MockClient) HandoverNotify(ctx context.Context, request types.Record) (any, error) {
	m.t.Helper()

	m.Calls.HandoverNotify = append(m.Calls.HandoverNotify, request)
	if m.Impl.HandoverNotify == nil {
		m.t.Fatal("HandoverNotify is not ready to be called")
	}
	return m.Impl.HandoverNotify(ctx, request)
}
