package types

import (
	"encoding/json"
	"strconv"
	"time"
)

// Package is an item of release package listing.
//
// Scorch returns either a bare package name or an object with name, version and createTime.
type Package struct {
	Name       string `json:"name"`
	Version    string `json:"version,omitempty"`
	CreateTime string `json:"createTime,omitempty"`
}

func (p *Package) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*p = Package{Name: name}
		return nil
	}

	raw := struct {
		Name       string          `json:"name"`
		Version    json.RawMessage `json:"version"`
		CreateTime json.RawMessage `json:"createTime"`
	}{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Package{
		Name:       raw.Name,
		Version:    scalarString(raw.Version),
		CreateTime: scalarString(raw.CreateTime),
	}
	return nil
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

var createTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// CreatedAt parses CreateTime.
//
// It accepts RFC3339, ISO8601 local date-time, and epoch milliseconds.
func (p Package) CreatedAt() (time.Time, bool) {
	if p.CreateTime == "" {
		return time.Time{}, false
	}
	for _, layout := range createTimeLayouts {
		if t, err := time.Parse(layout, p.CreateTime); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(p.CreateTime, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), true
	}
	return time.Time{}, false
}

// PackageList is the payload of the package listing.
type PackageList struct {
	PackageList []Package `json:"packageList"`
}

// LogEntry is a line of release operation logs.
type LogEntry struct {
	ID       any    `json:"id"`
	Severity string `json:"severity"`
	Time     any    `json:"time"`
	Message  string `json:"message"`
}

// ReleaseLog is the payload of rollback.
type ReleaseLog struct {
	LogEntryList []LogEntry `json:"logEntryList"`
}

// CompareReport is a comparison between a release package and an environment
// for one kind of release items.
type CompareReport struct {
	AddNewItems     int            `json:"addNewItems"`
	NewItemNames    []string       `json:"newItemNames"`
	UpdatedItems    int            `json:"updatedItems"`
	UnMatchItemsMap map[string]any `json:"unMatchItemsMap"`
	ReleaseItems    []Record       `json:"releaseItems"`
}

type CompareReportKind struct {
	Key      string
	ItemName string
}

// CompareReportKinds lists kinds of CompareReport in display order.
var CompareReportKinds = []CompareReportKind{
	{Key: "jobCompareReport", ItemName: "Job"},
	{Key: "jobContextCompareReport", ItemName: "Context"},
	{Key: "configGroupCompareReport", ItemName: "Configuration"},
	{Key: "executionSystemCompareReport", ItemName: "Execution System"},
	{Key: "hierarchyCompareReport", ItemName: "Hierarchy"},
	{Key: "batchCompareReport", ItemName: "Batch"},
}

// CompareReports maps CompareReportKind.Key to its report.
//
// Unknown keys in the response are ignored.
type CompareReports map[string]CompareReport

func (c *CompareReports) UnmarshalJSON(b []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	ret := CompareReports{}
	for _, kind := range CompareReportKinds {
		r, ok := raw[kind.Key]
		if !ok || string(r) == "null" {
			continue
		}
		var report CompareReport
		if err := json.Unmarshal(r, &report); err != nil {
			return err
		}
		ret[kind.Key] = report
	}
	*c = ret
	return nil
}
