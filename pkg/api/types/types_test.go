package types_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/opst/scorch-console/pkg/api/types"
)

func decodeRecord(t *testing.T, s string) types.Record {
	t.Helper()
	dec := json.NewDecoder(bytes.NewBufferString(s))
	dec.UseNumber()
	r := types.Record{}
	if err := dec.Decode(&r); err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRecord(t *testing.T) {
	r := decodeRecord(t, `{
		"id": 12345678901234,
		"name": "pipeline-1",
		"active": true,
		"sequence": "3",
		"batchSummary": {"id": 7, "name": "batch-7"},
		"pipelineNodeSummaries": [{"id": 1}, "not an object", {"id": 2}],
		"nothing": null
	}`)

	t.Run("String formats scalars", func(t *testing.T) {
		for key, expected := range map[string]string{
			"id":           "12345678901234",
			"name":         "pipeline-1",
			"active":       "true",
			"nothing":      "",
			"missing":      "",
			"batchSummary": "",
		} {
			if actual := r.String(key); actual != expected {
				t.Errorf("String(%s) = %s, expected %s", key, actual, expected)
			}
		}
	})

	t.Run("Int reads numbers and numeric strings", func(t *testing.T) {
		if v, ok := r.Int("sequence"); !ok || v != 3 {
			t.Errorf("unexpected: (%d, %v)", v, ok)
		}
		if _, ok := r.Int("name"); ok {
			t.Error("name is read as int")
		}
	})

	t.Run("Record and Records read nested objects", func(t *testing.T) {
		if name := r.Record("batchSummary").Name(); name != "batch-7" {
			t.Errorf("unexpected: %s", name)
		}
		nodes := r.Records("pipelineNodeSummaries")
		if len(nodes) != 2 || nodes[0].ID() != "1" || nodes[1].ID() != "2" {
			t.Errorf("unexpected: %v", nodes)
		}
	})

	t.Run("Clone makes a deep copy", func(t *testing.T) {
		c := r.Clone()
		c.Record("batchSummary")["name"] = "changed"
		if r.Record("batchSummary").Name() != "batch-7" {
			t.Error("original is modified")
		}
	})

	t.Run("it round-trips numbers unchanged", func(t *testing.T) {
		b, err := json.Marshal(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(b, []byte(`"id":12345678901234`)) {
			t.Errorf("id is changed: %s", b)
		}
	})
}

func TestParameters(t *testing.T) {
	t.Run("null entries are read as empty strings", func(t *testing.T) {
		var p types.Parameters
		if err := json.Unmarshal([]byte(`{"entries": {"a": "x", "scorch.ui.cobdate": null}}`), &p); err != nil {
			t.Fatal(err)
		}
		if len(p.Entries) != 2 || p.Entries["a"] != "x" || p.Entries["scorch.ui.cobdate"] != "" {
			t.Errorf("unexpected: %v", p.Entries)
		}
	})

	t.Run("Clone shares nothing", func(t *testing.T) {
		p := types.Parameters{Entries: map[string]string{"a": "1"}}
		c := p.Clone()
		c.Entries["a"] = "2"
		if p.Entries["a"] != "1" {
			t.Error("original is modified")
		}
		if p.Equal(c) {
			t.Error("they should be different")
		}
	})

	t.Run("ParametersOf reads a field of a record", func(t *testing.T) {
		r := decodeRecord(t, `{"overriddenParameters": {"entries": {"K": "V", "N": 1}}}`)
		p := types.ParametersOf(r, "overriddenParameters")
		if p.Entries["K"] != "V" || p.Entries["N"] != "1" {
			t.Errorf("unexpected: %v", p.Entries)
		}
		if empty := types.ParametersOf(r, "testScope"); len(empty.Entries) != 0 || empty.Entries == nil {
			t.Errorf("unexpected: %v", empty.Entries)
		}
	})
}

func TestPackage(t *testing.T) {
	t.Run("it can be decoded from a bare name", func(t *testing.T) {
		var p types.Package
		if err := json.Unmarshal([]byte(`"PKG-1"`), &p); err != nil {
			t.Fatal(err)
		}
		if p.Name != "PKG-1" || p.Version != "" {
			t.Errorf("unexpected: %+v", p)
		}
	})

	t.Run("it can be decoded from an object", func(t *testing.T) {
		var p types.Package
		if err := json.Unmarshal([]byte(`{"name": "PKG-2", "version": 3, "createTime": "2023-12-01T10:20:30"}`), &p); err != nil {
			t.Fatal(err)
		}
		if p.Name != "PKG-2" || p.Version != "3" {
			t.Errorf("unexpected: %+v", p)
		}
		created, ok := p.CreatedAt()
		if !ok || !created.Equal(time.Date(2023, 12, 1, 10, 20, 30, 0, time.UTC)) {
			t.Errorf("unexpected: %v, %v", created, ok)
		}
	})

	t.Run("epoch milliseconds are accepted as createTime", func(t *testing.T) {
		p := types.Package{Name: "x", CreateTime: "1701426030000"}
		created, ok := p.CreatedAt()
		if !ok || created.Unix() != 1701426030 {
			t.Errorf("unexpected: %v, %v", created, ok)
		}
	})
}

func TestCompareReports(t *testing.T) {
	var reports types.CompareReports
	err := json.Unmarshal([]byte(`{
		"jobCompareReport": {"addNewItems": 2, "newItemNames": ["a", "b"], "updatedItems": 1, "releaseItems": [{"name": "a"}]},
		"batchCompareReport": null,
		"status": "SUCCESS"
	}`), &reports)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 {
		t.Fatalf("unexpected reports: %v", reports)
	}
	job := reports["jobCompareReport"]
	if job.AddNewItems != 2 || len(job.NewItemNames) != 2 || job.UpdatedItems != 1 || len(job.ReleaseItems) != 1 {
		t.Errorf("unexpected: %+v", job)
	}
}
