// Package pipelines edits pipeline records: their nodes and names.
//
// A pipeline record holds its nodes in "pipelineNodeSummaries".
// Each node is a batch ("batchSummary") or another pipeline ("pipeline"),
// placed at a sequence number.
package pipelines

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/opst/scorch-console/pkg/api/types"
	"github.com/opst/scorch-console/pkg/utils"
)

const (
	NodeTypeBatch    = "BATCH"
	NodeTypePipeline = "PIPELINE"
)

// MaxNameLength is the longest pipeline name Scorch accepts.
const MaxNameLength = 110

const (
	keyNodes        = "pipelineNodeSummaries"
	keyNodeIds      = "pipelineNodeIds"
	keyBatchSummary = "batchSummary"
	keyPipeline     = "pipeline"
)

const (
	LevelWarning = "warning"
	LevelError   = "error"
)

// Rejection is a reason why an edit is not applied.
//
// Console shows it as a toast of its Level.
type Rejection struct {
	Level   string
	Message string
	Cause   error
}

func (r *Rejection) Error() string {
	return r.Message
}

func (r *Rejection) Unwrap() error {
	return r.Cause
}

const (
	MessageSelfNode     = "You can not add a pipeline itself as its node."
	MessageUnsavedNode  = "You can not add a pipeline which is not saved yet."
	MessageDeadLoop     = "Reference cycle detected, please choose another pipeline"
	MessageNameMissing  = "Please input a name."
	MessageNameTooLong  = "Pipeline name too long, please use shorter one"
	messageCheckFailure = "Failed to check loop: %s"
)

// DeadLoopChecker asks whether a pipeline can be a node of another.
type DeadLoopChecker interface {
	CheckPipelineDeadLoop(ctx context.Context, parentId string, childId string) (bool, error)
}

// summaryKey returns the field name holding summary of the node type.
func summaryKey(nodeType string) string {
	if nodeType == NodeTypePipeline {
		return keyPipeline
	}
	return keyBatchSummary
}

// Node is a view of a pipeline node.
type Node struct {
	Sequence int
	Type     string

	// Name and ID of the batch or the pipeline placed as the node.
	Name string
	ID   string

	Status string

	OverriddenParameters types.Parameters
	TestScope            types.Parameters
}

// Key identifies the node in the pipeline, as "SEQUENCE@TYPE@NAME".
func (n Node) Key() string {
	return NodeKey(n.Sequence, n.Type, n.Name)
}

func NodeKey(sequence int, nodeType string, name string) string {
	return fmt.Sprintf("%d@%s@%s", sequence, nodeType, name)
}

// Active is true unless the node is disabled.
func (n Node) Active() bool {
	return n.Status == "" || n.Status == "ACTIVE"
}

func nodeOf(r types.Record) Node {
	seq, _ := r.Int("sequence")
	nodeType := r.String("nodeType")
	summary := r.Record(summaryKey(nodeType))
	return Node{
		Sequence:             seq,
		Type:                 nodeType,
		Name:                 summary.Name(),
		ID:                   summary.ID(),
		Status:               r.String("status"),
		OverriddenParameters: types.ParametersOf(r, "overriddenParameters"),
		TestScope:            types.ParametersOf(r, "testScope"),
	}
}

// Nodes lists nodes of the pipeline.
func Nodes(pipeline types.Record) []Node {
	return utils.Map(pipeline.Records(keyNodes), nodeOf)
}

// NodeIds lists ids of node summaries which have one.
func NodeIds(pipeline types.Record) []any {
	ids := []any{}
	for _, n := range pipeline.Records(keyNodes) {
		if id, ok := n["id"]; ok && id != nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// NewNode builds a node record placing summary at sequence.
func NewNode(sequence int, nodeType string, summary types.Record) types.Record {
	return types.Record{
		"sequence":             sequence,
		"nodeType":             nodeType,
		summaryKey(nodeType):   summary.Clone(),
		"overriddenParameters": types.NewParameters().AsValue(),
		"testScope":            types.NewParameters().AsValue(),
	}
}

func withNodes(pipeline types.Record, nodes []types.Record) types.Record {
	ret := pipeline.Clone()
	values := make([]any, len(nodes))
	for i, n := range nodes {
		values[i] = map[string]any(n)
	}
	ret[keyNodes] = values
	ret[keyNodeIds] = NodeIds(types.Record{keyNodes: values})
	return ret
}

// AttachNode places summary as a node of the pipeline at sequence.
//
// A node at the same sequence with the same type and name is replaced.
//
// Before placing a pipeline into a saved pipeline, it asks checker whether
// that makes a reference cycle.
//
// # Returns
//
// - types.Record: a copy of pipeline with the node.
//
// - error: *Rejection, if the node is not attached.
func AttachNode(
	ctx context.Context, checker DeadLoopChecker,
	pipeline types.Record, sequence int, nodeType string, summary types.Record,
) (types.Record, error) {
	if nodeType == NodeTypePipeline {
		pipelineId := pipeline.ID()
		if summary.ID() == "" {
			return nil, &Rejection{Level: LevelWarning, Message: MessageUnsavedNode}
		}
		if pipelineId != "" && pipelineId == summary.ID() {
			return nil, &Rejection{Level: LevelWarning, Message: MessageSelfNode}
		}

		if pipelineId != "" {
			isLoop, err := checker.CheckPipelineDeadLoop(ctx, pipelineId, summary.ID())
			if err != nil {
				return nil, &Rejection{
					Level:   LevelError,
					Message: fmt.Sprintf(messageCheckFailure, err.Error()),
					Cause:   err,
				}
			}
			if isLoop {
				return nil, &Rejection{Level: LevelError, Message: MessageDeadLoop}
			}
		}
	}

	node := NewNode(sequence, nodeType, summary)
	nodes := utils.Filter(pipeline.Records(keyNodes), func(r types.Record) bool {
		return nodeOf(r).Key() != NodeKey(sequence, nodeType, summary.Name())
	})
	return withNodes(pipeline, append(nodes, node)), nil
}

// DetachNode removes the node identified by key from a copy of the pipeline.
func DetachNode(pipeline types.Record, key string) types.Record {
	nodes := utils.Filter(pipeline.Records(keyNodes), func(r types.Record) bool {
		return nodeOf(r).Key() != key
	})
	return withNodes(pipeline, nodes)
}

// UpdateNode applies update to a copy of the node identified by key.
//
// It returns a copy of the pipeline. If no node has the key, nothing is changed.
func UpdateNode(pipeline types.Record, key string, update func(node types.Record)) types.Record {
	nodes := utils.Map(pipeline.Records(keyNodes), func(r types.Record) types.Record {
		if nodeOf(r).Key() != key {
			return r
		}
		n := r.Clone()
		update(n)
		return n
	})
	return withNodes(pipeline, nodes)
}

// SetOverriddenParameters replaces parameters overridden by the node.
func SetOverriddenParameters(pipeline types.Record, key string, params types.Parameters) types.Record {
	return UpdateNode(pipeline, key, func(node types.Record) {
		node["overriddenParameters"] = params.AsValue()
	})
}

// SetStatus changes the status of the node, like "ACTIVE".
func SetStatus(pipeline types.Record, key string, status string) types.Record {
	return UpdateNode(pipeline, key, func(node types.Record) {
		node["status"] = status
	})
}

// ForSave validates the pipeline and returns a copy to be sent to Scorch.
//
// # Returns
//
// - types.Record: a copy without "pipelineNodeIds".
//
// - error: *Rejection, if the name is missing or too long.
func ForSave(pipeline types.Record) (types.Record, error) {
	name := pipeline.Name()
	if name == "" {
		return nil, &Rejection{Level: LevelWarning, Message: MessageNameMissing}
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return nil, &Rejection{Level: LevelError, Message: MessageNameTooLong}
	}
	ret := pipeline.Clone()
	delete(ret, keyNodeIds)
	return ret, nil
}
