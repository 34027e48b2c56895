package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/opst/scorch-console/pkg/api/types"
	apierr "github.com/opst/scorch-console/pkg/api/types/errors"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/parameters"
	"github.com/opst/scorch-console/pkg/pipelines"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/utils"
	"github.com/opst/scorch-console/pkg/views"
	"golang.org/x/sync/errgroup"
)

// form fields of the pipeline editor
const (
	fieldDraft    = "draft"
	fieldName     = "name"
	fieldOp       = "op"
	fieldDetach   = "detach"
	fieldToggle   = "toggle"
	fieldSequence = "sequence"
	fieldNodeType = "nodeType"
	fieldNodeName = "nodeName"

	opAttach = "attach"
	opSave   = "save"
	opRun    = "run"
)

func PipelineListHandler(cs *Console, client rest.PipelineClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := client.GetPipelineList(c.Request().Context(), listQuery(c))
		if err != nil {
			return cs.fail(c, "pipelines", "Pipelines", err)
		}
		return cs.render(c, "pipelines", "Pipelines", newListing(c, page))
	}
}

// NodeView is a node of a pipeline with its parameters table.
type NodeView struct {
	pipelines.Node
	Params views.ParamTable
}

type PipelineDetail struct {
	Pipeline types.Record
	Params   views.ParamTable
	Nodes    []NodeView
	Tree     views.Tree

	// Notice is nil when the pipeline has no notice.
	Notice types.Record
}

func readOnly(p types.Parameters) views.ParamTable {
	return views.NewParamTable(parameters.NewTable(p, nil))
}

func PipelineDetailHandler(cs *Console, client rest.PipelineClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(param)

		var pipeline, notice types.Record
		eg, gctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			p, err := client.GetPipelineDetail(gctx, id)
			pipeline = p
			return err
		})
		eg.Go(func() error {
			n, err := client.GetNoticeDetail(gctx, id)
			if err != nil {
				// the pipeline is shown without notice
				c.Logger().Warnf("notice of pipeline %s is not available: %s", id, err)
				return nil
			}
			notice = n
			return nil
		})
		if err := eg.Wait(); err != nil {
			return cs.fail(c, "pipeline", "Pipeline", err)
		}

		items, err := pipelines.Hierarchy(ctx, client, pipeline)
		if err != nil {
			return cs.fail(c, "pipeline", pipeline.Name(), err)
		}
		exp := views.ExpansionOf(c.QueryParams(), items)

		return cs.render(c, "pipeline", pipeline.Name(), PipelineDetail{
			Pipeline: pipeline,
			Params:   readOnly(types.ParametersOf(pipeline, "overriddenParameters")),
			Nodes: utils.Map(pipelines.Nodes(pipeline), func(n pipelines.Node) NodeView {
				return NodeView{Node: n, Params: readOnly(n.OverriddenParameters)}
			}),
			Tree:   views.NewTree("Hierarchy", items, exp, pageURL(c), nil),
			Notice: notice,
		})
	}
}

// PipelineEdit is data of the pipeline editor.
type PipelineEdit struct {
	// Draft is the pipeline being edited, in JSON.
	Draft string

	Pipeline     types.Record
	Params       views.ParamTable
	Nodes        []NodeView
	NodeTypes    []string
	NextSequence int
}

func editable(scope parameters.Scope, p types.Parameters, pending parameters.Row) views.ParamTable {
	t := parameters.NewTable(p, func(types.Parameters) {})
	t.SetPending(pending.Name, pending.Value)
	return views.NewScopedParamTable(scope, t)
}

// editorOf lays out the draft with pending rows typed in form. form can be nil.
func editorOf(draft types.Record, form url.Values) (PipelineEdit, error) {
	b, err := json.Marshal(draft)
	if err != nil {
		return PipelineEdit{}, err
	}

	pending := func(scope parameters.Scope) parameters.Row {
		if form == nil {
			return parameters.Row{}
		}
		_, row := scope.FromForm(form)
		return row
	}

	nodes := pipelines.Nodes(draft)
	next := 1
	for _, n := range nodes {
		next = max(next, n.Sequence+1)
	}

	return PipelineEdit{
		Draft:    string(b),
		Pipeline: draft,
		Params: editable(
			"", types.ParametersOf(draft, "overriddenParameters"), pending(""),
		),
		Nodes: utils.Map(nodes, func(n pipelines.Node) NodeView {
			return NodeView{Node: n}
		}),
		NodeTypes:    []string{pipelines.NodeTypeBatch, pipelines.NodeTypePipeline},
		NextSequence: next,
	}, nil
}

// withNodeTables fills parameters tables of nodes. They are scoped by their index.
func withNodeTables(e PipelineEdit, form url.Values) PipelineEdit {
	for i := range e.Nodes {
		scope := parameters.ScopeOf(i)
		row := parameters.Row{}
		if form != nil {
			_, row = scope.FromForm(form)
		}
		e.Nodes[i].Params = editable(scope, e.Nodes[i].OverriddenParameters, row)
	}
	return e
}

func (cs *Console) renderEditor(c echo.Context, draft types.Record, form url.Values, toast *flash.Toast) error {
	e, err := editorOf(draft, form)
	if err != nil {
		return err
	}
	e = withNodeTables(e, form)

	title := "New Pipeline"
	if draft.ID() != "" {
		title = "Update: " + draft.Name()
	}
	if toast != nil {
		return cs.notify(c, "pipeline_edit", title, toast.Level, toast.Message, e)
	}
	return cs.render(c, "pipeline_edit", title, e)
}

func NewPipelineHandler(cs *Console) echo.HandlerFunc {
	return func(c echo.Context) error {
		draft := types.Record{
			"name":                  "",
			"description":           "",
			"overriddenParameters":  types.NewParameters().AsValue(),
			"pipelineNodeSummaries": []any{},
		}
		return cs.renderEditor(c, draft, nil, nil)
	}
}

func EditPipelineHandler(cs *Console, client rest.PipelineClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		pipeline, err := client.GetPipelineDetail(c.Request().Context(), c.Param(param))
		if err != nil {
			return cs.fail(c, "pipeline_edit", "Update Pipeline", err)
		}
		return cs.renderEditor(c, pipeline, nil, nil)
	}
}

// decodeDraft reads the draft pipeline posted with the editor.
func decodeDraft(s string) (types.Record, error) {
	dec := json.NewDecoder(bytes.NewBufferString(s))
	dec.UseNumber()
	var draft types.Record
	if err := dec.Decode(&draft); err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, errors.New("draft is empty")
	}
	return draft, nil
}

// applyEdits reflects the name and parameters tables in form to the draft.
func applyEdits(draft types.Record, form url.Values) types.Record {
	draft = draft.Clone()
	if form.Has(fieldName) {
		draft["name"] = strings.TrimSpace(form.Get(fieldName))
	}
	params, _ := parameters.FromForm(form)
	draft["overriddenParameters"] = params.AsValue()

	for i, n := range pipelines.Nodes(draft) {
		p, _ := parameters.ScopeOf(i).FromForm(form)
		draft = pipelines.SetOverriddenParameters(draft, n.Key(), p)
	}
	return draft
}

// findNode finds a batch or a pipeline to be a node, by its exact name.
//
// It returns nil if nothing is found.
func findNode(ctx context.Context, client rest.PipelineClient, nodeType string, name string) (types.Record, error) {
	find := client.FindBatchList
	if nodeType == pipelines.NodeTypePipeline {
		find = client.FindPipelineList
	}
	found, err := find(ctx, name)
	if err != nil {
		return nil, err
	}
	if r, ok := utils.First(found, func(r types.Record) bool { return r.Name() == name }); ok {
		return r, nil
	}
	return nil, nil
}

func toastOf(err error) *flash.Toast {
	if rej := new(pipelines.Rejection); errors.As(err, &rej) {
		return &flash.Toast{Level: rej.Level, Message: rej.Message}
	}
	return &flash.Toast{Level: flash.Error, Message: err.Error()}
}

// PipelineEditorHandler applies an edit posted from the pipeline editor.
//
// The draft pipeline travels with the form. Edits re-render the editor with the updated draft,
// and saving it redirects to the saved pipeline.
func PipelineEditorHandler(cs *Console, client rest.PipelineClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.FormParams()
		if err != nil {
			return apierr.BadRequest("can not read the form", err)
		}
		draft, err := decodeDraft(form.Get(fieldDraft))
		if err != nil {
			return apierr.BadRequest("draft pipeline is broken. reload the editor.", err)
		}
		draft = applyEdits(draft, form)

		switch {
		case form.Has(fieldDetach):
			draft = pipelines.DetachNode(draft, form.Get(fieldDetach))
			return cs.renderEditor(c, draft, nil, nil)

		case form.Has(fieldToggle):
			key := form.Get(fieldToggle)
			status := "ACTIVE"
			if n, ok := utils.First(pipelines.Nodes(draft), func(n pipelines.Node) bool {
				return n.Key() == key
			}); ok && n.Active() {
				status = "INACTIVE"
			}
			draft = pipelines.SetStatus(draft, key, status)
			return cs.renderEditor(c, draft, form, nil)

		case form.Get(fieldOp) == opAttach:
			return cs.attach(c, client, draft, form)

		case form.Get(fieldOp) == opSave:
			return cs.save(c, client, draft, form)
		}
		return cs.renderEditor(c, draft, form, nil)
	}
}

func (cs *Console) attach(c echo.Context, client rest.PipelineClient, draft types.Record, form url.Values) error {
	ctx := c.Request().Context()
	name := strings.TrimSpace(form.Get(fieldNodeName))
	nodeType := form.Get(fieldNodeType)
	sequence, err := strconv.Atoi(form.Get(fieldSequence))
	if name == "" || err != nil || sequence < 1 {
		return cs.renderEditor(c, draft, form, &flash.Toast{
			Level: flash.Warning, Message: "Please choose a node and its sequence.",
		})
	}

	summary, err := findNode(ctx, client, nodeType, name)
	if err != nil {
		return cs.renderEditor(c, draft, form, toastOf(err))
	}
	if summary == nil {
		return cs.renderEditor(c, draft, form, &flash.Toast{
			Level: flash.Warning, Message: fmt.Sprintf("%s not found: %s", strings.ToLower(nodeType), name),
		})
	}

	attached, err := pipelines.AttachNode(ctx, client, draft, sequence, nodeType, summary)
	if err != nil {
		return cs.renderEditor(c, draft, form, toastOf(err))
	}
	return cs.renderEditor(c, attached, nil, nil)
}

func (cs *Console) save(c echo.Context, client rest.PipelineClient, draft types.Record, form url.Values) error {
	ctx := c.Request().Context()
	payload, err := pipelines.ForSave(draft)
	if err != nil {
		return cs.renderEditor(c, draft, form, toastOf(err))
	}

	action, save := "create pipeline", client.CreatePipeline
	if draft.ID() != "" {
		action, save = "update pipeline", client.UpdatePipeline
	}
	saved, err := save(ctx, payload)
	if err != nil {
		cs.Audit.Record(c.RealIP(), action, draft.Name(), err)
		return cs.renderEditor(c, draft, form, toastOf(err))
	}

	id := saved.ID()
	if id == "" {
		id = draft.ID()
	}
	next := "/pipelines/"
	if id != "" {
		next = link("pipelines", id)
	}
	return cs.done(c, action, draft.Name(), nil, "Pipeline saved: "+draft.Name(), next)
}

func DeletePipelineHandler(cs *Console, client rest.PipelineClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		err := client.DeletePipeline(c.Request().Context(), id)
		next := "/pipelines/"
		if err != nil {
			next = link("pipelines", id)
		}
		return cs.done(c, "delete pipeline", id, err, "Pipeline deleted.", next)
	}
}

// NoticeHandler saves the notice of the pipeline, posted as JSON.
func NoticeHandler(cs *Console, client rest.PipelineClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		next := link("pipelines", id)

		notice, err := decodeDraft(c.FormValue("notice"))
		if err != nil {
			return cs.done(c, "edit notice", id, fmt.Errorf("notice is not a JSON object: %w", err), "", next)
		}
		_, err = client.EditNotice(c.Request().Context(), notice)
		return cs.done(c, "edit notice", id, err, "Notice saved.", next)
	}
}

func DeleteNoticeHandler(cs *Console, client rest.PipelineClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(param)
		noticeId := c.FormValue("noticeId")
		err := client.DeleteNotice(c.Request().Context(), noticeId)
		return cs.done(c, "delete notice", noticeId, err, "Notice deleted.", link("pipelines", id))
	}
}

// RunGroupView is parameters of a pipeline run, for a node or the pipeline.
type RunGroupView struct {
	Name   string
	Params views.ParamTable
}

type PipelineRun struct {
	Pipeline types.Record
	Groups   []RunGroupView
}

// PipelineRunHandler shows parameters of a pipeline run, and submits the run.
//
// Only parameters changed from those of the pipeline are sent.
func PipelineRunHandler(cs *Console, client rest.PipelineClient, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		id := c.Param(param)

		pipeline, err := client.GetPipelineDetail(ctx, id)
		if err != nil {
			return cs.fail(c, "pipeline_run", "Run Pipeline", err)
		}
		defaults := pipelines.RunDefaults(pipeline)
		title := "Run: " + pipeline.Name()

		if c.Request().Method != http.MethodPost {
			return cs.render(c, "pipeline_run", title, PipelineRun{
				Pipeline: pipeline,
				Groups: utils.MapIndexed(defaults, func(i int, g pipelines.RunGroup) RunGroupView {
					return RunGroupView{
						Name:   g.Name,
						Params: editable(parameters.ScopeOf(i), g.Parameters, parameters.Row{}),
					}
				}),
			})
		}

		form, err := c.FormParams()
		if err != nil {
			return apierr.BadRequest("can not read the form", err)
		}
		edited := map[string]types.Parameters{}
		groups := utils.MapIndexed(defaults, func(i int, g pipelines.RunGroup) RunGroupView {
			scope := parameters.ScopeOf(i)
			p, row := scope.FromForm(form)
			edited[g.Name] = p
			return RunGroupView{Name: g.Name, Params: editable(scope, p, row)}
		})

		if form.Get(fieldOp) != opRun {
			return cs.render(c, "pipeline_run", title, PipelineRun{Pipeline: pipeline, Groups: groups})
		}

		_, err = client.SubmitPipeline(ctx, id, pipelines.Customized(defaults, edited))
		return cs.done(
			c, "run pipeline", pipeline.Name(), err,
			"Pipeline submitted: "+pipeline.Name(), link("pipelines", id),
		)
	}
}
