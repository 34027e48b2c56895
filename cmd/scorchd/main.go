package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/singleflight"

	"github.com/opst/scorch-console/cmd/scorchd/handlers"
	"github.com/opst/scorch-console/pkg/audit"
	"github.com/opst/scorch-console/pkg/buildtime"
	"github.com/opst/scorch-console/pkg/configs/console"
	"github.com/opst/scorch-console/pkg/configs/profiles"
	"github.com/opst/scorch-console/pkg/echoutil"
	"github.com/opst/scorch-console/pkg/flash"
	"github.com/opst/scorch-console/pkg/metrics"
	"github.com/opst/scorch-console/pkg/rest"
	"github.com/opst/scorch-console/pkg/utils/filewatch"
	kstrings "github.com/opst/scorch-console/pkg/utils/strings"
	"github.com/opst/scorch-console/pkg/views"
)

func main() {
	ctx := context.Background()

	pconfigPath := flag.String("config-path", "", "path to config file of the console")
	penvFile := flag.String("env-file", ".env", "dotenv file overriding config. ignored when missing")
	ploglevel := flag.String("loglevel", "", "log level. debug|info|warn|error|off . default is the level in config, or warn")
	pcert := flag.String("cert", "", "certification for https")
	pcertKey := flag.String("certkey", "", "key of certification for https")
	flag.Parse()

	conf, err := console.Load(*pconfigPath, *penvFile)
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()

	loglevel := *ploglevel
	if loglevel == "" {
		loglevel = conf.Log.Level
	}
	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		e.Logger.Errorf("error @ %s %s: %s", c.Request().Method, c.Request().URL, err)
		e.DefaultHTTPErrorHandler(err, c)
	}
	e.Pre(middleware.AddTrailingSlash())

	renderer, err := views.New()
	if err != nil {
		log.Fatal(err)
	}
	e.Renderer = renderer

	m := metrics.New()
	e.Use(m.Middleware)

	auditLog := audit.New(audit.Config{
		File:       conf.Log.File,
		MaxSizeMB:  conf.Log.MaxSizeMB,
		MaxBackups: conf.Log.MaxBackups,
	})
	defer auditLog.Close()

	client, err := rest.NewClient(
		&profiles.Profile{
			ApiRoot: conf.ScorchApiRoot,
			Cert:    profiles.Cert{CA: conf.CA},
		},
		rest.WithHTTPClient(&http.Client{Timeout: 2 * time.Minute}),
		rest.WithBreaker(rest.NewBreaker(
			rest.BreakerSettings{
				Name:        "scorch",
				MaxFailures: conf.Breaker.MaxFailures,
				Timeout:     time.Duration(conf.Breaker.Timeout),
			},
			auditLog.StdLogger(),
		)),
		rest.WithObserver(m.ObserveUpstream),
		rest.WithCobDate(func() string { return conf.CobDate }),
	)
	if err != nil {
		log.Fatal(err)
	}

	cs := &handlers.Console{
		Flash: flash.New(conf.FlashSecret),
		Audit: auditLog,
	}

	page, err := root("/")
	if err != nil {
		log.Fatal(err)
	}
	api := func(s ...string) string { return page(append([]string{"api"}, s...)...) }

	e.GET(page(), echoutil.LogHandlerFunc(handlers.HomeHandler(cs)))

	{
		e.GET(page("pipelines"), echoutil.LogHandlerFunc(handlers.PipelineListHandler(cs, client)))
		e.GET(page("pipelines", "new"), echoutil.LogHandlerFunc(handlers.NewPipelineHandler(cs)))
		e.POST(page("pipelines", "editor"), echoutil.LogHandlerFunc(handlers.PipelineEditorHandler(cs, client)))
		e.GET(page("pipelines", ":id"), echoutil.LogHandlerFunc(handlers.PipelineDetailHandler(cs, client, "id")))
		e.GET(page("pipelines", ":id", "edit"), echoutil.LogHandlerFunc(handlers.EditPipelineHandler(cs, client, "id")))
		e.POST(page("pipelines", ":id", "delete"), echoutil.LogHandlerFunc(handlers.DeletePipelineHandler(cs, client, "id")))
		e.POST(page("pipelines", ":id", "notice"), echoutil.LogHandlerFunc(handlers.NoticeHandler(cs, client, "id")))
		e.POST(page("pipelines", ":id", "notice", "delete"), echoutil.LogHandlerFunc(handlers.DeleteNoticeHandler(cs, client, "id")))

		run := echoutil.LogHandlerFunc(handlers.PipelineRunHandler(cs, client, "id"))
		e.GET(page("pipelines", ":id", "run"), run)
		e.POST(page("pipelines", ":id", "run"), run)
	}

	{
		e.GET(page("batches"), echoutil.LogHandlerFunc(handlers.BatchListHandler(cs, client)))
		e.GET(page("batches", ":id"), echoutil.LogHandlerFunc(handlers.BatchDetailHandler(cs, client, "id")))
		e.POST(page("batches", ":id", "delete"), echoutil.LogHandlerFunc(handlers.DeleteBatchHandler(cs, client, "id")))

		run := echoutil.LogHandlerFunc(handlers.BatchRunHandler(cs, client, "id"))
		e.GET(page("batches", ":id", "run"), run)
		e.POST(page("batches", ":id", "run"), run)
	}

	{
		e.GET(page("schedules"), echoutil.LogHandlerFunc(handlers.ScheduleListHandler(cs, client)))
		e.GET(page("schedules", "new"), echoutil.LogHandlerFunc(handlers.NewScheduleHandler(cs, client, "", "")))
		e.GET(page("schedules", "history"), echoutil.LogHandlerFunc(handlers.ScheduleHistoryHandler(cs, client)))
		e.GET(page("schedules", "release"), echoutil.LogHandlerFunc(handlers.ScheduleReleaseHandler(cs, client)))
		e.POST(page("schedules", "release"), echoutil.LogHandlerFunc(handlers.CreateScheduleReleaseHandler(cs, client)))
		e.POST(page("schedules", "editor"), echoutil.LogHandlerFunc(handlers.SaveScheduleHandler(cs, client, false)))
		e.POST(page("schedules", "editor", "update"), echoutil.LogHandlerFunc(handlers.SaveScheduleHandler(cs, client, true)))

		e.GET(page("schedules", ":job", ":trigger"), echoutil.LogHandlerFunc(handlers.ScheduleDetailHandler(cs, client, "job", "trigger")))
		e.GET(page("schedules", ":job", ":trigger", "edit"), echoutil.LogHandlerFunc(handlers.EditScheduleHandler(cs, client, "job", "trigger")))
		e.GET(page("schedules", ":job", ":trigger", "clone"), echoutil.LogHandlerFunc(handlers.NewScheduleHandler(cs, client, "job", "trigger")))
		e.POST(page("schedules", ":job", ":trigger", "delete"), echoutil.LogHandlerFunc(handlers.DeleteScheduleHandler(cs, client, "job", "trigger")))
		for _, op := range []string{handlers.TriggerPause, handlers.TriggerResume, handlers.TriggerSubmit} {
			e.POST(
				page("schedules", ":job", ":trigger", op),
				echoutil.LogHandlerFunc(handlers.TriggerHandler(cs, client, op, "job", "trigger")),
			)
		}
	}

	{
		e.GET(page("releases"), echoutil.LogHandlerFunc(handlers.ReleaseListHandler(cs, client)))
		e.GET(page("releases", ":id"), echoutil.LogHandlerFunc(handlers.ReleaseDetailHandler(cs, client, "id")))
		e.GET(page("releases", ":id", "export"), echoutil.LogHandlerFunc(handlers.ExportBundleHandler(cs, client, "id")))
		e.POST(page("releases", ":id", "tag"), echoutil.LogHandlerFunc(handlers.AddTagHandler(cs, client, "id")))
		for _, op := range []string{handlers.BundleVerify, handlers.BundleRelease} {
			e.POST(
				page("releases", "bundles", ":name", op),
				echoutil.LogHandlerFunc(handlers.BundleHandler(cs, client, op, "name")),
			)
		}

		e.GET(page("releases", "packages"), echoutil.LogHandlerFunc(handlers.PackageListHandler(cs, client, time.Now)))
		e.GET(page("releases", "packages", ":name"), echoutil.LogHandlerFunc(handlers.PackageDetailHandler(cs, client, "name")))
		e.GET(page("releases", "packages", ":name", "compare"), echoutil.LogHandlerFunc(handlers.PackageCompareHandler(cs, client, "name", false)))
		e.GET(page("releases", "packages", ":name", "analyze"), echoutil.LogHandlerFunc(handlers.PackageCompareHandler(cs, client, "name", true)))

		newPackage := echoutil.LogHandlerFunc(handlers.NewPackageHandler(cs, client))
		e.GET(page("releases", "packages", "new"), newPackage)
		e.POST(page("releases", "packages", "new"), newPackage)

		publish := echoutil.LogHandlerFunc(handlers.PackagePublishHandler(cs, client, "name"))
		e.GET(page("releases", "packages", ":name", "publish"), publish)
		e.POST(page("releases", "packages", ":name", "publish"), publish)

		rollback := echoutil.LogHandlerFunc(handlers.PackageRollbackHandler(cs, client, "name"))
		e.GET(page("releases", "packages", ":name", "rollback"), rollback)
		e.POST(page("releases", "packages", ":name", "rollback"), rollback)

		e.GET(page("releases", "backups"), echoutil.LogHandlerFunc(handlers.BackupListHandler(cs, client)))
		e.POST(page("releases", "backups", "save"), echoutil.LogHandlerFunc(handlers.BackupHandler(cs, client, false)))
		e.POST(page("releases", "backups", "delete"), echoutil.LogHandlerFunc(handlers.BackupHandler(cs, client, true)))
	}

	{
		e.GET(page("metrics"), echoutil.LogHandlerFunc(handlers.MetricsSearchHandler(cs, client)))
		e.GET(page("metrics", ":kind"), echoutil.LogHandlerFunc(handlers.MetricsListHandler(cs, client, "kind")))
		e.POST(page("metrics", "handover", "notify"), echoutil.LogHandlerFunc(handlers.HandoverNotifyHandler(cs, client)))
	}

	{
		suggest := new(singleflight.Group)
		e.GET(api("suggest", ":kind"), echoutil.LogHandlerFunc(handlers.SuggestHandler(client, suggest, "kind")))
		e.GET(api("next-fire-time"), echoutil.LogHandlerFunc(handlers.NextFireTimeHandler(client)))
	}

	e.GET(page("-", "metrics"), m.Handler())
	e.GET(page("-", "healthz"), func(c echo.Context) error {
		return c.String(http.StatusOK, "ok "+buildtime.VersionString())
	})

	watchTargets := []string{}
	if *pconfigPath != "" {
		watchTargets = append(watchTargets, *pconfigPath)
	}
	if *pcert != "" && *pcertKey != "" {
		watchTargets = append(watchTargets, *pcert, *pcertKey)
	}
	cctx, cancel, err := filewatch.UntilModifyContext(ctx, watchTargets...)
	if err != nil {
		log.Fatal(err)
	}
	defer cancel()

	context.AfterFunc(cctx, func() {
		log.Println("config file or certification is modified. shutting down...")
		sctx, scancel := context.WithTimeout(ctx, 30*time.Second)
		defer scancel()
		if err := e.Shutdown(sctx); err != nil {
			log.Println(err)
		}
	})

	addr := ":" + conf.ServerPort
	if *pcert != "" && *pcertKey != "" {
		err = e.StartTLS(addr, *pcert, *pcertKey)
	} else {
		err = e.Start(addr)
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		e.Logger.Fatal(err)
	}
}

// root builds paths of pages under r, each terminated with "/".
func root(r string) (func(...string) string, error) {
	//    when r is https://example.org:8080/console
	origin := "" // https://example.org:8080/ . "/" terminated. if r is path only, this is empty.
	base := ""   // /console
	{
		b, err := url.Parse(r)
		if err != nil {
			return nil, err
		}
		base = b.Path
		if b.Host != "" || b.Scheme != "" {
			_r := *b
			r := &_r
			r.RawPath = ""
			r.Path = ""
			r.RawQuery = ""
			r.Fragment = ""
			origin = r.String()
		}
	}
	origin = kstrings.SupplySuffix(origin, "/")

	return func(s ...string) string {
		parts := make([]string, len(s)+1)
		parts[0] = base
		copy(parts[1:], s)
		path := path.Join(parts...)
		path = kstrings.TrimPrefixAll(path, "/")

		return kstrings.SupplySuffix(origin+path, "/")
	}, nil
}
