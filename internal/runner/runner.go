// Package runner sequences one fetch, resolve, map and write cycle.
package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"theme-mapper/internal/common/cache"
	"theme-mapper/internal/common/config"
	apperrors "theme-mapper/internal/common/errors"
	apphttp "theme-mapper/internal/common/http"
	"theme-mapper/internal/common/logger"
	"theme-mapper/internal/common/metrics"
	"theme-mapper/internal/common/observability"
	"theme-mapper/internal/common/themeapi"
	"theme-mapper/internal/models"
	fetchtheme "theme-mapper/internal/stages/fetch-theme"
	maptheme "theme-mapper/internal/stages/map-theme"
	resolvevariables "theme-mapper/internal/stages/resolve-variables"
	writetheme "theme-mapper/internal/stages/write-theme"

	"github.com/google/uuid"
)

const (
	stagePrompt = "prompt"

	successMessage = "The theme file has been successfully saved!"
)

// Prompter asks the operator for values the configuration left empty.
type Prompter interface {
	Tenant() (string, error)
	APIKey() (string, error)
	fetchtheme.Selector
}

type Options struct {
	Config *config.Config
	Logger logger.Logger
	// Prompter may be nil when every value is configured.
	Prompter Prompter
	// Messages receives operator-facing notices.
	Messages io.Writer
	// Stdout receives the theme when the output path is "-".
	Stdout io.Writer
	// Cache overrides the Redis cache built from configuration.
	Cache fetchtheme.DocumentCache
}

// Result summarizes a successful run.
type Result struct {
	RunID      string
	Theme      models.ThemeDescriptor
	OutputPath string
	Bytes      int
	Unresolved []string
}

type Runner struct {
	opts     Options
	cfg      *config.Config
	runID    string
	logger   logger.Logger
	reporter *apperrors.Reporter
	recorder *metrics.Recorder
	obs      *observability.Observability
}

func New(opts Options) *Runner {
	if opts.Messages == nil {
		opts.Messages = io.Discard
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}

	runID := uuid.New().String()
	log := opts.Logger.WithFields(map[string]interface{}{"runId": runID})

	return &Runner{
		opts:     opts,
		cfg:      opts.Config,
		runID:    runID,
		logger:   log,
		reporter: apperrors.NewReporter(log, opts.Messages),
		recorder: metrics.NewRecorder(),
	}
}

func (r *Runner) RunID() string { return r.runID }

// Metrics exposes the run's metric recorder.
func (r *Runner) Metrics() *metrics.Recorder { return r.recorder }

// Run executes every stage once. Each stage failure is reported to the
// operator and returned; later stages do not run.
func (r *Runner) Run(ctx context.Context) (result *Result, err error) {
	start := time.Now()

	obs, obsErr := observability.New(r.cfg.App.Name, r.recorder.Registry())
	if obsErr != nil {
		r.logger.Warn("observability disabled", map[string]interface{}{"error": obsErr.Error()})
	}
	r.obs = obs

	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailure
		}
		r.finish(ctx, time.Since(start), outcome)
	}()

	r.logger.Info("run started", map[string]interface{}{"version": r.cfg.App.Version})

	if err := r.stage(stagePrompt, r.completeCredentials); err != nil {
		return nil, err
	}

	documentCache, closeCache := r.documentCache(ctx)
	defer closeCache()

	source := themeapi.NewClient(themeapi.Config{
		Tenant:  r.cfg.Tenant.Domain,
		APIKey:  r.cfg.Tenant.APIKey,
		Scheme:  r.cfg.Tenant.Scheme,
		BaseURL: r.cfg.Tenant.BaseURL,
	}, apphttp.NewClient(config.GetDuration(r.cfg.Tenant.Timeout)))

	var selector fetchtheme.Selector
	if r.opts.Prompter != nil {
		selector = r.opts.Prompter
	}

	fetchHandler := fetchtheme.NewHandler(&fetchtheme.Config{
		Tenant:   r.cfg.Tenant.Domain,
		CacheTTL: r.cfg.Cache.CacheTTL(),
	}, source, selector, documentCache, r.logger)

	var fetched *fetchtheme.Output
	if err := r.stage(fetchtheme.StageName, func() error {
		var stageErr error
		fetched, stageErr = fetchHandler.Execute(ctx, &fetchtheme.Input{ThemeName: r.cfg.Tenant.Theme})
		return stageErr
	}); err != nil {
		return nil, err
	}

	resolveHandler := resolvevariables.NewHandler(&resolvevariables.Config{
		Marker:           r.cfg.Resolver.Marker,
		TableKey:         r.cfg.Resolver.TableKey,
		ResolveArrays:    r.cfg.Resolver.ResolveArrays,
		UnresolvedPolicy: resolvevariables.UnresolvedPolicy(r.cfg.Resolver.UnresolvedPolicy),
	}, r.logger)

	var resolved *resolvevariables.Output
	if err := r.stage(resolvevariables.StageName, func() error {
		var stageErr error
		resolved, stageErr = resolveHandler.Execute(ctx, &resolvevariables.Input{Document: fetched.Document})
		return stageErr
	}); err != nil {
		return nil, err
	}
	r.recorder.RecordResolution(resolved.Report.Substitutions, len(resolved.Report.Unresolved))

	unresolved := resolved.Report.UnresolvedKeys()
	if len(unresolved) > 0 {
		r.reporter.Warn(fmt.Sprintf("Warning, these variables are not defined and were left empty: %s",
			strings.Join(unresolved, ", ")))
	}

	mapHandler := maptheme.NewHandler(&maptheme.Config{
		FontFamily: r.cfg.Mapper.FontFamily,
		TableKey:   r.cfg.Resolver.TableKey,
	}, r.logger)

	var mapped *maptheme.Output
	if err := r.stage(maptheme.StageName, func() error {
		var stageErr error
		mapped, stageErr = mapHandler.Execute(ctx, &maptheme.Input{Document: resolved.Document})
		return stageErr
	}); err != nil {
		return nil, err
	}

	writeHandler := writetheme.NewHandler(&writetheme.Config{
		Path:     r.cfg.Output.Path,
		Indent:   r.cfg.Output.Indent,
		FileMode: 0o644,
	}, r.opts.Stdout, r.logger)

	var written *writetheme.Output
	if err := r.stage(writetheme.StageName, func() error {
		var stageErr error
		written, stageErr = writeHandler.Execute(ctx, &writetheme.Input{Theme: mapped.Theme})
		return stageErr
	}); err != nil {
		return nil, err
	}

	if r.obs != nil {
		r.obs.RecordOutputSize(ctx, written.Bytes)
	}
	r.reporter.Success(successMessage)

	return &Result{
		RunID:      r.runID,
		Theme:      fetched.Theme,
		OutputPath: written.Path,
		Bytes:      written.Bytes,
		Unresolved: unresolved,
	}, nil
}

// stage runs fn as one report boundary.
func (r *Runner) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if err == nil {
		r.recorder.ObserveStage(name, time.Since(start), "")
		return nil
	}

	stdErr := r.reporter.Report(err, name)
	r.recorder.ObserveStage(name, time.Since(start), string(stdErr.Code))
	return stdErr
}

// completeCredentials prompts for the tenant and API key when not configured.
func (r *Runner) completeCredentials() error {
	needTenant := r.cfg.Tenant.Domain == "" && r.cfg.Tenant.BaseURL == ""
	needKey := r.cfg.Tenant.APIKey == ""
	if !needTenant && !needKey {
		return nil
	}
	if r.opts.Prompter == nil {
		return apperrors.NewInvalidConfigurationError(fmt.Errorf("tenant domain and API key are required"))
	}

	if needTenant {
		tenant, err := r.opts.Prompter.Tenant()
		if err != nil {
			return err
		}
		r.cfg.Tenant.Domain = tenant
	}
	if needKey {
		key, err := r.opts.Prompter.APIKey()
		if err != nil {
			return err
		}
		r.cfg.Tenant.APIKey = key
	}
	return nil
}

// documentCache returns the configured cache or nil. Redis being unreachable
// disables caching for the run.
func (r *Runner) documentCache(ctx context.Context) (fetchtheme.DocumentCache, func()) {
	if r.opts.Cache != nil {
		return r.opts.Cache, func() {}
	}
	if !r.cfg.Cache.Enabled {
		return nil, func() {}
	}

	client := cache.NewRedis(r.cfg.Cache.Redis)
	if err := client.Ping(ctx); err != nil {
		r.logger.Warn("cache unavailable, continuing without it", map[string]interface{}{
			"address": r.cfg.Cache.Redis.Address,
			"error":   err.Error(),
		})
		client.Close()
		return nil, func() {}
	}
	return client, func() { client.Close() }
}

func (r *Runner) finish(ctx context.Context, elapsed time.Duration, outcome string) {
	r.recorder.RecordRun(outcome)
	if r.obs != nil {
		r.obs.RecordRun(ctx, elapsed, outcome)
	}

	if path := r.cfg.Metrics.Textfile; path != "" {
		if err := r.recorder.WriteTextfile(path); err != nil {
			r.logger.Warn("metrics textfile not written", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}

	if r.obs != nil {
		if err := r.obs.Shutdown(context.Background()); err != nil {
			r.logger.Debug("meter provider shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}

	r.logger.Info("run finished", map[string]interface{}{
		"outcome":    outcome,
		"durationMs": elapsed.Milliseconds(),
	})
}
