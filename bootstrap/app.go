package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
)

// Hook runs at a lifecycle point. A failing OnStart or OnReady hook aborts
// startup; OnStop hook errors are returned after components are stopped.
type Hook func(ctx context.Context) error

// App owns the config, the logger and the component registry of one
// process.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onStart         []Hook
	onReady         []Hook
	onStop          []Hook
}

// NewApp applies defaults to cfg, validates it and initialises the global
// logger from its logging section unless WithLogger is given.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()
	o := resolveOptions(opts)

	log := o.logger
	if log == nil {
		logger.Init(&base.Logging)
		log = logger.GetGlobalLogger()
	}

	registry := component.NewRegistry()
	registry.SetStopTimeout(o.gracefulTimeout)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      registry,
		Logger:          log,
		Summary:         NewSummary(base.Name, base.Version),
		gracefulTimeout: o.gracefulTimeout,
	}
	if o.output != nil {
		app.Summary.out = o.output
	}
	return app, nil
}

func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnStart hooks run once every component has started.
func (a *App[C]) OnStart(hooks ...Hook) { a.onStart = append(a.onStart, hooks...) }

// OnReady hooks run after the ready check, just before the summary.
func (a *App[C]) OnReady(hooks ...Hook) { a.onReady = append(a.onReady, hooks...) }

// OnStop hooks run before components are stopped.
func (a *App[C]) OnStop(hooks ...Hook) { a.onStop = append(a.onStop, hooks...) }

// ReadyCheck fails when any component reports other than healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var errs []error
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		if h.Message != "" {
			errs = append(errs, fmt.Errorf("%s is %s: %s", h.Name, h.Status, h.Message))
		} else {
			errs = append(errs, fmt.Errorf("%s is %s", h.Name, h.Status))
		}
	}
	return errors.Join(errs...)
}

// Run starts the application and blocks until ctx is done or the process
// receives SIGINT or SIGTERM, then shuts down.
func (a *App[C]) Run(ctx context.Context) error {
	return a.RunTask(ctx, func(ctx context.Context) error {
		a.Logger.Info("Application ready, waiting for shutdown signal")
		<-ctx.Done()
		return nil
	})
}

// RunTask starts the application, runs task and shuts down when it returns.
// The task context is cancelled on SIGINT or SIGTERM. A task error wins
// over a shutdown error.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	taskCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.startup(taskCtx); err != nil {
		_ = a.Shutdown()
		return err
	}
	taskErr := task(taskCtx)
	stopErr := a.Shutdown()
	if taskErr != nil {
		return taskErr
	}
	return stopErr
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting application", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return err
	}
	if err := runHooks(ctx, "start", a.onStart); err != nil {
		return err
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.MergeWithError(nil, err))
	}
	if err := runHooks(ctx, "ready", a.onReady); err != nil {
		return err
	}

	a.Summary.SetStartupDuration(time.Since(start))
	a.Summary.DisplaySummary(a.Components)
	return nil
}

// Shutdown runs the OnStop hooks and stops every started component within
// the graceful timeout.
func (a *App[C]) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	a.Logger.Info("Shutting down", logger.Fields("timeout", a.gracefulTimeout.String()))
	hookErr := runHooks(ctx, "stop", a.onStop)
	stopErr := a.Components.StopAll(ctx)
	if err := errors.Join(hookErr, stopErr); err != nil {
		a.Logger.Error("Shutdown completed with errors", logger.MergeWithError(nil, err))
		return err
	}
	a.Logger.Info("Shutdown complete")
	return nil
}

func runHooks(ctx context.Context, phase string, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("%s hook %d: %w", phase, i, err)
		}
	}
	return nil
}
