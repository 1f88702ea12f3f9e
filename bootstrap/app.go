package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/slotkit/logger"
	"github.com/kbukum/slotkit/observability"
	"github.com/kbukum/slotkit/scope"
)

// App ties a host application's lifecycle to the registry's. The type
// parameter C is the config type; any struct embedding config.ServiceConfig
// satisfies Config.
//
//	app, err := bootstrap.NewApp(&cfg)
//	app.RunTask(ctx, func(ctx context.Context) error {
//	    // ctx carries the root provider scope
//	    return runUI(ctx)
//	})
type App[C Config] struct {
	Name    string
	Version string
	Cfg     C
	Logger  *logger.Logger
	Scope   *scope.Scope

	gracefulTimeout time.Duration
	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider

	onStart []Hook
	onStop  []Hook
}

// NewApp creates an application from a typed config. It applies defaults,
// validates, initializes logging and creates the root provider scope.
// Telemetry export starts later, in Run or RunTask, because the exporters
// need a context.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	o := resolveOptions(opts)

	app := &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		gracefulTimeout: 15 * time.Second,
	}
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}

	if o.logger != nil {
		app.Logger = o.logger
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(&base.Logging)
		app.Logger = logger.GetGlobalLogger()
	}

	scopeName := o.scopeName
	if scopeName == "" {
		scopeName = base.Name
	}
	app.Scope = scope.New(scope.WithName(scopeName))

	return app, nil
}

// Context returns ctx carrying the root provider scope, for handing to
// producers and slots below the application root.
func (a *App[C]) Context(ctx context.Context) context.Context {
	return scope.NewContext(ctx, a.Scope)
}

// Run starts the application, blocks until an interrupt/term signal or
// context cancellation, then shuts down gracefully.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	a.Logger.Info("application ready, waiting for shutdown signal")
	a.waitForSignal(ctx)

	return a.stop()
}

// RunTask starts the application, executes a finite task and shuts down
// when the task returns. A SIGINT/SIGTERM cancels the task's context.
func (a *App[C]) RunTask(ctx context.Context, task func(ctx context.Context) error) error {
	if err := a.startup(ctx); err != nil {
		return err
	}

	taskCtx, cancel := context.WithCancel(a.Context(ctx))
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("received signal, canceling task", logger.Fields("signal", sig.String()))
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx)

	if stopErr := a.stop(); stopErr != nil && taskErr == nil {
		return stopErr
	}
	return taskErr
}

// Shutdown performs graceful shutdown. Use when managing the run loop
// yourself instead of through Run or RunTask.
func (a *App[C]) Shutdown(ctx context.Context) error {
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	base := a.Cfg.GetServiceConfig()

	a.Logger.Info("starting application", logger.Fields(
		"name", a.Name,
		"version", a.Version,
		"environment", base.Environment,
		logger.FieldScopeID, a.Scope.ID(),
	))

	if base.Telemetry.Enabled {
		tp, err := observability.InitTracer(ctx, a.Name, a.Version, base.Environment, base.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		a.tracerProvider = tp

		mp, err := observability.InitMeter(ctx, a.Name, a.Version, base.Environment, base.Telemetry)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		a.meterProvider = mp
	}

	if err := runHooks(scope.NewContext(ctx, a.Scope), a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	return nil
}

func (a *App[C]) waitForSignal(ctx context.Context) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("received shutdown signal", logger.Fields("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("context canceled, shutting down")
	}
}

// stop runs OnStop hooks, closes the root scope and shuts telemetry down,
// all within the graceful timeout.
func (a *App[C]) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error

	if err := runHooks(scope.NewContext(ctx, a.Scope), a.onStop); err != nil {
		a.Logger.WithError(err).Error("onStop hook error")
		shutdownErr = err
	}

	a.Scope.Close()

	if a.meterProvider != nil {
		if err := a.meterProvider.Shutdown(ctx); err != nil {
			a.Logger.WithError(err).Error("meter provider shutdown error")
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.Logger.WithError(err).Error("tracer provider shutdown error")
			if shutdownErr == nil {
				shutdownErr = err
			}
		}
	}

	a.Logger.Info("application shutdown complete")
	return shutdownErr
}
