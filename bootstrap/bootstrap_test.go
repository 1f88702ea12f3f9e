package bootstrap

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/kbukum/slotkit/config"
	"github.com/kbukum/slotkit/plug"
	"github.com/kbukum/slotkit/slot"
)

type demoConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
}

func testConfig() *demoConfig {
	return &demoConfig{
		ServiceConfig: config.ServiceConfig{Name: "demo"},
	}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	if app.Name != "demo" {
		t.Errorf("expected app name demo, got %q", app.Name)
	}
	if app.Scope == nil {
		t.Fatal("expected a root scope")
	}
	if app.Scope.Name() != "demo" {
		t.Errorf("expected scope named after the app, got %q", app.Scope.Name())
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("expected defaults applied, got %q", app.Cfg.Environment)
	}
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Name = ""
	if _, err := NewApp(cfg); err == nil {
		t.Fatal("expected validation error for missing name")
	}
}

func TestNewApp_Options(t *testing.T) {
	app, err := NewApp(testConfig(),
		WithGracefulTimeout(time.Second),
		WithScopeName("root"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if app.gracefulTimeout != time.Second {
		t.Errorf("expected 1s graceful timeout, got %v", app.gracefulTimeout)
	}
	if app.Scope.Name() != "root" {
		t.Errorf("expected scope name root, got %q", app.Scope.Name())
	}
}

func TestRunTask_ScopeFlowsThroughContext(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		b, err := plug.BindingFromContext(ctx, "header", "clock",
			func(params any) (any, error) { return "12:00", nil }, plug.Options{})
		if err != nil {
			return err
		}
		if err := b.Activate(); err != nil {
			return err
		}

		out, err := slot.ResolveFromContext(ctx, "header", slot.Options{})
		if err != nil {
			return err
		}
		items := out.([]slot.Rendered)
		if len(items) != 1 || items[0].Value != "12:00" {
			t.Errorf("unexpected resolution: %v", items)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if !app.Scope.Closed() {
		t.Error("expected root scope closed after RunTask")
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	boom := stderrors.New("boom")
	got := app.RunTask(context.Background(), func(ctx context.Context) error { return boom })
	if !stderrors.Is(got, boom) {
		t.Errorf("expected task error returned, got %v", got)
	}
}

func TestHooks_RunInOrder(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	var order []string
	app.OnStart(func(ctx context.Context) error {
		order = append(order, "start")
		return nil
	})
	app.OnStop(func(ctx context.Context) error {
		order = append(order, "stop")
		// Stop hooks run before the scope closes so bindings can still
		// deactivate cleanly.
		if app.Scope.Closed() {
			t.Error("scope must be open during stop hooks")
		}
		return nil
	})

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"start", "task", "stop"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
}

func TestHooks_StartFailureAborts(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	app.OnStart(func(ctx context.Context) error { return stderrors.New("no") })

	ran := false
	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	if err == nil {
		t.Fatal("expected startup failure")
	}
	if ran {
		t.Error("task must not run when a start hook fails")
	}
}

func TestHooks_StartHookSeesScope(t *testing.T) {
	app, err := NewApp(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	app.OnStart(func(ctx context.Context) error {
		b, err := plug.BindingFromContext(ctx, "status", "boot",
			func(params any) (any, error) { return "ok", nil }, plug.Options{})
		if err != nil {
			return err
		}
		return b.Activate()
	})

	err = app.RunTask(context.Background(), func(ctx context.Context) error {
		recs, err := slot.Records(app.Scope, "status", slot.Options{})
		if err != nil {
			return err
		}
		if len(recs) != 1 {
			t.Errorf("expected the start hook's registration, got %d records", len(recs))
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
