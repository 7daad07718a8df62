package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/config"
	"github.com/kbukum/fetchkit/logger"
)

type testConfig struct {
	config.ServiceConfig `mapstructure:",squash"`
}

type fakeServer struct {
	name     string
	startErr error
	running  bool
	events   *[]string
}

func (f *fakeServer) Name() string { return f.name }

func (f *fakeServer) Start(context.Context) error {
	*f.events = append(*f.events, "start "+f.name)
	if f.startErr != nil {
		return f.startErr
	}
	f.running = true
	return nil
}

func (f *fakeServer) Stop(context.Context) error {
	*f.events = append(*f.events, "stop "+f.name)
	f.running = false
	return nil
}

func (f *fakeServer) Health(context.Context) component.Health {
	if !f.running {
		return component.Health{Name: f.name, Status: component.StatusUnhealthy, Message: "stopped"}
	}
	return component.Health{Name: f.name, Status: component.StatusHealthy}
}

func (f *fakeServer) Describe() component.Description {
	return component.Description{Type: "server", Details: "127.0.0.1", Port: 3000}
}

func (f *fakeServer) Routes() []component.Route {
	return []component.Route{{Method: "GET", Path: "/posts", Handler: "MockServer.listPosts"}}
}

func newTestApp(t *testing.T, out *bytes.Buffer) *App[*testConfig] {
	t.Helper()
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "mockserver", Version: "0.1.0"}}
	app, err := NewApp(cfg, WithLogger(logger.NewDefault("test")), WithSummaryOutput(out), WithGracefulTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

func TestRunTaskLifecycle(t *testing.T) {
	var out bytes.Buffer
	var events []string
	app := newTestApp(t, &out)
	srv := &fakeServer{name: "http-server", events: &events}
	if err := app.RegisterComponent(srv); err != nil {
		t.Fatal(err)
	}
	hook := func(name string) Hook {
		return func(context.Context) error {
			events = append(events, name)
			return nil
		}
	}
	app.OnStart(hook("on-start"))
	app.OnReady(hook("on-ready"))
	app.OnStop(hook("on-stop"))

	err := app.RunTask(context.Background(), func(ctx context.Context) error {
		if !srv.running {
			t.Error("task ran before the component started")
		}
		events = append(events, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}

	want := []string{"start http-server", "on-start", "on-ready", "task", "on-stop", "stop http-server"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}

	summary := out.String()
	for _, s := range []string{"mockserver v0.1.0", "http-server [server]: 127.0.0.1 (:3000)", "/posts", "MockServer.listPosts", "http-server: healthy"} {
		if !strings.Contains(summary, s) {
			t.Errorf("summary missing %q:\n%s", s, summary)
		}
	}
}

func TestRunTaskErrorWins(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &out)
	boom := errors.New("task failed")
	if err := app.RunTask(context.Background(), func(context.Context) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("RunTask = %v, want %v", err, boom)
	}
}

func TestStartupFailureStopsStarted(t *testing.T) {
	var out bytes.Buffer
	var events []string
	app := newTestApp(t, &out)
	_ = app.RegisterComponent(&fakeServer{name: "first", events: &events})
	_ = app.RegisterComponent(&fakeServer{name: "second", events: &events, startErr: errors.New("port in use")})

	called := false
	err := app.RunTask(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("err = %v, task called = %v", err, called)
	}
	want := []string{"start first", "start second", "stop first"}
	if !slices.Equal(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if out.Len() != 0 {
		t.Errorf("summary printed after failed startup: %q", out.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	app := newTestApp(t, &out)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestReadyCheck(t *testing.T) {
	var out bytes.Buffer
	var events []string
	app := newTestApp(t, &out)
	_ = app.RegisterComponent(&fakeServer{name: "http-server", events: &events})

	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "http-server is unhealthy: stopped") {
		t.Errorf("ReadyCheck = %v", err)
	}
}

func TestNewAppRejectsInvalidConfig(t *testing.T) {
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "mockserver", Environment: "qa"}}
	if _, err := NewApp(cfg, WithLogger(logger.NewDefault("test"))); err == nil {
		t.Fatal("expected validation error")
	}
}
