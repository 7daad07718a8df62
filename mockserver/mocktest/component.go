package mocktest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/mockserver"
	"github.com/kbukum/fetchkit/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Request is one request received by the server.
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	ContentType   string
	Authorization string
}

// Component runs a mock server on an httptest.Server and records every
// request it receives.
type Component struct {
	cfg  mockserver.Config
	opts []mockserver.Option
	log  *logger.Logger

	mu       sync.RWMutex
	mock     *mockserver.MockServer
	handler  http.Handler
	ts       *httptest.Server
	started  bool
	requests []Request
}

var _ component.Component = (*Component)(nil)
var _ testutil.Fixture[[]Request] = (*Component)(nil)

// NewComponent creates a test component. cfg may be the zero value.
func NewComponent(cfg mockserver.Config, opts ...mockserver.Option) *Component {
	cfg.ApplyDefaults()
	cfg.Logging.Level = "warn"
	return &Component{
		cfg:  cfg,
		opts: opts,
		log:  logger.New(&cfg.Logging, "mockserver-test"),
	}
}

// BaseURL returns the server URL, or "" before Start.
func (c *Component) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.ts == nil {
		return ""
	}
	return c.ts.URL
}

// Token signs a token accepted by the /auth routes.
func (c *Component) Token(sub, role string) (string, error) {
	c.mu.RLock()
	mock := c.mock
	c.mu.RUnlock()
	if mock == nil {
		return "", fmt.Errorf("component not started")
	}
	token, _, err := mock.Token(sub, role)
	return token, err
}

// Requests returns the requests received since Start or the last Reset.
func (c *Component) Requests() []Request {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Request(nil), c.requests...)
}

// ServeHTTP records r and passes it to the current mock server.
func (c *Component) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.Lock()
	c.requests = append(c.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
	})
	h := c.handler
	c.mu.Unlock()
	h.ServeHTTP(w, r)
}

// --- component.Component ---

func (c *Component) Name() string { return "mockserver-test" }

func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return fmt.Errorf("component already started")
	}
	if err := c.build(); err != nil {
		return err
	}
	c.ts = httptest.NewServer(c)
	c.started = true
	return nil
}

// build creates a fresh mock server and clears the request log. Callers
// hold c.mu.
func (c *Component) build() error {
	mock, err := mockserver.New(c.cfg, c.log, c.opts...)
	if err != nil {
		return err
	}
	c.mock = mock
	c.handler = mock.Handler()
	c.requests = nil
	return nil
}

func (c *Component) Stop(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started || c.ts == nil {
		return nil
	}
	c.ts.Close()
	c.ts = nil
	c.started = false
	return nil
}

func (c *Component) Health(_ context.Context) component.Health {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.started {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Reset swaps in a fresh mock server and clears the request log. BaseURL
// does not change.
func (c *Component) Reset(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.started {
		return fmt.Errorf("component not started")
	}
	return c.build()
}

// Snapshot returns a copy of the request log.
func (c *Component) Snapshot(_ context.Context) ([]Request, error) {
	return c.Requests(), nil
}

// Restore replaces the request log with a snapshot.
func (c *Component) Restore(_ context.Context, snapshot []Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append([]Request(nil), snapshot...)
	return nil
}
