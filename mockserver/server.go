package mockserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fetchkit/auth/jwt"
	"github.com/kbukum/fetchkit/component"
	"github.com/kbukum/fetchkit/logger"
	"github.com/kbukum/fetchkit/observability"
	"github.com/kbukum/fetchkit/server"
	"github.com/kbukum/fetchkit/server/endpoint"
	"github.com/kbukum/fetchkit/server/middleware"
)

// MockServer serves the fixture routes used by the fetch end-to-end tests.
type MockServer struct {
	cfg     Config
	log     *logger.Logger
	tokens  *jwt.Signer[*Claims]
	srv     *server.Server
	metrics *observability.Metrics
	tracing bool
	checker endpoint.HealthChecker
}

// Option configures a MockServer.
type Option func(*MockServer)

// WithTracing adds a server span per request. metrics may be nil.
func WithTracing(metrics *observability.Metrics) Option {
	return func(m *MockServer) {
		m.tracing = true
		m.metrics = metrics
	}
}

// WithHealthChecker reports checker's results on /health and /ready.
// Without it the server only reports itself.
func WithHealthChecker(checker endpoint.HealthChecker) Option {
	return func(m *MockServer) {
		m.checker = checker
	}
}

// New builds the server and registers all routes. cfg is copied and
// defaulted.
func New(cfg Config, log *logger.Logger, opts ...Option) (*MockServer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mockserver: %w", err)
	}
	if log == nil {
		log = logger.NewDefault(cfg.Name)
	}

	tokens, err := jwt.NewSigner(cfg.Auth, func() *Claims { return &Claims{} })
	if err != nil {
		return nil, fmt.Errorf("mockserver: %w", err)
	}

	m := &MockServer{cfg: cfg, log: log, tokens: tokens}
	for _, opt := range opts {
		opt(m)
	}

	m.srv = server.New(cfg.Server, log)
	if m.tracing {
		m.srv.Use(middleware.Tracing(cfg.Name, m.metrics))
	}
	m.srv.ApplyMiddleware()
	m.registerRoutes(m.srv.GinEngine())
	return m, nil
}

func (m *MockServer) registerRoutes(r *gin.Engine) {
	r.GET("/", m.hello)
	m.registerFixtures(r.Group(""))
	r.POST("/sign", m.sign)

	m.registerFixtures(r.Group("/auth", middleware.Auth(m.tokens.Validator())))

	checker := m.checker
	if checker == nil {
		checker = func(context.Context) []component.Health {
			return []component.Health{{Name: m.cfg.Name, Status: component.StatusHealthy}}
		}
	}
	m.srv.RegisterDefaultEndpoints(m.cfg.Name, checker)
}

func (m *MockServer) registerFixtures(g *gin.RouterGroup) {
	g.GET("/posts", m.listPosts)
	g.POST("/posts", m.createPost)
	g.POST("/upload", m.upload)
	g.POST("/postform", m.postForm)
	g.GET("/preview-pdf", m.previewPDF)
}

// Token signs an access token for sub and role.
func (m *MockServer) Token(sub, role string) (string, *Claims, error) {
	if sub == "" {
		sub = m.cfg.DefaultSubject
	}
	if role == "" {
		role = m.cfg.DefaultRole
	}
	claims := &Claims{Role: role}
	claims.Subject = sub
	token, err := m.tokens.Sign(claims)
	if err != nil {
		return "", nil, err
	}
	return token, claims, nil
}

// Handler returns the root handler with the full middleware chain.
func (m *MockServer) Handler() http.Handler { return m.srv.Handler() }

// Server returns the underlying server, e.g. for registration as a
// component.
func (m *MockServer) Server() *server.Server { return m.srv }

// Config returns the effective configuration.
func (m *MockServer) Config() Config { return m.cfg }
