package server

import (
	"context"
	"sort"
	"strings"

	"github.com/kbukum/fetchkit/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// ServerComponent runs a Server under a component.Registry.
type ServerComponent struct {
	server *Server
}

// NewComponent wraps s.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

func (sc *ServerComponent) Name() string { return componentName }

func (sc *ServerComponent) Start(ctx context.Context) error { return sc.server.Start(ctx) }

func (sc *ServerComponent) Stop(ctx context.Context) error { return sc.server.Stop(ctx) }

// Health is unhealthy until Start has bound the listener.
func (sc *ServerComponent) Health(_ context.Context) component.Health {
	sc.server.mu.Lock()
	bound := sc.server.listener != nil
	sc.server.mu.Unlock()
	if !bound {
		return component.Health{Name: componentName, Status: component.StatusUnhealthy, Message: "not listening"}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

func (sc *ServerComponent) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: sc.server.Addr(),
		Port:    sc.server.config.Port,
	}
}

// systemPaths are the routes RegisterDefaultEndpoints mounts. They are
// listed after the API routes in the startup summary.
var systemPaths = map[string]bool{"/health": true, "/ready": true, "/alive": true, "/version": true}

var methodRank = map[string]int{"GET": 0, "POST": 1, "PUT": 2, "PATCH": 3, "DELETE": 4}

func rank(method string) int {
	if r, ok := methodRank[method]; ok {
		return r
	}
	return len(methodRank)
}

// Routes lists the gin routes: API routes by path then method, system
// routes last and marked with a gear.
func (sc *ServerComponent) Routes() []component.Route {
	info := sc.server.engine.Routes()
	sort.SliceStable(info, func(i, j int) bool {
		a, b := info[i], info[j]
		if systemPaths[a.Path] != systemPaths[b.Path] {
			return !systemPaths[a.Path]
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return rank(a.Method) < rank(b.Method)
	})

	routes := make([]component.Route, len(info))
	for i, r := range info {
		h := handlerName(r.Handler)
		if systemPaths[r.Path] {
			h += " ⚙️"
		}
		routes[i] = component.Route{Method: r.Method, Path: r.Path, Handler: h}
	}
	return routes
}

// handlerName shortens gin's fully qualified handler name:
// ".../mockserver.(*MockServer).hello-fm" becomes "MockServer.hello" and a
// closure such as ".../endpoint.Health.func1" becomes "health".
func handlerName(full string) string {
	name := strings.TrimSuffix(full, "-fm")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.NewReplacer("(*", "", ")", "").Replace(name)

	parts := strings.Split(name, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	if n := len(parts); n > 1 && strings.HasPrefix(parts[n-1], "func") {
		for i := n - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				return strings.ToLower(parts[i])
			}
		}
	}
	return strings.Join(parts, ".")
}
