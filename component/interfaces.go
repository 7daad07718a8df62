package component

import "context"

type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's entry in /health.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is something with a lifecycle: the mock HTTP server, a fetch
// client, a test fixture. Name must be unique within a Registry.
type Component interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is a component's line in the startup summary. An empty Name
// falls back to Component.Name.
type Description struct {
	Name    string
	Type    string
	Details string
	Port    int
}

// Describable components are listed in the summary's infrastructure table.
type Describable interface {
	Describe() Description
}

type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider components contribute to the summary's route table.
type RouteProvider interface {
	Routes() []Route
}
