package fetch

import (
	"context"

	"github.com/kbukum/fetchkit/component"
)

// Component wraps a Client with lifecycle management so it can be started
// and stopped by a component.Registry alongside a server.
type Component struct {
	client *Client
	config Config
	opts   []Option
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a fetch component. The client is created in Start.
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string { return "fetch" }

// Start creates the client.
func (c *Component) Start(_ context.Context) error {
	client, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(_ context.Context) error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}

// Health is healthy once the client exists.
func (c *Component) Health(_ context.Context) component.Health {
	if c.client == nil {
		return component.Health{Name: c.Name(), Status: component.StatusUnhealthy, Message: "not started"}
	}
	return component.Health{Name: c.Name(), Status: component.StatusHealthy}
}

// Describe returns the component description for the startup summary.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    "Fetch Client",
		Type:    "http-client",
		Details: c.config.BaseURL,
	}
}

// Client returns the underlying client. Must be called after Start.
func (c *Component) Client() *Client {
	return c.client
}
