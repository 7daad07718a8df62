package bootstrap

import "github.com/kbukum/fetchkit/config"

// Config is satisfied by any struct embedding config.ServiceConfig that
// also defines ApplyDefaults and Validate, such as mockserver.Config.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
