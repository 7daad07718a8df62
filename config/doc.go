// Package config loads service configuration from config.yml, .env files
// and the environment.
//
// LoadConfig searches ./cmd/<service>/config.yml, ./config/config.yml and
// ./config.yml, then binds every environment variable under several key
// spellings so API_BASE_URL reaches both "api_base_url" and "api.base_url".
//
//	type MockConfig struct {
//	    config.ServiceConfig `mapstructure:",squash"`
//	    Server server.Config `mapstructure:"server"`
//	}
//	var cfg MockConfig
//	err := config.LoadConfig("mockserver", &cfg)
package config
