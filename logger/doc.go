// Package logger is structured logging on zerolog.
//
// Console and JSON formats are supported; loggers can be scoped to a
// component and carry structured fields.
//
//	logging:
//	  level: "info"
//	  format: "json"
//
//	log := logger.NewDefault("mockserver").WithComponent("server")
//	log.Info("started", map[string]interface{}{"addr": addr})
package logger
