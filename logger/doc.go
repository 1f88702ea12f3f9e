// Package logger provides structured logging for slotkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.WithComponent("registry")
//	log.Debug("plug registered", logger.Fields("slot", "header", "id", "a"))
package logger
