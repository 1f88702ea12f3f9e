// Package bootstrap wires a host application around the registry: it loads
// and validates configuration, initializes logging and telemetry, creates
// the root provider scope, and tears everything down in order on shutdown.
//
// Host programs embed config.ServiceConfig in their own config struct, build
// an App from it and run their workload through RunTask (finite programs,
// TUIs) or Run (long-running services).
package bootstrap
