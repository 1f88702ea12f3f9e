// Package config loads application configuration for programs embedding the
// registry: YAML via viper, .env files via godotenv, environment variables
// on top. ServiceConfig carries the fields every host application needs;
// programs embed it in their own config structs and extend ApplyDefaults and
// Validate.
package config
