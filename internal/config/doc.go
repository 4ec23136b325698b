// Package config defines the application configuration and its loading
// logic. Values come from an optional YAML file and from environment
// variables with the ZAHRO_ prefix; environment variables take precedence.
package config
