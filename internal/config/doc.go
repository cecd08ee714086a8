// Package config loads the netconf tool's runtime settings from multiple
// sources (YAML files, environment variables, CLI flags) with precedence:
// CLI flags > YAML config > Environment variables > Defaults.
package config
