// Package application wires the environment source, project resolution,
// HTTP handlers and server together, keeping the main package focused on CLI
// parsing and orchestration.
package application
