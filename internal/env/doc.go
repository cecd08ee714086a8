// Package env abstracts environment variable lookups behind a small Source
// interface so that configuration can be resolved from the live process
// environment, a dotenv file, or an in-memory snapshot.
package env
