package env

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// ErrDotenvNotFound indicates the requested dotenv file does not exist.
var ErrDotenvNotFound = errors.New("dotenv file not found")

// Source looks up environment variables by name.
type Source interface {
	LookupEnv(key string) (string, bool)
}

// OS reads variables from the current process environment.
type OS struct{}

// LookupEnv implements Source.
func (OS) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map is an in-memory Source.
type Map map[string]string

// LookupEnv implements Source.
func (m Map) LookupEnv(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

type layered []Source

// Layered returns a Source that consults each source in order. The first
// source that has the key set wins, even when its value is empty.
func Layered(sources ...Source) Source {
	out := make(layered, 0, len(sources))
	for _, src := range sources {
		if src != nil {
			out = append(out, src)
		}
	}
	return out
}

func (l layered) LookupEnv(key string) (string, bool) {
	for _, src := range l {
		if value, ok := src.LookupEnv(key); ok {
			return value, true
		}
	}
	return "", false
}

// ReadDotenv parses a dotenv file into a Map without touching the process
// environment.
func ReadDotenv(path string) (Map, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDotenvNotFound, path)
		}
		return nil, fmt.Errorf("read dotenv %s: %w", path, err)
	}
	return Map(values), nil
}

// Snapshot copies the named keys out of src. Keys that are not set are
// omitted so the snapshot preserves the unset/empty distinction.
func Snapshot(src Source, keys ...string) Map {
	out := make(Map, len(keys))
	if src == nil {
		return out
	}
	for _, key := range keys {
		if value, ok := src.LookupEnv(key); ok {
			out[key] = value
		}
	}
	return out
}

// Get returns the value of key, or the empty string when it is unset.
func Get(src Source, key string) string {
	if src == nil {
		return ""
	}
	value, _ := src.LookupEnv(key)
	return value
}
