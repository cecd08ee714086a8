// Package render writes a resolved project configuration in the formats the
// CLI supports.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/treasury-dao/internal/project"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat converts a user supplied name into a Format.
func ParseFormat(raw string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(raw)))
	if format == "yml" {
		return FormatYAML, nil
	}
	if !slices.Contains(Formats(), format) {
		return "", fmt.Errorf("%w %q", ErrUnknownFormat, raw)
	}
	return format, nil
}

// Write encodes doc to w using format.
func Write(w io.Writer, doc project.Document, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, doc)
	case FormatYAML:
		return writeYAML(w, doc)
	case FormatTOML:
		return writeTOML(w, doc)
	case FormatText:
		return writeText(w, doc)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteNetwork encodes a single network to w using format.
func WriteNetwork(w io.Writer, name string, network project.NetworkDocument, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, network)
	case FormatYAML:
		return writeYAML(w, network)
	case FormatTOML:
		return writeTOML(w, network)
	case FormatText:
		return writeNetworkText(w, name, network)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush yaml: %w", err)
	}
	return nil
}

func writeTOML(w io.Writer, v any) error {
	if err := toml.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

func writeText(w io.Writer, doc project.Document) error {
	if _, err := fmt.Fprintf(w, "Compiler:  solc %s\n", doc.CompilerVersion); err != nil {
		return err
	}
	names := make([]string, 0, len(doc.Networks))
	for name := range doc.Networks {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := writeNetworkText(w, name, doc.Networks[name]); err != nil {
			return err
		}
	}
	return nil
}

func writeNetworkText(w io.Writer, name string, network project.NetworkDocument) error {
	url := color.GreenString(network.URL)
	if network.URL == "" {
		url = color.YellowString("unset")
	}
	accounts := color.YellowString("none")
	if len(network.Accounts) > 0 {
		accounts = color.CyanString(strings.Join(network.Accounts, ", "))
	}
	_, err := fmt.Fprintf(w, "\nNetwork:   %s\n  URL:      %s\n  Accounts: %s\n", name, url, accounts)
	return err
}
