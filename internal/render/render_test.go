package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/treasury-dao/internal/env"
	"github.com/eugenenazirov/treasury-dao/internal/project"
)

func testDocument() project.Document {
	return project.Resolve(env.Map{
		project.OptimismURLVar: "https://example.optimism.io",
		project.PrivateKeyVar:  "0xabc",
	}).Document()
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"json":  FormatJSON,
		" YAML": FormatYAML,
		"yml":   FormatYAML,
		"toml":  FormatTOML,
		"text":  FormatText,
	}
	for raw, want := range tests {
		got, err := ParseFormat(raw)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, testDocument(), FormatJSON); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded["compilerVersion"] != "0.8.20" {
		t.Fatalf("unexpected compilerVersion %v", decoded["compilerVersion"])
	}
	networks := decoded["networks"].(map[string]any)
	goerli := networks["goerli"].(map[string]any)
	if goerli["url"] != "" {
		t.Fatalf("expected empty goerli url, got %v", goerli["url"])
	}
	if accounts, ok := goerli["accounts"].([]any); !ok || len(accounts) != 1 || accounts[0] != "0xabc" {
		t.Fatalf("unexpected goerli accounts %v", goerli["accounts"])
	}
}

func TestWriteJSONEmptyAccountsIsList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, project.Resolve(env.Map{}).Document(), FormatJSON); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if strings.Contains(buf.String(), "null") {
		t.Fatalf("expected no null values, got %s", buf.String())
	}
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, testDocument(), FormatYAML); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	var decoded project.Document
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.Networks[project.Optimism].URL != "https://example.optimism.io" {
		t.Fatalf("unexpected optimism url in %s", buf.String())
	}
}

func TestWriteTOML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, testDocument(), FormatTOML); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	var decoded project.Document
	if err := toml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.CompilerVersion != project.CompilerVersion {
		t.Fatalf("unexpected compiler version in %s", buf.String())
	}
	if got := decoded.Networks[project.Goerli].Accounts; len(got) != 1 || got[0] != "0xabc" {
		t.Fatalf("unexpected goerli accounts %v", got)
	}
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Write(&buf, project.Resolve(env.Map{}).Document(), FormatText); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"solc 0.8.20", "Network:   goerli", "Network:   optimism", "unset", "none"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "goerli") > strings.Index(out, "optimism") {
		t.Fatalf("expected networks in sorted order:\n%s", out)
	}
}

func TestWriteNetwork(t *testing.T) {
	t.Parallel()

	doc := testDocument()
	var buf bytes.Buffer
	if err := WriteNetwork(&buf, project.Optimism, doc.Networks[project.Optimism], FormatJSON); err != nil {
		t.Fatalf("WriteNetwork returned error: %v", err)
	}

	var decoded project.NetworkDocument
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.URL != "https://example.optimism.io" {
		t.Fatalf("unexpected url %q", decoded.URL)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	t.Parallel()

	if err := Write(&bytes.Buffer{}, testDocument(), Format("xml")); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
}
