// Package source locates and decodes the schema document. It is the only
// part of the generator that touches the filesystem or the network, and it
// runs at most once per run, before the core pipeline begins.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Stats is the metadata file published alongside the spec; it records where
// the current document lives.
type Stats struct {
	OpenAPISpecURL string `yaml:"openapi_spec_url"`
}

// ReadStats reads and decodes a stats file.
func ReadStats(path string) (*Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stats file: %w", err)
	}
	var stats Stats
	if err := yaml.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("parse stats file %q: %w", path, err)
	}
	if stats.OpenAPISpecURL == "" {
		return nil, fmt.Errorf("stats file %q missing openapi_spec_url", path)
	}
	return &stats, nil
}

// Load returns the raw document bytes. A non-empty specPath reads a local
// file; otherwise the document is downloaded from the URL recorded in the
// stats file at statsPath.
func Load(ctx context.Context, client *http.Client, specPath, statsPath string) ([]byte, error) {
	if specPath != "" {
		slog.Info("reading spec from local file", "path", specPath)
		data, err := os.ReadFile(specPath)
		if err != nil {
			return nil, fmt.Errorf("read spec file: %w", err)
		}
		return data, nil
	}

	slog.Info("reading stats file", "path", statsPath)
	stats, err := ReadStats(statsPath)
	if err != nil {
		return nil, err
	}

	slog.Info("downloading spec", "url", stats.OpenAPISpecURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, stats.OpenAPISpecURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build spec request: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download spec: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download spec: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download spec: %w", err)
	}
	return data, nil
}

// Decode parses document bytes into a generic mapping. Documents that open
// with a brace decode as JSON; everything else decodes as YAML.
func Decode(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	var doc map[string]any
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := gojson.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("parse JSON document: %w", err)
		}
		return doc, nil
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML document: %w", err)
	}
	return doc, nil
}
